package tui

import (
	"context"
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Notifier prints builder notifications through a prompt driver.
type Notifier struct {
	driver PromptDriver
	theme  Theme
}

var _ render.Notifier = (*Notifier)(nil)

// NewNotifier returns a notifier writing through driver.
func NewNotifier(driver PromptDriver, theme Theme) *Notifier {
	return &Notifier{driver: driver, theme: theme}
}

// Notify implements render.Notifier.
func (n *Notifier) Notify(note render.Notification) {
	if n == nil || n.driver == nil {
		return
	}
	prefix := n.theme.InfoPrefix
	switch note.Kind {
	case render.NotifyDuplicateName, render.NotifyFormInvalid:
		prefix = n.theme.ErrorPrefix
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(note.Message)
	if len(note.Payload) > 0 {
		b.WriteString("\n")
		b.Write(note.Payload)
	}

	names := make([]string, 0, len(note.Errors.Fields))
	for name := range note.Errors.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString("\n  ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.Join(note.Errors.Fields[name], "; "))
	}

	_ = n.driver.Info(context.Background(), b.String())
}
