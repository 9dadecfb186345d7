package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

const noneChoice = "(none)"

// Filler walks a compiled form in the terminal, writing every answer into
// the control tree and re-prompting until the control's validators pass.
type Filler struct {
	settings
}

var _ render.Renderer = (*Filler)(nil)

// NewFiller constructs a Filler with defaults (survey driver, JSON output).
func NewFiller(options ...Option) *Filler {
	return &Filler{settings: newSettings(options)}
}

// Name reports the renderer identifier.
func (f *Filler) Name() string { return "tui" }

// ContentType reports the serialization format used by Render.
func (f *Filler) ContentType() string {
	if f.outputFormat == render.FormatURLEncoded {
		return "application/x-www-form-urlencoded"
	}
	return "application/json"
}

// Render fills the form and returns the encoded submission. Choosing the
// cancel button returns render.ErrCancelRequested.
func (f *Filler) Render(ctx context.Context, compiled compiler.CompiledForm, tree *form.Tree, _ render.RenderOptions) ([]byte, error) {
	action, err := f.Fill(ctx, compiled, tree)
	if err != nil {
		return nil, err
	}

	handler := render.NewHandler(tree, render.WithLogger(f.logger))
	if action == model.ActionCancel {
		return nil, handler.OnCancel()
	}
	submission, err := handler.OnSubmit()
	if err != nil {
		return nil, err
	}
	payload, _, err := submission.Encode(f.outputFormat)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Fill prompts every field in compiled order and then asks which button to
// press. Forms without buttons report a submit.
func (f *Filler) Fill(ctx context.Context, compiled compiler.CompiledForm, tree *form.Tree) (model.ActionKind, error) {
	if ctx == nil {
		return "", errors.New("tui: context is required")
	}
	if tree == nil {
		return "", ErrNotRendered
	}
	for _, field := range compiled.Fields {
		if err := f.promptField(ctx, field, tree); err != nil {
			return "", err
		}
	}
	return f.chooseAction(ctx, compiled.Actions)
}

func (f *Filler) promptField(ctx context.Context, field model.Field, tree *form.Tree) error {
	control, ok := tree.Get(field.Name)
	if !ok {
		return fmt.Errorf("%w: %s", form.ErrUnknownControl, field.Name)
	}
	widget := widgets.Of(field)

	for {
		var err error
		switch {
		case control.Kind() == form.KindArray && widget == widgets.WidgetSelect:
			err = f.promptSingle(ctx, field, control)
		case control.Kind() == form.KindArray:
			err = f.promptMulti(ctx, field, control)
		case len(field.Options) > 0 && widget != widgets.WidgetInput:
			err = f.promptSingle(ctx, field, control)
		default:
			err = f.promptText(ctx, field, control)
		}
		if errors.Is(err, ErrNoChoices) {
			if control.Valid() {
				return nil
			}
			return fmt.Errorf("%w: %s", err, field.Name)
		}
		if err != nil {
			return err
		}

		failures := control.Errors()
		if len(failures) == 0 {
			f.logger.Debug("field answered", zap.String("field", field.Name))
			return nil
		}
		for _, failure := range failures {
			message := failure.Message
			if message == "" {
				message = failure.Signal
			}
			_ = f.driver.Info(ctx, fmt.Sprintf("%s%s: %s", f.theme.ErrorPrefix, label(field), message))
		}
	}
}

func (f *Filler) promptText(ctx context.Context, field model.Field, control *form.Control) error {
	response, err := f.driver.Input(ctx, InputConfig{
		Message: label(field),
		Default: control.Scalar().String(),
		Help:    ruleHelp(field, model.Deref(field.Placeholder)),
	})
	if err != nil {
		return err
	}
	return control.SetValue(response)
}

func (f *Filler) promptSingle(ctx context.Context, field model.Field, control *form.Control) error {
	choices, values := enabledOptions(field)
	if len(choices) == 0 {
		return ErrNoChoices
	}
	noneIndex := -1
	if !hasRule(field, model.ValidationRequired) {
		noneIndex = len(choices)
		choices = append(choices, noneChoice)
		values = append(values, "")
	}

	current := currentStrings(control)
	defaultIndex := 0
	for i, value := range values {
		if len(current) > 0 && current[0] == value {
			defaultIndex = i
			break
		}
	}

	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      label(field),
		Options:      choices,
		DefaultIndex: defaultIndex,
		Help:         ruleHelp(field, ""),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(values) {
		return fmt.Errorf("tui: choice %d out of range for %s", idx, field.Name)
	}

	if control.Kind() == form.KindArray {
		if idx == noneIndex {
			return control.SetValues()
		}
		return control.SetValues(values[idx])
	}
	return control.SetValue(values[idx])
}

func (f *Filler) promptMulti(ctx context.Context, field model.Field, control *form.Control) error {
	choices, values := enabledOptions(field)
	if len(choices) == 0 {
		return ErrNoChoices
	}

	current := currentStrings(control)
	var defaults []int
	for i, value := range values {
		for _, selected := range current {
			if selected == value {
				defaults = append(defaults, i)
				break
			}
		}
	}

	indices, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message:  label(field),
		Options:  choices,
		Defaults: defaults,
		Help:     ruleHelp(field, ""),
	})
	if err != nil {
		return err
	}
	picked := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(values) {
			picked = append(picked, values[idx])
		}
	}
	return control.SetValues(picked...)
}

func (f *Filler) chooseAction(ctx context.Context, actions []model.Action) (model.ActionKind, error) {
	if len(actions) == 0 {
		return model.ActionSubmit, nil
	}
	choices := make([]string, len(actions))
	defaultIndex := 0
	for i, action := range actions {
		choices[i] = action.Label
		if action.Kind == model.ActionSubmit {
			defaultIndex = i
		}
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      "Action",
		Options:      choices,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return "", fmt.Errorf("tui: action %d out of range", idx)
	}
	return actions[idx].Kind, nil
}

func enabledOptions(field model.Field) ([]string, []string) {
	var choices, values []string
	for _, option := range field.Options {
		if option.IsDisabled() {
			continue
		}
		choices = append(choices, option.Label)
		values = append(values, option.Value)
	}
	return choices, values
}

func currentStrings(control *form.Control) []string {
	if control.Kind() == form.KindScalar {
		if value := control.Scalar(); !value.IsNull() {
			return []string{value.String()}
		}
		return nil
	}
	var out []string
	for _, value := range control.Values() {
		if !value.IsNull() {
			out = append(out, value.String())
		}
	}
	return out
}

func hasRule(field model.Field, kind model.ValidationKind) bool {
	for _, rule := range field.EnabledRules() {
		if rule.Kind == kind {
			return true
		}
	}
	return false
}

func label(field model.Field) string {
	if text := strings.TrimSpace(field.Label); text != "" {
		return text
	}
	return field.Name
}

func ruleHelp(field model.Field, placeholder string) string {
	var parts []string
	if placeholder != "" {
		parts = append(parts, placeholder)
	}
	for _, rule := range field.EnabledRules() {
		switch rule.Kind {
		case model.ValidationRequired:
			parts = append(parts, "required")
		case model.ValidationMinLength:
			if rule.Bound != nil {
				parts = append(parts, fmt.Sprintf("at least %d characters", *rule.Bound))
			}
		case model.ValidationMaxLength:
			if rule.Bound != nil {
				parts = append(parts, fmt.Sprintf("at most %d characters", *rule.Bound))
			}
		}
	}
	return strings.Join(parts, ", ")
}
