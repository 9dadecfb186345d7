// Package testsupport holds fixtures shared by package tests: frozen-clock
// selections and the default palette compiled under predictable names.
package testsupport

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/catalog"
	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/selection"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

// FixedClock returns a clock frozen at the given Unix millisecond.
func FixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

// NewSelection returns an empty selection whose instance names derive from a
// clock frozen at ms, so the first drop of "text" is named "text-<ms>".
func NewSelection(ms int64) *selection.Selection {
	return selection.New(selection.WithNamer(selection.NewNamer(FixedClock(ms))))
}

// InsertTemplate appends a clone of the named default template to sel.
func InsertTemplate(t *testing.T, sel *selection.Selection, name string) model.Field {
	t.Helper()
	tpl, err := catalog.Default().FieldByName(name)
	if err != nil {
		t.Fatalf("template %s: %v", name, err)
	}
	return sel.InsertField(sel.FieldCount(), tpl)
}

// DefaultSelection holds every default field template, renamed to its
// template name, followed by the submit action.
func DefaultSelection(t *testing.T) *selection.Selection {
	t.Helper()
	sel := NewSelection(0)
	for idx, tpl := range catalog.Default().Fields() {
		sel.InsertField(idx, tpl)
		if err := sel.RenameField(idx, tpl.Name); err != nil {
			t.Fatalf("rename %s: %v", tpl.Name, err)
		}
	}
	submit, err := catalog.Default().ActionByKind(model.ActionSubmit)
	if err != nil {
		t.Fatalf("submit template: %v", err)
	}
	if _, err := sel.InsertAction(0, submit); err != nil {
		t.Fatalf("insert submit: %v", err)
	}
	return sel
}

// Compile compiles sel with the widget decorator and fails the test on error.
func Compile(t *testing.T, sel *selection.Selection) (compiler.CompiledForm, *form.Tree) {
	t.Helper()
	compiled, tree, err := compiler.New(compiler.WithDecorators(widgets.NewRegistry())).Compile(sel)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return compiled, tree
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
