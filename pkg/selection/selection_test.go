package selection_test

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/catalog"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/selection"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func newSelection() *selection.Selection {
	counter := 0
	return selection.New(
		selection.WithNamer(selection.NewNamer(func() time.Time { return time.UnixMilli(1000) })),
		selection.WithIDGenerator(func() string {
			counter++
			return "id-" + strconv.Itoa(counter)
		}),
	)
}

func template(t *testing.T, name string) model.FieldTemplate {
	t.Helper()
	tpl, err := catalog.Default().FieldByName(name)
	if err != nil {
		t.Fatalf("template %s: %v", name, err)
	}
	return tpl
}

func TestNamer_SuffixesStrictlyIncrease(t *testing.T) {
	namer := selection.NewNamer(func() time.Time { return time.UnixMilli(1700000000000) })

	first := namer.Name("text")
	second := namer.Name("text")
	if first != "text-1700000000000" {
		t.Fatalf("unexpected first name %q", first)
	}
	if second != "text-1700000000001" {
		t.Fatalf("expected bumped suffix, got %q", second)
	}
}

func TestInsertField_ClonesAndNames(t *testing.T) {
	sel := newSelection()
	tpl := template(t, "select")

	field := sel.InsertField(0, tpl)
	if !strings.HasPrefix(field.Name, "select-") {
		t.Fatalf("expected suffixed name, got %q", field.Name)
	}
	if field.ID != "id-1" {
		t.Fatalf("expected generated id, got %q", field.ID)
	}

	tpl.Options[0].Label = "mutated"
	stored, err := sel.Field(0)
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if stored.Options[0].Label != "Option 1" {
		t.Fatalf("instance shares options with template: %q", stored.Options[0].Label)
	}

	field.Options[1].Label = "also mutated"
	stored, _ = sel.Field(0)
	if stored.Options[1].Label != "Option 2" {
		t.Fatalf("returned field shares options with selection: %q", stored.Options[1].Label)
	}
}

func TestInsertField_DoesNotCheckNames(t *testing.T) {
	sel := newSelection()
	sel.InsertField(0, template(t, "text"))
	sel.InsertField(1, template(t, "text"))
	if err := sel.RenameField(0, "dup"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := sel.RenameField(1, "dup"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if sel.FieldCount() != 2 {
		t.Fatalf("expected duplicates to coexist, got %d fields", sel.FieldCount())
	}
}

// Random insert/remove/reorder sequences must match a reference slice that
// applies the same clamping rules.
func TestFieldOperations_MatchReferenceModel(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sel := newSelection()
	palette := catalog.Default().Fields()

	var reference []string
	inserts, removals := 0, 0

	for step := 0; step < 500; step++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(reference) == 0:
			target := rng.Intn(len(reference)+3) - 1
			field := sel.InsertField(target, palette[rng.Intn(len(palette))])
			idx := target
			if idx < 0 {
				idx = 0
			}
			if idx > len(reference) {
				idx = len(reference)
			}
			reference = append(reference[:idx], append([]string{field.ID}, reference[idx:]...)...)
			inserts++
		case op == 1:
			idx := rng.Intn(len(reference))
			if err := sel.RemoveField(idx); err != nil {
				t.Fatalf("step %d remove: %v", step, err)
			}
			reference = append(reference[:idx], reference[idx+1:]...)
			removals++
		default:
			from := rng.Intn(len(reference))
			to := rng.Intn(len(reference))
			sel.ReorderField(from, to)
			id := reference[from]
			reference = append(reference[:from], reference[from+1:]...)
			reference = append(reference[:to], append([]string{id}, reference[to:]...)...)
		}

		if sel.FieldCount() != inserts-removals {
			t.Fatalf("step %d: count %d, want %d", step, sel.FieldCount(), inserts-removals)
		}
		var got []string
		for _, field := range sel.Fields() {
			got = append(got, field.ID)
		}
		if diff := cmp.Diff(reference, got); diff != "" {
			t.Fatalf("step %d order mismatch (-want +got):\n%s", step, diff)
		}
	}
}

func TestRemoveField_OutOfRange(t *testing.T) {
	sel := newSelection()
	if err := sel.RemoveField(0); !errors.Is(err, selection.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRemoveField_KeepsOtherNames(t *testing.T) {
	sel := newSelection()
	a := sel.InsertField(0, template(t, "text"))
	sel.InsertField(1, template(t, "radio-group"))
	c := sel.InsertField(2, template(t, "select"))

	if err := sel.RemoveField(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	fields := sel.Fields()
	if fields[0].Name != a.Name || fields[1].Name != c.Name {
		t.Fatalf("names changed after removal: %q %q", fields[0].Name, fields[1].Name)
	}
}

func TestInsertAction_Guard(t *testing.T) {
	sel := newSelection()
	submit := model.ActionTemplate{Kind: model.ActionSubmit, Label: "Submit"}
	cancel := model.ActionTemplate{Kind: model.ActionCancel, Label: "Cancel"}

	if _, err := sel.InsertAction(0, submit); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if sel.CanInsertAction(model.ActionSubmit) {
		t.Fatalf("guard should reject a second submit")
	}
	if _, err := sel.InsertAction(0, submit); !errors.Is(err, selection.ErrActionRejected) {
		t.Fatalf("expected ErrActionRejected, got %v", err)
	}
	if _, err := sel.InsertAction(0, cancel); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := sel.InsertAction(0, cancel); !errors.Is(err, selection.ErrActionRejected) {
		t.Fatalf("expected ErrActionRejected, got %v", err)
	}
	if sel.ActionCount() != selection.MaxActions {
		t.Fatalf("expected %d actions, got %d", selection.MaxActions, sel.ActionCount())
	}

	var kinds []model.ActionKind
	for _, action := range sel.Actions() {
		kinds = append(kinds, action.Kind)
	}
	if diff := cmp.Diff([]model.ActionKind{model.ActionCancel, model.ActionSubmit}, kinds); diff != "" {
		t.Fatalf("action order mismatch (-want +got):\n%s", diff)
	}

	if err := sel.RemoveAction(0); err != nil {
		t.Fatalf("remove action: %v", err)
	}
	if !sel.CanInsertAction(model.ActionCancel) {
		t.Fatalf("cancel should be insertable after removal")
	}
}

func TestReorderAction(t *testing.T) {
	sel := newSelection()
	// Reordering an empty list is a no-op.
	sel.ReorderAction(0, 1)
	if sel.ActionCount() != 0 {
		t.Fatalf("expected no actions, got %d", sel.ActionCount())
	}

	if _, err := sel.InsertAction(0, model.ActionTemplate{Kind: model.ActionSubmit, Label: "Submit"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := sel.InsertAction(1, model.ActionTemplate{Kind: model.ActionCancel, Label: "Cancel"}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	kinds := func() []model.ActionKind {
		var out []model.ActionKind
		for _, action := range sel.Actions() {
			out = append(out, action.Kind)
		}
		return out
	}

	cases := []struct {
		name     string
		from, to int
		want     []model.ActionKind
	}{
		{name: "move second to first", from: 1, to: 0, want: []model.ActionKind{model.ActionCancel, model.ActionSubmit}},
		{name: "same index", from: 1, to: 1, want: []model.ActionKind{model.ActionCancel, model.ActionSubmit}},
		{name: "target clamped past end", from: 0, to: 9, want: []model.ActionKind{model.ActionSubmit, model.ActionCancel}},
		{name: "source clamped below zero", from: -3, to: 1, want: []model.ActionKind{model.ActionCancel, model.ActionSubmit}},
	}
	for _, tc := range cases {
		sel.ReorderAction(tc.from, tc.to)
		if diff := cmp.Diff(tc.want, kinds()); diff != "" {
			t.Fatalf("%s: action order mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

// Fuzzed action drops never produce duplicate kinds or more than two actions.
func TestInsertAction_NeverExceedsCap(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	sel := newSelection()
	templates := catalog.Default().Actions()

	for step := 0; step < 200; step++ {
		switch rng.Intn(3) {
		case 0, 1:
			_, _ = sel.InsertAction(rng.Intn(3), templates[rng.Intn(len(templates))])
		default:
			if sel.ActionCount() > 0 {
				_ = sel.RemoveAction(rng.Intn(sel.ActionCount()))
			}
		}
		seen := map[model.ActionKind]bool{}
		for _, action := range sel.Actions() {
			if seen[action.Kind] {
				t.Fatalf("step %d: duplicate action kind %s", step, action.Kind)
			}
			seen[action.Kind] = true
		}
		if sel.ActionCount() > selection.MaxActions {
			t.Fatalf("step %d: %d actions selected", step, sel.ActionCount())
		}
	}
}

func TestAddOption_PerFieldType(t *testing.T) {
	sel := newSelection()
	sel.InsertField(0, template(t, "select"))
	sel.InsertField(1, template(t, "checkbox-group"))
	sel.InsertField(2, template(t, "radio-group"))
	sel.InsertField(3, template(t, "text"))

	if err := sel.ToggleOptionExclusivity(0, 1, true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	selectOption, err := sel.AddOption(0)
	if err != nil {
		t.Fatalf("add select option: %v", err)
	}
	want := model.Option{Label: "Option 4", Value: "Option-4", Disabled: model.Bool(true)}
	if diff := cmp.Diff(want, selectOption); diff != "" {
		t.Fatalf("select option mismatch (-want +got):\n%s", diff)
	}

	// Checkbox options never carry selected or disabled keys.
	if err := sel.UpdateOption(1, 0, "Only", "only"); err != nil {
		t.Fatalf("update option: %v", err)
	}
	checkboxOption, err := sel.AddOption(1)
	if err != nil {
		t.Fatalf("add checkbox option: %v", err)
	}
	want = model.Option{Label: "Option 2", Value: "Option-2"}
	if diff := cmp.Diff(want, checkboxOption); diff != "" {
		t.Fatalf("checkbox option mismatch (-want +got):\n%s", diff)
	}

	radioOption, err := sel.AddOption(2)
	if err != nil {
		t.Fatalf("add radio option: %v", err)
	}
	want = model.Option{Label: "Option 4", Value: "Option-4", Selected: model.Bool(false)}
	if diff := cmp.Diff(want, radioOption); diff != "" {
		t.Fatalf("radio option mismatch (-want +got):\n%s", diff)
	}

	if _, err := sel.AddOption(3); !errors.Is(err, selection.ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions for text field, got %v", err)
	}
}

func TestAddOption_CheckboxIgnoresDisabledSiblings(t *testing.T) {
	palette, err := catalog.Parse([]byte(`
fields:
  - type: checkbox
    label: Toppings
    name: toppings
    options:
      - label: Cheese
        value: cheese
        disabled: true
`), "toppings.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tpl, err := palette.FieldByName("toppings")
	if err != nil {
		t.Fatalf("template: %v", err)
	}

	sel := newSelection()
	sel.InsertField(0, tpl)
	option, err := sel.AddOption(0)
	if err != nil {
		t.Fatalf("add option: %v", err)
	}
	want := model.Option{Label: "Option 2", Value: "Option-2"}
	if diff := cmp.Diff(want, option); diff != "" {
		t.Fatalf("checkbox option mismatch (-want +got):\n%s", diff)
	}
}

func TestAddOption_SelectWithoutDisabledSiblings(t *testing.T) {
	sel := newSelection()
	sel.InsertField(0, template(t, "select"))

	option, err := sel.AddOption(0)
	if err != nil {
		t.Fatalf("add option: %v", err)
	}
	if option.Disabled == nil || *option.Disabled {
		t.Fatalf("expected explicit disabled=false, got %#v", option.Disabled)
	}
}

func TestRemoveOption_NoRenumbering(t *testing.T) {
	sel := newSelection()
	sel.InsertField(0, template(t, "radio-group"))

	if err := sel.RemoveOption(0, 0); err != nil {
		t.Fatalf("remove option: %v", err)
	}
	field, _ := sel.Field(0)
	var labels []string
	for _, option := range field.Options {
		labels = append(labels, option.Label)
	}
	if diff := cmp.Diff([]string{"Option 2", "Option 3"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	if err := sel.RemoveOption(0, 5); !errors.Is(err, selection.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestToggleOptionExclusivity_Radio(t *testing.T) {
	sel := newSelection()
	sel.InsertField(0, template(t, "radio-group"))

	if err := sel.ToggleOptionExclusivity(0, 1, true); err != nil {
		t.Fatalf("check: %v", err)
	}
	field, _ := sel.Field(0)
	got := []bool{field.Options[0].IsDisabled(), field.Options[1].IsDisabled(), field.Options[2].IsDisabled()}
	if diff := cmp.Diff([]bool{true, false, true}, got); diff != "" {
		t.Fatalf("disabled flags after check (-want +got):\n%s", diff)
	}

	if err := sel.ToggleOptionExclusivity(0, 1, false); err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	field, _ = sel.Field(0)
	for i, option := range field.Options {
		if option.IsDisabled() {
			t.Fatalf("option %d still disabled after uncheck", i)
		}
	}
}

func TestToggleOptionExclusivity_IgnoresMultiValued(t *testing.T) {
	sel := newSelection()
	sel.InsertField(0, template(t, "checkbox-group"))
	sel.InsertField(1, template(t, "select"))
	if err := sel.SetMultiple(1, true); err != nil {
		t.Fatalf("set multiple: %v", err)
	}
	if _, err := sel.AddOption(0); err != nil {
		t.Fatalf("add option: %v", err)
	}

	for _, idx := range []int{0, 1} {
		if err := sel.ToggleOptionExclusivity(idx, 0, true); err != nil {
			t.Fatalf("toggle %d: %v", idx, err)
		}
		field, _ := sel.Field(idx)
		for i, option := range field.Options {
			if option.IsDisabled() {
				t.Fatalf("field %d option %d disabled on a multi-valued field", idx, i)
			}
		}
	}
}

func TestSelectOption_MarksAndExcludes(t *testing.T) {
	sel := newSelection()
	sel.InsertField(0, template(t, "select"))

	if err := sel.SelectOption(0, 2, true); err != nil {
		t.Fatalf("select option: %v", err)
	}
	field, _ := sel.Field(0)
	if !field.Options[2].IsSelected() {
		t.Fatalf("option not marked selected")
	}
	if !field.Options[0].IsDisabled() || !field.Options[1].IsDisabled() {
		t.Fatalf("siblings should be disabled: %#v", field.Options)
	}

	if err := sel.SetMultiple(0, true); err != nil {
		t.Fatalf("set multiple: %v", err)
	}
	field, _ = sel.Field(0)
	for i, option := range field.Options {
		if option.IsSelected() || option.IsDisabled() {
			t.Fatalf("option %d not reset after switching to multiple: %#v", i, option)
		}
	}

	if err := sel.SetMultiple(-1, true); !errors.Is(err, selection.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSelectOption_RejectsDisabledOption(t *testing.T) {
	sel := newSelection()
	sel.InsertField(0, template(t, "select"))

	if err := sel.SelectOption(0, 0, true); err != nil {
		t.Fatalf("select first option: %v", err)
	}
	if err := sel.SelectOption(0, 1, true); !errors.Is(err, selection.ErrOptionDisabled) {
		t.Fatalf("expected ErrOptionDisabled, got %v", err)
	}

	field, _ := sel.Field(0)
	var selected []string
	for _, option := range field.Options {
		if option.IsSelected() {
			selected = append(selected, option.Value)
		}
	}
	if diff := cmp.Diff([]string{field.Options[0].Value}, selected); diff != "" {
		t.Fatalf("selected options mismatch (-want +got):\n%s", diff)
	}

	_, tree := testsupport.Compile(t, sel)
	control, ok := tree.Get(field.Name)
	if !ok {
		t.Fatalf("control %s missing", field.Name)
	}
	if got := len(control.Values()); got != 1 {
		t.Fatalf("single select compiled with %d values", got)
	}

	// Clearing the mark re-enables every option.
	if err := sel.SelectOption(0, 0, false); err != nil {
		t.Fatalf("clear first option: %v", err)
	}
	if err := sel.SelectOption(0, 1, true); err != nil {
		t.Fatalf("select second option after clearing: %v", err)
	}
}

func TestSelectOption_MultiSelectIgnoresDisabledFlag(t *testing.T) {
	sel := newSelection()
	sel.InsertField(0, template(t, "checkbox-group"))
	if _, err := sel.AddOption(0); err != nil {
		t.Fatalf("add option: %v", err)
	}

	if err := sel.SelectOption(0, 0, true); err != nil {
		t.Fatalf("select first option: %v", err)
	}
	if err := sel.SelectOption(0, 1, true); err != nil {
		t.Fatalf("select second option: %v", err)
	}
}

func TestCanRemoveOption(t *testing.T) {
	sel := newSelection()
	sel.InsertField(0, template(t, "radio-group"))
	sel.InsertField(1, template(t, "checkbox-group"))
	if _, err := sel.AddOption(1); err != nil {
		t.Fatalf("add option: %v", err)
	}

	cases := []struct {
		field, option int
		want          bool
	}{
		{0, 0, false},
		{0, 1, false},
		{0, 2, true},
		{1, 0, false},
		{1, 1, true},
		{1, 9, false},
	}
	for _, tc := range cases {
		if got := sel.CanRemoveOption(tc.field, tc.option); got != tc.want {
			t.Fatalf("CanRemoveOption(%d, %d) = %v, want %v", tc.field, tc.option, got, tc.want)
		}
	}
}

func TestSetRuleEnabled_LeavesTemplateUntouched(t *testing.T) {
	tpl := template(t, "text")
	sel := newSelection()
	sel.InsertField(0, tpl)
	sel.InsertField(1, tpl)

	if err := sel.SetRuleEnabled(0, model.ValidationMinLength, false); err != nil {
		t.Fatalf("set rule: %v", err)
	}
	first, _ := sel.Field(0)
	second, _ := sel.Field(1)

	var firstKinds, secondKinds []model.ValidationKind
	for _, rule := range first.EnabledRules() {
		firstKinds = append(firstKinds, rule.Kind)
	}
	for _, rule := range second.EnabledRules() {
		secondKinds = append(secondKinds, rule.Kind)
	}
	if diff := cmp.Diff([]model.ValidationKind{model.ValidationRequired, model.ValidationMaxLength}, firstKinds); diff != "" {
		t.Fatalf("first field rules (-want +got):\n%s", diff)
	}
	if len(secondKinds) != 3 {
		t.Fatalf("override leaked into second instance: %v", secondKinds)
	}
	if !first.Validations[1].Enabled {
		t.Fatalf("template rule was mutated")
	}

	if err := sel.SetRuleEnabled(0, "pattern", true); !errors.Is(err, selection.ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
}

func TestEditOperations(t *testing.T) {
	sel := newSelection()
	sel.InsertField(0, template(t, "text"))

	editing, err := sel.ToggleEdit(0)
	if err != nil || !editing {
		t.Fatalf("toggle edit: editing=%v err=%v", editing, err)
	}
	if err := sel.RenameField(0, "   "); !errors.Is(err, selection.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := sel.RenameField(0, " email "); err != nil {
		t.Fatalf("rename: %v", err)
	}
	err = sel.UpdateField(0, selection.FieldUpdate{
		Label:        model.String("Email"),
		Placeholder:  model.String("you@example.com"),
		DefaultValue: model.String("hello@example.com"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	field, _ := sel.Field(0)
	if field.Name != "email" || field.Label != "Email" {
		t.Fatalf("edits not applied: %#v", field)
	}
	if model.Deref(field.Placeholder) != "you@example.com" || model.Deref(field.DefaultValue) != "hello@example.com" {
		t.Fatalf("optional edits not applied: %#v", field.FieldTemplate)
	}
}
