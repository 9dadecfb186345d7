package form_test

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

func TestRequired_ScalarAndArray(t *testing.T) {
	cases := []struct {
		name    string
		control *form.Control
		valid   bool
	}{
		{"null scalar", form.NewScalar("a", form.Null(), form.Required("req")), false},
		{"empty scalar", form.NewScalar("a", form.Of(""), form.Required("req")), false},
		{"filled scalar", form.NewScalar("a", form.Of("x"), form.Required("req")), true},
		{"empty array", form.NewArray("a", nil, form.Required("req")), false},
		{"array with null entry", form.NewArray("a", []form.Value{form.Null()}, form.Required("req")), true},
		{"filled array", form.NewArray("a", form.Values("x"), form.Required("req")), true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.control.Valid(); got != tc.valid {
				t.Fatalf("valid = %v, want %v (errors %v)", got, tc.valid, tc.control.Errors())
			}
		})
	}
}

func TestLengthValidators(t *testing.T) {
	control := form.NewScalar("text", form.Of(""),
		form.MinLength(3, "too short"),
		form.MaxLength(5, "too long"),
	)
	if !control.Valid() {
		t.Fatalf("empty value should pass length checks: %v", control.Errors())
	}

	if err := control.SetValue("ab"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	want := []form.Failure{{Signal: form.SignalMinLength, Message: "too short", RequiredLength: 3, ActualLength: 2}}
	if diff := cmp.Diff(want, control.Errors()); diff != "" {
		t.Fatalf("min length failure (-want +got):\n%s", diff)
	}

	if err := control.SetValue("abcdef"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	want = []form.Failure{{Signal: form.SignalMaxLength, Message: "too long", RequiredLength: 5, ActualLength: 6}}
	if diff := cmp.Diff(want, control.Errors()); diff != "" {
		t.Fatalf("max length failure (-want +got):\n%s", diff)
	}

	if err := control.SetValue("héllo"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if !control.Valid() {
		t.Fatalf("lengths are counted in characters: %v", control.Errors())
	}
}

func TestSelectControl_DropsNullOnChange(t *testing.T) {
	control := form.NewSelect("pick", []form.Value{form.Null()}, form.SelectRequired("pick one"))

	want := []form.Failure{{Signal: form.SignalSelectRequired, Message: "pick one"}}
	if diff := cmp.Diff(want, control.Errors()); diff != "" {
		t.Fatalf("seeded failure (-want +got):\n%s", diff)
	}

	if err := control.Toggle("b", true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if diff := cmp.Diff([]any{"b"}, control.Interface()); diff != "" {
		t.Fatalf("null sentinel survived an edit (-want +got):\n%s", diff)
	}
	if !control.Valid() {
		t.Fatalf("expected valid after a choice: %v", control.Errors())
	}
}

func TestArrayControl_KeepsNullWithoutCleanup(t *testing.T) {
	control := form.NewArray("boxes", []form.Value{form.Null()})
	if err := control.Toggle("a", true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if diff := cmp.Diff([]any{nil, "a"}, control.Interface()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if err := control.Toggle("a", false); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if diff := cmp.Diff([]any{nil}, control.Interface()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestControl_KindMismatch(t *testing.T) {
	scalar := form.NewScalar("s", form.Null())
	array := form.NewArray("a", nil)

	if err := scalar.SetValues("x"); !errors.Is(err, form.ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
	if err := scalar.Toggle("x", true); !errors.Is(err, form.ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
	if err := array.SetValue("x"); !errors.Is(err, form.ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
}

func TestTree_AggregatesAndSerialises(t *testing.T) {
	tree := form.NewTree()
	mustAdd(t, tree, form.NewScalar("title", form.Of(""), form.Required("title required")))
	mustAdd(t, tree, form.NewSelect("color", []form.Value{form.Null()}))
	mustAdd(t, tree, form.NewArray("tags", form.Values("go")))

	if err := tree.Add(form.NewScalar("title", form.Null())); !errors.Is(err, form.ErrDuplicateControl) {
		t.Fatalf("expected ErrDuplicateControl, got %v", err)
	}
	if tree.Valid() {
		t.Fatalf("tree should be invalid while title is empty")
	}
	wantErrors := map[string][]form.Failure{
		"title": {{Signal: form.SignalRequired, Message: "title required"}},
	}
	if diff := cmp.Diff(wantErrors, tree.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	if err := tree.SetValue("title", "Hello"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if err := tree.SetValue("missing", "x"); !errors.Is(err, form.ErrUnknownControl) {
		t.Fatalf("expected ErrUnknownControl, got %v", err)
	}
	if !tree.Valid() {
		t.Fatalf("tree should be valid: %v", tree.Errors())
	}
	if diff := cmp.Diff([]string{"title", "color", "tags"}, tree.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	raw, err := json.Marshal(tree.Value())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(raw), `{"color":[null],"tags":["go"],"title":"Hello"}`; got != want {
		t.Fatalf("serialised value = %s, want %s", got, want)
	}

	if err := tree.SetValues("color", "red"); err != nil {
		t.Fatalf("set color: %v", err)
	}
	if diff := cmp.Diff([]any{"red"}, tree.Value()["color"]); diff != "" {
		t.Fatalf("color mismatch (-want +got):\n%s", diff)
	}
}

func mustAdd(t *testing.T, tree *form.Tree, c *form.Control) {
	t.Helper()
	if err := tree.Add(c); err != nil {
		t.Fatalf("add %s: %v", c.Name(), err)
	}
}
