package selection

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// MaxActions caps the number of action instances. There are only two action
// kinds, so the cap amounts to one of each.
const MaxActions = 2

// Selection is the mutable, ordered set of field and action instances the
// user has dropped into the form. All operations are synchronous and local;
// global invariants such as name uniqueness are checked by the compiler.
type Selection struct {
	fields  []model.Field
	actions []model.Action
	namer   *Namer
	newID   func() string
}

// Option configures a Selection.
type Option func(*Selection)

// WithNamer overrides the process-wide name generator.
func WithNamer(namer *Namer) Option {
	return func(s *Selection) {
		if namer != nil {
			s.namer = namer
		}
	}
}

// WithIDGenerator overrides how instance ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Selection) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New returns an empty selection.
func New(options ...Option) *Selection {
	s := &Selection{
		namer: processNamer,
		newID: uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Fields returns clones of the selected fields in order.
func (s *Selection) Fields() []model.Field {
	out := make([]model.Field, len(s.fields))
	for i, field := range s.fields {
		out[i] = field.Clone()
	}
	return out
}

// Actions returns clones of the selected actions in order.
func (s *Selection) Actions() []model.Action {
	return append([]model.Action(nil), s.actions...)
}

// Field returns a clone of the field at index.
func (s *Selection) Field(index int) (model.Field, error) {
	if err := s.checkField(index); err != nil {
		return model.Field{}, err
	}
	return s.fields[index].Clone(), nil
}

// FieldCount reports the number of selected fields.
func (s *Selection) FieldCount() int { return len(s.fields) }

// ActionCount reports the number of selected actions.
func (s *Selection) ActionCount() int { return len(s.actions) }

// InsertField clones tpl, gives the instance a fresh name and id, and inserts
// it at targetIndex (clamped to the sequence bounds). Names are not checked
// against the existing selection.
func (s *Selection) InsertField(targetIndex int, tpl model.FieldTemplate) model.Field {
	field := model.Field{
		FieldTemplate: tpl.Clone(),
		ID:            s.newID(),
	}
	field.Name = s.namer.Name(tpl.Name)

	idx := clamp(targetIndex, 0, len(s.fields))
	s.fields = append(s.fields, model.Field{})
	copy(s.fields[idx+1:], s.fields[idx:])
	s.fields[idx] = field
	return field.Clone()
}

// ReorderField moves the field at fromIndex to toIndex. Both indices are
// clamped to the sequence bounds; an empty selection is left untouched.
func (s *Selection) ReorderField(fromIndex, toIndex int) {
	moveItem(s.fields, fromIndex, toIndex)
}

// RemoveField deletes the field at index. Remaining names are untouched.
func (s *Selection) RemoveField(index int) error {
	if err := s.checkField(index); err != nil {
		return err
	}
	s.fields = append(s.fields[:index], s.fields[index+1:]...)
	return nil
}

// CanInsertAction reports whether an action of kind may be dropped: no action
// of the same kind is selected and fewer than MaxActions are held.
func (s *Selection) CanInsertAction(kind model.ActionKind) bool {
	if len(s.actions) >= MaxActions {
		return false
	}
	for _, action := range s.actions {
		if action.Kind == kind {
			return false
		}
	}
	return true
}

// InsertAction copies tpl into the selection at targetIndex when the drop
// guard allows it.
func (s *Selection) InsertAction(targetIndex int, tpl model.ActionTemplate) (model.Action, error) {
	if !s.CanInsertAction(tpl.Kind) {
		return model.Action{}, fmt.Errorf("%w: %s", ErrActionRejected, tpl.Kind)
	}
	action := model.Action{ActionTemplate: tpl, ID: s.newID()}

	idx := clamp(targetIndex, 0, len(s.actions))
	s.actions = append(s.actions, model.Action{})
	copy(s.actions[idx+1:], s.actions[idx:])
	s.actions[idx] = action
	return action, nil
}

// ReorderAction moves the action at fromIndex to toIndex with the same
// clamping rules as ReorderField.
func (s *Selection) ReorderAction(fromIndex, toIndex int) {
	moveItem(s.actions, fromIndex, toIndex)
}

// RemoveAction deletes the action at index.
func (s *Selection) RemoveAction(index int) error {
	if index < 0 || index >= len(s.actions) {
		return fmt.Errorf("%w: action %d", ErrIndexOutOfRange, index)
	}
	s.actions = append(s.actions[:index], s.actions[index+1:]...)
	return nil
}

// AddOption appends a numbered option to the field. Select options inherit a
// disabled flag when any sibling is disabled, checkbox options carry no flags
// and radio options start unselected.
func (s *Selection) AddOption(fieldIndex int) (model.Option, error) {
	field, err := s.optionField(fieldIndex)
	if err != nil {
		return model.Option{}, err
	}

	n := strconv.Itoa(len(field.Options) + 1)
	option := model.Option{
		Label: "Option " + n,
		Value: "Option-" + n,
	}

	switch field.Type {
	case model.FieldTypeCheckbox:
	case model.FieldTypeSelect:
		disabled := false
		for _, existing := range field.Options {
			if existing.IsDisabled() {
				disabled = true
				break
			}
		}
		option.Disabled = model.Bool(disabled)
	default:
		option.Selected = model.Bool(false)
	}

	field.Options = append(field.Options, option)
	return option.Clone(), nil
}

// RemoveOption deletes an option; remaining labels are not renumbered.
func (s *Selection) RemoveOption(fieldIndex, optionIndex int) error {
	field, err := s.optionField(fieldIndex)
	if err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= len(field.Options) {
		return fmt.Errorf("%w: option %d", ErrIndexOutOfRange, optionIndex)
	}
	field.Options = append(field.Options[:optionIndex], field.Options[optionIndex+1:]...)
	return nil
}

// CanRemoveOption reports whether the presentation should offer removal of
// an option: radio groups and selects keep their first two options, checkbox
// groups keep their first.
func (s *Selection) CanRemoveOption(fieldIndex, optionIndex int) bool {
	if s.checkField(fieldIndex) != nil {
		return false
	}
	field := s.fields[fieldIndex]
	if optionIndex < 0 || optionIndex >= len(field.Options) {
		return false
	}
	switch field.Type {
	case model.FieldTypeRadio, model.FieldTypeSelect:
		return optionIndex > 1
	case model.FieldTypeCheckbox:
		return optionIndex > 0
	default:
		return false
	}
}

// ToggleOptionExclusivity enforces single selection for radio groups and
// single selects: checking an option disables every other option, unchecking
// re-enables all of them. Multi-valued fields are left untouched.
func (s *Selection) ToggleOptionExclusivity(fieldIndex, optionIndex int, checked bool) error {
	field, err := s.optionField(fieldIndex)
	if err != nil {
		return err
	}
	if !field.SingleValued() {
		return nil
	}
	if optionIndex < 0 || optionIndex >= len(field.Options) {
		return fmt.Errorf("%w: option %d", ErrIndexOutOfRange, optionIndex)
	}

	for i := range field.Options {
		switch {
		case !checked:
			field.Options[i].Disabled = model.Bool(false)
		case i != optionIndex:
			field.Options[i].Disabled = model.Bool(true)
		}
	}
	return nil
}

// SelectOption marks an option as pre-selected (or clears the mark) and, for
// single-valued fields, applies ToggleOptionExclusivity. Disabled options of
// single-valued fields cannot be checked.
func (s *Selection) SelectOption(fieldIndex, optionIndex int, checked bool) error {
	field, err := s.optionField(fieldIndex)
	if err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= len(field.Options) {
		return fmt.Errorf("%w: option %d", ErrIndexOutOfRange, optionIndex)
	}
	if checked && field.SingleValued() && field.Options[optionIndex].IsDisabled() {
		return fmt.Errorf("%w: %s", ErrOptionDisabled, field.Options[optionIndex].Label)
	}
	field.Options[optionIndex].Selected = model.Bool(checked)
	return s.ToggleOptionExclusivity(fieldIndex, optionIndex, checked)
}

// SetMultiple switches a select between single and multiple mode. Existing
// marks are cleared and every option is re-enabled.
func (s *Selection) SetMultiple(fieldIndex int, multiple bool) error {
	if err := s.checkField(fieldIndex); err != nil {
		return err
	}
	field := &s.fields[fieldIndex]
	if field.Type != model.FieldTypeSelect {
		return fmt.Errorf("%w: %s", ErrNotSelect, field.Name)
	}
	field.Multiple = model.Bool(multiple)
	for i := range field.Options {
		field.Options[i].Selected = model.Bool(false)
		field.Options[i].Disabled = model.Bool(false)
	}
	return nil
}

// ToggleEdit flips the field's edit-panel flag and returns the new state.
func (s *Selection) ToggleEdit(index int) (bool, error) {
	if err := s.checkField(index); err != nil {
		return false, err
	}
	s.fields[index].Editing = !s.fields[index].Editing
	return s.fields[index].Editing, nil
}

// RenameField replaces the field's name. Uniqueness is checked at compile time.
func (s *Selection) RenameField(index int, name string) error {
	if err := s.checkField(index); err != nil {
		return err
	}
	trimmed := model.NormalizeName(name)
	if trimmed == "" {
		return ErrEmptyName
	}
	s.fields[index].Name = trimmed
	return nil
}

// FieldUpdate carries optional edits applied by UpdateField. Nil members are
// left unchanged.
type FieldUpdate struct {
	Label        *string
	Placeholder  *string
	DefaultValue *string
	Inline       *bool
}

// UpdateField applies the non-nil members of update to the field.
func (s *Selection) UpdateField(index int, update FieldUpdate) error {
	if err := s.checkField(index); err != nil {
		return err
	}
	field := &s.fields[index]
	if update.Label != nil {
		field.Label = *update.Label
	}
	if update.Placeholder != nil {
		field.Placeholder = model.String(*update.Placeholder)
	}
	if update.DefaultValue != nil {
		field.DefaultValue = model.String(*update.DefaultValue)
	}
	if update.Inline != nil {
		field.Inline = model.Bool(*update.Inline)
	}
	return nil
}

// UpdateOption replaces an option's label and value.
func (s *Selection) UpdateOption(fieldIndex, optionIndex int, label, value string) error {
	field, err := s.optionField(fieldIndex)
	if err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= len(field.Options) {
		return fmt.Errorf("%w: option %d", ErrIndexOutOfRange, optionIndex)
	}
	field.Options[optionIndex].Label = label
	field.Options[optionIndex].Value = value
	return nil
}

// SetRuleEnabled records a per-instance override for the validation kind.
// The template rule itself is never modified.
func (s *Selection) SetRuleEnabled(fieldIndex int, kind model.ValidationKind, enabled bool) error {
	if err := s.checkField(fieldIndex); err != nil {
		return err
	}
	field := &s.fields[fieldIndex]
	declared := false
	for _, rule := range field.Validations {
		if rule.Kind == kind {
			declared = true
			break
		}
	}
	if !declared {
		return fmt.Errorf("%w: %s on %s", ErrUnknownRule, kind, field.Name)
	}
	if field.RuleOverrides == nil {
		field.RuleOverrides = make(map[model.ValidationKind]bool)
	}
	field.RuleOverrides[kind] = enabled
	return nil
}

func (s *Selection) checkField(index int) error {
	if index < 0 || index >= len(s.fields) {
		return fmt.Errorf("%w: field %d", ErrIndexOutOfRange, index)
	}
	return nil
}

func (s *Selection) optionField(index int) (*model.Field, error) {
	if err := s.checkField(index); err != nil {
		return nil, err
	}
	field := &s.fields[index]
	if field.Type == model.FieldTypeText {
		return nil, fmt.Errorf("%w: %s", ErrNoOptions, field.Name)
	}
	return field, nil
}

func moveItem[T any](items []T, fromIndex, toIndex int) {
	if len(items) == 0 {
		return
	}
	from := clamp(fromIndex, 0, len(items)-1)
	to := clamp(toIndex, 0, len(items)-1)
	if from == to {
		return
	}
	item := items[from]
	if from < to {
		copy(items[from:to], items[from+1:to+1])
	} else {
		copy(items[to+1:from+1], items[to:from])
	}
	items[to] = item
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
