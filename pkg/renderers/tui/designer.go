package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/selection"
)

// Main menu entries, in display order.
const (
	MenuAddField     = "Add field"
	MenuAddAction    = "Add action"
	MenuEditField    = "Edit field"
	MenuMoveField    = "Move field"
	MenuRemoveField  = "Remove field"
	MenuMoveAction   = "Move action"
	MenuRemoveAction = "Remove action"
	MenuRenderForm   = "Render form"
	MenuFillForm     = "Fill form"
	MenuFinish       = "Finish"
)

// Field editor entries.
const (
	EditRename       = "Rename"
	EditLabel        = "Label"
	EditPlaceholder  = "Placeholder"
	EditDefault      = "Default value"
	EditInline       = "Inline"
	EditMultiple     = "Multiple"
	EditAddOption    = "Add option"
	EditOption       = "Edit option"
	EditPreselect    = "Pre-select option"
	EditRemoveOption = "Remove option"
	EditValidations  = "Validations"
	EditDone         = "Done"
)

var mainMenu = []string{
	MenuAddField, MenuAddAction, MenuEditField, MenuMoveField, MenuRemoveField,
	MenuMoveAction, MenuRemoveAction, MenuRenderForm, MenuFillForm, MenuFinish,
}

// Designer is a menu-driven terminal session over a builder: every menu
// entry maps onto a drop or an edit of the selection.
type Designer struct {
	settings
	builder *builder.Builder
	filler  *Filler
}

// NewDesigner returns a designer editing b.
func NewDesigner(b *builder.Builder, options ...Option) *Designer {
	s := newSettings(options)
	return &Designer{
		settings: s,
		builder:  b,
		filler:   &Filler{settings: s},
	}
}

// Run loops over the main menu until Finish is chosen. Recoverable errors
// are reported through the driver and the loop continues; aborts and
// context errors end the session.
func (d *Designer) Run(ctx context.Context) error {
	if d.builder == nil {
		return errors.New("tui: builder is required")
	}
	for {
		idx, err := d.driver.Select(ctx, SelectConfig{
			Message:  "Form builder",
			Options:  mainMenu,
			PageSize: len(mainMenu),
			Help:     d.summary(),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(mainMenu) {
			continue
		}
		choice := mainMenu[idx]
		if choice == MenuFinish {
			return nil
		}

		err = d.dispatch(ctx, choice)
		switch {
		case err == nil:
		case errors.Is(err, ErrAborted), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			d.logger.Debug("designer step failed", zap.String("step", choice), zap.Error(err))
			if !notified(err) {
				_ = d.driver.Info(ctx, d.theme.ErrorPrefix+err.Error())
			}
		}
	}
}

func (d *Designer) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case MenuAddField:
		return d.addField(ctx)
	case MenuAddAction:
		return d.addAction(ctx)
	case MenuEditField:
		return d.editField(ctx)
	case MenuMoveField:
		return d.moveField(ctx)
	case MenuRemoveField:
		idx, err := d.pickField(ctx, "Remove which field?")
		if err != nil {
			return err
		}
		return d.builder.Selection().RemoveField(idx)
	case MenuMoveAction:
		return d.moveAction(ctx)
	case MenuRemoveAction:
		idx, err := d.pickAction(ctx, "Remove which action?")
		if err != nil {
			return err
		}
		return d.builder.Selection().RemoveAction(idx)
	case MenuRenderForm:
		if err := d.builder.RenderForm(); err != nil {
			return err
		}
		return d.driver.Info(ctx, d.theme.InfoPrefix+fmt.Sprintf("Form rendered with %d fields", len(d.builder.Compiled().Fields)))
	case MenuFillForm:
		return d.fillForm(ctx)
	}
	return nil
}

// notified reports errors the builder already delivered to the user.
func notified(err error) bool {
	return errors.Is(err, render.ErrFormInvalid) ||
		errors.Is(err, render.ErrCancelRequested) ||
		errors.Is(err, compiler.ErrDuplicateName)
}

func (d *Designer) summary() string {
	sel := d.builder.Selection()
	return fmt.Sprintf("%d fields, %d actions", sel.FieldCount(), sel.ActionCount())
}

func (d *Designer) addField(ctx context.Context) error {
	templates := d.builder.Catalog().Fields()
	choices := make([]string, len(templates))
	for i, tpl := range templates {
		choices[i] = tpl.Label
	}
	idx, err := d.driver.Select(ctx, SelectConfig{Message: "Field type", Options: choices})
	if err != nil {
		return err
	}
	return d.builder.DropOnFields(builder.DropEvent{
		Source:        builder.ContainerFieldPalette,
		Target:        builder.ContainerFields,
		PreviousIndex: idx,
		CurrentIndex:  d.builder.Selection().FieldCount(),
	})
}

func (d *Designer) addAction(ctx context.Context) error {
	templates := d.builder.Catalog().Actions()
	var choices []string
	var indices []int
	for i, tpl := range templates {
		if d.builder.SelectedActionsPredicate(tpl.Kind) {
			choices = append(choices, tpl.Label)
			indices = append(indices, i)
		}
	}
	if len(choices) == 0 {
		return fmt.Errorf("%w: every action is already placed", selection.ErrActionRejected)
	}
	idx, err := d.driver.Select(ctx, SelectConfig{Message: "Action", Options: choices})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(indices) {
		return fmt.Errorf("tui: action choice %d out of range", idx)
	}
	return d.builder.DropOnActions(builder.DropEvent{
		Source:        builder.ContainerActionPalette,
		Target:        builder.ContainerActions,
		PreviousIndex: indices[idx],
		CurrentIndex:  d.builder.Selection().ActionCount(),
	})
}

func (d *Designer) moveField(ctx context.Context) error {
	from, err := d.pickField(ctx, "Move which field?")
	if err != nil {
		return err
	}
	to, err := d.askIndex(ctx, "New position", d.builder.Selection().FieldCount())
	if err != nil {
		return err
	}
	return d.builder.DropOnFields(builder.DropEvent{
		Source:        builder.ContainerFields,
		Target:        builder.ContainerFields,
		PreviousIndex: from,
		CurrentIndex:  to,
	})
}

func (d *Designer) moveAction(ctx context.Context) error {
	from, err := d.pickAction(ctx, "Move which action?")
	if err != nil {
		return err
	}
	to, err := d.askIndex(ctx, "New position", d.builder.Selection().ActionCount())
	if err != nil {
		return err
	}
	return d.builder.DropOnActions(builder.DropEvent{
		Source:        builder.ContainerActions,
		Target:        builder.ContainerActions,
		PreviousIndex: from,
		CurrentIndex:  to,
	})
}

func (d *Designer) fillForm(ctx context.Context) error {
	if !d.builder.Rendered() {
		return ErrNotRendered
	}
	action, err := d.filler.Fill(ctx, d.builder.Compiled(), d.builder.Tree())
	if err != nil {
		return err
	}
	if action == model.ActionCancel {
		return d.builder.Cancel()
	}
	_, err = d.builder.Submit()
	return err
}

func (d *Designer) editField(ctx context.Context) error {
	idx, err := d.pickField(ctx, "Edit which field?")
	if err != nil {
		return err
	}
	sel := d.builder.Selection()
	if _, err := sel.ToggleEdit(idx); err != nil {
		return err
	}
	defer func() {
		if field, err := sel.Field(idx); err == nil && field.Editing {
			_, _ = sel.ToggleEdit(idx)
		}
	}()

	for {
		field, err := sel.Field(idx)
		if err != nil {
			return err
		}
		entries := editorEntries(field)
		choice, err := d.driver.Select(ctx, SelectConfig{
			Message:  fmt.Sprintf("Edit %s (%s)", field.Name, field.Type),
			Options:  entries,
			PageSize: len(entries),
		})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(entries) || entries[choice] == EditDone {
			return nil
		}
		if err := d.applyEdit(ctx, idx, field, entries[choice]); err != nil {
			if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
				return err
			}
			_ = d.driver.Info(ctx, d.theme.ErrorPrefix+err.Error())
		}
	}
}

func editorEntries(field model.Field) []string {
	entries := []string{EditRename, EditLabel}
	switch field.Type {
	case model.FieldTypeText:
		entries = append(entries, EditPlaceholder, EditDefault)
	case model.FieldTypeRadio:
		entries = append(entries, EditDefault, EditInline)
	case model.FieldTypeCheckbox:
		entries = append(entries, EditInline)
	case model.FieldTypeSelect:
		entries = append(entries, EditPlaceholder, EditMultiple)
	}
	if field.Type != model.FieldTypeText {
		entries = append(entries, EditAddOption, EditOption, EditPreselect, EditRemoveOption)
	}
	if len(field.Validations) > 0 {
		entries = append(entries, EditValidations)
	}
	return append(entries, EditDone)
}

func (d *Designer) applyEdit(ctx context.Context, idx int, field model.Field, entry string) error {
	sel := d.builder.Selection()
	switch entry {
	case EditRename:
		name, err := d.driver.Input(ctx, InputConfig{
			Message:   "Name",
			Default:   field.Name,
			Validator: nonEmpty,
		})
		if err != nil {
			return err
		}
		return sel.RenameField(idx, name)
	case EditLabel:
		text, err := d.driver.Input(ctx, InputConfig{Message: "Label", Default: field.Label})
		if err != nil {
			return err
		}
		return sel.UpdateField(idx, selection.FieldUpdate{Label: model.String(text)})
	case EditPlaceholder:
		text, err := d.driver.Input(ctx, InputConfig{Message: "Placeholder", Default: model.Deref(field.Placeholder)})
		if err != nil {
			return err
		}
		return sel.UpdateField(idx, selection.FieldUpdate{Placeholder: model.String(text)})
	case EditDefault:
		text, err := d.driver.Input(ctx, InputConfig{Message: "Default value", Default: model.Deref(field.DefaultValue)})
		if err != nil {
			return err
		}
		return sel.UpdateField(idx, selection.FieldUpdate{DefaultValue: model.String(text)})
	case EditInline:
		inline, err := d.driver.Confirm(ctx, ConfirmConfig{Message: "Show options inline?", Default: field.Inline != nil && *field.Inline})
		if err != nil {
			return err
		}
		return sel.UpdateField(idx, selection.FieldUpdate{Inline: model.Bool(inline)})
	case EditMultiple:
		multiple, err := d.driver.Confirm(ctx, ConfirmConfig{Message: "Allow multiple values?", Default: field.IsMultiple()})
		if err != nil {
			return err
		}
		return sel.SetMultiple(idx, multiple)
	case EditAddOption:
		option, err := sel.AddOption(idx)
		if err != nil {
			return err
		}
		return d.driver.Info(ctx, d.theme.InfoPrefix+"Added "+option.Label)
	case EditOption:
		oi, err := d.pickOption(ctx, field, "Edit which option?", nil)
		if err != nil {
			return err
		}
		current := field.Options[oi]
		text, err := d.driver.Input(ctx, InputConfig{Message: "Option label", Default: current.Label})
		if err != nil {
			return err
		}
		value, err := d.driver.Input(ctx, InputConfig{Message: "Option value", Default: current.Value, Validator: nonEmpty})
		if err != nil {
			return err
		}
		return sel.UpdateOption(idx, oi, text, value)
	case EditPreselect:
		oi, err := d.pickOption(ctx, field, "Pre-select which option?", func(i int) bool {
			return !field.SingleValued() || !field.Options[i].IsDisabled()
		})
		if err != nil {
			return err
		}
		checked, err := d.driver.Confirm(ctx, ConfirmConfig{Message: "Selected?", Default: !field.Options[oi].IsSelected()})
		if err != nil {
			return err
		}
		return sel.SelectOption(idx, oi, checked)
	case EditRemoveOption:
		oi, err := d.pickOption(ctx, field, "Remove which option?", func(i int) bool {
			return sel.CanRemoveOption(idx, i)
		})
		if err != nil {
			return err
		}
		return sel.RemoveOption(idx, oi)
	case EditValidations:
		return d.editValidations(ctx, idx, field)
	}
	return nil
}

func (d *Designer) editValidations(ctx context.Context, idx int, field model.Field) error {
	choices := make([]string, len(field.Validations))
	var defaults []int
	for i, rule := range field.Validations {
		choices[i] = ruleLabel(rule)
		if field.RuleEnabled(rule) {
			defaults = append(defaults, i)
		}
	}
	enabled, err := d.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Enabled validations",
		Options:  choices,
		Defaults: defaults,
	})
	if err != nil {
		return err
	}
	on := make(map[int]bool, len(enabled))
	for _, i := range enabled {
		on[i] = true
	}
	for i, rule := range field.Validations {
		if err := d.builder.Selection().SetRuleEnabled(idx, rule.Kind, on[i]); err != nil {
			return err
		}
	}
	return nil
}

func ruleLabel(rule model.ValidationRule) string {
	if rule.Bound != nil {
		return fmt.Sprintf("%s %d", rule.Kind, *rule.Bound)
	}
	return string(rule.Kind)
}

func (d *Designer) pickField(ctx context.Context, message string) (int, error) {
	fields := d.builder.Selection().Fields()
	if len(fields) == 0 {
		return -1, fmt.Errorf("%w: no fields placed", ErrNoChoices)
	}
	choices := make([]string, len(fields))
	for i, field := range fields {
		choices[i] = fmt.Sprintf("%d. %s (%s)", i+1, field.Name, field.Type)
	}
	return d.driver.Select(ctx, SelectConfig{Message: message, Options: choices})
}

func (d *Designer) pickAction(ctx context.Context, message string) (int, error) {
	actions := d.builder.Selection().Actions()
	if len(actions) == 0 {
		return -1, fmt.Errorf("%w: no actions placed", ErrNoChoices)
	}
	choices := make([]string, len(actions))
	for i, action := range actions {
		choices[i] = fmt.Sprintf("%d. %s", i+1, action.Label)
	}
	return d.driver.Select(ctx, SelectConfig{Message: message, Options: choices})
}

func (d *Designer) pickOption(ctx context.Context, field model.Field, message string, allow func(int) bool) (int, error) {
	var choices []string
	var indices []int
	for i, option := range field.Options {
		if allow != nil && !allow(i) {
			continue
		}
		choices = append(choices, fmt.Sprintf("%s (%s)", option.Label, option.Value))
		indices = append(indices, i)
	}
	if len(choices) == 0 {
		return -1, fmt.Errorf("%w: no options on %s", ErrNoChoices, field.Name)
	}
	idx, err := d.driver.Select(ctx, SelectConfig{Message: message, Options: choices})
	if err != nil {
		return -1, err
	}
	if idx < 0 || idx >= len(indices) {
		return -1, fmt.Errorf("tui: option choice %d out of range", idx)
	}
	return indices[idx], nil
}

func (d *Designer) askIndex(ctx context.Context, message string, count int) (int, error) {
	answer, err := d.driver.Input(ctx, InputConfig{
		Message:   fmt.Sprintf("%s (1-%d)", message, count),
		Validator: func(value string) error {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < 1 || n > count {
				return fmt.Errorf("enter a number between 1 and %d", count)
			}
			return nil
		},
	})
	if err != nil {
		return -1, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return -1, fmt.Errorf("tui: position %q: %w", answer, err)
	}
	return n - 1, nil
}

func nonEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("value is required")
	}
	return nil
}
