package compiler

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrDuplicateName is returned when two or more fields share a name. It
// carries no detail beyond the message shown to the user.
var ErrDuplicateName = errors.New("compiler: one or more fields have the same name, please give a unique name to each field")

// Source is the read side of a selection.
type Source interface {
	Fields() []model.Field
	Actions() []model.Action
}

// CompiledForm is the immutable snapshot a successful compile produces.
// Actions are ordered by kind.
type CompiledForm struct {
	Fields  []model.Field  `json:"fields"`
	Actions []model.Action `json:"actions"`
}

// Field returns a clone of the compiled field with the given name.
func (f CompiledForm) Field(name string) (model.Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Clone(), true
		}
	}
	return model.Field{}, false
}

// HasAction reports whether the compiled form carries a button of kind.
func (f CompiledForm) HasAction(kind model.ActionKind) bool {
	for _, action := range f.Actions {
		if action.Kind == kind {
			return true
		}
	}
	return false
}

// Compiler turns a selection snapshot into a CompiledForm and its control
// tree.
type Compiler struct {
	decorators []model.Decorator
	logger     *zap.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithDecorators registers decorators applied to the compiled field snapshot
// in registration order.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(c *Compiler) {
		for _, decorator := range decorators {
			if decorator != nil {
				c.decorators = append(c.decorators, decorator)
			}
		}
	}
}

// WithLogger sets the logger used for compile diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a Compiler.
func New(options ...Option) *Compiler {
	c := &Compiler{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Compile checks name uniqueness, snapshots the selection, orders the actions
// and builds one validated control per field. When the names repeat nothing
// else is attempted.
func (c *Compiler) Compile(src Source) (CompiledForm, *form.Tree, error) {
	if src == nil {
		return CompiledForm{}, nil, errors.New("compiler: source is required")
	}

	fields := src.Fields()
	if hasDuplicateNames(fields) {
		c.logger.Debug("compile rejected: duplicate field names", zap.Int("fields", len(fields)))
		return CompiledForm{}, nil, ErrDuplicateName
	}

	compiled := CompiledForm{
		Fields:  make([]model.Field, len(fields)),
		Actions: src.Actions(),
	}
	for i, field := range fields {
		compiled.Fields[i] = field.Clone()
	}
	sortActions(compiled.Actions)

	for _, decorator := range c.decorators {
		if err := decorator.Decorate(compiled.Fields); err != nil {
			return CompiledForm{}, nil, fmt.Errorf("compiler: decorate: %w", err)
		}
	}

	tree := form.NewTree()
	for _, field := range compiled.Fields {
		if err := tree.Add(buildControl(field)); err != nil {
			return CompiledForm{}, nil, fmt.Errorf("compiler: %w", err)
		}
	}

	c.logger.Debug("form compiled",
		zap.Int("fields", len(compiled.Fields)),
		zap.Int("actions", len(compiled.Actions)),
	)
	return compiled, tree, nil
}

func hasDuplicateNames(fields []model.Field) bool {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if _, exists := seen[field.Name]; exists {
			return true
		}
		seen[field.Name] = struct{}{}
	}
	return false
}

// sortActions orders buttons by kind so placement does not depend on drop
// order: cancel sorts before submit.
func sortActions(actions []model.Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Kind < actions[j].Kind
	})
}

func buildControl(field model.Field) *form.Control {
	validators := Validators(field)

	switch field.Type {
	case model.FieldTypeSelect:
		var seed []form.Value
		for _, option := range field.Options {
			if option.IsSelected() {
				seed = append(seed, form.Of(option.Value))
			}
		}
		if len(seed) == 0 {
			seed = []form.Value{form.Null()}
		}
		return form.NewSelect(field.Name, seed, validators...)
	case model.FieldTypeCheckbox:
		var seed []form.Value
		for _, option := range field.Options {
			if option.IsSelected() {
				seed = append(seed, form.Of(option.Value))
			}
		}
		return form.NewArray(field.Name, seed, validators...)
	default:
		initial := form.Null()
		if field.DefaultValue != nil {
			initial = form.Of(*field.DefaultValue)
		}
		return form.NewScalar(field.Name, initial, validators...)
	}
}

// Validators assembles the validator set for the field's enabled rules.
// Required on a select rejects the null sentinel; on other types it rejects
// empty values.
func Validators(field model.Field) []form.Validator {
	var out []form.Validator
	for _, rule := range field.EnabledRules() {
		switch rule.Kind {
		case model.ValidationRequired:
			if field.Type == model.FieldTypeSelect {
				out = append(out, form.SelectRequired(rule.Message))
			} else {
				out = append(out, form.Required(rule.Message))
			}
		case model.ValidationMinLength:
			if rule.Bound != nil {
				out = append(out, form.MinLength(*rule.Bound, rule.Message))
			}
		case model.ValidationMaxLength:
			if rule.Bound != nil {
				out = append(out, form.MaxLength(*rule.Bound, rule.Message))
			}
		}
	}
	return out
}
