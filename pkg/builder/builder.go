package builder

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/catalog"
	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/selection"
)

// User facing messages delivered with notifications.
const (
	MessageDuplicateName   = "One or more fields has the same name, please give a unique name for each field."
	MessageFormInvalid     = "Form is not valid"
	MessageCancelRequested = "Cancel button is clicked"
	MessageSubmitted       = "Form value is"
)

// Builder is the drop surface: it owns the selection, compiles it on demand
// and routes submit and cancel through the render handler.
type Builder struct {
	catalog   *catalog.Catalog
	selection *selection.Selection
	compiler  *compiler.Compiler
	notifier  render.Notifier
	logger    *zap.Logger
	format    render.Format

	compiled compiler.CompiledForm
	handler  *render.Handler
	rendered bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithCatalog sets the palette drops are resolved against.
func WithCatalog(c *catalog.Catalog) Option {
	return func(b *Builder) {
		if c != nil {
			b.catalog = c
		}
	}
}

// WithSelection seeds the builder with an existing selection.
func WithSelection(sel *selection.Selection) Option {
	return func(b *Builder) {
		if sel != nil {
			b.selection = sel
		}
	}
}

// WithCompiler overrides the compiler, for example to add decorators.
func WithCompiler(c *compiler.Compiler) Option {
	return func(b *Builder) {
		if c != nil {
			b.compiler = c
		}
	}
}

// WithNotifier sets the receiver of user facing notifications.
func WithNotifier(n render.Notifier) Option {
	return func(b *Builder) {
		if n != nil {
			b.notifier = n
		}
	}
}

// WithLogger sets the logger shared with the handlers the builder creates.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithSubmitFormat selects the encoding of the payload attached to submit
// notifications. JSON is the default.
func WithSubmitFormat(format render.Format) Option {
	return func(b *Builder) {
		if format != "" {
			b.format = format
		}
	}
}

// New constructs a Builder over the default catalog and an empty selection.
func New(options ...Option) *Builder {
	b := &Builder{
		notifier: render.NopNotifier,
		logger:   zap.NewNop(),
		format:   render.FormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.catalog == nil {
		b.catalog = catalog.Default()
	}
	if b.selection == nil {
		b.selection = selection.New()
	}
	if b.compiler == nil {
		b.compiler = compiler.New(compiler.WithLogger(b.logger))
	}
	return b
}

// Catalog returns the palette.
func (b *Builder) Catalog() *catalog.Catalog { return b.catalog }

// Selection returns the live selection. Presentation layers call its
// mutation methods directly for edits that are not drops.
func (b *Builder) Selection() *selection.Selection { return b.selection }

// Rendered reports whether a compile has succeeded at least once.
func (b *Builder) Rendered() bool { return b.rendered }

// Compiled returns the last successfully compiled form.
func (b *Builder) Compiled() compiler.CompiledForm { return b.compiled }

// Tree returns the control tree of the last successful compile, or nil.
func (b *Builder) Tree() *form.Tree {
	if b.handler == nil {
		return nil
	}
	return b.handler.Tree()
}

// RenderForm compiles the selection. On failure the previous compiled form
// and control tree are kept and the user is notified.
func (b *Builder) RenderForm() error {
	compiled, tree, err := b.compiler.Compile(b.selection)
	if err != nil {
		if errors.Is(err, compiler.ErrDuplicateName) {
			b.notifier.Notify(render.Notification{
				Kind:    render.NotifyDuplicateName,
				Message: MessageDuplicateName,
			})
		}
		b.logger.Info("render form failed", zap.Error(err))
		return err
	}

	b.compiled = compiled
	b.handler = render.NewHandler(tree, render.WithLogger(b.logger))
	b.rendered = true
	b.logger.Info("form rendered",
		zap.Int("fields", len(compiled.Fields)),
		zap.Int("actions", len(compiled.Actions)),
	)
	return nil
}

// Submit validates the rendered form and, when valid, notifies the encoded
// submission.
func (b *Builder) Submit() (render.Submission, error) {
	if b.handler == nil {
		return render.Submission{}, render.ErrNoForm
	}
	submission, err := b.handler.OnSubmit()
	if errors.Is(err, render.ErrFormInvalid) {
		b.notifier.Notify(render.Notification{
			Kind:    render.NotifyFormInvalid,
			Message: MessageFormInvalid,
			Errors:  render.MapFailures(b.handler.Tree()),
		})
		return render.Submission{}, err
	}
	if err != nil {
		return render.Submission{}, err
	}

	payload, _, err := submission.Encode(b.format)
	if err != nil {
		return render.Submission{}, fmt.Errorf("builder: %w", err)
	}
	b.notifier.Notify(render.Notification{
		Kind:    render.NotifySubmitted,
		Message: MessageSubmitted,
		Payload: payload,
	})
	return submission, nil
}

// Cancel notifies the cancel request and returns render.ErrCancelRequested.
func (b *Builder) Cancel() error {
	var err error
	if b.handler != nil {
		err = b.handler.OnCancel()
	} else {
		err = render.ErrCancelRequested
	}
	b.notifier.Notify(render.Notification{
		Kind:    render.NotifyCancelRequested,
		Message: MessageCancelRequested,
	})
	return err
}

// HasAction reports whether the rendered form shows a button of kind.
func (b *Builder) HasAction(kind model.ActionKind) bool {
	return b.rendered && b.compiled.HasAction(kind)
}
