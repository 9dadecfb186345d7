package render

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

// Handler implements the submit and cancel actions of a compiled form.
type Handler struct {
	tree   *form.Tree
	logger *zap.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger used for submit diagnostics.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler binds a handler to the control tree of a compiled form.
func NewHandler(tree *form.Tree, options ...HandlerOption) *Handler {
	h := &Handler{tree: tree, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Tree returns the bound control tree.
func (h *Handler) Tree() *form.Tree { return h.tree }

// OnSubmit returns the submission of a valid form, or ErrFormInvalid.
func (h *Handler) OnSubmit() (Submission, error) {
	if h == nil || h.tree == nil {
		return Submission{}, ErrNoForm
	}
	if !h.tree.Valid() {
		h.logger.Debug("submit rejected", zap.Int("invalid", len(h.tree.Errors())))
		return Submission{}, ErrFormInvalid
	}
	submission := NewSubmission(h.tree)
	h.logger.Debug("form submitted", zap.Strings("fields", submission.Names()))
	return submission, nil
}

// OnCancel always returns ErrCancelRequested.
func (h *Handler) OnCancel() error {
	if h != nil {
		h.logger.Debug("cancel requested")
	}
	return ErrCancelRequested
}
