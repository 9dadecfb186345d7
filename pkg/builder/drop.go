package builder

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrInvalidDrop is returned for drops between containers that do not
// exchange items.
var ErrInvalidDrop = errors.New("builder: invalid drop")

// Container identifies a list on the drag surface.
type Container string

const (
	ContainerFieldPalette  Container = "field-palette"
	ContainerActionPalette Container = "action-palette"
	ContainerFields        Container = "fields"
	ContainerActions       Container = "actions"
)

// DropEvent is delivered by the drag surface when an item is released.
// PreviousIndex addresses the source container, CurrentIndex the target.
type DropEvent struct {
	Source        Container `json:"source"`
	Target        Container `json:"target"`
	PreviousIndex int       `json:"previousIndex"`
	CurrentIndex  int       `json:"currentIndex"`
}

// DropOnFields handles a release over the selected fields list: a drop from
// the same list reorders, a drop from the palette inserts a named clone of
// the template.
func (b *Builder) DropOnFields(event DropEvent) error {
	if event.Target != ContainerFields {
		return fmt.Errorf("%w: %s onto fields", ErrInvalidDrop, event.Target)
	}
	switch event.Source {
	case ContainerFields:
		b.selection.ReorderField(event.PreviousIndex, event.CurrentIndex)
		return nil
	case ContainerFieldPalette:
		tpl, err := b.catalog.Field(event.PreviousIndex)
		if err != nil {
			return err
		}
		field := b.selection.InsertField(event.CurrentIndex, tpl)
		b.logger.Debug("field dropped", zap.String("name", field.Name), zap.Int("index", event.CurrentIndex))
		return nil
	default:
		return fmt.Errorf("%w: %s onto fields", ErrInvalidDrop, event.Source)
	}
}

// DropOnActions handles a release over the selected actions list. Palette
// drops are subject to SelectedActionsPredicate.
func (b *Builder) DropOnActions(event DropEvent) error {
	if event.Target != ContainerActions {
		return fmt.Errorf("%w: %s onto actions", ErrInvalidDrop, event.Target)
	}
	switch event.Source {
	case ContainerActions:
		b.selection.ReorderAction(event.PreviousIndex, event.CurrentIndex)
		return nil
	case ContainerActionPalette:
		tpl, err := b.catalog.Action(event.PreviousIndex)
		if err != nil {
			return err
		}
		action, err := b.selection.InsertAction(event.CurrentIndex, tpl)
		if err != nil {
			return err
		}
		b.logger.Debug("action dropped", zap.String("kind", string(action.Kind)))
		return nil
	default:
		return fmt.Errorf("%w: %s onto actions", ErrInvalidDrop, event.Source)
	}
}

// NoReturnPredicate is consulted for the palettes: nothing is ever dropped
// back into them.
func (b *Builder) NoReturnPredicate() bool { return false }

// SelectedActionsPredicate reports whether an action of kind may enter the
// selected actions list.
func (b *Builder) SelectedActionsPredicate(kind model.ActionKind) bool {
	return b.selection.CanInsertAction(kind)
}
