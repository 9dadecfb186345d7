package model

// Decorator enriches a compiled field list with presentation metadata after
// the canonical snapshot has been taken.
type Decorator interface {
	Decorate(fields []Field) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func([]Field) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(fields []Field) error {
	return fn(fields)
}
