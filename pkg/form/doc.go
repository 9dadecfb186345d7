// Package form holds the executable side of a compiled form: one Control per
// field, the validators attached to it, and the Tree that aggregates validity
// and serialises values. Select controls start with a null entry meaning
// "nothing chosen yet"; any edit drops it.
package form
