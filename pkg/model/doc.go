// Package model defines the form-definition types shared by the catalog, the
// selection and the compiler. Templates live in a catalog and are immutable;
// every instance handed to a selection is produced with Clone so edits never
// leak back into the palette. Option flags and optional template attributes
// are pointers because "absent" and "false" are observably different (a
// checkbox option never carries a disabled key, a select option always does).
// Validation toggles are split into the template default (ValidationRule.Enabled)
// and a per-instance override map (Field.RuleOverrides).
package model
