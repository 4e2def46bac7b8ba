// Package wizard implements the form-state engine behind the multi-step form.
//
// A Form is the compiled, read-only view of a schema.Schema; every field's
// variant is resolved once when the form is compiled. State is a plain,
// serialisable value holding the current step, the shared value map used by
// single-entry sections, the entry lists of multi-entry sections, completion
// flags and navigation layout. Transitions on Form take a State and return the
// next State without touching the input, so they can be tested without any
// rendering surface. Controller owns one State for an interactive session.
//
// Reads are tolerant: unknown sections, fields or entries degrade to empty
// values instead of errors. Emptiness is explicit (see Value.IsEmpty), so a
// numeric "0" or an unchecked checkbox is a real answer, not a missing one.
package wizard
