// Package history provides undo/redo over reversible commands.
package history

// Command is one recorded mutation. Concrete commands carry their inputs plus
// whatever state their undo needs, captured when they are applied.
type Command interface {
	// Description is the human readable form, e.g. `insert 1:1 "abc"`.
	Description() string
}

// Applier runs commands against a model. Apply must validate every
// precondition before it mutates anything; it is called both for the first
// execution and for redo.
type Applier interface {
	Apply(cmd Command) error
	Revert(cmd Command) error
}
