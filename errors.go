package forge

import "go.trai.ch/zerr"

var (
	// ErrUnknownVariable is raised when a description reads or mutates a
	// variable that was never set.
	ErrUnknownVariable = zerr.New("unknown build variable")

	// ErrVariableType is raised when a list operation is applied to a
	// variable that does not hold a list, or vice versa.
	ErrVariableType = zerr.New("build variable has the wrong type")

	// ErrDuplicateRule is raised when a rule name is registered twice.
	ErrDuplicateRule = zerr.New("rule already registered")

	// ErrUnknownRule is raised when a build edge references a rule that was
	// never registered.
	ErrUnknownRule = zerr.New("edge references unregistered rule")

	// ErrInvalidRule is raised when a rule is registered without a command
	// or without a description.
	ErrInvalidRule = zerr.New("rule requires a command and a description")

	// ErrEmptyOutputs is raised when a build edge declares no output paths.
	ErrEmptyOutputs = zerr.New("edge has no outputs")

	// ErrOutputConflict is raised in strict mode when two edges declare an
	// overlapping output path.
	ErrOutputConflict = zerr.New("output produced by more than one edge")

	// ErrBadGlobPattern is raised when a glob pattern cannot be parsed.
	ErrBadGlobPattern = zerr.New("malformed glob pattern")
)
