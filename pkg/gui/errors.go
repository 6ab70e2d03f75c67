package gui

import "errors"

// Builder and registry errors. All of these indicate a configuration mistake
// in the calling code and are surfaced immediately; none are retried or
// suppressed internally.
var (
	// ErrConflictingChildren means a leaf definition supplied children both
	// positionally (via El) and through the Children field.
	ErrConflictingChildren = errors.New("children given both positionally and via Children field")

	// ErrReservedKey means the caller's Args.Tags already uses the tag key
	// reserved for loom's handler bookkeeping.
	ErrReservedKey = errors.New("tags use the reserved loom handler key")

	// ErrUnresolvedDragTarget means a DragTarget name was not present in the
	// reference table at the point the referencing element was built.
	// Forward references are not supported.
	ErrUnresolvedDragTarget = errors.New("drag target not found in reference table")

	// ErrInvalidDefinition means a definition is none of: leaf, tab pair, or
	// sequence thereof.
	ErrInvalidDefinition = errors.New("invalid definition")

	// ErrUnknownHandler means a definition bound a handler that was never
	// registered.
	ErrUnknownHandler = errors.New("handler not registered")

	// ErrDuplicateRef is returned in strict mode when two elements in one
	// build share a name.
	ErrDuplicateRef = errors.New("duplicate element name in reference table")

	// ErrDuplicateName means a handler name was registered twice.
	ErrDuplicateName = errors.New("handler name already registered")

	// ErrDuplicateFunc means one handler function was registered under two
	// different names.
	ErrDuplicateFunc = errors.New("handler function already registered under another name")
)
