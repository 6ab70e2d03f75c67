package host

import "strings"

// EventKind identifies one kind of GUI event.
type EventKind string

// The external GUI event family. Hosts fire these; loom's dispatcher
// subscribes to all of them.
const (
	KindClick            EventKind = "click"
	KindTextChanged      EventKind = "text-changed"
	KindCheckedChanged   EventKind = "checked-changed"
	KindValueChanged     EventKind = "value-changed"
	KindSelectionChanged EventKind = "selection-changed"
	KindConfirmed        EventKind = "confirmed"
)

// internalPrefix namespaces event kinds that belong to a host's or the
// library's own bookkeeping. The dispatcher never subscribes to these, so a
// host can use them freely without loom routing them to user handlers.
const internalPrefix = "loom/"

// Internal reports whether the kind belongs to the internal namespace.
func (k EventKind) Internal() bool {
	return strings.HasPrefix(string(k), internalPrefix)
}

// InternalKind builds an event kind in the internal namespace.
func InternalKind(name string) EventKind {
	return EventKind(internalPrefix + name)
}

// Kinds enumerates the external GUI event family.
func Kinds() []EventKind {
	return []EventKind{
		KindClick,
		KindTextChanged,
		KindCheckedChanged,
		KindValueChanged,
		KindSelectionChanged,
		KindConfirmed,
	}
}
