// ir/events.go
package ir

import "strings"

// EventKind enumerates the event channels a component can subscribe to.
type EventKind uint8

const (
	EventClick EventKind = iota
	EventHover
	EventFocus
	EventBlur
	EventTextChange
	EventKey
	EventScroll
	EventTimer
	EventCustom
)

var eventKindNames = [...]string{
	EventClick:      "click",
	EventHover:      "hover",
	EventFocus:      "focus",
	EventBlur:       "blur",
	EventTextChange: "text_change",
	EventKey:        "key",
	EventScroll:     "scroll",
	EventTimer:      "timer",
	EventCustom:     "custom",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "custom"
}

// EventKindFromString parses a wire event kind; unknown kinds map to
// EventCustom.
func EventKindFromString(s string) EventKind {
	for k, name := range eventKindNames {
		if name == strings.ToLower(s) {
			return EventKind(k)
		}
	}
	return EventCustom
}

// HandlerSource is an embedded handler snippet with captured-variable
// metadata, preserved for round-trip codegen.
type HandlerSource struct {
	Language     string
	Code         string
	File         string
	Line         int
	UsesClosures bool
	ClosureVars  []string
}

// Event binds an event kind to a handler reference. Exactly one of LogicID,
// BytecodeFunctionID, or HandlerSource identifies the handler; HandlerData is
// an optional opaque argument string.
type Event struct {
	Kind               EventKind
	LogicID            string
	HandlerData        string
	BytecodeFunctionID uint32
	HandlerSource      *HandlerSource
}

// PropertyBinding records a reactive binding on a named property. A binding
// must survive serialization even when ResolvedValue equals the property's
// type default.
type PropertyBinding struct {
	PropertyName  string
	SourceExpr    string
	ResolvedValue string
	BindingType   string
}

// HasPropertyBinding reports whether property name carries an active binding.
func (c *Component) HasPropertyBinding(name string) bool {
	if c == nil {
		return false
	}
	for i := range c.PropertyBindings {
		if c.PropertyBindings[i].PropertyName == name {
			return true
		}
	}
	return false
}
