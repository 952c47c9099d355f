package bridge

import (
	"github.com/bytedance/sonic"
)

// Script handler channels registered in the embedded surface.
const (
	ResizeHandlerName = "tagnologyResize"
	EventHandlerName  = "tagnologyEvent"
)

// InjectionFlag marks a document whose bridge script is already installed.
const InjectionFlag = "__tagnologyNativeBridgeInjected"

// eventTypeKey is the discriminator field every valid message carries.
const eventTypeKey = "eventType"

// Recognized event types.
const (
	EventResize   = "resize"
	EventClick    = "click"
	EventToggleLB = "toggleLB"
)

// Event is a validated inbound bridge message. JSON holds the canonical
// encoding of the full message for downstream relays.
type Event struct {
	Type    string
	Payload Value
	JSON    string
}

// Normalize validates a raw inbound message and produces a typed event.
// A message is valid iff it serializes to JSON, decodes to a string-keyed
// mapping, and carries a string discriminator. Everything else returns
// false and the message is dropped.
func Normalize(raw interface{}) (Event, bool) {
	data, err := sonic.Marshal(raw)
	if err != nil {
		return Event{}, false
	}
	payload, err := FromJSON(data)
	if err != nil || payload.Kind != KindObject {
		return Event{}, false
	}
	eventType, ok := payload.Field(eventTypeKey).String()
	if !ok || eventType == "" {
		return Event{}, false
	}
	return Event{Type: eventType, Payload: payload, JSON: string(data)}, true
}
