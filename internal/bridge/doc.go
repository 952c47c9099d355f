/*
Package bridge normalizes untyped messages from embedded widget surfaces
into typed events and applies them to per-widget controller state.

Inbound messages arrive as arbitrary JSON-shaped values. Normalize
validates the shape, extracts the event type discriminator, and keeps the
canonical JSON encoding for downstream relays. The Controller consumes
the typed events: resize messages run through the height-resolution
policy, click messages raise lightbox-open payloads, and toggleLB
messages open or close the lightbox.

Unrecognized or malformed messages are dropped silently. The bridge
never surfaces an error to the embedded surface.
*/
package bridge
