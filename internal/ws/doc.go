// Package ws provides the WebSocket transport for the widget bridge.
//
// Each connection carries the bridge traffic for one rendered widget
// surface: inbound script-channel messages are normalized into typed
// events, and layout, overlay geometry, and lightbox updates flow back.
//
// Message Types (Client → Server), by handler name:
//   - tagnologyResize: resize payloads (discriminator defaults to resize)
//   - tagnologyEvent: click and toggleLB payloads
//   - lightboxLoaded: lightbox document finished loading
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - connected: session id, display URL, and initial height
//   - layout: container height and fullscreen-fixed flag
//   - overlayRect: hit-test rectangle for floating widgets
//   - lightbox: open/close the lightbox surface
//   - lightboxRelay: queued click payload for a loaded lightbox
//   - pong: keep-alive reply
//
// Example Usage:
//
//	handler := ws.NewHandler(logger, metrics)
//	router.GET("/bridge", handler.HandleConnection)
package ws
