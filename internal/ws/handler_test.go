package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialBridge(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/bridge", NewHandler(nil, nil).HandleConnection)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/bridge?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame map[string]interface{}
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func sendFrame(t *testing.T, conn *websocket.Conn, handler string, message map[string]interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"handler": handler,
		"message": message,
	}))
}

func TestBridgeConnectAndResize(t *testing.T) {
	conn := dialBridge(t, "folderId=f1&page=https%3A%2F%2Fshop.example.com%2FSalePage%2F12345")

	connected := readFrame(t, conn)
	assert.Equal(t, "connected", connected["type"])
	assert.NotEmpty(t, connected["sessionId"])
	assert.Contains(t, connected["displayUrl"], "folderId=f1")
	assert.Equal(t, 400.0, connected["height"])
	assert.Equal(t, "__tagnologyNativeBridgeInjected", connected["injectionFlag"])

	// Resize-channel messages may omit the discriminator.
	sendFrame(t, conn, "tagnologyResize", map[string]interface{}{"height": 320})

	layout := readFrame(t, conn)
	assert.Equal(t, "layout", layout["type"])
	assert.Equal(t, 320.0, layout["height"])
	assert.Equal(t, false, layout["fullscreenFixed"])
}

func TestBridgeFixedPositionGoesFullscreen(t *testing.T) {
	conn := dialBridge(t, "folderId=f1&viewportHeight=900")
	readFrame(t, conn)

	sendFrame(t, conn, "tagnologyResize", map[string]interface{}{
		"property": map[string]interface{}{"position": "fixed"},
	})

	layout := readFrame(t, conn)
	assert.Equal(t, "layout", layout["type"])
	assert.Equal(t, 900.0, layout["height"])
	assert.Equal(t, true, layout["fullscreenFixed"])
}

func TestBridgeFloatingMediaOverlayRect(t *testing.T) {
	conn := dialBridge(t, "folderId=f2&layout=FloatingMedia&floatingMediaPosition=BottomRight&viewportWidth=400&viewportHeight=800")

	connected := readFrame(t, conn)
	assert.Equal(t, 224.0, connected["height"])

	sendFrame(t, conn, "tagnologyResize", map[string]interface{}{
		"property": map[string]interface{}{
			"width":  126,
			"height": 224,
			"right":  20,
			"bottom": 20,
		},
	})

	frame := readFrame(t, conn)
	require.Equal(t, "overlayRect", frame["type"])
	rect := frame["rect"].(map[string]interface{})
	assert.Equal(t, 278.0, rect["x"])
	assert.Equal(t, 78.0, rect["width"])
	assert.Equal(t, 538.0, rect["y"])
	assert.Equal(t, 260.0, rect["height"])

	// A jitter-sized change is suppressed, so the next frame must come
	// from a later, larger move.
	sendFrame(t, conn, "tagnologyResize", map[string]interface{}{
		"property": map[string]interface{}{
			"width": 126, "height": 224, "right": 20.5, "bottom": 20,
		},
	})
	sendFrame(t, conn, "tagnologyResize", map[string]interface{}{
		"property": map[string]interface{}{
			"width": 126, "height": 224, "right": 40, "bottom": 20,
		},
	})

	frame = readFrame(t, conn)
	require.Equal(t, "overlayRect", frame["type"])
	rect = frame["rect"].(map[string]interface{})
	assert.Equal(t, 258.0, rect["x"])
}

func TestBridgeClickAndLightboxRelay(t *testing.T) {
	conn := dialBridge(t, "folderId=f1&page=https%3A%2F%2Fshop.example.com%2FSalePage%2F12345")
	readFrame(t, conn)

	sendFrame(t, conn, "tagnologyEvent", map[string]interface{}{
		"eventType": "click",
		"data":      map[string]interface{}{"postId": "p-9"},
	})

	frame := readFrame(t, conn)
	require.Equal(t, "lightbox", frame["type"])
	assert.Equal(t, "open", frame["action"])
	assert.Contains(t, frame["url"], "/lightBox?")
	assert.Equal(t, "https://embed.tagnology.co", frame["origin"])
	assert.Contains(t, frame["payload"], `"p-9"`)

	sendFrame(t, conn, "lightboxLoaded", nil)
	relay := readFrame(t, conn)
	require.Equal(t, "lightboxRelay", relay["type"])
	assert.Equal(t, frame["payload"], relay["payload"])

	// The queued payload is delivered once; a second load signal is
	// silent, so close the lightbox and expect that frame next.
	sendFrame(t, conn, "lightboxLoaded", nil)
	sendFrame(t, conn, "tagnologyEvent", map[string]interface{}{
		"eventType": "toggleLB",
		"open":      false,
	})
	frame = readFrame(t, conn)
	assert.Equal(t, "lightbox", frame["type"])
	assert.Equal(t, "close", frame["action"])
}

func TestBridgeDropsMalformedAndUnknown(t *testing.T) {
	conn := dialBridge(t, "folderId=f1")
	readFrame(t, conn)

	// Unknown handler and invalid toggle are both dropped silently.
	sendFrame(t, conn, "telemetry", map[string]interface{}{"x": 1})
	sendFrame(t, conn, "tagnologyEvent", map[string]interface{}{
		"eventType": "toggleLB",
		"open":      "maybe",
	})

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"handler": "ping"}))
	frame := readFrame(t, conn)
	assert.Equal(t, "pong", frame["type"])
}
