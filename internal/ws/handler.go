package ws

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tagnology/embed-go/internal/bridge"
	"github.com/tagnology/embed-go/internal/embedurl"
	"github.com/tagnology/embed-go/internal/infrastructure/logging"
	"github.com/tagnology/embed-go/internal/infrastructure/monitoring"
	"github.com/tagnology/embed-go/internal/overlay"
	"github.com/tagnology/embed-go/internal/shared/id"
	"github.com/tagnology/embed-go/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // embed surfaces connect cross-origin
	},
}

// Defaults for the viewport when the client does not declare one.
const (
	defaultViewportWidth  = 400.0
	defaultViewportHeight = 800.0
)

// inboundFrame is one message from the embedded surface. Handler names
// mirror the script channels the bridge injects into the page.
type inboundFrame struct {
	Handler string                 `json:"handler"`
	Message map[string]interface{} `json:"message"`
}

// Handler manages WebSocket bridge connections
type Handler struct {
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(logger *logging.Logger, metrics *monitoring.Metrics) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{logger: logger, metrics: metrics}
}

// session holds the bridge state for one connection.
type session struct {
	id         string
	pageURL    string
	controller *bridge.Controller
	tracker    *overlay.Tracker
	bounds     types.Rect
}

// HandleConnection upgrades the request and runs the bridge loop for
// one widget surface.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	sess := h.newSession(c)
	log := h.logger.With(
		zap.String("session_id", sess.id),
		zap.String("folder_id", sess.controller.Folder().FolderID))

	h.send(conn, gin.H{
		"type":          "connected",
		"sessionId":     sess.id,
		"displayUrl":    embedurl.Display(sess.controller.Folder().FolderID, sess.pageURL, sess.controller.Folder().IsFloatingMedia()),
		"height":        sess.controller.DisplayHeight(),
		"injectionFlag": bridge.InjectionFlag,
	})

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			log.Debug("websocket closed", zap.Error(err))
			break
		}

		switch frame.Handler {
		case bridge.ResizeHandlerName:
			h.handleBridgeMessage(conn, sess, frame.Message, true, log)
		case bridge.EventHandlerName:
			h.handleBridgeMessage(conn, sess, frame.Message, false, log)
		case "lightboxLoaded":
			h.handleLightboxLoaded(conn, sess)
		case "ping":
			h.send(conn, gin.H{"type": "pong"})
		default:
			h.countDropped()
			log.Debug("dropping frame with unknown handler", zap.String("handler", frame.Handler))
		}
	}
}

// newSession builds the per-connection state from query parameters.
func (h *Handler) newSession(c *gin.Context) *session {
	folder := types.WidgetFolder{
		FolderID:              c.Query("folderId"),
		Layout:                c.Query("layout"),
		FloatingMediaPosition: c.Query("floatingMediaPosition"),
	}

	bounds := types.Rect{
		Width:  queryFloat(c, "viewportWidth", defaultViewportWidth),
		Height: queryFloat(c, "viewportHeight", defaultViewportHeight),
	}

	return &session{
		id:         string(id.NewSessionID()),
		pageURL:    c.Query("page"),
		controller: bridge.NewController(folder, bounds.Height, h.logger),
		tracker:    overlay.NewTracker(),
		bounds:     bounds,
	}
}

// handleBridgeMessage normalizes one payload and pushes the resulting
// state updates. Messages on the resize channel may omit the
// discriminator; it defaults to resize there.
func (h *Handler) handleBridgeMessage(conn *websocket.Conn, sess *session, raw map[string]interface{}, resizeChannel bool, log *zap.Logger) {
	if resizeChannel && raw != nil {
		if _, ok := raw["eventType"]; !ok {
			raw["eventType"] = bridge.EventResize
		}
	}

	ev, ok := bridge.Normalize(raw)
	if !ok {
		h.countDropped()
		log.Debug("dropping malformed bridge message")
		return
	}
	if h.metrics != nil {
		h.metrics.RecordBridgeEvent(ev.Type)
	}

	update := sess.controller.Apply(ev)

	if update.HeightChanged {
		h.send(conn, gin.H{
			"type":            "layout",
			"height":          sess.controller.DisplayHeight(),
			"fullscreenFixed": sess.controller.FullscreenFixed(),
		})
	}

	if !update.OverlayProperty.IsNull() {
		h.publishOverlay(conn, sess, update.OverlayProperty)
	}

	if update.OpenLightbox {
		h.send(conn, gin.H{
			"type":    "lightbox",
			"action":  "open",
			"url":     embedurl.Lightbox(sess.pageURL),
			"origin":  embedurl.Origin,
			"payload": update.LightboxPayload,
		})
	}
	if update.CloseLightbox {
		h.send(conn, gin.H{"type": "lightbox", "action": "close"})
	}
}

// publishOverlay resolves the directive set to a rectangle and pushes it
// unless the tracker suppresses the change as jitter.
func (h *Handler) publishOverlay(conn *websocket.Conn, sess *session, property bridge.Value) {
	rect, ok := overlay.Resolve(property, sess.bounds)
	if !ok {
		return
	}

	published := sess.tracker.Publish(rect)
	if h.metrics != nil {
		h.metrics.RecordOverlayPublish(published)
	}
	if !published {
		return
	}

	h.send(conn, gin.H{"type": "overlayRect", "rect": rect})
}

// handleLightboxLoaded replays the queued click payload into a freshly
// loaded lightbox document, once.
func (h *Handler) handleLightboxLoaded(conn *websocket.Conn, sess *session) {
	payload, ok := sess.controller.TakePendingLightbox()
	if !ok {
		return
	}
	h.send(conn, gin.H{
		"type":    "lightboxRelay",
		"origin":  embedurl.Origin,
		"payload": payload,
	})
}

func (h *Handler) send(conn *websocket.Conn, data interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(data)
}

func (h *Handler) countDropped() {
	if h.metrics != nil {
		h.metrics.RecordBridgeDropped()
	}
}

func queryFloat(c *gin.Context, name string, fallback float64) float64 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
