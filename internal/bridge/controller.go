package bridge

import (
	"sync"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/tagnology/embed-go/internal/infrastructure/logging"
	"github.com/tagnology/embed-go/internal/shared/types"
)

// InitialHeight is the container height before the first resize arrives.
const InitialHeight = 400.0

// InlineMinHeight is the floor applied to inline widget heights.
const InlineMinHeight = 60.0

// Update describes the host-side effects of one applied event.
type Update struct {
	// HeightChanged reports that DisplayHeight moved.
	HeightChanged bool
	// OpenLightbox requests the lightbox surface with the given payload.
	OpenLightbox    bool
	LightboxPayload string
	// CloseLightbox requests dismissal of the lightbox surface.
	CloseLightbox bool
	// OverlayProperty carries the resize directives for the overlay
	// geometry path. Null unless the event deferred layout.
	OverlayProperty Value
}

// Controller holds the mutable bridge state for one rendered widget.
type Controller struct {
	mu     sync.Mutex
	folder types.WidgetFolder
	logger *logging.Logger

	viewportHeight float64
	height         float64

	// fullscreenFixed is sticky: once the embedded content declares
	// position fixed it stays on the overlay path.
	fullscreenFixed bool
	lightboxOpen    bool
	pendingLightbox string
}

// NewController creates bridge state for a widget with the given
// viewport height used by the defer fallback and fullscreen sizing.
func NewController(folder types.WidgetFolder, viewportHeight float64, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Controller{
		folder:         folder,
		logger:         logger,
		viewportHeight: viewportHeight,
		height:         InitialHeight,
	}
}

// Folder returns the widget entry this controller renders.
func (c *Controller) Folder() types.WidgetFolder {
	return c.folder
}

// Apply consumes a normalized event and returns the host-side effects.
// Unrecognized event types return a zero Update.
func (c *Controller) Apply(ev Event) Update {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Type {
	case EventResize:
		return c.applyResize(ev)
	case EventClick:
		return c.applyClick(ev)
	case EventToggleLB:
		return c.applyToggle(ev)
	default:
		c.logger.Debug("dropping unrecognized bridge event",
			zap.String("type", ev.Type),
			zap.String("folder_id", c.folder.FolderID))
		return Update{}
	}
}

func (c *Controller) applyResize(ev Event) Update {
	before := c.displayHeightLocked()

	res := ResolveHeight(ev.Payload, c.folder.IsFloatingMedia(), c.height, c.viewportHeight)
	c.height = res.Height

	var update Update
	property := ev.Payload.Field("property")
	if res.Deferred {
		if isFixedPosition(property) {
			c.fullscreenFixed = true
		}
		update.OverlayProperty = property
	} else if c.folder.IsFloatingMedia() && property.Kind == KindObject {
		// Floating widgets pin their height but still drive the
		// overlay hit region from their box directives.
		update.OverlayProperty = property
	}
	update.HeightChanged = c.displayHeightLocked() != before
	return update
}

func (c *Controller) applyClick(ev Event) Update {
	data := ev.Payload.Field("data")
	if suppressed, ok := ParseTolerantBool(data.Field("disabledLightBox")); ok && suppressed {
		c.logger.Debug("lightbox disabled for click", zap.String("folder_id", c.folder.FolderID))
		return Update{}
	}

	payload, err := sonic.Marshal(map[string]interface{}{
		eventTypeKey: EventClick,
		"item":       data.Interface(),
	})
	if err != nil {
		return Update{}
	}

	c.lightboxOpen = true
	c.pendingLightbox = string(payload)
	return Update{OpenLightbox: true, LightboxPayload: string(payload)}
}

func (c *Controller) applyToggle(ev Event) Update {
	open, ok := ParseTolerantBool(ev.Payload.Field("open"))
	if !ok {
		c.logger.Debug("dropping toggleLB with invalid open flag",
			zap.String("folder_id", c.folder.FolderID))
		return Update{}
	}

	c.lightboxOpen = open
	if open {
		return Update{OpenLightbox: true, LightboxPayload: ev.JSON}
	}
	c.pendingLightbox = ""
	return Update{CloseLightbox: true}
}

// DisplayHeight returns the height the host container should adopt.
func (c *Controller) DisplayHeight() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayHeightLocked()
}

func (c *Controller) displayHeightLocked() float64 {
	if c.folder.IsFloatingMedia() {
		return types.FloatingMediaHeight
	}
	if c.fullscreenFixed {
		return c.viewportHeight
	}
	if c.height < InlineMinHeight {
		return InlineMinHeight
	}
	return c.height
}

// FullscreenFixed reports whether the widget has claimed the overlay path.
func (c *Controller) FullscreenFixed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fullscreenFixed
}

// LightboxOpen reports whether the lightbox surface should be visible.
func (c *Controller) LightboxOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lightboxOpen
}

// TakePendingLightbox returns the queued lightbox payload once. The
// lightbox surface calls this when its document finishes loading so the
// triggering click is replayed into it exactly one time.
func (c *Controller) TakePendingLightbox() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingLightbox == "" {
		return "", false
	}
	payload := c.pendingLightbox
	c.pendingLightbox = ""
	return payload, true
}
