package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tagnology/embed-go/internal/cache"
	"github.com/tagnology/embed-go/internal/embedurl"
	"github.com/tagnology/embed-go/internal/product"
	"github.com/tagnology/embed-go/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	cache *cache.Manager
}

// NewHandlers creates a new handler set
func NewHandlers(cacheManager *cache.Manager) *Handlers {
	return &Handlers{cache: cacheManager}
}

// widgetView is the wire shape for one resolved widget slot entry.
type widgetView struct {
	types.WidgetFolder
	DisplayURL string `json:"displayUrl"`
}

func viewsFor(folders []types.WidgetFolder, pageURL string) []widgetView {
	views := make([]widgetView, len(folders))
	for i, f := range folders {
		views[i] = widgetView{
			WidgetFolder: f,
			DisplayURL:   embedurl.Display(f.FolderID, pageURL, f.IsFloatingMedia()),
		}
	}
	return views
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Embed Widget Service (Go)",
		"version": "1.0.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"cache":  h.cache.Stats(),
	})
}

// GetWidgets resolves the ordered widget list for one placement slot
func (h *Handlers) GetWidgets(c *gin.Context) {
	pageURL := c.Query("page")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page is required"})
		return
	}

	position, ok := types.ParsePosition(c.Query("position"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown position"})
		return
	}

	widgets := h.cache.WidgetsForPosition(c.Request.Context(), pageURL, position, c.Query("productId"))

	c.JSON(http.StatusOK, gin.H{
		"page":     pageURL,
		"position": position.String(),
		"widgets":  viewsFor(widgets, pageURL),
		"count":    len(widgets),
	})
}

// GetSlots resolves every placement slot for a page in one call
func (h *Handlers) GetSlots(c *gin.Context) {
	pageURL := c.Query("page")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page is required"})
		return
	}
	productID := c.Query("productId")

	slots := make(map[string][]widgetView)
	for _, position := range types.AllPositions() {
		widgets := h.cache.WidgetsForPosition(c.Request.Context(), pageURL, position, productID)
		if len(widgets) > 0 {
			slots[position.String()] = viewsFor(widgets, pageURL)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  pageURL,
		"slots": slots,
	})
}

// ResolveProduct reports the product id derived from a page URL
func (h *Handlers) ResolveProduct(c *gin.Context) {
	pageURL := c.Query("page")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page is required"})
		return
	}

	id, ok := product.Resolve(pageURL)
	c.JSON(http.StatusOK, gin.H{
		"page":      pageURL,
		"productId": id,
		"resolved":  ok,
	})
}

// ClearCache drops cached manifests, for one page when given
func (h *Handlers) ClearCache(c *gin.Context) {
	var req struct {
		Page string `json:"page"`
	}
	// An empty body clears everything.
	_ = c.ShouldBindJSON(&req)

	if req.Page != "" {
		h.cache.ClearPage(req.Page)
	} else {
		h.cache.Clear()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cache":   h.cache.Stats(),
	})
}

// Stats reports cache occupancy
func (h *Handlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cache": h.cache.Stats()})
}
