package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"speakroots/internal/observability"

	"github.com/gin-gonic/gin"
)

// RouteInfo represents information about a single route
type RouteInfo struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	HandlerName string `json:"handler_name"`
}

// RouteListingHandler lists the routes registered on an engine
type RouteListingHandler struct {
	serviceName string
	routes      []RouteInfo
}

// NewRouteListingHandler creates a new route listing handler
func NewRouteListingHandler(serviceName string) *RouteListingHandler {
	return &RouteListingHandler{
		serviceName: serviceName,
		routes:      []RouteInfo{},
	}
}

// CollectRoutes extracts all routes from a Gin engine, sorted by path then method
func (h *RouteListingHandler) CollectRoutes(engine *gin.Engine) {
	h.routes = []RouteInfo{}
	for _, route := range engine.Routes() {
		if strings.HasPrefix(route.Path, "/debug/") {
			continue
		}
		h.routes = append(h.routes, RouteInfo{
			Method:      route.Method,
			Path:        route.Path,
			HandlerName: route.Handler,
		})
	}

	sort.Slice(h.routes, func(i, j int) bool {
		if h.routes[i].Path != h.routes[j].Path {
			return h.routes[i].Path < h.routes[j].Path
		}
		return h.routes[i].Method < h.routes[j].Method
	})
}

// GetRouteListingJSON returns the route listing as JSON
func (h *RouteListingHandler) GetRouteListingJSON(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_route_listing_json")
	defer observability.FinishSpan(span, nil)
	c.JSON(http.StatusOK, gin.H{"service": h.serviceName, "routes": h.routes})
}

// String renders the listing as aligned "METHOD path" lines
func (h *RouteListingHandler) String() string {
	var b strings.Builder
	for _, route := range h.routes {
		fmt.Fprintf(&b, "%-7s %s\n", route.Method, route.Path)
	}
	return b.String()
}
