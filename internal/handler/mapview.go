package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hailsim/internal/dispatch"
	"hailsim/internal/domain"
	"hailsim/internal/lifecycle"
	"hailsim/internal/mapview"
)

// MapViewHandler serves the map widget payload for either side of the
// simulation.
type MapViewHandler struct {
	machine  *lifecycle.Machine
	sim      *dispatch.Simulator
	fallback domain.Region

	geoJSON   mapview.Renderer
	staticURL mapview.Renderer
}

// NewMapViewHandler creates a new MapViewHandler.
func NewMapViewHandler(machine *lifecycle.Machine, sim *dispatch.Simulator, fallback domain.Region, mapsAPIKey string) *MapViewHandler {
	return &MapViewHandler{
		machine:   machine,
		sim:       sim,
		fallback:  fallback,
		geoJSON:   mapview.GeoJSON{},
		staticURL: mapview.StaticURL{APIKey: mapsAPIKey},
	}
}

// Get renders the requested view. "view" picks the passenger or driver
// perspective (passenger by default); "format" picks geojson or a static
// map URL (geojson by default).
func (h *MapViewHandler) Get(c *gin.Context) {
	var view mapview.View
	if c.Query("view") == "driver" {
		view = mapview.FromDispatch(h.sim.Snapshot(), h.fallback)
	} else {
		view = mapview.FromLifecycle(h.machine.Snapshot(), h.fallback)
	}

	renderer := h.geoJSON
	if c.Query("format") == "static" {
		renderer = h.staticURL
	}

	body, err := renderer.Render(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, renderer.ContentType(), body)
}
