package controllers

import (
	"log/slog"
	"net/http"

	"attendance-be/internal/service"

	"github.com/gin-gonic/gin"
)

type LocationController struct {
	locationService service.LocationService
	logger          *slog.Logger
}

func NewLocationController(locationService service.LocationService, logger *slog.Logger) *LocationController {
	return &LocationController{
		locationService: locationService,
		logger:          logger,
	}
}

// GetLocation handles GET /getLocation?latitude=&longitude=
func (lc *LocationController) GetLocation(c *gin.Context) {
	body, err := lc.locationService.ReverseGeocode(c.Request.Context(), c.Query("latitude"), c.Query("longitude"))
	if err != nil {
		respondError(c, lc.logger, "reverse geocode failed", err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
