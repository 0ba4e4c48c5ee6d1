package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"attendance-be/internal/errutil"
	"attendance-be/internal/metrics"
	"attendance-be/internal/middleware"
	"attendance-be/internal/models"
	"attendance-be/internal/service"

	"github.com/gin-gonic/gin"
)

type AttendanceController struct {
	attendanceService service.AttendanceService
	logger            *slog.Logger
}

func NewAttendanceController(attendanceService service.AttendanceService, logger *slog.Logger) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// CheckIn handles POST /checkIn
func (ac *AttendanceController) CheckIn(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		respondError(c, ac.logger, "check-in without caller", errutil.Unauthenticated("Authorization token is required"))
		return
	}

	var req models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ac.logger, "invalid check-in request", bindError(err))
		return
	}

	entry, err := ac.attendanceService.CheckIn(c.Request.Context(), caller, &req)
	metrics.RecordEvent(metrics.EventCheckIn, err)
	if err != nil {
		respondError(c, ac.logger, "check-in failed", err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// CheckOut handles POST /checkOut?checkInId=
func (ac *AttendanceController) CheckOut(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		respondError(c, ac.logger, "check-out without caller", errutil.Unauthenticated("Authorization token is required"))
		return
	}

	var req models.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ac.logger, "invalid check-out request", bindError(err))
		return
	}

	entry, err := ac.attendanceService.CheckOut(c.Request.Context(), caller, c.Query("checkInId"), &req)
	metrics.RecordEvent(metrics.EventCheckOut, err)
	if err != nil {
		respondError(c, ac.logger, "check-out failed", err)
		return
	}

	c.JSON(http.StatusCreated, models.CheckOutResponse{
		Message: "checkout successfully",
		Data:    entry,
	})
}

// ListEntries handles GET /allEntry?page=&limit=
func (ac *AttendanceController) ListEntries(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		respondError(c, ac.logger, "list without caller", errutil.Unauthenticated("Authorization token is required"))
		return
	}

	// Absent or non-numeric values fall through as 0 and take the defaults.
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	response, err := ac.attendanceService.ListEntries(c.Request.Context(), caller, page, limit)
	if err != nil {
		respondError(c, ac.logger, "list entries failed", err)
		return
	}

	c.JSON(http.StatusOK, response)
}
