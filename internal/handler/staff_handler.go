package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eq3-dev/internship-api/internal/models"
	"github.com/eq3-dev/internship-api/pkg/response"
)

type staffEligibilityService interface {
	ListSupervisorsInSession(ctx context.Context, sessionLabel string) ([]models.Staff, error)
	ListMonitorSessions(ctx context.Context, monitorID string) ([]string, error)
	GetMonitorByUsername(ctx context.Context, username string) (*models.Staff, error)
}

// StaffHandler exposes supervisor and monitor endpoints.
type StaffHandler struct {
	eligibility staffEligibilityService
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(eligibility staffEligibilityService) *StaffHandler {
	return &StaffHandler{eligibility: eligibility}
}

// Supervisors lists active supervisors for a session.
func (h *StaffHandler) Supervisors(c *gin.Context) {
	sessionLabel, ok := requireSession(c)
	if !ok {
		return
	}
	supervisors, err := h.eligibility.ListSupervisorsInSession(c.Request.Context(), sessionLabel)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, supervisors)
}

// MonitorSessions lists the sessions of the monitor's offers, newest first.
func (h *StaffHandler) MonitorSessions(c *gin.Context) {
	sessions, err := h.eligibility.ListMonitorSessions(c.Request.Context(), c.Param("monitorId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions)
}

// MonitorByUsername returns the active monitor account for the username.
func (h *StaffHandler) MonitorByUsername(c *gin.Context) {
	monitor, err := h.eligibility.GetMonitorByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, monitor)
}
