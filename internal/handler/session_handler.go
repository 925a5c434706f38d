package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/eq3-dev/internship-api/pkg/errors"
	"github.com/eq3-dev/internship-api/pkg/response"
)

type offerSessionService interface {
	ListUpcomingOfferSessions(ctx context.Context, valid bool) ([]string, error)
	ListOfferSessions(ctx context.Context, valid bool) ([]string, error)
}

// SessionHandler exposes the offer-session views.
type SessionHandler struct {
	sessions offerSessionService
}

// NewSessionHandler constructs SessionHandler.
func NewSessionHandler(sessions offerSessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func validityFlag(c *gin.Context) (bool, bool) {
	raw := c.DefaultQuery("valid", "true")
	valid, err := strconv.ParseBool(raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid valid flag %q", raw)))
		return false, false
	}
	return valid, true
}

// Upcoming returns sessions of offers not yet passed relative to today.
func (h *SessionHandler) Upcoming(c *gin.Context) {
	valid, ok := validityFlag(c)
	if !ok {
		return
	}
	sessions, err := h.sessions.ListUpcomingOfferSessions(c.Request.Context(), valid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions)
}

// All returns every session carrying offers of the requested validity.
func (h *SessionHandler) All(c *gin.Context) {
	valid, ok := validityFlag(c)
	if !ok {
		return
	}
	sessions, err := h.sessions.ListOfferSessions(c.Request.Context(), valid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions)
}
