package holds

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketly/internal/events"
	"ticketly/internal/shared/utils/response"
)

type Controller interface {
	CreateHold(c *gin.Context)
	GetHold(c *gin.Context)
	ReleaseHold(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateHold(c *gin.Context) {
	var req CreateHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	hold, err := ctrl.service.HoldSeats(c.Request.Context(), userID.(string), req)
	if err != nil {
		response.Error(c, holdErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "Seats held successfully", hold)
}

func (ctrl *controller) GetHold(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	hold, err := ctrl.service.GetHold(c.Request.Context(), c.Param("holdId"))
	if err != nil {
		response.Error(c, holdErrorStatus(err), err.Error(), nil)
		return
	}

	if hold.UserID != userID.(string) {
		response.Error(c, http.StatusForbidden, "Hold belongs to another user", nil)
		return
	}

	response.Success(c, http.StatusOK, "Hold retrieved successfully", hold)
}

func (ctrl *controller) ReleaseHold(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	if err := ctrl.service.ReleaseHold(c.Request.Context(), c.Param("holdId"), userID.(string)); err != nil {
		response.Error(c, holdErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Hold released successfully", nil)
}

func holdErrorStatus(err error) int {
	var conflict *SeatConflictError
	switch {
	case errors.As(err, &conflict), errors.Is(err, ErrSeatUnavailable):
		return http.StatusConflict
	case errors.Is(err, ErrHoldNotFound), errors.Is(err, events.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrHoldMismatch):
		return http.StatusForbidden
	case errors.Is(err, events.ErrEventNotOnSale):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
