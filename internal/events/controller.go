package events

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/shared/utils/response"
)

type Controller interface {
	CreateEvent(c *gin.Context)
	GetEvent(c *gin.Context)
	ListEvents(c *gin.Context)
	UpdateEvent(c *gin.Context)
	PublishEvent(c *gin.Context)
	CancelEvent(c *gin.Context)
	DeleteEvent(c *gin.Context)
	GetSeatMap(c *gin.Context)
	CreateTier(c *gin.Context)
	UpdateTier(c *gin.Context)
	DeleteTier(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	event, err := ctrl.service.CreateEvent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "Event created successfully", event)
}

func (ctrl *controller) GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid event ID", err.Error())
		return
	}

	event, err := ctrl.service.GetEventByID(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, eventErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Event retrieved successfully", event)
}

func (ctrl *controller) ListEvents(c *gin.Context) {
	var filters EventFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	result, err := ctrl.service.ListEvents(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list events", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Events retrieved successfully", result)
}

func (ctrl *controller) UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid event ID", err.Error())
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	event, err := ctrl.service.UpdateEvent(c.Request.Context(), eventID, req)
	if err != nil {
		response.Error(c, eventErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Event updated successfully", event)
}

func (ctrl *controller) PublishEvent(c *gin.Context) {
	ctrl.changeStatus(c, ctrl.service.PublishEvent, "Event published successfully")
}

func (ctrl *controller) CancelEvent(c *gin.Context) {
	ctrl.changeStatus(c, ctrl.service.CancelEvent, "Event cancelled successfully")
}

func (ctrl *controller) changeStatus(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*Event, error), message string) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid event ID", err.Error())
		return
	}

	event, err := fn(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, eventErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, message, event)
}

func (ctrl *controller) DeleteEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid event ID", err.Error())
		return
	}

	if err := ctrl.service.DeleteEvent(c.Request.Context(), eventID); err != nil {
		status := eventErrorStatus(err)
		if errors.Is(err, ErrEventHasBookings) {
			status = http.StatusConflict
		}
		response.Error(c, status, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Event deleted successfully", nil)
}

func (ctrl *controller) GetSeatMap(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid event ID", err.Error())
		return
	}

	seatMap, err := ctrl.service.GetSeatMap(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, eventErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Seat map retrieved successfully", seatMap)
}

func (ctrl *controller) CreateTier(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid event ID", err.Error())
		return
	}

	var req CreateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	tier, err := ctrl.service.CreateTier(c.Request.Context(), eventID, req)
	if err != nil {
		status := eventErrorStatus(err)
		if errors.Is(err, ErrDuplicateTier) {
			status = http.StatusConflict
		}
		response.Error(c, status, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "Tier created successfully", tier)
}

func (ctrl *controller) UpdateTier(c *gin.Context) {
	tierID, err := uuid.Parse(c.Param("tierId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid tier ID", err.Error())
		return
	}

	var req UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	tier, err := ctrl.service.UpdateTier(c.Request.Context(), tierID, req)
	if err != nil {
		response.Error(c, eventErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Tier updated successfully", tier)
}

func (ctrl *controller) DeleteTier(c *gin.Context) {
	tierID, err := uuid.Parse(c.Param("tierId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid tier ID", err.Error())
		return
	}

	if err := ctrl.service.DeleteTier(c.Request.Context(), tierID); err != nil {
		response.Error(c, eventErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Tier deleted successfully", nil)
}

func eventErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrTierNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEventNotOnSale):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
