package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/events"
	"ticketly/internal/holds"
	"ticketly/internal/promos"
	"ticketly/internal/shared/utils/response"
)

type Controller interface {
	Quote(c *gin.Context)
	ConfirmBooking(c *gin.Context)
	GetBooking(c *gin.Context)
	GetUserBookings(c *gin.Context)
	CancelBooking(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	quote, err := ctrl.service.Quote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, bookingErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Order priced successfully", quote)
}

func (ctrl *controller) ConfirmBooking(c *gin.Context) {
	var req ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	confirmation, err := ctrl.service.ConfirmBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, bookingErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "Booking confirmed successfully", confirmation)
}

func (ctrl *controller) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID", err.Error())
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	booking, err := ctrl.service.GetBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, bookingErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Booking retrieved successfully", booking)
}

func (ctrl *controller) GetUserBookings(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	bookings, total, err := ctrl.service.GetUserBookings(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}

	result := &PaginatedBookings{
		Bookings:   bookings,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
	response.Success(c, http.StatusOK, "Bookings retrieved successfully", result)
}

func (ctrl *controller) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID", err.Error())
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	if err := ctrl.service.CancelBooking(c.Request.Context(), bookingID, userID); err != nil {
		response.Error(c, bookingErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Booking cancelled successfully", nil)
}

func currentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, errors.New("user not authenticated")
	}
	return uuid.Parse(raw.(string))
}

func bookingErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, events.ErrEventNotFound),
		errors.Is(err, holds.ErrHoldNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotBookingOwner), errors.Is(err, holds.ErrHoldMismatch):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyCancelled),
		errors.Is(err, ErrSeatAlreadySold),
		errors.Is(err, events.ErrEventNotOnSale):
		return http.StatusConflict
	case errors.Is(err, promos.ErrPromoNotFound),
		errors.Is(err, promos.ErrPromoInactive),
		errors.Is(err, promos.ErrPromoNotStarted),
		errors.Is(err, promos.ErrPromoExpired),
		errors.Is(err, promos.ErrPromoExhausted),
		errors.Is(err, promos.ErrBelowMinimum):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
