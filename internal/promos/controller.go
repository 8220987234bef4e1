package promos

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ticketly/internal/shared/utils/response"
)

type Controller interface {
	CreatePromo(c *gin.Context)
	GetPromo(c *gin.Context)
	ListPromos(c *gin.Context)
	UpdatePromo(c *gin.Context)
	DeletePromo(c *gin.Context)
	ValidatePromo(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreatePromo(c *gin.Context) {
	var req CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	promo, err := ctrl.service.CreatePromo(c.Request.Context(), req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrCodeTaken) {
			status = http.StatusConflict
		}
		response.Error(c, status, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "Promo code created successfully", promo)
}

func (ctrl *controller) GetPromo(c *gin.Context) {
	promoID, err := uuid.Parse(c.Param("promoId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid promo ID", err.Error())
		return
	}

	promo, err := ctrl.service.GetPromoByID(c.Request.Context(), promoID)
	if err != nil {
		response.Error(c, promoErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Promo code retrieved successfully", promo)
}

func (ctrl *controller) ListPromos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := ctrl.service.ListPromos(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list promo codes", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Promo codes retrieved successfully", result)
}

func (ctrl *controller) UpdatePromo(c *gin.Context) {
	promoID, err := uuid.Parse(c.Param("promoId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid promo ID", err.Error())
		return
	}

	var req UpdatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	promo, err := ctrl.service.UpdatePromo(c.Request.Context(), promoID, req)
	if err != nil {
		response.Error(c, promoErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Promo code updated successfully", promo)
}

func (ctrl *controller) DeletePromo(c *gin.Context) {
	promoID, err := uuid.Parse(c.Param("promoId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid promo ID", err.Error())
		return
	}

	if err := ctrl.service.DeletePromo(c.Request.Context(), promoID); err != nil {
		response.Error(c, promoErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Promo code deleted successfully", nil)
}

// ValidatePromo lets a client preview a discount before checkout. The
// same validation runs server-side again when the booking is confirmed.
func (ctrl *controller) ValidatePromo(c *gin.Context) {
	var req ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := ctrl.service.Validate(c.Request.Context(), req.Code, decimal.NewFromFloat(req.Subtotal))
	if err != nil {
		response.Error(c, promoErrorStatus(err), err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Promo code is valid", result)
}

func promoErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrPromoNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPromoInactive),
		errors.Is(err, ErrPromoNotStarted),
		errors.Is(err, ErrPromoExpired),
		errors.Is(err, ErrPromoExhausted),
		errors.Is(err, ErrBelowMinimum):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
