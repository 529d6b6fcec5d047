package shows

import (
	"errors"
	"net/http"

	"ticketly/internal/events"
	"ticketly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) CreateShow(c *gin.Context) {
	var req CreateShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	show, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, events.ErrEventNotFound) {
			response.Error(c, http.StatusNotFound, "Event not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create show", nil)
		return
	}

	response.Success(c, http.StatusCreated, "Show created successfully", show)
}

func (ctrl *Controller) GetShow(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid show id", nil)
		return
	}

	show, err := ctrl.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrShowNotFound) {
			response.Error(c, http.StatusNotFound, "Show not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch show", nil)
		return
	}

	response.Success(c, http.StatusOK, "Show fetched successfully", show)
}

func (ctrl *Controller) ListShowsByEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid event id", nil)
		return
	}

	result, err := ctrl.service.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, events.ErrEventNotFound) {
			response.Error(c, http.StatusNotFound, "Event not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch shows", nil)
		return
	}

	response.Success(c, http.StatusOK, "Shows fetched successfully", result)
}

func (ctrl *Controller) DeleteShow(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid show id", nil)
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrShowNotFound) {
			response.Error(c, http.StatusNotFound, "Show not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete show", nil)
		return
	}

	response.Success(c, http.StatusOK, "Show deleted successfully", nil)
}
