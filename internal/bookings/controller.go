package bookings

import (
	"errors"
	"net/http"

	"ticketly/internal/auth"
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

func (ctrl *Controller) BookSeats(c *gin.Context) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid user context", nil)
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := ctrl.service.BookSeats(c.Request.Context(), userID, req)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Booking confirmed", result)
}

func (ctrl *Controller) GetBookedSeats(c *gin.Context) {
	showID, err := uuid.Parse(c.Param("showId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid show id", nil)
		return
	}

	seatMap, err := ctrl.service.BookedSeats(c.Request.Context(), showID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Booked seats fetched successfully", seatMap)
}

func (ctrl *Controller) GetMyBookings(c *gin.Context) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid user context", nil)
		return
	}

	result, err := ctrl.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Bookings fetched successfully", result)
}

// respondBookingError maps the booking error taxonomy onto HTTP statuses
func respondBookingError(c *gin.Context, err error) {
	var (
		dupErr      *DuplicateSeatError
		invalidErr  *InvalidSeatLabelError
		bookedErr   *SeatsAlreadyBookedError
		persistence *PersistenceError
	)

	switch {
	case errors.Is(err, ErrEventNotFound):
		response.Error(c, http.StatusNotFound, "Event not found", nil)
	case errors.Is(err, ErrShowNotFound):
		response.Error(c, http.StatusNotFound, "Show not found", nil)
	case errors.Is(err, ErrEmptySeatSelection):
		response.Error(c, http.StatusBadRequest, "At least one seat must be selected", nil)
	case errors.As(err, &dupErr):
		response.Error(c, http.StatusBadRequest, "Duplicate seat in selection",
			map[string]interface{}{"seat": dupErr.Label})
	case errors.As(err, &invalidErr):
		response.Error(c, http.StatusBadRequest, "Invalid seat labels",
			map[string]interface{}{"seats": invalidErr.Labels})
	case errors.As(err, &bookedErr):
		response.Error(c, http.StatusConflict, "Seats already booked",
			map[string]interface{}{"seats": bookedErr.Labels})
	case errors.As(err, &persistence):
		response.Error(c, http.StatusServiceUnavailable, "Booking temporarily unavailable, please retry", nil)
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to process booking", nil)
	}
}
