package booking

import (
	"errors"
	"net/http"

	"reelpass/internal/screenings"
	"reelpass/internal/seats"
	"reelpass/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ScreeningPage handles GET /booking/screenings/:id
func (ctrl *Controller) ScreeningPage(c *gin.Context) {
	screeningID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid screening ID", nil, nil)
		return
	}

	resp, err := ctrl.service.ScreeningPage(c.Request.Context(), screeningID)
	if err != nil {
		if errors.Is(err, screenings.ErrScreeningNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Screening not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load screening", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Screening loaded successfully", resp, nil)
}

// Review handles POST /booking/review
func (ctrl *Controller) Review(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Invalid booking request", nil,
			map[string]interface{}{"validation": err.Error()})
		return
	}

	screeningID, err := uuid.Parse(req.ScreeningID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid screening ID", nil, nil)
		return
	}

	resp, err := ctrl.service.Review(c.Request.Context(), screeningID, req.Seats, req.CustomerName, resolveIdentity(c))
	if err != nil {
		ctrl.respondFlowError(c, err, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Booking reviewed successfully", resp, nil)
}

// Pay handles POST /booking/pay
func (ctrl *Controller) Pay(c *gin.Context) {
	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Invalid payment request", nil,
			map[string]interface{}{"validation": err.Error()})
		return
	}

	screeningID, err := uuid.Parse(req.ScreeningID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid screening ID", nil, nil)
		return
	}

	identity := resolveIdentity(c)
	resp, err := ctrl.service.Pay(c.Request.Context(), screeningID, req.Seats, req.CustomerName, req.Email, identity)
	if err != nil {
		// Rebuild the review payload so the client can re-render the
		// order with the entered name and selection intact.
		review, _ := ctrl.service.Review(c.Request.Context(), screeningID, req.Seats, req.CustomerName, identity)
		ctrl.respondFlowError(c, err, review)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Payment completed successfully", resp, nil)
}

func (ctrl *Controller) respondFlowError(c *gin.Context, err error, review *ReviewResponse) {
	var meta map[string]interface{}
	if review != nil {
		meta = map[string]interface{}{"review": review}
	}

	switch {
	case errors.Is(err, screenings.ErrScreeningNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Screening not found", nil, nil)
	case errors.Is(err, ErrEmailRequired):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Email is required to complete the booking", nil, meta)
	case errors.Is(err, ErrNameRequired):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Customer name is required to complete the booking", nil, meta)
	case errors.Is(err, ErrAllSeatsOccupied):
		if meta == nil {
			meta = map[string]interface{}{}
		}
		meta["redirect"] = "occupied"
		response.RespondJSON(c, "error", http.StatusConflict, "The selected seats have just been taken", nil, meta)
	case errors.Is(err, ErrBookingClosed):
		response.RespondJSON(c, "error", http.StatusConflict, "Booking is closed for this screening", nil, nil)
	case errors.Is(err, seats.ErrInvalidSeatID),
		errors.Is(err, seats.ErrSeatOutOfRange),
		errors.Is(err, seats.ErrDuplicateSeat):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Invalid seat selection", nil,
			map[string]interface{}{"validation": err.Error()})
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to process booking", nil, nil)
	}
}

// resolveIdentity reads the identity the auth middleware stored, if
// any. Guests simply have none.
func resolveIdentity(c *gin.Context) *Identity {
	rawID, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	idStr, ok := rawID.(string)
	if !ok {
		return nil
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return nil
	}

	identity := &Identity{UserID: userID}
	if rawEmail, ok := c.Get("user_email"); ok {
		if s, ok := rawEmail.(string); ok {
			identity.Email = s
		}
	}
	if rawName, ok := c.Get("user_name"); ok {
		if s, ok := rawName.(string); ok {
			identity.Name = s
		}
	}

	return identity
}
