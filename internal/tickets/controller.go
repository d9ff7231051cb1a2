package tickets

import (
	"errors"
	"net/http"

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

// GuestLookup handles GET /tickets/guest?email=
func (ctrl *Controller) GuestLookup(c *gin.Context) {
	var req GuestLookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid email query parameter", nil, nil)
		return
	}

	resp, err := ctrl.service.GuestLookup(c.Request.Context(), req.Email)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch tickets", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Tickets fetched successfully", resp, nil)
}

// GuestCancel handles POST /tickets/guest/:id/cancel
func (ctrl *Controller) GuestCancel(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	var req GuestCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "A valid email is required", nil, nil)
		return
	}

	err = ctrl.service.GuestCancel(c.Request.Context(), ticketID, req.Email)
	if err != nil {
		// One generic failure for every cause. Distinguishing missing
		// tickets from wrong emails or started screenings would let a
		// caller probe other people's ticket ids.
		response.RespondJSON(c, "error", http.StatusConflict, "Ticket could not be cancelled", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Ticket cancelled successfully", nil, nil)
}

// UserTickets handles GET /user/tickets
func (ctrl *Controller) UserTickets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	resp, err := ctrl.service.UserTickets(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch tickets", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Tickets fetched successfully", resp, nil)
}

// UserCancel handles POST /user/tickets/:id/cancel
func (ctrl *Controller) UserCancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	err = ctrl.service.UserCancel(c.Request.Context(), ticketID, userID)
	if err != nil {
		ctrl.respondCancelError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Ticket cancelled successfully", nil, nil)
}

// TicketQR handles GET /tickets/:id/qr and streams the PNG directly,
// bypassing the JSON envelope.
func (ctrl *Controller) TicketQR(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	png, err := ctrl.service.TicketQRPNG(c.Request.Context(), ticketID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTicketNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Ticket not found", nil, nil)
		case errors.Is(err, ErrNotAuthorized):
			response.RespondJSON(c, "error", http.StatusForbidden, "You do not own this ticket", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to render QR code", nil, nil)
		}
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (ctrl *Controller) respondCancelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTicketNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Ticket not found", nil, nil)
	case errors.Is(err, ErrNotAuthorized):
		response.RespondJSON(c, "error", http.StatusForbidden, "You do not own this ticket", nil, nil)
	case errors.Is(err, ErrScreeningStarted):
		response.RespondJSON(c, "error", http.StatusConflict, "Screening has already started", nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to cancel ticket", nil, nil)
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	idStr, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
