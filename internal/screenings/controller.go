package screenings

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

// GetScreening handles GET /screenings/:id
func (ctrl *Controller) GetScreening(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid screening ID", nil, nil)
		return
	}

	resp, err := ctrl.service.GetScreening(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrScreeningNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Screening not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch screening", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Screening fetched successfully", resp, nil)
}

// ListByMovie handles GET /movies/:id/screenings
func (ctrl *Controller) ListByMovie(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	resp, err := ctrl.service.ListByMovie(c.Request.Context(), movieID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch screenings", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Screenings fetched successfully", resp, nil)
}

// ListUpcoming handles GET /screenings/upcoming
func (ctrl *Controller) ListUpcoming(c *gin.Context) {
	resp, err := ctrl.service.ListUpcoming(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch screenings", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Upcoming screenings fetched successfully", resp, nil)
}
