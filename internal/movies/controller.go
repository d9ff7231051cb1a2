package movies

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

// ListMovies handles GET /movies
func (ctrl *Controller) ListMovies(c *gin.Context) {
	resp, err := ctrl.service.ListMovies(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch movies", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Movies fetched successfully", resp, nil)
}

// GetMovie handles GET /movies/:id
func (ctrl *Controller) GetMovie(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	resp, err := ctrl.service.GetMovie(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Movie not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch movie", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Movie fetched successfully", resp, nil)
}
