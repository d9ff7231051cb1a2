package screenings

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public screening schedule
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller) {
	group := rg.Group("/screenings")
	{
		group.GET("/upcoming", ctrl.ListUpcoming)
		group.GET("/:id", ctrl.GetScreening)
	}

	// Nested under the movie catalog path
	rg.GET("/movies/:id/screenings", ctrl.ListByMovie)
}
