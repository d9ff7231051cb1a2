package movies

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public, read-only movie catalog
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller) {
	group := rg.Group("/movies")
	{
		group.GET("", ctrl.ListMovies)
		group.GET("/:id", ctrl.GetMovie)
	}
}
