package booking

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the two-step booking flow. All endpoints run
// under optional auth: guests and members share the same flow.
func RegisterRoutes(rg *gin.RouterGroup, ctrl *Controller) {
	group := rg.Group("/booking")
	{
		group.GET("/screenings/:id", ctrl.ScreeningPage)
		group.POST("/review", ctrl.Review)
		group.POST("/pay", ctrl.Pay)
	}
}
