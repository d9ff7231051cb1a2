package tickets

import "github.com/gin-gonic/gin"

// RegisterGuestRoutes mounts the email-keyed guest surface. No auth;
// the booking email is the proof of ownership.
func RegisterGuestRoutes(rg *gin.RouterGroup, ctrl *Controller) {
	group := rg.Group("/tickets")
	{
		group.GET("/guest", ctrl.GuestLookup)
		group.POST("/guest/:id/cancel", ctrl.GuestCancel)
	}
}

// RegisterUserRoutes mounts the authenticated ticket surface.
func RegisterUserRoutes(rg *gin.RouterGroup, ctrl *Controller) {
	rg.GET("/tickets/:id/qr", ctrl.TicketQR)

	user := rg.Group("/user/tickets")
	{
		user.GET("", ctrl.UserTickets)
		user.POST("/:id/cancel", ctrl.UserCancel)
	}
}
