package tickets

// Email is optional: a blank lookup simply returns no tickets.
type GuestLookupRequest struct {
	Email string `form:"email" binding:"omitempty,email"`
}

type GuestCancelRequest struct {
	Email string `json:"email" binding:"required,email"`
}
