package booking

type ReviewRequest struct {
	ScreeningID string `json:"screening_id" binding:"required,uuid"`
	// CustomerName defaults to the authenticated profile name when
	// left empty.
	CustomerName string   `json:"customer_name" binding:"omitempty,max=255"`
	Seats        []string `json:"seats" binding:"required,min=1,dive,required"`
}

type PayRequest struct {
	ScreeningID  string   `json:"screening_id" binding:"required,uuid"`
	CustomerName string   `json:"customer_name" binding:"omitempty,max=255"`
	Seats        []string `json:"seats" binding:"required,min=1,dive,required"`
	// Email is required for guests; authenticated users fall back to
	// their account email when it is empty.
	Email string `json:"email" binding:"omitempty,email"`
}
