package customer

type CreateRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Phone   string `json:"phone" binding:"required,max=20"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Address string `json:"address" binding:"required"`
}

type UpdateRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Email   *string `json:"email" binding:"omitempty,email,max=255"`
	Address *string `json:"address"`
}
