package technician

type CreateRequest struct {
	Name   string `json:"name" binding:"required,max=255"`
	Status Status `json:"status"`
	Skills string `json:"skills" binding:"required"`
}

type UpdateRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=255"`
	Status *Status `json:"status"`
	Skills *string `json:"skills"`
}
