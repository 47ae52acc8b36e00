package request

type CreateResourceRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type,omitempty"`
}

type UpdateResourceRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type,omitempty"`
}
