package request

import (
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CategoryID    uuid.UUID `json:"categoryId" binding:"required"`
	LocalStartAt  string    `json:"localStartAt" binding:"required"`
	CustomerName  string    `json:"customerName" binding:"required"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
}
