package request

import (
	"github.com/google/uuid"
)

type CreateRuleRequest struct {
	CategoryID uuid.UUID `json:"categoryId" binding:"required"`
	// 0 = Sunday .. 6 = Saturday
	Weekday             int    `json:"weekday" binding:"min=0,max=6"`
	StartTime           string `json:"startTime" binding:"required"`
	EndTime             string `json:"endTime" binding:"required"`
	SlotDurationMinutes int    `json:"slotDurationMinutes,omitempty"`
}
