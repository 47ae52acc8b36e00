package response

import (
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/domain/schedule"
)

type SlotResponse struct {
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
	LocalTime      string    `json:"localTime"`
	TotalResources int       `json:"totalResources"`
	BookedCount    int       `json:"bookedCount"`
	AvailableCount int       `json:"availableCount"`
	Available      bool      `json:"available"`
	Status         string    `json:"status"`
}

func FromSlots(slots []schedule.Slot) []SlotResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{
			StartAt:        s.Start,
			EndAt:          s.End,
			LocalTime:      s.LocalLabel,
			TotalResources: s.TotalResources,
			BookedCount:    s.BookedCount,
			AvailableCount: s.AvailableCount,
			Available:      s.Available,
			Status:         string(s.Status),
		}
	}
	return out
}
