package response

import (
	"github.com/ExactwareSolution/booktimez-app/internal/domain/schedule"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
)

type RuleResponse struct {
	ID                  uuid.UUID `json:"id"`
	CategoryID          uuid.UUID `json:"categoryId"`
	Weekday             int       `json:"weekday"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	SlotDurationMinutes *int      `json:"slotDurationMinutes,omitempty"`
}

func FromRule(rule *schedule.Rule) *RuleResponse {
	resp := &RuleResponse{
		ID:         rule.ID(),
		CategoryID: rule.CategoryID(),
		Weekday:    rule.Weekday(),
		StartTime:  rule.StartTime().String(),
		EndTime:    rule.EndTime().String(),
	}
	if d := rule.SlotDurationMinutes(); d > 0 {
		resp.SlotDurationMinutes = &d
	}
	return resp
}

func FromRuleSnapshots(rows []shared.RuleSnapshot) []RuleResponse {
	out := make([]RuleResponse, len(rows))
	for i, row := range rows {
		out[i] = RuleResponse{
			ID:                  row.ID,
			CategoryID:          row.CategoryID,
			Weekday:             row.Weekday,
			StartTime:           row.StartTime,
			EndTime:             row.EndTime,
			SlotDurationMinutes: row.SlotDurationMinutes,
		}
	}
	return out
}

type ResourceResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

func FromResourceSnapshot(res *shared.ResourceSnapshot) *ResourceResponse {
	return &ResourceResponse{ID: res.ID, Name: res.Name, Type: res.Type}
}

func FromResourceSnapshots(rows []shared.ResourceSnapshot) []ResourceResponse {
	out := make([]ResourceResponse, len(rows))
	for i := range rows {
		out[i] = *FromResourceSnapshot(&rows[i])
	}
	return out
}
