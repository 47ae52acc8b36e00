package response

import (
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
)

type BusinessResponse struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	Slug       string             `json:"slug"`
	Timezone   string             `json:"timezone"`
	Categories []CategoryResponse `json:"categories"`
}

type CategoryResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
}

func FromBusinessProfile(biz *shared.BusinessSnapshot, categories []shared.CategorySnapshot) *BusinessResponse {
	out := &BusinessResponse{
		ID:         biz.ID,
		Name:       biz.Name,
		Slug:       biz.Slug,
		Timezone:   biz.Timezone,
		Categories: make([]CategoryResponse, len(categories)),
	}
	for i, cat := range categories {
		out.Categories[i] = CategoryResponse{
			ID:              cat.ID,
			Name:            cat.Name,
			DurationMinutes: cat.DurationMinutes,
		}
	}
	return out
}
