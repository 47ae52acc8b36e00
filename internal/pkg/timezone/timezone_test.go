//go:build unit

package timezone_test

import (
	"testing"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/pkg/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "windows display name", label: "India Standard Time", want: "Asia/Kolkata"},
		{name: "windows eastern", label: "Eastern Standard Time", want: "America/New_York"},
		{name: "canonical id passes through", label: "Europe/Rome", want: "Europe/Rome"},
		{name: "unknown label passes through", label: "Mars/Olympus_Mons", want: "Mars/Olympus_Mons"},
		{name: "empty falls back to UTC", label: "", want: "UTC"},
		{name: "utc", label: "UTC", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.Normalize(tt.label))
		})
	}
}

func TestLocation(t *testing.T) {
	t.Run("resolves normalized zone", func(t *testing.T) {
		loc, err := timezone.Location("India Standard Time")
		require.NoError(t, err)

		// Kolkata is a fixed +05:30 offset, no DST.
		at := time.Date(2025, 6, 2, 9, 0, 0, 0, loc)
		assert.Equal(t, "2025-06-02T03:30:00Z", at.UTC().Format(time.RFC3339))
	})

	t.Run("unknown zone fails", func(t *testing.T) {
		_, err := timezone.Location("Mars/Olympus_Mons")
		assert.Error(t, err)
	})
}
