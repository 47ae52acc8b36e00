//go:build unit

package reference_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/reference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refPattern = regexp.MustCompile(`^GLOWBAR-2025-[0-9A-F]{6}$`)

func neverExists(context.Context, string) (bool, error) { return false, nil }

func TestNewNumber(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("format", func(t *testing.T) {
		ref, err := reference.NewNumber(context.Background(), "glowbar", now, neverExists)
		require.NoError(t, err)
		assert.Regexp(t, refPattern, ref)
	})

	t.Run("1000 references are distinct", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		exists := func(_ context.Context, ref string) (bool, error) {
			_, taken := seen[ref]
			return taken, nil
		}

		for i := 0; i < 1000; i++ {
			ref, err := reference.NewNumber(context.Background(), "glowbar", now, exists)
			require.NoError(t, err)
			require.Regexp(t, refPattern, ref)
			_, dup := seen[ref]
			require.False(t, dup)
			seen[ref] = struct{}{}
		}
		assert.Len(t, seen, 1000)
	})

	t.Run("retries past collisions", func(t *testing.T) {
		collisions := 0
		exists := func(context.Context, string) (bool, error) {
			if collisions < 3 {
				collisions++
				return true, nil
			}
			return false, nil
		}

		ref, err := reference.NewNumber(context.Background(), "glowbar", now, exists)
		require.NoError(t, err)
		assert.Regexp(t, refPattern, ref)
		assert.Equal(t, 3, collisions)
	})

	t.Run("gives up when the probe never passes", func(t *testing.T) {
		exists := func(context.Context, string) (bool, error) { return true, nil }

		_, err := reference.NewNumber(context.Background(), "glowbar", now, exists)
		assert.ErrorIs(t, err, errs.ErrReferenceExhausted)
	})

	t.Run("probe errors propagate", func(t *testing.T) {
		exists := func(context.Context, string) (bool, error) { return false, assert.AnError }

		_, err := reference.NewNumber(context.Background(), "glowbar", now, exists)
		assert.Error(t, err)
	})
}

func TestNewCancelToken(t *testing.T) {
	token, err := reference.NewCancelToken()
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{64}$`, token)

	other, err := reference.NewCancelToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
