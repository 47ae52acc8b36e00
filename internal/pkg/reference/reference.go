// Package reference issues human-readable booking references and unguessable
// cancellation tokens.
package reference

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
)

// maxAttempts bounds the uniqueness loop. With a 24-bit suffix (16M values)
// a collision streak this long means the probe itself is broken.
const maxAttempts = 32

// ExistsFunc reports whether a candidate reference is already taken for the
// business being booked.
type ExistsFunc func(ctx context.Context, referenceNumber string) (bool, error)

// NewNumber generates a reference of the form {SLUG}-{YEAR}-{6 hex chars},
// retrying with a fresh random suffix until the uniqueness probe passes.
func NewNumber(ctx context.Context, slug string, now time.Time, exists ExistsFunc) (string, error) {
	prefix := fmt.Sprintf("%s-%d", strings.ToUpper(slug), now.Year())

	for attempt := 0; attempt < maxAttempts; attempt++ {
		suffix := make([]byte, 3)
		if _, err := rand.Read(suffix); err != nil {
			return "", errs.Wrap(err, "failed to read random suffix")
		}
		candidate := fmt.Sprintf("%s-%s", prefix, strings.ToUpper(hex.EncodeToString(suffix)))

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", errs.Wrap(err, "reference uniqueness probe failed")
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", errs.ErrReferenceExhausted
}

// NewCancelToken returns 32 bytes of cryptographically secure randomness,
// hex-encoded. Possession of the token authorizes lookup and cancellation of
// the appointment it belongs to.
func NewCancelToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(err, "failed to read random token")
	}
	return hex.EncodeToString(buf), nil
}
