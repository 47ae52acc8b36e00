package readstore

import (
	"errors"

	"github.com/ExactwareSolution/booktimez-app/internal/infra"

	"github.com/jackc/pgx/v5"
)

func wrapPgErr(msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return infra.WrapRepoErr(infra.KindNotFound, msg, err)
	}
	return infra.WrapRepoErr(infra.KindDBFailure, msg, err)
}
