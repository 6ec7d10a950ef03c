// Package services holds the entity services: thin orchestrators that apply
// the authorization narrowing, referential checks and cascade rules on top
// of the storage handle they are constructed with.
package services

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"soko_market/internal/apperr"
)

// ItemError reports one failed item of a batch create. Sibling items are
// never aborted by a failure.
type ItemError struct {
	Item  string `json:"item"`
	Error string `json:"error"`
}

// isUniqueViolation catches duplicate-key failures the driver did not
// translate (raw Postgres error code 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// classifyWriteErr maps a storage write failure onto the error taxonomy.
func classifyWriteErr(err error, what string) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err):
		return apperr.Wrap(apperr.Conflict, err, "%s already exists", what)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.Wrap(apperr.NotFound, err, "%s not found", what)
	default:
		return apperr.Wrap(apperr.Internal, err, "could not write %s", what)
	}
}
