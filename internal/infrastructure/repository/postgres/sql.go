package postgres

import (
	"database/sql"
	"errors"
)

// isNotFound distinguishes an empty result from a real query failure;
// the repositories report misses as (zero, false, nil) rather than as
// errors.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
