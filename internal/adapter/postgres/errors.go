package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"ad-rewards/internal/core/domain"
)

const (
	codeUniqueViolation   = "23505"
	codeLockNotAvailable  = "55P03"
	campaignNameUniqueKey = "campaigns_name_key"
)

// translateError maps driver errors onto domain errors. Anything it does
// not recognise is returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeLockNotAvailable:
			return fmt.Errorf("%w: %s", domain.ErrLockTimeout, pgErr.Message)
		case codeUniqueViolation:
			if pgErr.ConstraintName == campaignNameUniqueKey {
				return domain.NewValidationError("duplicate name")
			}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrLockTimeout, err)
	}
	return err
}
