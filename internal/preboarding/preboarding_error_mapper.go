package preboarding

import (
	"errors"
	"strings"

	preboardingerrors "go-hrm/internal/preboarding/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapConversionError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_preboarding_conversions_checklist" {
			return preboardingerrors.ErrChecklistAlreadyConverted
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_preboarding_conversions_checklist") {
		return preboardingerrors.ErrChecklistAlreadyConverted
	}

	return err
}
