package trainingerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidScheduledAt = apperror.New(
		apperror.CodeInvalidInput,
		"invalid scheduled_at, expected RFC3339 timestamp",
		http.StatusBadRequest,
	)
	ErrSessionNotFound = apperror.New(
		apperror.CodeNotFound,
		"training session not found",
		http.StatusNotFound,
	)
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"waitlist entry not found",
		http.StatusNotFound,
	)
	ErrAlreadyOnWaitlist = apperror.New(
		apperror.CodeConflict,
		"employee is already on this session's waitlist",
		http.StatusConflict,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
)
