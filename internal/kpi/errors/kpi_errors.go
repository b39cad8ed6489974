package kpierrors

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
	ErrInvalidParticipantID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid participant id",
		http.StatusBadRequest,
	)
	ErrParticipantNotFound = apperror.New(
		apperror.CodeNotFound,
		"cycle participant not found",
		http.StatusNotFound,
	)
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"kpi assignment not found",
		http.StatusNotFound,
	)
	ErrInvalidWeight = apperror.New(
		apperror.CodeInvalidInput,
		"weight must be greater than zero",
		http.StatusBadRequest,
	)
)
