package preboardingerrors

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
	ErrInvalidReviewerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reviewer id",
		http.StatusBadRequest,
	)
	ErrInvalidStartDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid start_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrChecklistNotFound = apperror.New(
		apperror.CodeNotFound,
		"preboarding checklist not found",
		http.StatusNotFound,
	)
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"checklist item not found",
		http.StatusNotFound,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a reason is required when rejecting an item",
		http.StatusBadRequest,
	)
	ErrChecklistIncomplete = apperror.New(
		apperror.CodePreconditionFailed,
		"checklist must be completed before conversion",
		http.StatusUnprocessableEntity,
	)
	ErrChecklistAlreadyConverted = apperror.New(
		apperror.CodeConflict,
		"checklist has already been converted",
		http.StatusConflict,
	)
)
