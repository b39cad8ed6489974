package departmenterrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var ErrDepartmentNotFound = apperror.New(
	apperror.CodeNotFound,
	"department not found",
	http.StatusNotFound,
)
