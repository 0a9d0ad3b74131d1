package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// RequiredField reports a missing value for the given json field.
func RequiredField(field string) *AppError {
	return New(
		CodeInvalidInput,
		formatFieldName(field)+" is required",
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": field})
}

// InvalidField reports a malformed value for the given json field.
func InvalidField(field string) *AppError {
	return New(
		CodeInvalidInput,
		formatFieldName(field)+" is invalid",
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": field})
}

// FieldRule reports a value that breaks a business rule, e.g. "must not be in the future".
func FieldRule(field, rule string) *AppError {
	return New(
		CodeInvalidInput,
		formatFieldName(field)+" "+rule,
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": field})
}
