package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"hr-service/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its status and code", func(t *testing.T) {
		err := apperror.RequiredField("department")

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, apperror.CodeInvalidInput, httpErr.Code)
		assert.Equal(t, "Department is required", httpErr.Message)
		assert.Equal(t, map[string]string{"field": "department"}, httpErr.Details)
	})

	t.Run("wrapped app error is still found", func(t *testing.T) {
		err := errors.Join(errors.New("context"), apperror.ErrNotFound)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("unknown error is hidden behind 500", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection refused on 10.0.0.3"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.Equal(t, "Internal server error", httpErr.Message)
		assert.NotContains(t, httpErr.Message, "10.0.0.3")
	})
}

func TestFieldLabels(t *testing.T) {
	assert.Equal(t, "Admission Date is required", apperror.RequiredField("admissionDate").Message)
	assert.Equal(t, "Pessoa Id is invalid", apperror.InvalidField("pessoaId").Message)
	assert.Equal(t, "Hire Date must not be in the future", apperror.FieldRule("hire_date", "must not be in the future").Message)
}

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	withDetails := apperror.ErrInvalidInput.WithDetails("x")

	assert.Equal(t, "x", withDetails.Details)
	assert.Nil(t, apperror.ErrInvalidInput.Details)
}

type bindTarget struct {
	PessoaID   string `json:"pessoaId" binding:"required"`
	Department string `json:"department" binding:"required"`
}

func TestMapValidationError(t *testing.T) {
	apperror.Init()

	t.Run("first missing field wins and uses json name", func(t *testing.T) {
		err := binding.Validator.ValidateStruct(&bindTarget{})

		mapped := apperror.MapValidationError(err)

		assert.True(t, apperror.HasCode(mapped, apperror.CodeInvalidInput))
		assert.Equal(t, "Pessoa Id is required", apperror.ToHTTP(mapped).Message)
	})

	t.Run("non validator error becomes generic invalid input", func(t *testing.T) {
		mapped := apperror.MapValidationError(errors.New("unexpected EOF"))

		httpErr := apperror.ToHTTP(mapped)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "Invalid input", httpErr.Message)
	})
}
