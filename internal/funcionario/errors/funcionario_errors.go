package funcionarioerrors

import (
	"hr-service/internal/shared/apperror"
	"net/http"
)

var (
	ErrFuncionarioNotFound = apperror.New(
		apperror.CodeNotFound,
		"Funcionario not found",
		http.StatusNotFound,
	)
	ErrFuncionarioAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A funcionario already exists for this pessoa",
		http.StatusConflict,
	)
	ErrInvalidPessoaID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid pessoa ID",
		http.StatusBadRequest,
	)
)
