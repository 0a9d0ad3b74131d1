package funcionario

import (
	"errors"
	"strings"

	funcionarioerrors "hr-service/internal/funcionario/errors"
	"hr-service/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation    = "23505"
	funcionarioPKeyIndex = "funcionarios_pkey"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return funcionarioerrors.ErrFuncionarioNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return funcionarioerrors.ErrFuncionarioAlreadyExists
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, funcionarioPKeyIndex) {
		return funcionarioerrors.ErrFuncionarioAlreadyExists
	}

	return err
}
