package funcionario

import (
	"strings"
	"time"

	"hr-service/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fields struct {
	pessoaID      uuid.UUID
	admissionDate time.Time
	department    string
	role          string
	salary        *decimal.Decimal
}

// parseRequest checks a request in precedence order: identity, admission
// date, department, role, salary. The first violation is returned.
func parseRequest(req FuncionarioRequest, today time.Time) (fields, error) {
	var out fields

	rawID := strings.TrimSpace(req.PessoaID)
	if rawID == "" {
		return out, apperror.RequiredField("pessoaId")
	}
	id, err := uuid.Parse(rawID)
	if err != nil || id == uuid.Nil {
		return out, apperror.InvalidField("pessoaId")
	}
	out.pessoaID = id

	rawDate := strings.TrimSpace(req.AdmissionDate)
	if rawDate == "" {
		return out, apperror.RequiredField("admissionDate")
	}
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return out, apperror.FieldRule("admissionDate", "must be formatted as YYYY-MM-DD")
	}
	if date.After(truncateToDate(today)) {
		return out, apperror.FieldRule("admissionDate", "must not be in the future")
	}
	out.admissionDate = date

	out.department = strings.TrimSpace(req.Department)
	out.role = strings.TrimSpace(req.Role)
	out.salary = req.Salary

	return out, validateFields(out)
}

func validateFields(f fields) error {
	if f.pessoaID == uuid.Nil {
		return apperror.RequiredField("pessoaId")
	}
	if f.admissionDate.IsZero() {
		return apperror.RequiredField("admissionDate")
	}
	if strings.TrimSpace(f.department) == "" {
		return apperror.RequiredField("department")
	}
	if strings.TrimSpace(f.role) == "" {
		return apperror.RequiredField("role")
	}
	if f.salary == nil {
		return apperror.RequiredField("salary")
	}
	if f.salary.LessThan(MinSalary) {
		return apperror.FieldRule("salary", "must be greater than zero")
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
