package funcionario

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuncionarioRequest is shared by create and update. Binding only checks the
// JSON shape; field rules run in the service so the first violation in
// precedence order is the one reported.
type FuncionarioRequest struct {
	PessoaID      string           `json:"pessoaId"`
	AdmissionDate string           `json:"admissionDate"`
	Department    string           `json:"department"`
	Role          string           `json:"role"`
	Salary        *decimal.Decimal `json:"salary"`
}

type FuncionarioResponse struct {
	PessoaID      string          `json:"pessoaId"`
	AdmissionDate string          `json:"admissionDate"`
	Department    string          `json:"department"`
	Role          string          `json:"role"`
	Salary        decimal.Decimal `json:"salary"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
