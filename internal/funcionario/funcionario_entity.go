package funcionario

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// MinSalary is the smallest accepted salary.
var MinSalary = decimal.New(1, -2)

type Funcionario struct {
	PessoaID      uuid.UUID       `gorm:"column:pessoa_id;type:uuid;primaryKey"`
	AdmissionDate time.Time       `gorm:"column:data_admissao;type:date;not null"`
	Department    string          `gorm:"column:setor;size:100;not null"`
	Role          string          `gorm:"column:cargo;size:100;not null"`
	Salary        decimal.Decimal `gorm:"column:salario;type:numeric(15,2);not null"`
	Active        bool            `gorm:"column:ativo;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Funcionario) TableName() string {
	return "funcionarios"
}

// NewFuncionario builds an active record that has not been persisted yet.
func NewFuncionario(
	pessoaID uuid.UUID,
	admissionDate time.Time,
	department, role string,
	salary decimal.Decimal,
) (*Funcionario, error) {
	f := &Funcionario{
		PessoaID:      pessoaID,
		AdmissionDate: admissionDate,
		Department:    strings.TrimSpace(department),
		Role:          strings.TrimSpace(role),
		Salary:        salary,
		Active:        true,
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// RestoreFuncionario rebuilds a stored record with explicit timestamps.
func RestoreFuncionario(
	pessoaID uuid.UUID,
	admissionDate time.Time,
	department, role string,
	salary decimal.Decimal,
	active bool,
	createdAt, updatedAt time.Time,
) *Funcionario {
	return &Funcionario{
		PessoaID:      pessoaID,
		AdmissionDate: admissionDate,
		Department:    department,
		Role:          role,
		Salary:        salary,
		Active:        active,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

func (f *Funcionario) ApplyUpdate(admissionDate time.Time, department, role string, salary decimal.Decimal) error {
	next := *f
	next.AdmissionDate = admissionDate
	next.Department = strings.TrimSpace(department)
	next.Role = strings.TrimSpace(role)
	next.Salary = salary
	if err := next.validate(); err != nil {
		return err
	}
	*f = next
	return nil
}

// Deactivate is terminal; calling it again keeps the record inactive.
func (f *Funcionario) Deactivate() {
	f.Active = false
}

// IsNew reports whether the record has never been saved.
func (f *Funcionario) IsNew() bool {
	return f.CreatedAt.IsZero()
}

// stamp applies the persistence timestamp rules: createdAt once, updatedAt always.
func (f *Funcionario) stamp(now time.Time) {
	if f.IsNew() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
}

func (f *Funcionario) validate() error {
	return validateFields(fields{
		pessoaID:      f.PessoaID,
		admissionDate: f.AdmissionDate,
		department:    f.Department,
		role:          f.Role,
		salary:        &f.Salary,
	})
}
