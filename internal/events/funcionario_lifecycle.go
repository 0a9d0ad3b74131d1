package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const FuncionarioLifecycleTopic = "hr-events-queue"

type EventKind string

const (
	FuncionarioCreated EventKind = "FUNCIONARIO_CRIADO"
	FuncionarioUpdated EventKind = "FUNCIONARIO_ATUALIZADO"
	FuncionarioDeleted EventKind = "FUNCIONARIO_DELETADO"
)

// FuncionarioEvent is the message body sent to the lifecycle queue.
// Deleted events only carry identity and timestamp.
type FuncionarioEvent struct {
	Type       EventKind `json:"type"`
	RequestID  string    `json:"requestId,omitempty"`
	PessoaID   string    `json:"pessoaId"`
	Department string    `json:"department,omitempty"`
	Role       string    `json:"role,omitempty"`
	Salary     string    `json:"salary,omitempty"`
	Active     *bool     `json:"active,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewStateEvent(
	kind EventKind,
	pessoaID uuid.UUID,
	department, role string,
	salary decimal.Decimal,
	active bool,
	at time.Time,
) FuncionarioEvent {
	return FuncionarioEvent{
		Type:       kind,
		PessoaID:   pessoaID.String(),
		Department: department,
		Role:       role,
		Salary:     salary.String(),
		Active:     &active,
		Timestamp:  at.UTC(),
	}
}

func NewDeletedEvent(pessoaID uuid.UUID, at time.Time) FuncionarioEvent {
	return FuncionarioEvent{
		Type:      FuncionarioDeleted,
		PessoaID:  pessoaID.String(),
		Timestamp: at.UTC(),
	}
}

// DeduplicationID is identity+timestamp for domain events so redeliveries
// collapse. Ad-hoc events without identity or timestamp get a random id.
func (e FuncionarioEvent) DeduplicationID() string {
	if e.PessoaID == "" || e.Timestamp.IsZero() {
		return uuid.NewString()
	}
	return e.PessoaID + "-" + e.Timestamp.UTC().Format(time.RFC3339Nano)
}

type PublishError struct {
	Type     EventKind
	PessoaID string
	Err      error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s event for pessoa %s: %v", e.Type, e.PessoaID, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
