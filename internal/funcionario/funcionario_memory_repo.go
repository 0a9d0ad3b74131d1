package funcionario

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	funcionarioerrors "hr-service/internal/funcionario/errors"

	"github.com/google/uuid"
)

// memoryRepository keeps records in a map. The mutex plays the role of the
// store's uniqueness and row locking, so it is safe for concurrent use.
type memoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Funcionario
	order   map[uuid.UUID]int
	seq     int
	now     func() time.Time
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		records: make(map[uuid.UUID]Funcionario),
		order:   make(map[uuid.UUID]int),
		now:     utcNow,
	}
}

func (r *memoryRepository) WithTx(*sql.Tx) Repository {
	return r
}

func (r *memoryRepository) Save(_ context.Context, f *Funcionario) (*Funcionario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.records[f.PessoaID]
	if f.IsNew() {
		if exists {
			return nil, funcionarioerrors.ErrFuncionarioAlreadyExists
		}
		r.seq++
		r.order[f.PessoaID] = r.seq
	} else if !exists {
		return nil, funcionarioerrors.ErrFuncionarioNotFound
	}

	f.stamp(r.now())
	r.records[f.PessoaID] = *f
	return f, nil
}

func (r *memoryRepository) FindByID(_ context.Context, pessoaID uuid.UUID) (*Funcionario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.records[pessoaID]
	if !ok {
		return nil, funcionarioerrors.ErrFuncionarioNotFound
	}
	return &f, nil
}

func (r *memoryRepository) FindByExternalID(ctx context.Context, pessoaID uuid.UUID) (*Funcionario, error) {
	return r.FindByID(ctx, pessoaID)
}

func (r *memoryRepository) ExistsByExternalID(_ context.Context, pessoaID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[pessoaID]
	return ok, nil
}

// FindAll returns records in insertion order.
func (r *memoryRepository) FindAll(context.Context) ([]Funcionario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Funcionario, 0, len(r.records))
	for _, f := range r.records {
		list = append(list, f)
	}
	sort.Slice(list, func(i, j int) bool {
		return r.order[list[i].PessoaID] < r.order[list[j].PessoaID]
	})
	return list, nil
}

func (r *memoryRepository) DeleteByID(_ context.Context, pessoaID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, pessoaID)
	delete(r.order, pessoaID)
	return nil
}
