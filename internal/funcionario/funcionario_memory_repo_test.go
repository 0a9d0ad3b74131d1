package funcionario_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"hr-service/internal/funcionario"
	funcionarioerrors "hr-service/internal/funcionario/errors"
	"hr-service/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newRecord(t *testing.T, id uuid.UUID) *funcionario.Funcionario {
	t.Helper()
	f, err := funcionario.NewFuncionario(
		id,
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		"TI",
		"Developer",
		decimal.RequireFromString("5000.00"),
	)
	assert.NoError(t, err)
	return f
}

func TestMemoryRepository_SaveStampsTimestamps(t *testing.T) {
	ctx := context.Background()
	repo := funcionario.NewMemoryRepository()
	id := uuid.New()

	saved, err := repo.Save(ctx, newRecord(t, id))
	assert.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)
	createdAt := saved.CreatedAt

	time.Sleep(time.Millisecond)
	saved.Role = "Lead"
	updated, err := repo.Save(ctx, saved)
	assert.NoError(t, err)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(createdAt))

	found, err := repo.FindByExternalID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "Lead", found.Role)
}

func TestMemoryRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := funcionario.NewMemoryRepository()
	first, second := uuid.New(), uuid.New()

	_, err := repo.Save(ctx, newRecord(t, first))
	assert.NoError(t, err)
	_, err = repo.Save(ctx, newRecord(t, second))
	assert.NoError(t, err)

	exists, err := repo.ExistsByExternalID(ctx, first)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByExternalID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.False(t, exists)

	list, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	if assert.Len(t, list, 2) {
		assert.Equal(t, first, list[0].PessoaID)
		assert.Equal(t, second, list[1].PessoaID)
	}

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, funcionarioerrors.ErrFuncionarioNotFound)

	byExternal, err := repo.FindByExternalID(ctx, second)
	assert.NoError(t, err)
	assert.Equal(t, second, byExternal.PessoaID)

	_, err = repo.FindByExternalID(ctx, uuid.New())
	assert.ErrorIs(t, err, funcionarioerrors.ErrFuncionarioNotFound)

	assert.NoError(t, repo.DeleteByID(ctx, first))
	assert.NoError(t, repo.DeleteByID(ctx, first), "deleting twice is a no-op")

	_, err = repo.FindByID(ctx, first)
	assert.ErrorIs(t, err, funcionarioerrors.ErrFuncionarioNotFound)
}

func TestMemoryRepository_FoundRecordIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := funcionario.NewMemoryRepository()
	id := uuid.New()

	_, err := repo.Save(ctx, newRecord(t, id))
	assert.NoError(t, err)

	found, err := repo.FindByID(ctx, id)
	assert.NoError(t, err)
	found.Deactivate()

	again, err := repo.FindByID(ctx, id)
	assert.NoError(t, err)
	assert.True(t, again.Active, "unsaved changes must not leak into the store")
}

func TestMemoryRepository_UpdateMissing(t *testing.T) {
	repo := funcionario.NewMemoryRepository()
	stored := storedFuncionario(uuid.New(), true)

	_, err := repo.Save(context.Background(), stored)
	assert.ErrorIs(t, err, funcionarioerrors.ErrFuncionarioNotFound)
}

// Service over the memory store: the lifecycle properties end to end.

func newMemoryService() funcionario.Service {
	return funcionario.NewService(nil, funcionario.NewMemoryRepository(), nil)
}

func TestLifecycle_CreateThenGetRoundTrips(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()
	id := uuid.New()

	created, err := svc.Create(ctx, validRequest(id))
	assert.NoError(t, err)

	got, err := svc.GetByID(ctx, id.String())
	assert.NoError(t, err)

	assert.Equal(t, created.PessoaID, got.PessoaID)
	assert.Equal(t, "2023-01-01", got.AdmissionDate)
	assert.Equal(t, created.Department, got.Department)
	assert.Equal(t, created.Role, got.Role)
	assert.True(t, created.Salary.Equal(got.Salary))
	assert.True(t, got.Active)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestLifecycle_DuplicateCreateKeepsFirstRecord(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()
	id := uuid.New()

	_, err := svc.Create(ctx, validRequest(id))
	assert.NoError(t, err)

	second := validRequest(id)
	second.Department = "RH"
	_, err = svc.Create(ctx, second)

	var appErr *apperror.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
	}

	got, err := svc.GetByID(ctx, id.String())
	assert.NoError(t, err)
	assert.Equal(t, "TI", got.Department)

	list, err := svc.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestLifecycle_DeactivateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()
	id := uuid.New()

	_, err := svc.Create(ctx, validRequest(id))
	assert.NoError(t, err)

	first, err := svc.Deactivate(ctx, id.String())
	assert.NoError(t, err)
	assert.False(t, first.Active)

	second, err := svc.Deactivate(ctx, id.String())
	assert.NoError(t, err)
	assert.False(t, second.Active)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestLifecycle_DeleteThenGetIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()
	id := uuid.New()

	_, err := svc.Create(ctx, validRequest(id))
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, id.String()))

	_, err = svc.GetByID(ctx, id.String())
	assert.ErrorIs(t, err, funcionarioerrors.ErrFuncionarioNotFound)

	err = svc.Delete(ctx, id.String())
	assert.ErrorIs(t, err, funcionarioerrors.ErrFuncionarioNotFound)
}

func TestLifecycle_ConcurrentCreatesYieldOneSuccess(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()
	id := uuid.New()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Create(ctx, validRequest(id))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperror.HasCode(err, apperror.CodeConflict):
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}
