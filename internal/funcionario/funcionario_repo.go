package funcionario

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=funcionario_repo.go -destination=mock/funcionario_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Save(ctx context.Context, f *Funcionario) (*Funcionario, error)
	FindByID(ctx context.Context, pessoaID uuid.UUID) (*Funcionario, error)
	FindByExternalID(ctx context.Context, pessoaID uuid.UUID) (*Funcionario, error)
	ExistsByExternalID(ctx context.Context, pessoaID uuid.UUID) (bool, error)
	FindAll(ctx context.Context) ([]Funcionario, error)
	DeleteByID(ctx context.Context, pessoaID uuid.UUID) error
}

type repository struct {
	db  *gorm.DB
	tx  *sql.Tx
	now func() time.Time
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db, now: utcNow}
}

// WithTx binds the repository to an open database/sql transaction, the same
// way gorm's own Begin swaps the statement connection pool.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	if tx == nil {
		return r
	}
	session := r.db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	session.Statement.ConnPool = tx
	return &repository{db: session, tx: tx, now: r.now}
}

// Save inserts records that were never stored and updates the rest.
// Inserting an existing pessoa_id fails on the primary key.
func (r *repository) Save(ctx context.Context, f *Funcionario) (*Funcionario, error) {
	isNew := f.IsNew()
	f.stamp(r.now())

	db := r.db.WithContext(ctx)
	if isNew {
		if err := db.Create(f).Error; err != nil {
			f.CreatedAt, f.UpdatedAt = time.Time{}, time.Time{}
			return nil, err
		}
		return f, nil
	}

	res := db.Model(f).Select("*").Omit("pessoa_id", "created_at").Updates(f)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *repository) FindByID(ctx context.Context, pessoaID uuid.UUID) (*Funcionario, error) {
	var f Funcionario
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		// serialize read-modify-write on the same identity
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := db.First(&f, "pessoa_id = ?", pessoaID).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) FindByExternalID(ctx context.Context, pessoaID uuid.UUID) (*Funcionario, error) {
	return r.FindByID(ctx, pessoaID)
}

func (r *repository) ExistsByExternalID(ctx context.Context, pessoaID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Funcionario{}).
		Where("pessoa_id = ?", pessoaID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAll(ctx context.Context) ([]Funcionario, error) {
	var list []Funcionario
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *repository) DeleteByID(ctx context.Context, pessoaID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&Funcionario{}, "pessoa_id = ?", pessoaID).Error
}

func utcNow() time.Time {
	return time.Now().UTC()
}
