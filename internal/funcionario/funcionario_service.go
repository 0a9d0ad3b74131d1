package funcionario

import (
	"context"
	"database/sql"
	"time"

	"hr-service/internal/events"
	funcionarioerrors "hr-service/internal/funcionario/errors"
	"hr-service/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const listFlightKey = "funcionarios:all"

//go:generate mockgen -source=funcionario_service.go -destination=mock/funcionario_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req FuncionarioRequest) (FuncionarioResponse, error)
	GetAll(ctx context.Context) ([]FuncionarioResponse, error)
	GetByID(ctx context.Context, pessoaID string) (FuncionarioResponse, error)
	Update(ctx context.Context, pessoaID string, req FuncionarioRequest) (FuncionarioResponse, error)
	Delete(ctx context.Context, pessoaID string) error
	Deactivate(ctx context.Context, pessoaID string) (FuncionarioResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	publisher EventPublisher
	sf        *singleflight.Group
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires the lifecycle service. db may be nil for stores without
// database/sql transactions (memory); publisher may be nil to skip events.
func NewService(db *sql.DB, repo Repository, publisher EventPublisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("funcionario.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("funcionario.service")
	}
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	return &service{
		db:        db,
		repo:      repo,
		publisher: publisher,
		sf:        &singleflight.Group{},
		now:       utcNow,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req FuncionarioRequest) (FuncionarioResponse, error) {
	log := s.log(ctx)
	log.Debug("create funcionario requested", zap.String("pessoa_id", req.PessoaID))

	in, err := parseRequest(req, s.now())
	if err != nil {
		log.Warn("create funcionario validation failed", zap.Error(err))
		return FuncionarioResponse{}, err
	}

	var saved *Funcionario
	err = s.inTx(ctx, func(qtx Repository) error {
		exists, err := qtx.ExistsByExternalID(ctx, in.pessoaID)
		if err != nil {
			log.Error("create funcionario exists check failed", zap.Error(err))
			return mapRepositoryError(err)
		}
		if exists {
			log.Warn("create funcionario duplicate", zap.String("pessoa_id", in.pessoaID.String()))
			return funcionarioerrors.ErrFuncionarioAlreadyExists
		}

		f, err := NewFuncionario(in.pessoaID, in.admissionDate, in.department, in.role, *in.salary)
		if err != nil {
			return err
		}

		saved, err = qtx.Save(ctx, f)
		if err != nil {
			log.Error("create funcionario persist failed", zap.Error(err))
			return mapRepositoryError(err)
		}
		return nil
	})
	if err != nil {
		return FuncionarioResponse{}, err
	}

	s.publishState(ctx, events.FuncionarioCreated, saved)
	log.Info("create funcionario success", zap.String("pessoa_id", saved.PessoaID.String()))

	return mapToResponse(*saved), nil
}

func (s *service) GetAll(ctx context.Context) ([]FuncionarioResponse, error) {
	log := s.log(ctx)
	log.Debug("get all funcionarios requested")

	// concurrent list calls share one store round trip; nothing is kept afterwards.
	// The query must outlive a cancelled leader since followers wait on it.
	v, err, shared := s.sf.Do(listFlightKey, func() (any, error) {
		list, err := s.repo.FindAll(context.WithoutCancel(ctx))
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		return mapToListResponse(list), nil
	})
	if err != nil {
		log.Error("get all funcionarios failed", zap.Error(err))
		return nil, err
	}

	resp := v.([]FuncionarioResponse)
	if shared {
		// callers must not alias the same backing array
		resp = append([]FuncionarioResponse(nil), resp...)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, pessoaID string) (FuncionarioResponse, error) {
	log := s.log(ctx)
	log.Debug("get funcionario by id requested", zap.String("pessoa_id", pessoaID))

	id, err := parsePessoaID(pessoaID)
	if err != nil {
		return FuncionarioResponse{}, err
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Warn("get funcionario by id failed", zap.String("pessoa_id", pessoaID), zap.Error(err))
		return FuncionarioResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*f), nil
}

func (s *service) Update(ctx context.Context, pessoaID string, req FuncionarioRequest) (FuncionarioResponse, error) {
	log := s.log(ctx)
	log.Debug("update funcionario requested", zap.String("pessoa_id", pessoaID))

	id, err := parsePessoaID(pessoaID)
	if err != nil {
		return FuncionarioResponse{}, err
	}

	in, err := parseRequest(req, s.now())
	if err != nil {
		log.Warn("update funcionario validation failed", zap.Error(err))
		return FuncionarioResponse{}, err
	}

	var updated *Funcionario
	err = s.inTx(ctx, func(qtx Repository) error {
		f, err := qtx.FindByID(ctx, id)
		if err != nil {
			log.Warn("update funcionario fetch existing failed", zap.Error(err))
			return mapRepositoryError(err)
		}

		if err := f.ApplyUpdate(in.admissionDate, in.department, in.role, *in.salary); err != nil {
			return err
		}

		updated, err = qtx.Save(ctx, f)
		if err != nil {
			log.Error("update funcionario persist failed", zap.Error(err))
			return mapRepositoryError(err)
		}
		return nil
	})
	if err != nil {
		return FuncionarioResponse{}, err
	}

	s.publishState(ctx, events.FuncionarioUpdated, updated)
	log.Info("update funcionario success", zap.String("pessoa_id", pessoaID))

	return mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, pessoaID string) error {
	log := s.log(ctx)
	log.Debug("delete funcionario requested", zap.String("pessoa_id", pessoaID))

	id, err := parsePessoaID(pessoaID)
	if err != nil {
		return err
	}

	err = s.inTx(ctx, func(qtx Repository) error {
		if _, err := qtx.FindByID(ctx, id); err != nil {
			log.Warn("delete funcionario fetch existing failed", zap.Error(err))
			return mapRepositoryError(err)
		}
		if err := qtx.DeleteByID(ctx, id); err != nil {
			log.Error("delete funcionario failed", zap.Error(err))
			return mapRepositoryError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.NewDeletedEvent(id, s.now()))
	log.Info("delete funcionario success", zap.String("pessoa_id", pessoaID))
	return nil
}

func (s *service) Deactivate(ctx context.Context, pessoaID string) (FuncionarioResponse, error) {
	log := s.log(ctx)
	log.Debug("deactivate funcionario requested", zap.String("pessoa_id", pessoaID))

	id, err := parsePessoaID(pessoaID)
	if err != nil {
		return FuncionarioResponse{}, err
	}

	var deactivated *Funcionario
	err = s.inTx(ctx, func(qtx Repository) error {
		f, err := qtx.FindByID(ctx, id)
		if err != nil {
			log.Warn("deactivate funcionario fetch existing failed", zap.Error(err))
			return mapRepositoryError(err)
		}

		f.Deactivate()

		deactivated, err = qtx.Save(ctx, f)
		if err != nil {
			log.Error("deactivate funcionario persist failed", zap.Error(err))
			return mapRepositoryError(err)
		}
		return nil
	})
	if err != nil {
		return FuncionarioResponse{}, err
	}

	s.publishState(ctx, events.FuncionarioUpdated, deactivated)
	log.Info("deactivate funcionario success", zap.String("pessoa_id", pessoaID))

	return mapToResponse(*deactivated), nil
}

// inTx runs fn in one database/sql transaction. Stores without a *sql.DB
// (memory) get the plain repository; they serialize writes themselves.
func (s *service) inTx(ctx context.Context, fn func(qtx Repository) error) error {
	if s.db == nil {
		return fn(s.repo)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log(ctx).Error("begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := fn(s.repo.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.log(ctx).Error("commit failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) publishState(ctx context.Context, kind events.EventKind, f *Funcionario) {
	event := events.NewStateEvent(kind, f.PessoaID, f.Department, f.Role, f.Salary, f.Active, s.now())
	s.publish(ctx, event)
}

// publish runs after commit. A failed publish is logged and never fails
// the use case: the stored state is already durable.
func (s *service) publish(ctx context.Context, event events.FuncionarioEvent) {
	event.RequestID = contextutil.GetRequestID(ctx)

	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.log(ctx).Warn("publish funcionario event failed",
			zap.String("event_type", string(event.Type)),
			zap.String("pessoa_id", event.PessoaID),
			zap.Error(err),
		)
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func parsePessoaID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, funcionarioerrors.ErrInvalidPessoaID
	}
	return id, nil
}

func mapToResponse(f Funcionario) FuncionarioResponse {
	return FuncionarioResponse{
		PessoaID:      f.PessoaID.String(),
		AdmissionDate: f.AdmissionDate.Format(dateLayout),
		Department:    f.Department,
		Role:          f.Role,
		Salary:        f.Salary,
		Active:        f.Active,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func mapToListResponse(list []Funcionario) []FuncionarioResponse {
	res := make([]FuncionarioResponse, len(list))
	for i, f := range list {
		res[i] = mapToResponse(f)
	}
	return res
}
