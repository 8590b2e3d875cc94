package personas

import (
	"context"
	"errors"

	"github.com/sim-feed/user-service/internal/apperr"
	"github.com/sim-feed/user-service/internal/model"
	"gorm.io/gorm"
)

type Store interface {
	FindByID(ctx context.Context, id int64) (*model.Persona, error)
	List(ctx context.Context) ([]model.Persona, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) FindByID(ctx context.Context, id int64) (*model.Persona, error) {
	var persona model.Persona
	if err := s.db.WithContext(ctx).First(&persona, "persona_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &persona, nil
}

func (s *gormStore) List(ctx context.Context) ([]model.Persona, error) {
	var personas []model.Persona
	if err := s.db.WithContext(ctx).Order("persona_id").Find(&personas).Error; err != nil {
		return nil, err
	}
	return personas, nil
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*model.Persona, error) {
	persona, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Persona not found")
		}
		return nil, err
	}
	return persona, nil
}

func (s *Service) List(ctx context.Context) ([]model.Persona, error) {
	return s.store.List(ctx)
}
