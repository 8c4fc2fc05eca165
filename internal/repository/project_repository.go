package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"project-config-api/internal/domain"
)

// ProjectRepository reads construction projects. Projects are maintained elsewhere.
type ProjectRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ConstructionProject, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type projectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

// FindByID loads a project with its rooms and bathrooms
func (r *projectRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ConstructionProject, error) {
	var project domain.ConstructionProject
	if err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Preload("Bathrooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("room_number ASC")
		}).
		Where("id = ?", id).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Exists reports whether a project exists
func (r *projectRepositoryImpl) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.ConstructionProject{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
