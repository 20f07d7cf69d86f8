package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	model "quizbuilder_backend/internals/features/quizzes/model"
)

// GormRepository stores quizzes through GORM (postgres or mysql).
type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) Create(ctx context.Context, m *model.QuizModel) error {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return errors.Wrap(err, "create quiz")
	}
	return nil
}

func (r *GormRepository) List(ctx context.Context) ([]model.QuizModel, error) {
	var out []model.QuizModel
	if err := r.DB.WithContext(ctx).
		Order("quiz_created_at DESC").
		Order("quiz_id DESC").
		Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list quizzes")
	}
	return out, nil
}

func (r *GormRepository) Get(ctx context.Context, id uuid.UUID) (*model.QuizModel, error) {
	var m model.QuizModel
	if err := r.DB.WithContext(ctx).First(&m, "quiz_id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, errors.Wrapf(err, "get quiz %s", id)
	}
	return &m, nil
}

func (r *GormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("quiz_id = ?", id.String()).Delete(&model.QuizModel{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete quiz %s", id)
	}
	if res.RowsAffected == 0 {
		return ErrQuizNotFound
	}
	return nil
}

func (r *GormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	return sqlDB.PingContext(ctx)
}
