package implementation

import (
	"context"
	"errors"

	"template-builder-be/internal/entity"
	"template-builder-be/internal/mapper"
	"template-builder-be/internal/model"
	"template-builder-be/internal/repository/contract"
	"template-builder-be/internal/repository/scope"
	"template-builder-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TemplateMapper
}

func NewTemplateRepository(db *gorm.DB) contract.TemplateRepository {
	return &TemplateRepositoryImpl{
		db:     db,
		mapper: mapper.NewTemplateMapper(),
	}
}

func (r *TemplateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TemplateRepositoryImpl) Create(ctx context.Context, template *entity.Template) error {
	m, err := r.mapper.ToModel(template)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	created, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*template = *created
	return nil
}

func (r *TemplateRepositoryImpl) Update(ctx context.Context, template *entity.Template) error {
	m, err := r.mapper.ToModel(template)
	if err != nil {
		return err
	}
	// Save writes every column, including an emptied block list
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	updated, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*template = *updated
	return nil
}

func (r *TemplateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Template{}, "id = ?", id).Error
}

func (r *TemplateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Template, error) {
	var m model.Template
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *TemplateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Template, error) {
	var models []*model.Template
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByUpdatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *TemplateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Template{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
