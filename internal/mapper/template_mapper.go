package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"template-builder-be/internal/entity"
	"template-builder-be/internal/model"
	"template-builder-be/pkg/block"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TemplateMapper struct{}

func NewTemplateMapper() *TemplateMapper {
	return &TemplateMapper{}
}

func (m *TemplateMapper) ToEntity(t *model.Template) (*entity.Template, error) {
	if t == nil {
		return nil, nil
	}

	blocks := make([]block.Block, 0)
	if len(t.Blocks) > 0 {
		if err := json.Unmarshal(t.Blocks, &blocks); err != nil {
			return nil, fmt.Errorf("decode blocks of template %s: %w", t.Id, err)
		}
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		d := t.DeletedAt.Time
		deletedAt = &d
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Template{
		Id:        t.Id,
		UserId:    t.UserId,
		Name:      t.Name,
		Subject:   t.Subject,
		Blocks:    blocks,
		CreatedAt: t.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: t.DeletedAt.Valid,
	}, nil
}

func (m *TemplateMapper) ToModel(t *entity.Template) (*model.Template, error) {
	if t == nil {
		return nil, nil
	}

	blocks := t.Blocks
	if blocks == nil {
		blocks = []block.Block{}
	}
	raw, err := json.Marshal(blocks)
	if err != nil {
		return nil, fmt.Errorf("encode blocks of template %s: %w", t.Id, err)
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Template{
		Id:        t.Id,
		UserId:    t.UserId,
		Name:      t.Name,
		Subject:   t.Subject,
		Blocks:    datatypes.JSON(raw),
		CreatedAt: t.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}, nil
}

func (m *TemplateMapper) ToEntities(templates []*model.Template) ([]*entity.Template, error) {
	entities := make([]*entity.Template, len(templates))
	for i, t := range templates {
		e, err := m.ToEntity(t)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
