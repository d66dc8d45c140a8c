package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obratech/contracts-service/internal/model"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) List(ctx context.Context, onlyActive bool) ([]model.ContractTemplate, error) {
	query := `
		SELECT id, name, category, body, active, created_at
		FROM contract_templates
	`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY created_at DESC`

	var templates []model.ContractTemplate
	if err := r.db.WithContext(ctx).Raw(query).Scan(&templates).Error; err != nil {
		return nil, err
	}

	for i := range templates {
		vars, err := r.listVariables(ctx, templates[i].ID)
		if err != nil {
			return nil, err
		}
		templates[i].Variables = vars
	}
	return templates, nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ContractTemplate, error) {
	var template model.ContractTemplate
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, category, body, active, created_at
		FROM contract_templates
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&template).Error
	if err != nil {
		return nil, err
	}
	if template.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	vars, err := r.listVariables(ctx, id)
	if err != nil {
		return nil, err
	}
	template.Variables = vars
	return &template, nil
}

func (r *TemplateRepository) Create(ctx context.Context, template model.ContractTemplate) (*model.ContractTemplate, error) {
	var saved model.ContractTemplate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Raw(`
			INSERT INTO contract_templates (name, category, body, active)
			VALUES (?, ?, ?, ?)
			RETURNING id, name, category, body, active, created_at
		`, template.Name, template.Category, template.Body, template.Active).Scan(&saved).Error
		if err != nil {
			return err
		}
		return insertVariables(tx, saved.ID, template.Variables)
	})
	if err != nil {
		return nil, err
	}

	vars, err := r.listVariables(ctx, saved.ID)
	if err != nil {
		return nil, err
	}
	saved.Variables = vars
	return &saved, nil
}

// Update rewrites the template and replaces its variable set wholesale; the
// variables form is always submitted as a complete ordered list.
func (r *TemplateRepository) Update(ctx context.Context, template model.ContractTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(`
			UPDATE contract_templates
			SET name = ?, category = ?, body = ?, active = ?
			WHERE id = ?
		`, template.Name, template.Category, template.Body, template.Active, template.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Exec(`DELETE FROM template_variables WHERE template_id = ?`, template.ID).Error; err != nil {
			return err
		}
		return insertVariables(tx, template.ID, template.Variables)
	})
}

func (r *TemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM contract_templates WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TemplateRepository) listVariables(ctx context.Context, templateID uuid.UUID) ([]model.TemplateVariable, error) {
	var vars []model.TemplateVariable
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, template_id, position, name, label, kind, required
		FROM template_variables
		WHERE template_id = ?
		ORDER BY position ASC
	`, templateID).Scan(&vars).Error
	if err != nil {
		return nil, err
	}
	if vars == nil {
		vars = []model.TemplateVariable{}
	}
	return vars, nil
}

func insertVariables(tx *gorm.DB, templateID uuid.UUID, vars []model.TemplateVariable) error {
	for i, v := range vars {
		err := tx.Exec(`
			INSERT INTO template_variables (template_id, position, name, label, kind, required)
			VALUES (?, ?, ?, ?, ?, ?)
		`, templateID, i, v.Name, v.Label, v.Kind, v.Required).Error
		if err != nil {
			return err
		}
	}
	return nil
}
