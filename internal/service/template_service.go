package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obratech/contracts-service/internal/document"
	"github.com/obratech/contracts-service/internal/model"
	"github.com/obratech/contracts-service/internal/render"
	"github.com/obratech/contracts-service/internal/repository"
)

type TemplateService struct {
	templates *repository.TemplateRepository
}

func NewTemplateService(templates *repository.TemplateRepository) *TemplateService {
	return &TemplateService{templates: templates}
}

type TemplateInput struct {
	Name      string
	Category  string
	Body      string
	Variables []model.TemplateVariable
	Active    bool
	Principal model.Principal
}

func (s *TemplateService) List(ctx context.Context, onlyActive bool) ([]model.ContractTemplate, error) {
	return s.templates.List(ctx, onlyActive)
}

func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*model.ContractTemplate, error) {
	template, err := s.templates.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) Create(ctx context.Context, input TemplateInput) (*model.ContractTemplate, error) {
	if !input.Principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if err := validateTemplateInput(input); err != nil {
		return nil, err
	}
	return s.templates.Create(ctx, model.ContractTemplate{
		Name:      strings.TrimSpace(input.Name),
		Category:  strings.TrimSpace(input.Category),
		Body:      input.Body,
		Variables: input.Variables,
		Active:    input.Active,
	})
}

func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, input TemplateInput) (*model.ContractTemplate, error) {
	if !input.Principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if err := validateTemplateInput(input); err != nil {
		return nil, err
	}

	err := s.templates.Update(ctx, model.ContractTemplate{
		ID:        id,
		Name:      strings.TrimSpace(input.Name),
		Category:  strings.TrimSpace(input.Category),
		Body:      input.Body,
		Variables: input.Variables,
		Active:    input.Active,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID, principal model.Principal) error {
	if !principal.CanWrite() {
		return ErrPermissionDenied
	}
	if err := s.templates.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Preview renders the template body with whatever values are supplied.
// Incomplete value sets are fine here; missing variables show up as their
// bracketed labels.
func (s *TemplateService) Preview(ctx context.Context, id uuid.UUID, values map[string]string) (string, error) {
	template, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return render.Render(template.Body, template.Variables, values), nil
}

// GenerateDocument renders the template into a downloadable document. Unlike
// Preview, generation refuses to proceed while required variables are blank.
func (s *TemplateService) GenerateDocument(ctx context.Context, id uuid.UUID, values map[string]string) (*DocumentResult, error) {
	template, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !template.Active {
		return nil, fmt.Errorf("%w: template is inactive", ErrInvalidInput)
	}

	if missing := render.MissingRequired(template.Variables, values); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingVariables, strings.Join(missing, ", "))
	}

	body := render.Render(template.Body, template.Variables, values)
	markup := document.AssembleFromTemplate(*template, body, time.Now())
	return &DocumentResult{
		FileName:    document.FileName(template.Name, template.Category, "html"),
		ContentType: "text/html; charset=utf-8",
		Content:     []byte(markup),
	}, nil
}

func validateTemplateInput(input TemplateInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(input.Variables))
	for _, v := range input.Variables {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			return fmt.Errorf("%w: variable name is required", ErrInvalidInput)
		}
		if strings.ContainsAny(name, "{} \t\n") {
			return fmt.Errorf("%w: variable name %q must not contain braces or whitespace", ErrInvalidInput, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate variable name %q", ErrInvalidInput, name)
		}
		seen[name] = struct{}{}
		if strings.TrimSpace(v.Label) == "" {
			return fmt.Errorf("%w: variable %q label is required", ErrInvalidInput, name)
		}
		if !v.Kind.Valid() {
			return fmt.Errorf("%w: variable %q has invalid kind", ErrInvalidInput, name)
		}
	}
	return nil
}
