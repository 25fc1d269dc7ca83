package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// CategoryUseCase categorías del catálogo. El nombre es único por tenant sin distinguir mayúsculas.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, tenantID string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if err := uc.ensureUniqueName(ctx, tenantID, "", name); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Name:        name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List categorías del tenant.
func (uc *CategoryUseCase) List(ctx context.Context, tenantID string) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Update renombra o cambia la descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, tenantID, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("categoría")
	}
	name := strings.TrimSpace(in.Name)
	if err := uc.ensureUniqueName(ctx, tenantID, id, name); err != nil {
		return nil, err
	}
	c.Name = name
	c.Description = in.Description
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete elimina la categoría; los productos quedan sin categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, tenantID, id string) error {
	c, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NotFound("categoría")
	}
	return uc.repo.Delete(ctx, tenantID, id)
}

func (uc *CategoryUseCase) ensureUniqueName(ctx context.Context, tenantID, selfID, name string) error {
	if name == "" {
		return domain.Validation("el nombre es obligatorio")
	}
	list, err := uc.repo.List(ctx, tenantID)
	if err != nil {
		return err
	}
	fold := cases.Fold()
	key := fold.String(name)
	for _, c := range list {
		if c.ID != selfID && fold.String(c.Name) == key {
			return &domain.Error{Kind: domain.ErrDuplicate, Message: "ya existe una categoría con ese nombre"}
		}
	}
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}
