package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// Categories repositorio de categorías. No participa de las transacciones.
func (s *Store) Categories() CategoryRepo { return CategoryRepo{s} }

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ s *Store }

func (r CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("categories.create"); err != nil {
		return err
	}
	if _, ok := r.s.categories[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r CategoryRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	return &c, nil
}

func (r CategoryRepo) List(_ context.Context, tenantID string) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.s.categories {
		if c.TenantID == tenantID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.categories[c.ID]
	if !ok || cur.TenantID != c.TenantID {
		return domain.ErrNotFound
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r CategoryRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.categories[id]
	if !ok || cur.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

var _ repository.CategoryRepository = CategoryRepo{}
