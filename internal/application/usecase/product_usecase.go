package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// StockLedger alta de existencias iniciales dentro de la misma transacción del producto.
type StockLedger interface {
	RecordInTx(ctx context.Context, tx repository.TxRepos, in inventory.MovementInput) (*entity.InventoryMovement, error)
}

// ProductUseCase casos de uso CRUD para productos. La cantidad solo cambia vía movimientos.
type ProductUseCase struct {
	txRunner   repository.TxRunner
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	ledger     StockLedger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner repository.TxRunner, repo repository.ProductRepository, categories repository.CategoryRepository, ledger StockLedger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, categories: categories, ledger: ledger}
}

// Create crea un producto o servicio. El stock inicial entra como movimiento "initial".
func (uc *ProductUseCase) Create(ctx context.Context, tenantID, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !entity.ValidProductType(in.Type) {
		return nil, domain.Validation("tipo inválido, use product o service")
	}
	if err := nonNegative(in.SalePrice, in.PublicPrice, in.Cost); err != nil {
		return nil, err
	}
	if in.CategoryID != "" {
		if err := uc.requireCategory(ctx, tenantID, in.CategoryID); err != nil {
			return nil, err
		}
	}
	withStock := in.InitialStock != nil && !in.InitialStock.IsZero()
	if withStock {
		if in.Type == entity.ProductTypeService {
			return nil, domain.Validation("los servicios no manejan inventario")
		}
		if in.InitialStock.IsNegative() {
			return nil, domain.Validation("el stock inicial no puede ser negativo")
		}
		if err := domain.CheckQuantity("initial_stock", *in.InitialStock); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		CategoryID:  in.CategoryID,
		SKU:         strings.TrimSpace(in.SKU),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Type:        in.Type,
		SalePrice:   in.SalePrice,
		PublicPrice: in.PublicPrice,
		Cost:        in.Cost,
		Quantity:    decimal.Zero,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		if err := tx.Products.Create(ctx, product); err != nil {
			return err
		}
		if !withStock {
			return nil
		}
		mov, err := uc.ledger.RecordInTx(ctx, tx, inventory.MovementInput{
			TenantID:      tenantID,
			ActorID:       actorID,
			ProductID:     product.ID,
			Type:          entity.MovementIn,
			Quantity:      *in.InitialStock,
			ReferenceKind: entity.RefInitial,
			ReferenceID:   product.ID,
			Notes:         "Stock inicial",
		})
		if err != nil {
			return err
		}
		product.Quantity = mov.BalanceAfter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del tenant.
func (uc *ProductUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto")
	}
	return toProductResponse(product), nil
}

// Update actualiza datos de catálogo. No permite modificar cantidad ni tipo.
func (uc *ProductUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto")
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			if err := uc.requireCategory(ctx, tenantID, *in.CategoryID); err != nil {
				return nil, err
			}
		}
		product.CategoryID = *in.CategoryID
	}
	if in.SKU != nil {
		product.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.PublicPrice != nil {
		product.PublicPrice = *in.PublicPrice
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if err := nonNegative(product.SalePrice, product.PublicPrice, product.Cost); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos del tenant con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, tenantID string, f repository.ProductFilter) (*dto.ProductListResponse, error) {
	f.Limit, f.Offset = dto.ClampPage(f.Limit, f.Offset)
	list, err := uc.repo.List(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// Delete desactiva el producto; el historial de órdenes y movimientos lo sigue referenciando.
func (uc *ProductUseCase) Delete(ctx context.Context, tenantID, id string) error {
	inactive := false
	_, err := uc.Update(ctx, tenantID, id, dto.UpdateProductRequest{IsActive: &inactive})
	return err
}

func (uc *ProductUseCase) requireCategory(ctx context.Context, tenantID, id string) error {
	c, err := uc.categories.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NotFound("categoría")
	}
	return nil
}

func nonNegative(values ...decimal.Decimal) error {
	for _, v := range values {
		if v.IsNegative() {
			return domain.Validation("los precios y costos no pueden ser negativos")
		}
		if err := domain.CheckMoney("precio", v); err != nil {
			return err
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		CategoryID:  p.CategoryID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Type:        p.Type,
		SalePrice:   p.SalePrice,
		PublicPrice: p.PublicPrice,
		Cost:        p.Cost,
		Quantity:    p.Quantity,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
