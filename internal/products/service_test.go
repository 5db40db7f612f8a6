package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	pkgerrors "github.com/orderflowhq/orderflow-backend/pkg/errors"
	"github.com/orderflowhq/orderflow-backend/pkg/pagination"
)

type stubProductsRepo struct {
	products map[uuid.UUID]*models.Product
}

func newStubProductsRepo() *stubProductsRepo {
	return &stubProductsRepo{products: make(map[uuid.UUID]*models.Product)}
}

func (s *stubProductsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubProductsRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	copied := *product
	s.products[product.ID] = &copied
	return product, nil
}

func (s *stubProductsRepo) Find(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, ok := s.products[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	return &copied, nil
}

func (s *stubProductsRepo) List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Product, error) {
	var out []models.Product
	for _, product := range s.products {
		if !filters.IncludeInactive && !product.IsActive {
			continue
		}
		out = append(out, *product)
	}
	return out, nil
}

func (s *stubProductsRepo) Update(ctx context.Context, productID uuid.UUID, updates map[string]any) error {
	product, ok := s.products[productID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "name":
			product.Name = value.(string)
		case "stock":
			product.Stock = value.(int)
		case "price":
			product.Price = value.(decimal.Decimal)
		case "is_active":
			product.IsActive = value.(bool)
		}
	}
	return nil
}

func TestCreateProductValidations(t *testing.T) {
	svc, err := NewService(newStubProductsRepo())
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{Price: decimal.NewFromInt(1)})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for empty name got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{Name: "Widget", Price: decimal.NewFromInt(-1)})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for negative price got %v", err)
	}
}

func TestCreateProductDefaultsToActive(t *testing.T) {
	repo := newStubProductsRepo()
	svc, _ := NewService(repo)

	product, err := svc.Create(context.Background(), CreateInput{
		Name:  "Widget",
		Price: decimal.RequireFromString("9.99"),
		Stock: 3,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !product.IsActive {
		t.Fatal("new products must start active")
	}
}

func TestDeactivateMarksInactive(t *testing.T) {
	repo := newStubProductsRepo()
	svc, _ := NewService(repo)

	product, err := svc.Create(context.Background(), CreateInput{
		Name:  "Widget",
		Price: decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Deactivate(context.Background(), product.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if repo.products[product.ID].IsActive {
		t.Fatal("expected product to be inactive")
	}
}

func TestDeactivateUnknownProduct(t *testing.T) {
	svc, _ := NewService(newStubProductsRepo())

	err := svc.Deactivate(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
}
