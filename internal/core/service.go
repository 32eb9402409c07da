package core

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

// Service provides the inventory mutation and reconciliation logic: product
// CRUD with the stock-change audit invariant, bulk import reconciliation,
// and CSV export.
type Service struct {
	store Store
	audit *Recorder
	cache ListCache // nil when caching is disabled
}

// NewService creates a Service over the given store. cache may be nil.
func NewService(store Store, cache ListCache) *Service {
	return &Service{
		store: store,
		audit: NewRecorder(store),
		cache: cache,
	}
}

// CreateProduct validates and persists a new product, returning the full
// stored record. Name, category and price are required; brand may be empty.
// Initial stock writes no history record since there is no prior value.
//
// Negative price or stock values are accepted as-is; the admin UI is trusted
// input and the original data model never clamped them.
func (s *Service) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Category == "" || input.Price == "" {
		return nil, &ValidationError{Message: "name, category, and price are required"}
	}

	price, err := strconv.ParseInt(strings.TrimSpace(input.Price), 10, 64)
	if err != nil {
		return nil, &ValidationError{Field: "price", Message: "must be an integer"}
	}

	var stock int64
	if v := strings.TrimSpace(input.Stock); v != "" {
		stock, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, &ValidationError{Field: "stock", Message: "must be an integer"}
		}
	}

	image := input.Image
	if image == "" {
		image = PlaceholderImageURL
	}

	p := &Product{
		Name:     name,
		Category: input.Category,
		Brand:    input.Brand,
		Price:    price,
		Stock:    stock,
		Image:    image,
	}

	id, err := s.store.InsertProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id

	s.invalidateCache(ctx)
	return p, nil
}

// UpdateProduct performs a full-field replace of the product's editable
// fields and returns the post-update record. If the stock value changed, a
// history record is appended; a failure of that secondary write is logged
// and swallowed, so the update still succeeds. The two writes are
// deliberately not one transaction.
func (s *Service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*Product, error) {
	existing, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	oldStock := existing.Stock

	affected, err := s.store.UpdateProduct(ctx, id, input)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNoChange
	}

	if oldStock != input.Stock {
		if _, err := s.audit.Record(ctx, id, oldStock, input.Stock, DefaultActor); err != nil {
			slog.Error("failed to record inventory history",
				"product_id", id,
				"old_quantity", oldStock,
				"new_quantity", input.Stock,
				"error", err,
			)
		}
	}

	s.invalidateCache(ctx)

	return &Product{
		ID:       id,
		Name:     input.Name,
		Category: input.Category,
		Brand:    input.Brand,
		Price:    input.Price,
		Stock:    input.Stock,
		Image:    existing.Image,
	}, nil
}

// DeleteProduct hard-deletes the product row and returns the deleted id.
// History records referencing the product remain, orphaned by design.
func (s *Service) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	affected, err := s.store.DeleteProduct(ctx, id)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrNotFound
	}

	s.invalidateCache(ctx)
	return id, nil
}

// ListProducts returns all products. Order is unspecified; callers re-sort.
func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.GetProducts(ctx); ok {
			return products, nil
		}
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}

	if s.cache != nil {
		s.cache.SetProducts(ctx, products)
	}
	return products, nil
}

// GetHistory returns the stock-change history for a product, newest first.
// A missing or history-less product yields an empty slice, not an error.
func (s *Service) GetHistory(ctx context.Context, productID int64) ([]HistoryRecord, error) {
	return s.audit.History(ctx, productID)
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
