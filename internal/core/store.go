package core

import "context"

// Store is the persistence port for products and their stock history.
//
// Implementations must provide single-statement atomicity and enforce the
// unique constraint on product name, surfacing violations as *ConflictError.
// Faults that make further calls pointless (lost connection) are wrapped in
// *TransientError.
//
// Lookups return (nil, nil) when the row is absent; the service layer decides
// whether absence is an error.
type Store interface {
	// GetProduct returns the product with the given id, or nil if absent.
	GetProduct(ctx context.Context, id int64) (*Product, error)

	// GetProductByName returns the product with the exact given name, or nil.
	GetProductByName(ctx context.Context, name string) (*Product, error)

	// InsertProduct persists a new product and returns its assigned id.
	InsertProduct(ctx context.Context, p *Product) (int64, error)

	// UpdateProduct replaces the editable fields of the product with the
	// given id and returns the number of rows affected.
	UpdateProduct(ctx context.Context, id int64, fields UpdateProductInput) (int64, error)

	// DeleteProduct removes the product row and returns rows affected.
	// History rows referencing the product are left in place.
	DeleteProduct(ctx context.Context, id int64) (int64, error)

	// ListProducts returns all products in unspecified order.
	ListProducts(ctx context.Context) ([]Product, error)

	// AppendHistory persists one immutable stock-change record and returns
	// its assigned id.
	AppendHistory(ctx context.Context, rec *HistoryRecord) (int64, error)

	// ListHistory returns all history records for a product ordered by
	// change date descending. An unknown product id yields an empty slice.
	ListHistory(ctx context.Context, productID int64) ([]HistoryRecord, error)
}

// ListCache is an optional read cache for the full product list. A nil cache
// is valid; the service skips caching entirely.
type ListCache interface {
	// GetProducts returns the cached list and whether it was present.
	GetProducts(ctx context.Context) ([]Product, bool)

	// SetProducts stores the list for subsequent reads.
	SetProducts(ctx context.Context, products []Product)

	// Invalidate drops the cached list after any mutation.
	Invalidate(ctx context.Context)
}
