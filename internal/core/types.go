package core

import "time"

// PlaceholderImageURL is the fallback image assigned to products created or
// imported without an image reference.
const PlaceholderImageURL = "https://t3.ftcdn.net/jpg/05/42/85/06/360_F_542850615_1B16r8qsUa5oR8zq4td8wqi911uczewS.jpg"

// DefaultActor is the attribution recorded on stock changes until a real
// auth system supplies one.
const DefaultActor = "Admin"

// Product is one inventory item row.
//
// Name is unique across all live products and is stored trimmed. Price is an
// integer in the currency's display unit. Image is always a URI; binary image
// data never reaches this layer.
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Price    int64  `json:"price"`
	Stock    int64  `json:"stock"`
	Image    string `json:"image"`
}

// HistoryRecord is an immutable log entry for one stock-quantity transition.
//
// Records are appended by the Recorder and never mutated. ChangeDate is set
// server-side at write time. ProductID is not guaranteed to resolve: deleting
// a product leaves its history behind.
type HistoryRecord struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	OldQuantity int64     `json:"old_quantity"`
	NewQuantity int64     `json:"new_quantity"`
	ChangeDate  time.Time `json:"change_date"`
	UserInfo    string    `json:"user_info"`
}

// RowError describes a single import row that could not be processed, with
// the raw row values for the user to inspect.
type RowError struct {
	Row    map[string]string `json:"row"`
	Reason string            `json:"reason"`
}

// ImportReport is the outcome of one import batch. It exists only for the
// duration of the call and is handed back to the API layer as-is.
type ImportReport struct {
	BatchID    string     `json:"batchId"`
	Added      int        `json:"added"`
	Skipped    int        `json:"skipped"`
	Duplicates []string   `json:"duplicates"`
	Errors     []RowError `json:"errors"`
}

// CreateProductInput carries raw form values for product creation.
//
// Price and Stock arrive as strings because the admin form posts multipart
// fields; the service coerces them. Image is an already-resolved URI from the
// upload collaborator, or empty for the placeholder.
type CreateProductInput struct {
	Name     string
	Category string
	Brand    string
	Price    string
	Stock    string
	Image    string
}

// UpdateProductInput is a full-field replace of a product's editable fields.
// The image is not touched by the update path.
type UpdateProductInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Price    int64  `json:"price"`
	Stock    int64  `json:"stock"`
}
