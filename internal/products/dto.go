package products

import "github.com/shopspring/decimal"

// Filters narrows the catalog listing.
type Filters struct {
	Category        *string
	IncludeInactive bool
}

// CreateInput carries a new catalog entry.
type CreateInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int
	Category    *string
}

// UpdateInput carries a partial product edit; nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Category    *string
	IsActive    *bool
}
