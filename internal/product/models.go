package product

import (
	"time"

	id "prodauth/pkg/domain"
)

// Record is the immutable identity of a physical product. It is created once
// by a registered manufacturer and never updated or deleted; the content hash
// is the caller-computed tamper-evidence commitment over the descriptive
// fields.
type Record struct {
	ProductID    id.ProductID
	Name         string
	BatchNumber  string
	Origin       string
	ContentHash  id.ContentHash
	Manufacturer id.AccountID
	RegisteredAt time.Time
}

// RegisterInput carries the caller-supplied fields for a registration.
type RegisterInput struct {
	ProductID   id.ProductID
	Name        string
	BatchNumber string
	Origin      string
	ContentHash id.ContentHash
}
