package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vendoraccount"
)

// VendorRepository defines the persistence contract for vendors.
type VendorRepository interface {
	Add(ctx context.Context, vendor *vendoraccount.Vendor) error

	Get(ctx context.Context, id kernel.UUID) (*vendoraccount.Vendor, error)

	// RecordEscalation counts one more order escalated away from the vendor.
	// Unknown vendors yield errs.ObjectNotFoundError.
	RecordEscalation(ctx context.Context, id kernel.UUID, at time.Time) error
	// ListTakingOrders returns approved, active vendors serving region, ordered
	// by name. An empty region matches every vendor.
	ListTakingOrders(ctx context.Context, region string) ([]*vendoraccount.Vendor, error)
}
