// Package vendoraccount models the vendors an order can be routed to.
package vendoraccount

import (
	"errors"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrVendorIsNotConstructed = errors.New("Vendor must be created via NewVendor or RestoreVendor")

// Vendor is a fulfillment partner serving one or more regions. Only approved
// and active vendors can take over an escalated order.
//
// EscalationCount counts the orders escalated away from the vendor; the
// order-data service increments it with every escalation.
type Vendor struct {
	id              kernel.UUID
	name            string
	regions         []string
	approved        bool
	active          bool
	escalationCount int64
	lastEscalatedAt time.Time

	guard guard.ConstructorGuard
}

// RestoreParams carries a persisted vendor.
type RestoreParams struct {
	ID              kernel.UUID
	Name            string
	Regions         []string
	Approved        bool
	Active          bool
	EscalationCount int64
	LastEscalatedAt time.Time
}

// NewVendor creates an approved, active vendor with no escalations.
func NewVendor(id kernel.UUID, name string, regions []string) (*Vendor, error) {
	return RestoreVendor(RestoreParams{ID: id, Name: name, Regions: regions, Approved: true, Active: true})
}

// RestoreVendor rebuilds a vendor from persistence.
func RestoreVendor(p RestoreParams) (*Vendor, error) {
	v := &Vendor{
		approved:        p.Approved,
		active:          p.Active,
		lastEscalatedAt: p.LastEscalatedAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(p.ID),
		v.setName(p.Name),
		v.setRegions(p.Regions),
		v.setEscalationCount(p.EscalationCount),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Vendor) Validate() error {
	if v == nil {
		return ErrVendorIsNotConstructed
	}
	return v.guard.Validate(ErrVendorIsNotConstructed)
}

func (v *Vendor) ID() kernel.UUID {
	return v.id
}

func (v *Vendor) Name() string {
	return v.name
}

func (v *Vendor) Regions() []string {
	return slices.Clone(v.regions)
}

func (v *Vendor) IsApproved() bool {
	return v.approved
}

func (v *Vendor) IsActive() bool {
	return v.active
}

func (v *Vendor) EscalationCount() int64 {
	return v.escalationCount
}

// LastEscalatedAt is zero for vendors that never had an order escalated.
func (v *Vendor) LastEscalatedAt() time.Time {
	return v.lastEscalatedAt
}

// ServesRegion matches case-insensitively. A blank region is served by every vendor.
func (v *Vendor) ServesRegion(region string) bool {
	region = strings.TrimSpace(region)
	if region == "" {
		return true
	}
	return slices.ContainsFunc(v.regions, func(r string) bool {
		return strings.EqualFold(r, region)
	})
}

// CanTakeOrders reports whether the vendor may receive reassigned orders.
func (v *Vendor) CanTakeOrders() bool {
	return v.approved && v.active
}

func (v *Vendor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vendor) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	v.name = name
	return nil
}

func (v *Vendor) setRegions(regions []string) error {
	cleaned := make([]string, 0, len(regions))
	for _, r := range regions {
		if r = strings.TrimSpace(r); r != "" {
			cleaned = append(cleaned, r)
		}
	}
	v.regions = cleaned
	return nil
}

func (v *Vendor) setEscalationCount(count int64) error {
	if count < 0 {
		return errs.NewValueIsInvalidError("escalation count")
	}
	v.escalationCount = count
	return nil
}
