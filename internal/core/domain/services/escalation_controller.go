package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/vendoraccount"
)

// EscalationController manages the vendor-unavailable track of an order. The
// track is orthogonal to the lifecycle status: an order is either escalated or
// not, and each way out of escalation has its own guard.
//
// Business rules:
//   - Escalation is allowed from any unfinished lifecycle status
//   - Warehouse fulfillment and reassignment require an escalated, awaiting order
//   - Revert to vendor requires an escalated, unfinished order and a reason
//   - A reassignment target must be an approved, active vendor serving the
//     order's region and different from the current vendor
type EscalationController struct{}

func NewEscalationController() EscalationController {
	return EscalationController{}
}

func (c EscalationController) CanEscalate(o *order.Order) bool {
	return o.Validate() == nil && o.CheckEscalatable() == nil
}

func (c EscalationController) CanReassign(o *order.Order) bool {
	return o.Validate() == nil && o.CheckReassignable() == nil
}

func (c EscalationController) CanFulfillFromWarehouse(o *order.Order) bool {
	return o.Validate() == nil && o.CheckWarehouseFulfillable() == nil
}

func (c EscalationController) CanRevertToVendor(o *order.Order) bool {
	return o.Validate() == nil && o.CheckVendorRevertable() == nil
}

// Escalate plans moving o into the escalated track.
func (c EscalationController) Escalate(o *order.Order, reason string) (order.EscalationRequest, error) {
	if err := o.Validate(); err != nil {
		return order.EscalationRequest{}, err
	}
	if err := o.CheckEscalatable(); err != nil {
		return order.EscalationRequest{}, err
	}
	return order.NewEscalationRequest(reason, o.Version())
}

// FulfillFromWarehouse plans resolving the escalation through the central
// warehouse. The tracking number is optional.
func (c EscalationController) FulfillFromWarehouse(
	o *order.Order,
	note string,
	trackingNumber string,
) (order.WarehouseFulfillmentRequest, error) {
	if err := o.Validate(); err != nil {
		return order.WarehouseFulfillmentRequest{}, err
	}
	if err := o.CheckWarehouseFulfillable(); err != nil {
		return order.WarehouseFulfillmentRequest{}, err
	}
	return order.NewWarehouseFulfillmentRequest(note, trackingNumber, o.Version())
}

// RevertToVendor plans handing the order back to its assigned vendor.
func (c EscalationController) RevertToVendor(o *order.Order, reason string) (order.VendorRevertRequest, error) {
	if err := o.Validate(); err != nil {
		return order.VendorRevertRequest{}, err
	}
	if err := o.CheckVendorRevertable(); err != nil {
		return order.VendorRevertRequest{}, err
	}
	return order.NewVendorRevertRequest(reason, o.Version())
}

// AlternateVendors filters candidates down to the vendors o can be reassigned to.
//
// Parameters:
//   - o: The order snapshot
//   - candidates: Vendors listed by the order-data service for the order's region
//
// Returns:
//   - []*vendoraccount.Vendor: approved, active vendors serving the region,
//     excluding the currently assigned one, in the order given
func (c EscalationController) AlternateVendors(o *order.Order, candidates []*vendoraccount.Vendor) []*vendoraccount.Vendor {
	alternates := make([]*vendoraccount.Vendor, 0, len(candidates))
	for _, v := range candidates {
		if v.Validate() != nil || !v.CanTakeOrders() || !v.ServesRegion(o.Region()) {
			continue
		}
		if v.ID().IsEqual(o.AssignedVendorID()) {
			continue
		}
		alternates = append(alternates, v)
	}
	return alternates
}

// Reassign plans routing o to vendorID.
//
// Parameters:
//   - o: The order snapshot (must be escalated and awaiting)
//   - vendorID: The target vendor (must be among the alternates)
//   - reason: Operator justification (must not be blank)
//   - candidates: Vendors listed by the order-data service for the order's region
//
// Returns:
//   - order.ReassignRequest: The request to commit
//   - error: ErrIneligibleForReassignment or ErrMissingRequiredReason
func (c EscalationController) Reassign(
	o *order.Order,
	vendorID kernel.UUID,
	reason string,
	candidates []*vendoraccount.Vendor,
) (order.ReassignRequest, error) {
	if err := o.Validate(); err != nil {
		return order.ReassignRequest{}, err
	}
	if err := o.CheckReassignable(); err != nil {
		return order.ReassignRequest{}, err
	}
	if vendorID.IsEqual(o.AssignedVendorID()) {
		return order.ReassignRequest{}, fmt.Errorf("%w: order is already assigned to vendor %s",
			order.ErrIneligibleForReassignment, vendorID)
	}

	request, err := order.NewReassignRequest(vendorID, reason, o.Version())
	if err != nil {
		return order.ReassignRequest{}, err
	}

	for _, v := range c.AlternateVendors(o, candidates) {
		if v.ID().IsEqual(vendorID) {
			return request, nil
		}
	}
	return order.ReassignRequest{}, fmt.Errorf("%w: vendor %s is not an alternate for this order",
		order.ErrIneligibleForReassignment, vendorID)
}
