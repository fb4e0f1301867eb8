package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrFulfillFromWarehouseCommandIsNotConstructed = errors.New(
	"FulfillFromWarehouseCommand must be created via NewFulfillFromWarehouseCommand constructor",
)

// FulfillFromWarehouseCommand resolves an escalated, awaiting order by
// shipping it from the central warehouse.
//
// Example:
//
//	cmd, err := NewFulfillFromWarehouseCommand(orderID, "vendor out of stock", "WH-1029")
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
//	// o.Status() == order.Accepted, o.IsEscalated() == false
type FulfillFromWarehouseCommand struct {
	orderID        kernel.UUID
	note           string
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewFulfillFromWarehouseCommand requires a note; the tracking number may be empty.
func NewFulfillFromWarehouseCommand(orderID kernel.UUID, note, trackingNumber string) (FulfillFromWarehouseCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return FulfillFromWarehouseCommand{}, err
	}
	n, err := requireReason("note", note)
	if err != nil {
		return FulfillFromWarehouseCommand{}, err
	}

	return FulfillFromWarehouseCommand{
		orderID:        orderID,
		note:           n,
		trackingNumber: strings.TrimSpace(trackingNumber),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c FulfillFromWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrFulfillFromWarehouseCommandIsNotConstructed)
}

func (c FulfillFromWarehouseCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c FulfillFromWarehouseCommand) Note() string {
	return c.note
}

func (c FulfillFromWarehouseCommand) TrackingNumber() string {
	return c.trackingNumber
}
