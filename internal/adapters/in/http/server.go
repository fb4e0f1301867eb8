// Package http exposes the order action API over echo.
package http

import (
	"fmt"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	AdvanceStatus        commands.AdvanceStatusCommandHandler
	ConfirmStatus        commands.ConfirmStatusCommandHandler
	RevertStatus         commands.RevertStatusCommandHandler
	EscalateOrder        commands.EscalateOrderCommandHandler
	FulfillFromWarehouse commands.FulfillFromWarehouseCommandHandler
	RevertToVendor       commands.RevertToVendorCommandHandler
	ReassignOrder        commands.ReassignOrderCommandHandler

	GetOrderActions     queries.GetOrderActionsQueryHandler
	GetAlternateVendors queries.GetAlternateVendorsQueryHandler
	GetOrderTimeline    queries.GetOrderTimelineQueryHandler
	GetEscalatedOrders  queries.GetEscalatedOrdersQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	clock    ports.Clock
	metrics  *Metrics
}

// NewServer creates a server. A nil metrics disables counting.
func NewServer(handlers Handlers, clock ports.Clock, metrics *Metrics) *Server {
	return &Server{
		handlers: handlers,
		clock:    clock,
		metrics:  metrics,
	}
}

// GetOrderActions handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrderActions(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetOrderActionsQuery(orderID)
	if err != nil {
		return respondError(c, err)
	}

	actions, err := s.handlers.GetOrderActions.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newOrderActionsResponse(actions))
}

// SelectStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) SelectStatus(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var body statusSelectionRequest
	if err := c.Bind(&body); err != nil {
		return invalidBody(c)
	}

	return s.mutate(c, "select_status", func() (*order.Order, error) {
		cmd, err := commands.NewAdvanceStatusCommand(orderID, body.Status)
		if err != nil {
			return nil, err
		}
		return s.handlers.AdvanceStatus.Handle(c.Request().Context(), cmd)
	})
}

// ConfirmStatus handles POST /api/v1/orders/{orderId}/status/confirm.
func (s *Server) ConfirmStatus(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return s.mutate(c, "confirm_status", func() (*order.Order, error) {
		cmd, err := commands.NewConfirmStatusCommand(orderID)
		if err != nil {
			return nil, err
		}
		return s.handlers.ConfirmStatus.Handle(c.Request().Context(), cmd)
	})
}

// RevertStatus handles POST /api/v1/orders/{orderId}/status/revert.
func (s *Server) RevertStatus(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return s.mutate(c, "revert_status", func() (*order.Order, error) {
		cmd, err := commands.NewRevertStatusCommand(orderID)
		if err != nil {
			return nil, err
		}
		return s.handlers.RevertStatus.Handle(c.Request().Context(), cmd)
	})
}

// EscalateOrder handles POST /api/v1/orders/{orderId}/escalation.
func (s *Server) EscalateOrder(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var body reasonRequest
	if err := c.Bind(&body); err != nil {
		return invalidBody(c)
	}

	return s.mutate(c, "escalate", func() (*order.Order, error) {
		cmd, err := commands.NewEscalateOrderCommand(orderID, body.Reason)
		if err != nil {
			return nil, err
		}
		return s.handlers.EscalateOrder.Handle(c.Request().Context(), cmd)
	})
}

// FulfillFromWarehouse handles POST /api/v1/orders/{orderId}/escalation/fulfill.
func (s *Server) FulfillFromWarehouse(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var body warehouseFulfillmentRequest
	if err := c.Bind(&body); err != nil {
		return invalidBody(c)
	}

	return s.mutate(c, "fulfill_from_warehouse", func() (*order.Order, error) {
		cmd, err := commands.NewFulfillFromWarehouseCommand(orderID, body.Note, body.TrackingNumber)
		if err != nil {
			return nil, err
		}
		return s.handlers.FulfillFromWarehouse.Handle(c.Request().Context(), cmd)
	})
}

// RevertToVendor handles POST /api/v1/orders/{orderId}/escalation/revert.
func (s *Server) RevertToVendor(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var body reasonRequest
	if err := c.Bind(&body); err != nil {
		return invalidBody(c)
	}

	return s.mutate(c, "revert_to_vendor", func() (*order.Order, error) {
		cmd, err := commands.NewRevertToVendorCommand(orderID, body.Reason)
		if err != nil {
			return nil, err
		}
		return s.handlers.RevertToVendor.Handle(c.Request().Context(), cmd)
	})
}

// ReassignOrder handles PUT /api/v1/orders/{orderId}/vendor.
func (s *Server) ReassignOrder(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var body reassignmentRequest
	if err := c.Bind(&body); err != nil {
		return invalidBody(c)
	}

	vendorID, err := kernel.UUIDFromString(body.VendorID)
	if err != nil {
		return badRequest(c, "invalid vendorId: "+err.Error())
	}

	return s.mutate(c, "reassign", func() (*order.Order, error) {
		cmd, err := commands.NewReassignOrderCommand(orderID, vendorID, body.Reason)
		if err != nil {
			return nil, err
		}
		return s.handlers.ReassignOrder.Handle(c.Request().Context(), cmd)
	})
}

// GetAlternateVendors handles GET /api/v1/orders/{orderId}/alternate-vendors.
func (s *Server) GetAlternateVendors(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetAlternateVendorsQuery(orderID)
	if err != nil {
		return respondError(c, err)
	}

	vendors, err := s.handlers.GetAlternateVendors.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newVendorResponses(vendors))
}

// GetOrderTimeline handles GET /api/v1/orders/{orderId}/timeline.
func (s *Server) GetOrderTimeline(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetOrderTimelineQuery(orderID)
	if err != nil {
		return respondError(c, err)
	}

	entries, err := s.handlers.GetOrderTimeline.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newTimelineResponse(entries))
}

// GetEscalatedOrders handles GET /api/v1/orders/escalated.
func (s *Server) GetEscalatedOrders(c echo.Context) error {
	var (
		status string
		page   int
		limit  int
	)
	params := c.QueryParams()
	if err := runtime.BindQueryParameter("form", true, false, "status", params, &status); err != nil {
		return badRequest(c, fmt.Sprintf("invalid format for parameter status: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", params, &page); err != nil {
		return badRequest(c, fmt.Sprintf("invalid format for parameter page: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", params, &limit); err != nil {
		return badRequest(c, fmt.Sprintf("invalid format for parameter limit: %s", err))
	}

	query, err := queries.NewGetEscalatedOrdersQuery(status, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	queue, err := s.handlers.GetEscalatedOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newEscalatedOrderPageResponse(queue))
}

// mutate runs an action and answers with the read model of the order it returned.
func (s *Server) mutate(c echo.Context, action string, run func() (*order.Order, error)) error {
	o, err := run()
	s.metrics.observe(action, err)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newOrderActionsResponse(queries.NewOrderActions(o, s.clock.Now())))
}

func bindOrderID(c echo.Context) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("invalid format for parameter orderId: %w", err)
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("invalid parameter orderId: %w", err)
	}
	return id, nil
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, message))
}

func invalidBody(c echo.Context) error {
	return badRequest(c, "Invalid request body")
}

func respondError(c echo.Context, err error) error {
	code := statusCodeOf(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
		message = http.StatusText(code)
	}
	return c.JSON(code, newErrorResponse(code, message))
}
