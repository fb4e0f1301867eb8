package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Register mounts the API, validated against the embedded document, together
// with the health, metrics and documentation endpoints.
func Register(e *echo.Echo, server *Server, gatherer prometheus.Gatherer) error {
	doc, err := LoadSpec()
	if err != nil {
		return err
	}
	validator, err := requestValidator(doc)
	if err != nil {
		return err
	}
	if err := registerSwaggerDoc(doc); err != nil {
		return err
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/api/v1/orders/escalated", server.GetEscalatedOrders, validator)

	orders := e.Group("/api/v1/orders/:orderId", validator)
	orders.GET("", server.GetOrderActions)
	orders.POST("/status", server.SelectStatus)
	orders.POST("/status/confirm", server.ConfirmStatus)
	orders.POST("/status/revert", server.RevertStatus)
	orders.POST("/escalation", server.EscalateOrder)
	orders.POST("/escalation/fulfill", server.FulfillFromWarehouse)
	orders.POST("/escalation/revert", server.RevertToVendor)
	orders.PUT("/vendor", server.ReassignOrder)
	orders.GET("/alternate-vendors", server.GetAlternateVendors)
	orders.GET("/timeline", server.GetOrderTimeline)

	return nil
}
