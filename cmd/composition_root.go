package cmd

import (
	"log/slog"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/clock"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// publisher is the event sink the composition root owns and closes.
type publisher interface {
	ports.EventPublisher
	Close() error
}

type CompositionRoot struct {
	clock      ports.Clock
	publisher  publisher
	orders     *postgres.OrderDataService
	registry   *prometheus.Registry
	jobManager *jobs.JobManager
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	var eventPublisher publisher = kafka.NopPublisher{}
	if config.KafkaHost != "" {
		p, err := kafka.NewOrderChangedPublisher(config.KafkaHost, config.KafkaOrderChangedTopic)
		if err != nil {
			return nil, err
		}
		eventPublisher = p
	} else {
		logger.Warn("KAFKA_HOST is not set, order change events are dropped")
	}

	systemClock := clock.System{}
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB, eventPublisher, logger)
	orders, err := postgres.NewOrderDataService(uowFactory, systemClock, config.StatusUpdateGracePeriod, logger)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()

	return &CompositionRoot{
		clock:      systemClock,
		publisher:  eventPublisher,
		orders:     orders,
		registry:   registry,
		jobManager: jobs.NewJobManager(orders, config.GraceFinalizerSchedule, logger),
	}, nil
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	metrics, err := httpadapter.NewMetrics(c.registry)
	if err != nil {
		return nil, err
	}
	return httpadapter.NewServer(c.createHandlers(), c.clock, metrics), nil
}

func (c *CompositionRoot) createHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		AdvanceStatus:        commands.NewAdvanceStatusCommandHandler(c.orders, c.clock),
		ConfirmStatus:        commands.NewConfirmStatusCommandHandler(c.orders, c.clock),
		RevertStatus:         commands.NewRevertStatusCommandHandler(c.orders, c.clock),
		EscalateOrder:        commands.NewEscalateOrderCommandHandler(c.orders),
		FulfillFromWarehouse: commands.NewFulfillFromWarehouseCommandHandler(c.orders),
		RevertToVendor:       commands.NewRevertToVendorCommandHandler(c.orders),
		ReassignOrder:        commands.NewReassignOrderCommandHandler(c.orders),

		GetOrderActions:     queries.NewGetOrderActionsQueryHandler(c.orders, c.clock),
		GetAlternateVendors: queries.NewGetAlternateVendorsQueryHandler(c.orders),
		GetOrderTimeline:    queries.NewGetOrderTimelineQueryHandler(c.orders),
		GetEscalatedOrders:  queries.NewGetEscalatedOrdersQueryHandler(c.orders),
	}
}

// Close releases the event publisher.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}
