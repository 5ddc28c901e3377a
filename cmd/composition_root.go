package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/filestore"
	"fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/redis"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"gorm.io/gorm"
)

const eventProducer = "fooddelivery"

type CompositionRoot struct {
	cfg    Config
	gormDB *gorm.DB
	logger *slog.Logger
	clock  ports.Clock

	uowFactory  *postgres.GormUnitOfWorkFactory
	resolver    services.AvailabilityResolver
	billing     services.BillGenerator
	attachments ports.AttachmentStore
	idempotency ports.IdempotencyStore

	closers []func() error
}

// NewCompositionRoot wires adapters around gormDB. Kafka and Redis are
// optional: an empty KAFKA_HOST drops order events, an empty REDIS_ADDR
// leaves idempotency lookups to the orders table.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	billing, err := services.NewBillGenerator(cfg.BillPolicy)
	if err != nil {
		return nil, fmt.Errorf("bill policy: %w", err)
	}
	store, err := filestore.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}

	c := &CompositionRoot{
		cfg:         cfg,
		gormDB:      gormDB,
		logger:      logger,
		clock:       ports.SystemClock,
		resolver:    services.NewAvailabilityResolver(cfg.OrderLocation),
		billing:     billing,
		attachments: store,
	}

	var publisher ports.OrderEventPublisher
	if cfg.KafkaHost != "" {
		p, pubErr := kafka.NewOrderEventPublisher(cfg.KafkaHost, cfg.KafkaOrderChangedTopic, eventProducer)
		if pubErr != nil {
			return nil, fmt.Errorf("kafka publisher: %w", pubErr)
		}
		publisher = p
		c.closers = append(c.closers, p.Close)
		logger.InfoContext(ctx, "Order events enabled", "brokers", cfg.KafkaHost, "topic", cfg.KafkaOrderChangedTopic)
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(cfg.RedisAddr)
		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			_ = client.Close()
			c.Close()
			return nil, fmt.Errorf("redis ping: %w", pingErr)
		}
		c.idempotency = redis.NewIdempotencyStore(client, cfg.IdempotencyTTL)
		c.closers = append(c.closers, client.Close)
		logger.InfoContext(ctx, "Idempotency cache enabled", "addr", cfg.RedisAddr)
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)
	return c, nil
}

// Close releases broker and cache connections.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) identityUoWFactory() commands.IdentityUoWFactory {
	return FuncIdentityUoWFactory(func() commands.IdentityUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) partnerUoWFactory() commands.PartnerUoWFactory {
	return FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.attachments, c.idempotency, c.resolver, c.clock, c.logger,
	)
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.deliveryUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAssignPartnerCommandHandler() commands.AssignPartnerCommandHandler {
	return commands.NewAssignPartnerCommandHandler(c.deliveryUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDispatchPendingOrderCommandHandler() commands.DispatchPendingOrderCommandHandler {
	return commands.NewDispatchPendingOrderCommandHandler(c.deliveryUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.identityUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRegisterRestaurantCommandHandler() commands.RegisterRestaurantCommandHandler {
	return commands.NewRegisterRestaurantCommandHandler(c.identityUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRegisterPartnerCommandHandler() commands.RegisterPartnerCommandHandler {
	return commands.NewRegisterPartnerCommandHandler(c.partnerUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAddCategoryCommandHandler() commands.AddCategoryCommandHandler {
	return commands.NewAddCategoryCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCategoryWindowCommandHandler() commands.UpdateCategoryWindowCommandHandler {
	return commands.NewUpdateCategoryWindowCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateAddMenuItemCommandHandler() commands.AddMenuItemCommandHandler {
	return commands.NewAddMenuItemCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateUpdateMenuItemCommandHandler() commands.UpdateMenuItemCommandHandler {
	return commands.NewUpdateMenuItemCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGenerateBillQueryHandler() queries.GenerateBillQueryHandler {
	return queries.NewGenerateBillQueryHandler(c.gormDB, c.billing)
}

func (c *CompositionRoot) CreateListAvailablePartnersQueryHandler() queries.ListAvailablePartnersQueryHandler {
	return queries.NewListAvailablePartnersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRestaurantMenuQueryHandler() queries.GetRestaurantMenuQueryHandler {
	return queries.NewGetRestaurantMenuQueryHandler(c.gormDB, c.resolver, c.clock)
}

func (c *CompositionRoot) CreateGetProfileQueryHandler() queries.GetProfileQueryHandler {
	return queries.NewGetProfileQueryHandler(c.gormDB)
}

// HTTPHandlers collects every use case served over HTTP.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		RegisterUser:         c.CreateRegisterUserCommandHandler(),
		RegisterRestaurant:   c.CreateRegisterRestaurantCommandHandler(),
		RegisterPartner:      c.CreateRegisterPartnerCommandHandler(),
		AddCategory:          c.CreateAddCategoryCommandHandler(),
		UpdateCategoryWindow: c.CreateUpdateCategoryWindowCommandHandler(),
		AddMenuItem:          c.CreateAddMenuItemCommandHandler(),
		UpdateMenuItem:       c.CreateUpdateMenuItemCommandHandler(),
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		SetOrderStatus:       c.CreateSetOrderStatusCommandHandler(),
		AssignPartner:        c.CreateAssignPartnerCommandHandler(),
		DispatchPendingOrder: c.CreateDispatchPendingOrderCommandHandler(),

		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
		GenerateBill:          c.CreateGenerateBillQueryHandler(),
		ListAvailablePartners: c.CreateListAvailablePartnersQueryHandler(),
		GetRestaurantMenu:     c.CreateGetRestaurantMenuQueryHandler(),
		GetProfile:            c.CreateGetProfileQueryHandler(),
	}
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(c.HTTPHandlers(), c.logger.With("component", "http"))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateDispatchPendingOrderCommandHandler(), c.cfg.DispatchSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncIdentityUoWFactory func() commands.IdentityUoW

func (f FuncIdentityUoWFactory) Create() commands.IdentityUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}
