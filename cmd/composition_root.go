package cmd

import (
	"fmt"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/geo"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/offerrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters and use case handlers together.
type CompositionRoot struct {
	gormDB      *gorm.DB
	redisClient *redis.Client
	producer    *kafka.OrderProducer
	log         zerolog.Logger

	createOrderHandler   commands.CreateOrderCommandHandler
	acceptOfferHandler   commands.AcceptOfferCommandHandler
	rejectOfferHandler   commands.RejectOfferCommandHandler
	dispatchOrderHandler commands.DispatchOrderCommandHandler
	sweepHandler         commands.SweepExpiredOffersCommandHandler
}

// NewCompositionRoot builds every adapter and handler from the configuration.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, log zerolog.Logger) (*CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	commandsFactory := funcUoWFactory(func() commands.UoW {
		return uowFactory.Create()
	})

	geoClient, err := geo.NewClient(cfg.Geo.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("build geo client: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	cachedGeoClient := geo.NewCachedClient(geoClient, redisClient, cfg.Redis.GeocodeTTL, log)

	producer, err := kafka.NewOrderProducer(cfg.Kafka.Brokers, cfg.Kafka.OrderChangedTopic, log)
	if err != nil {
		return nil, fmt.Errorf("build kafka producer: %w", err)
	}

	pricing, err := services.NewPricingService(services.Rates{
		BaseFee:            cfg.Pricing.BaseFee,
		PerKm:              cfg.Pricing.PerKm,
		PlatformFeePercent: cfg.Pricing.PlatformFeePercent,
	})
	if err != nil {
		return nil, fmt.Errorf("build pricing service: %w", err)
	}

	settings := commands.DispatchSettings{
		OfferWindow:   cfg.Dispatch.OfferWindow,
		RejectPenalty: cfg.Dispatch.RejectPenalty,
		ExpirePenalty: cfg.Dispatch.ExpirePenalty,
	}

	createOrderHandler, err := commands.NewCreateOrderCommandHandler(
		commandsFactory, cachedGeoClient, pricing, settings, producer)
	if err != nil {
		return nil, fmt.Errorf("build create order handler: %w", err)
	}

	rejectOfferHandler, err := commands.NewRejectOfferCommandHandler(commandsFactory, settings, producer)
	if err != nil {
		return nil, fmt.Errorf("build reject offer handler: %w", err)
	}

	dispatchOrderHandler, err := commands.NewDispatchOrderCommandHandler(commandsFactory, settings, producer)
	if err != nil {
		return nil, fmt.Errorf("build dispatch order handler: %w", err)
	}

	sweepHandler, err := commands.NewSweepExpiredOffersCommandHandler(commandsFactory, settings, producer)
	if err != nil {
		return nil, fmt.Errorf("build sweep handler: %w", err)
	}

	return &CompositionRoot{
		gormDB:               gormDB,
		redisClient:          redisClient,
		producer:             producer,
		log:                  log,
		createOrderHandler:   createOrderHandler,
		acceptOfferHandler:   commands.NewAcceptOfferCommandHandler(commandsFactory, producer),
		rejectOfferHandler:   rejectOfferHandler,
		dispatchOrderHandler: dispatchOrderHandler,
		sweepHandler:         sweepHandler,
	}, nil
}

// HTTPServer builds the inbound HTTP adapter with all routes wired.
func (c *CompositionRoot) HTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.createOrderHandler,
		c.acceptOfferHandler,
		c.rejectOfferHandler,
		c.dispatchOrderHandler,
		queries.NewGetCourierOffersQueryHandler(c.gormDB),
		queries.NewGetUnassignedOrdersQueryHandler(c.gormDB),
		c.log,
	)
}

// SweepHandler exposes the expiry sweep for the job scheduler.
func (c *CompositionRoot) SweepHandler() commands.SweepExpiredOffersCommandHandler {
	return c.sweepHandler
}

// Close releases the outbound connections.
func (c *CompositionRoot) Close() {
	if err := c.producer.Close(); err != nil {
		c.log.Error().Err(err).Msg("closing kafka producer")
	}
	if err := c.redisClient.Close(); err != nil {
		c.log.Error().Err(err).Msg("closing redis client")
	}
}

// OpenDatabase connects to PostgreSQL and migrates the schema.
// TranslateError is required: the offer repository relies on
// gorm.ErrDuplicatedKey to detect a lost dispatch race.
func OpenDatabase(cfg DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&offerrepo.OfferDTO{},
		&courierrepo.CourierDTO{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

// funcUoWFactory adapts a closure to the commands.UoWFactory interface.
type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW {
	return f()
}
