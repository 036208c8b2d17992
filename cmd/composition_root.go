package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"orderflow/internal/adapters/in/kafka"
	"orderflow/internal/adapters/in/pglisten"
	"orderflow/internal/adapters/out/fcm"
	"orderflow/internal/adapters/out/inprocess"
	kafkaout "orderflow/internal/adapters/out/kafka"
	"orderflow/internal/adapters/out/metrics"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/tokenrepo"
	redisout "orderflow/internal/adapters/out/redis"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	rds "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived collaborators and builds handlers on demand.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	registry   *prometheus.Registry
	metrics    *metrics.DispatchMetrics
	redis      *rds.Client
	sender     ports.PushSender
	dispatcher *commands.DispatchOrderChangeCommandHandler
	notifier   ports.ChangeNotifier

	closers []func(context.Context) error
}

func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		registry:   prometheus.NewRegistry(),
	}
	c.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var err error
	if c.metrics, err = metrics.NewDispatchMetrics(c.registry); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	if cfg.RedisAddr != "" {
		c.redis = redisout.NewClient(redisout.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		c.closers = append(c.closers, func(context.Context) error { return c.redis.Close() })
		if err = redisout.Ping(ctx, c.redis); err != nil {
			return nil, errors.Join(err, c.Close(ctx))
		}
	}

	if cfg.PushConfigured() {
		sender, err := fcm.NewSender(ctx, cfg.FCMCredentialsFile, cfg.FCMProjectID, logger)
		if err != nil {
			return nil, errors.Join(err, c.Close(ctx))
		}
		c.sender = sender
	} else {
		logger.Warn("FCM credentials not configured, notifications will fail")
	}

	opts := []commands.DispatchOption{commands.WithDispatchMetrics(c.metrics)}
	if c.redis != nil {
		opts = append(opts, commands.WithDeduper(redisout.NewTransitionDeduper(c.redis, "", cfg.DedupeTTL)))
	}
	dispatcher := commands.NewDispatchOrderChangeCommandHandler(
		tokenrepo.NewGormTokenRepository(gormDB, tokenrepo.WithLogger(logger)),
		c.sender,
		cfg.DispatchSettings(),
		logger,
		opts...,
	)
	c.dispatcher = &dispatcher

	if c.notifier, err = c.newChangeNotifier(); err != nil {
		return nil, errors.Join(err, c.Close(ctx))
	}

	return c, nil
}

func (c *CompositionRoot) newChangeNotifier() (ports.ChangeNotifier, error) {
	switch c.cfg.ChangeFeed {
	case ChangeFeedKafka:
		publisher, client, err := kafkaout.NewChangePublisher(c.cfg.KafkaBrokers(), c.cfg.KafkaOrderChangedTopic)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func(context.Context) error {
			client.Close()
			return nil
		})
		return publisher, nil
	case ChangeFeedPGListen, ChangeFeedWebhook:
		// The database trigger or the external webhook reports the change.
		return discardNotifier{}, nil
	default:
		n := inprocess.NewNotifier(c.dispatcher, c.cfg.DispatchTimeout, c.logger)
		c.closers = append(c.closers, n.Wait)
		return n, nil
	}
}

// Close releases clients in reverse creation order.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i](ctx))
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) RedisClient() *rds.Client {
	return c.redis
}

func (c *CompositionRoot) Dispatcher() *commands.DispatchOrderChangeCommandHandler {
	return c.dispatcher
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrderCommandHandler(f, c.notifier, c.logger)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() *commands.UpdateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewUpdateOrderCommandHandler(f, c.notifier, c.logger)
	return &h
}

func (c *CompositionRoot) CreateRegisterTokenCommandHandler() *commands.RegisterTokenCommandHandler {
	var f commands.TokenUoWFactory = FuncTokenUoWFactory(func() commands.TokenUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRegisterTokenCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateSendNotificationCommandHandler() *commands.SendNotificationCommandHandler {
	h := commands.NewSendNotificationCommandHandler(
		tokenrepo.NewGormTokenRepository(c.gormDB, tokenrepo.WithLogger(c.logger)),
		c.sender,
		c.metrics,
		c.cfg.DispatchSettings(),
		c.logger,
	)
	return &h
}

func (c *CompositionRoot) CreatePruneStaleTokensCommandHandler() *commands.PruneStaleTokensCommandHandler {
	h := commands.NewPruneStaleTokensCommandHandler(
		tokenrepo.NewGormTokenRepository(c.gormDB, tokenrepo.WithLogger(c.logger)),
		c.metrics,
		c.logger,
	)
	return &h
}

func (c *CompositionRoot) CreateGetStageBoardQueryHandler() queries.GetStageBoardQueryHandler {
	return queries.NewGetStageBoardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderGroupQueryHandler() queries.GetOrderGroupQueryHandler {
	return queries.NewGetOrderGroupQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.NewTokenSweepJob(
		c.CreatePruneStaleTokensCommandHandler(),
		c.cfg.TokenSweepCron,
		c.cfg.TokenRetention,
		c.logger,
	))
}

// CreateChangeConsumer returns the inbound side of the configured change
// feed, or nil when changes arrive in-process or by webhook.
func (c *CompositionRoot) CreateChangeConsumer() (ChangeConsumer, error) {
	switch c.cfg.ChangeFeed {
	case ChangeFeedKafka:
		consumer, err := kafka.NewChangeConsumer(
			c.cfg.KafkaBrokers(),
			c.cfg.KafkaConsumerGroup,
			c.cfg.KafkaOrderChangedTopic,
			c.dispatcher,
			c.cfg.DispatchTimeout,
			c.logger,
		)
		if err != nil {
			return nil, err
		}
		return kafkaConsumer{consumer}, nil
	case ChangeFeedPGListen:
		return pglisten.NewChangeListener(
			c.cfg.DSN(),
			postgres.OrderChangesChannel,
			c.dispatcher,
			c.cfg.DispatchTimeout,
			c.logger,
		), nil
	default:
		return nil, nil
	}
}

// ChangeConsumer runs until ctx is done.
type ChangeConsumer interface {
	Run(ctx context.Context) error
}

type kafkaConsumer struct {
	*kafka.ChangeConsumer
}

func (k kafkaConsumer) Run(ctx context.Context) error {
	defer k.Close()
	return k.ChangeConsumer.Run(ctx)
}

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, ports.OrderChange) error {
	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTokenUoWFactory func() commands.TokenUoW

func (f FuncTokenUoWFactory) Create() commands.TokenUoW {
	return f()
}
