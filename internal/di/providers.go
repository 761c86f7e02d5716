package di

import (
	"context"
	"fmt"
	"time"

	domrepo "Tickfunds/internal/domain/repository"
	"Tickfunds/internal/handler/api"
	mid "Tickfunds/internal/middleware"
	internalrepo "Tickfunds/internal/repository"
	"Tickfunds/internal/service/ratelimit"
	"Tickfunds/internal/usecase"
	"Tickfunds/pkg/cache"
	pkgch "Tickfunds/pkg/clickhouse"
	"Tickfunds/pkg/config"
	xhttp "Tickfunds/pkg/http"
	pkgkafka "Tickfunds/pkg/kafka"
	applogger "Tickfunds/pkg/logger"
	"Tickfunds/pkg/metrics"
	"Tickfunds/pkg/queue"
	"Tickfunds/pkg/server"
)

// ProvideLogger creates the application logger. With logging.collect set,
// error logs are also aggregated and shipped to kafka.logs_topic.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, func(), error) {
	l, err := applogger.New(&applogger.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cfg.Logging.Output,
		Service: "tickfunds",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Logging.Collect && producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval: cfg.Logging.FlushInterval,
			Topic:        cfg.Kafka.LogsTopic,
			Publisher:    producer,
		})
	}
	return l, l.RemoveCollector, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideRedisCache connects to Redis when the cache driver needs it; nil otherwise.
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, func(), error) {
	if !cfg.RedisEnabled() {
		return nil, func() {}, nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPool(cfg.Cache.Redis.PoolSize, cfg.Cache.Redis.PoolSize/2, 5*time.Second),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, func() { _ = rc.Close() }, nil
}

// ProvideCache picks the cache backing the screener and the wizard sessions.
func ProvideCache(cfg *config.Config, rc *cache.RedisCache) (cache.Service, func(), error) {
	switch cfg.Cache.Driver {
	case "redis":
		if rc == nil {
			return nil, nil, fmt.Errorf("cache driver redis needs a redis connection")
		}
		return rc, func() {}, nil
	case "layered":
		if rc == nil {
			return nil, nil, fmt.Errorf("cache driver layered needs a redis connection")
		}
		lc := cache.NewLayeredCache(rc,
			cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
			cache.WithLayeredL1TTL(30*time.Second),
		)
		return lc, func() { _ = lc.Close() }, nil
	default:
		mc := cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize))
		return mc, func() { _ = mc.Close() }, nil
	}
}

// ProvideKafkaProducer creates a Kafka producer when activity or log
// collection publishes to Kafka; nil otherwise.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, func(), error) {
	if !cfg.KafkaEnabled() {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

// ProvideKafkaConsumer creates the activity sink consumer when enabled; nil otherwise.
func ProvideKafkaConsumer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Consumer.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
		pkgkafka.WithConsumerLogger(l),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.WithConsumerHook(pkgkafka.NewHookChain(pkgkafka.TraceHook{}, pkgkafka.LogHook{Log: l}))
	return consumer, nil
}

// ProvideClickHouseClient connects to ClickHouse when enabled; nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return nil, func() {}, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideActivityStore creates the ClickHouse activity table; nil without ClickHouse.
func ProvideActivityStore(ch *pkgch.Client, l *applogger.Logger) (domrepo.ActivityStore, error) {
	if ch == nil {
		return nil, nil
	}
	store := internalrepo.NewClickHouseActivityStore(ch, l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideActivityPublisher selects where activity batches go.
func ProvideActivityPublisher(cfg *config.Config, producer *pkgkafka.Producer, store domrepo.ActivityStore) (domrepo.ActivityPublisher, error) {
	switch cfg.Activity.Backend {
	case usecase.BackendKafka:
		if producer == nil {
			return nil, fmt.Errorf("activity backend kafka needs a kafka producer")
		}
		return internalrepo.NewKafkaActivityPublisher(producer, cfg.Kafka.Topic), nil
	case usecase.BackendClickHouse:
		if store == nil {
			return nil, fmt.Errorf("activity backend clickhouse needs clickhouse")
		}
		return internalrepo.NewStoreActivityPublisher(store), nil
	default:
		return internalrepo.NoopActivityPublisher{}, nil
	}
}

func ProvideActivityProcessor(pub domrepo.ActivityPublisher, m domrepo.Metrics, cfg *config.Config) *usecase.ActivityProcessor {
	return usecase.NewActivityProcessor(pub, m, cfg.Activity.Backend)
}

// ProvideActivityPipeline builds the buffered, throttled activity recorder.
func ProvideActivityPipeline(proc *usecase.ActivityProcessor, m domrepo.Metrics, cfg *config.Config, l *applogger.Logger) *mid.ActivityPipeline {
	return mid.NewActivityPipeline(proc, m,
		mid.WithMaxPerSecond(cfg.Activity.MaxPerSecond),
		mid.WithBufferSize(cfg.Activity.BufferSize),
		mid.WithBatchSize(cfg.Activity.BatchSize),
		mid.WithFlushInterval(cfg.Activity.FlushInterval),
		mid.WithLogger(l),
	)
}

func ProvideActivityRecorder(p *mid.ActivityPipeline) domrepo.ActivityRecorder {
	return p
}

// ProvideActivitySinkHandler stores consumed activity events in ClickHouse;
// nil unless both the consumer and the store are configured.
func ProvideActivitySinkHandler(cfg *config.Config, store domrepo.ActivityStore, m domrepo.Metrics) *usecase.ActivitySinkHandler {
	if store == nil || !cfg.Kafka.Consumer.Enabled {
		return nil
	}
	return usecase.NewActivitySinkHandler(cfg.Kafka.Topic, store, m)
}

func ProvideCatalog() (*internalrepo.Catalog, error) {
	c, err := internalrepo.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

func ProvideAccountStore() (*internalrepo.AccountStore, error) {
	s, err := internalrepo.LoadAccountStore()
	if err != nil {
		return nil, fmt.Errorf("account store: %w", err)
	}
	return s, nil
}

func ProvideSessionStore(c cache.Service, cfg *config.Config) domrepo.SessionStore {
	return internalrepo.NewCacheSessionStore(c, cfg.KYC.SessionTTL)
}

// ProvideQueue creates the Redis job queue used for KYC checks when enabled; nil otherwise.
func ProvideQueue(cfg *config.Config, rc *cache.RedisCache, l *applogger.Logger) (*queue.RedisQueue, error) {
	if !cfg.Queue.Enabled {
		return nil, nil
	}
	if rc == nil {
		return nil, fmt.Errorf("queue needs a redis connection")
	}
	return queue.NewRedisQueue(l, &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}, rc.Client(), queue.ModeProducerConsumer, queue.WithKeyPrefix(cfg.Queue.KeyPrefix)), nil
}

// ProvideVerifier runs KYC checks on the job queue when one is configured,
// in-process otherwise.
func ProvideVerifier(q *queue.RedisQueue, l *applogger.Logger) usecase.Verifier {
	if q == nil {
		return usecase.NewInlineVerifier(l)
	}
	v := usecase.NewQueueVerifier(q)
	q.RegisterJobs(v.Job())
	return v
}

// ProvideBankResolver looks IFSC codes up over HTTP when a directory is
// configured; the fallback names are used otherwise.
func ProvideBankResolver(cfg *config.Config, l *applogger.Logger) domrepo.BankResolver {
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.KYC.LookupTimeout))
	return internalrepo.NewIFSCResolver(client, cfg.KYC.IFSCLookupURL, l)
}

func ProvideFundService(
	catalog *internalrepo.Catalog,
	c cache.Service,
	rec domrepo.ActivityRecorder,
	store domrepo.ActivityStore,
	m domrepo.Metrics,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.FundService {
	s := usecase.NewFundService(catalog, c, cfg.Cache.ScreenerTTL, rec, store, m, l)
	if err := s.ResetScreens(context.Background()); err != nil {
		l.Warn("screener cache reset failed", applogger.Error(err))
	}
	return s
}

func ProvideRiskService(catalog *internalrepo.Catalog, rec domrepo.ActivityRecorder) *usecase.RiskService {
	return usecase.NewRiskService(catalog.RiskQuiz(), rec)
}

func ProvideLoanService(catalog *internalrepo.Catalog, rec domrepo.ActivityRecorder) *usecase.LoanService {
	return usecase.NewLoanService(catalog, rec)
}

func ProvideFixedIncomeService(catalog *internalrepo.Catalog) *usecase.FixedIncomeService {
	return usecase.NewFixedIncomeService(catalog)
}

func ProvideGoldService(catalog *internalrepo.Catalog) *usecase.GoldService {
	return usecase.NewGoldService(catalog)
}

func ProvideOrderService(catalog *internalrepo.Catalog) *usecase.OrderService {
	return usecase.NewOrderService(catalog)
}

func ProvidePortfolioService(catalog *internalrepo.Catalog) *usecase.PortfolioService {
	return usecase.NewPortfolioService(catalog)
}

func ProvideAlertService(account *internalrepo.AccountStore) *usecase.AlertService {
	return usecase.NewAlertService(account)
}

func ProvideAccountService(account *internalrepo.AccountStore) *usecase.AccountService {
	return usecase.NewAccountService(account, account, account)
}

func ProvideOnboardingService(
	sessions domrepo.SessionStore,
	verifier usecase.Verifier,
	banks domrepo.BankResolver,
	rec domrepo.ActivityRecorder,
	m domrepo.Metrics,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.OnboardingService {
	delays := usecase.VerificationDelays{
		PAN:     cfg.KYC.PANDelay,
		Aadhaar: cfg.KYC.AadhaarDelay,
		IFSC:    cfg.KYC.IFSCDelay,
		Final:   cfg.KYC.FinalDelay,
	}
	return usecase.NewOnboardingService(sessions, verifier, banks, delays, rec, m, l)
}

func ProvidePMSService(sessions domrepo.SessionStore, rec domrepo.ActivityRecorder) *usecase.PMSService {
	return usecase.NewPMSService(sessions, rec)
}

// ProvideSearchService indexes funds, bonds and FDs in memory.
func ProvideSearchService(catalog *internalrepo.Catalog) (*usecase.SearchService, func(), error) {
	s, err := usecase.NewSearchService(context.Background(), catalog, catalog, 50)
	if err != nil {
		return nil, nil, fmt.Errorf("search index: %w", err)
	}
	return s, func() { _ = s.Close() }, nil
}

func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

// ProvideHandlers builds every HTTP handler.
func ProvideHandlers(
	l *applogger.Logger,
	funds *usecase.FundService,
	risk *usecase.RiskService,
	loans *usecase.LoanService,
	fixed *usecase.FixedIncomeService,
	gold *usecase.GoldService,
	orders *usecase.OrderService,
	portfolio *usecase.PortfolioService,
	alerts *usecase.AlertService,
	account *usecase.AccountService,
	kyc *usecase.OnboardingService,
	pms *usecase.PMSService,
	search *usecase.SearchService,
	limiter *ratelimit.Limiter,
) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewFundsHandler(l, funds, risk),
		api.NewLendingHandler(l, loans, fixed, gold),
		api.NewAccountHandler(l, orders, portfolio, alerts, account),
		api.NewOnboardingHandler(l, kyc, pms, limiter),
		api.NewSearchHandler(l, search),
	}
}

// ProvideHTTPServer creates the Echo server with every route registered.
func ProvideHTTPServer(cfg *config.Config, handlers []xhttp.Handler, l *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
	)
}

// ProvideApp assembles the application and its lifecycle.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	pipeline *mid.ActivityPipeline,
	processor *usecase.ActivityProcessor,
	consumer *pkgkafka.Consumer,
	sink *usecase.ActivitySinkHandler,
	q *queue.RedisQueue,
	verifier usecase.Verifier,
) *server.App {
	app := server.New(cfg, l, httpServer, pipeline)
	app.ActivityProc = processor
	if consumer != nil && sink != nil {
		app.WithConsumer(consumer, sink)
	}
	if q != nil {
		app.WithQueue(q)
	}
	if v, ok := verifier.(*usecase.InlineVerifier); ok {
		app.WithVerifier(v)
	}
	return app
}
