package app

import (
	"context"
	"fmt"

	"github.com/eddieyong/financetracker/internal/config"
	"github.com/eddieyong/financetracker/internal/database"
	"github.com/eddieyong/financetracker/internal/event_bus"
	"github.com/eddieyong/financetracker/internal/metrics"
	"github.com/eddieyong/financetracker/internal/utils"
	"github.com/eddieyong/financetracker/pkg/budget"
	"github.com/eddieyong/financetracker/pkg/export"
	"github.com/eddieyong/financetracker/pkg/finance"
	"github.com/eddieyong/financetracker/pkg/kvstore"
	"github.com/eddieyong/financetracker/pkg/settings"
	"github.com/eddieyong/financetracker/pkg/stats"
	"github.com/eddieyong/financetracker/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus
	Metrics  *metrics.Metrics

	KVStore      kvstore.Store
	closeStorage func()

	ExportSink export.Sink
	Store      *finance.StoreImpl

	StateHandler       *finance.StateHandler
	TransactionHandler *transaction.TransactionHandler
	BudgetHandler      *budget.BudgetHandler
	SettingsHandler    *settings.SettingsHandler
	ExportHandler      *export.ExportHandler

	StatsService     *stats.StatsServiceImpl
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler
}

// BuildDependencies opens the configured storage backend, loads the persisted state and
// wires all application services and handlers.
func BuildDependencies(ctx context.Context, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	kv, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	deps.KVStore = kv
	deps.closeStorage = closeStorage

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()
	subscribeEventLogger(deps.EventBus)
	deps.Metrics = metrics.New()
	deps.Metrics.Subscribe(deps.EventBus)

	deps.ExportSink = export.NewFileSink(cfg.Export.Dir)
	deps.Store = finance.NewStoreImpl(deps.KVStore, deps.ExportSink, deps.EventBus, deps.Clock, cfg.Error.TTL)
	if err := deps.Store.Load(ctx); err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to load finance state: %w", err)
	}

	deps.StateHandler = finance.NewStateHandler(deps.Store)
	deps.TransactionHandler = transaction.NewTransactionHandler(deps.Store)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.Store, deps.Clock)
	deps.SettingsHandler = settings.NewSettingsHandler(deps.Store)
	deps.ExportHandler = export.NewExportHandler(deps.Store, deps.Clock)

	deps.StatsService = stats.NewStatsServiceImpl(deps.Store, deps.Clock)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer, deps.Store)

	return deps, nil
}

// Close releases the storage backend.
func (d *Dependencies) Close() {
	if d.closeStorage != nil {
		d.closeStorage()
	}
}

func openStorage(ctx context.Context, cfg config.Application) (kvstore.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Warn("Using in-memory storage, state is lost on exit")
		return kvstore.NewMemoryStore(), func() {}, nil
	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return kvstore.NewSQLiteStore(db), func() { db.Close() }, nil
	case config.BackendPostgres:
		if err := database.MigratePostgres(database.PostgresURL(cfg.Database)); err != nil {
			return nil, nil, err
		}
		pool, err := database.OpenPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		log.Infof("Connected to Postgres at %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
		return kvstore.NewPostgresStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// subscribeEventLogger logs every store transition at debug level.
func subscribeEventLogger(bus *event_bus.EventBus) {
	for _, eventType := range event_bus.AllTypes {
		bus.Subscribe(eventType, func(e event_bus.Event) error {
			log.WithField("event", e.Type).Debugf("%+v", e.Data)
			return nil
		})
	}
}
