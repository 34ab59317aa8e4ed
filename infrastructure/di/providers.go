package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"beadloom/application/commands"
	"beadloom/application/commands/bus"
	"beadloom/application/ports"
	"beadloom/application/queries"
	querybus "beadloom/application/queries/bus"
	domaincfg "beadloom/domain/config"
	"beadloom/domain/core/validators"
	"beadloom/infrastructure/config"
	"beadloom/infrastructure/persistence/memory"
	"beadloom/infrastructure/persistence/sqlite"
	"beadloom/interfaces/ws"
	"beadloom/pkg/observability"
)

// standingsCacheTTL is how long a standings page may be served stale.
const standingsCacheTTL = 5

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Rules      *domaincfg.DomainConfig
	Logger     *zap.Logger
	Matches    ports.MatchRepository
	Archive    ports.ArchiveRepository
	Ratings    ports.RatingRepository
	Store      *sqlite.Store
	Hub        *ws.Hub
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Metrics    *observability.Metrics
}

// Close releases the container's durable resources
func (c *Container) Close() error {
	return c.Store.Close()
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideDomainConfig derives the match rules from the environment
func ProvideDomainConfig(cfg *config.Config) *domaincfg.DomainConfig {
	return cfg.DomainConfig()
}

// ProvideMetrics creates the Prometheus registry
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics()
}

// ProvideMatchRepository creates the in-memory live match store
func ProvideMatchRepository(metrics *observability.Metrics, logger *zap.Logger) ports.MatchRepository {
	return memory.NewMatchRepository(metrics, logger)
}

// ProvideMatchLocker creates the per-match lock registry
func ProvideMatchLocker() ports.MatchLocker {
	return memory.NewMatchLocker()
}

// ProvideSQLiteStore opens the archive database
func ProvideSQLiteStore(cfg *config.Config) (*sqlite.Store, error) {
	return sqlite.Open(cfg.ArchivePath)
}

// ProvideArchiveRepository creates the snapshot archive
func ProvideArchiveRepository(store *sqlite.Store, logger *zap.Logger) ports.ArchiveRepository {
	return sqlite.NewArchiveRepository(store, logger)
}

// ProvideRatingRepository creates the win/loss ladder store
func ProvideRatingRepository(store *sqlite.Store, logger *zap.Logger) ports.RatingRepository {
	return sqlite.NewRatingRepository(store, logger)
}

// ProvideHub creates the websocket fan-out hub
func ProvideHub(matches ports.MatchRepository, metrics *observability.Metrics, logger *zap.Logger) *ws.Hub {
	return ws.NewHub(matches, metrics, logger)
}

// ProvideEventPublisher exposes the hub as the event publisher port
func ProvideEventPublisher(hub *ws.Hub) ports.EventPublisher {
	return hub
}

// ProvideMoveValidator creates the move validator under the active rules
func ProvideMoveValidator(rules *domaincfg.DomainConfig) *validators.MoveValidator {
	return validators.NewMoveValidatorWithConfig(rules)
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) error
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	matches ports.MatchRepository,
	locks ports.MatchLocker,
	ratings ports.RatingRepository,
	publisher ports.EventPublisher,
	validator *validators.MoveValidator,
	rules *domaincfg.DomainConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()

	createHandler := commands.NewCreateMatchHandler(matches, rules, logger)
	commandBus.Register(commands.CreateMatchCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateMatchCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := createHandler.Handle(ctx, createCmd)
			return err
		},
	})

	joinHandler := commands.NewJoinMatchHandler(matches, locks, publisher, logger)
	commandBus.Register(commands.JoinMatchCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			joinCmd, ok := cmd.(commands.JoinMatchCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := joinHandler.Handle(ctx, joinCmd)
			return err
		},
	})

	moveHandler := commands.NewSubmitMoveHandler(matches, locks, publisher, validator, metrics, logger)
	commandBus.Register(commands.SubmitMoveCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			moveCmd, ok := cmd.(commands.SubmitMoveCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := moveHandler.Handle(ctx, moveCmd)
			return err
		},
	})

	twistHandler := commands.NewDrawTwistHandler(matches, locks, publisher, logger)
	commandBus.Register(commands.DrawTwistCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			twistCmd, ok := cmd.(commands.DrawTwistCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := twistHandler.Handle(ctx, twistCmd)
			return err
		},
	})

	concordHandler := commands.NewSealConcordHandler(matches, locks, publisher, logger)
	commandBus.Register(commands.SealConcordCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			concordCmd, ok := cmd.(commands.SealConcordCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := concordHandler.Handle(ctx, concordCmd)
			return err
		},
	})

	ratingHandler := commands.NewRecordRatingHandler(ratings, logger)
	commandBus.Register(commands.RecordRatingCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			ratingCmd, ok := cmd.(commands.RecordRatingCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return ratingHandler.Handle(ctx, ratingCmd)
		},
	})

	return commandBus
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	matches ports.MatchRepository,
	archive ports.ArchiveRepository,
	ratings ports.RatingRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	getMatchHandler := queries.NewGetMatchHandler(matches)
	queryBus.Register(queries.GetMatchQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetMatchQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getMatchHandler.Handle(ctx, getQuery)
		},
	})

	exportHandler := queries.NewExportMatchHandler(matches)
	queryBus.Register(queries.ExportMatchQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			exportQuery, ok := query.(queries.ExportMatchQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return exportHandler.Handle(ctx, exportQuery)
		},
	})

	judgeHandler := queries.NewJudgeMatchHandler(matches, archive, ratings, publisher, metrics, logger)
	queryBus.Register(queries.JudgeMatchQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			judgeQuery, ok := query.(queries.JudgeMatchQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return judgeHandler.Handle(ctx, judgeQuery)
		},
	})

	insightsHandler := queries.NewGetInsightsHandler(matches)
	queryBus.Register(queries.GetInsightsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			insightsQuery, ok := query.(queries.GetInsightsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return insightsHandler.Handle(ctx, insightsQuery)
		},
	})

	// Standings pages are cached briefly; the ladder only moves on judgment.
	standingsHandler := queries.NewGetStandingsHandler(ratings)
	queryBus.Register(queries.GetStandingsQuery{}, wrapStandingsCache(standingsHandler))

	return queryBus
}

// wrapStandingsCache wraps the standings handler with the in-memory cache
func wrapStandingsCache(handler *queries.GetStandingsHandler) querybus.QueryHandler {
	caching := querybus.NewCachingMiddleware(NewInMemoryCache(), standingsCacheTTL)
	return caching.Wrap(&QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			standingsQuery, ok := query.(queries.GetStandingsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return handler.Handle(ctx, standingsQuery)
		},
	})
}
