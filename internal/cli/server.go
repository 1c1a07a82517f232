package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"chemquest/internal/app"
	"chemquest/internal/catalog"
	"chemquest/internal/config"
	"chemquest/internal/domain"
	"chemquest/internal/infra/memory"
	"chemquest/internal/infra/postgres"
	infraredis "chemquest/internal/infra/redis"
	"chemquest/internal/infra/sqlite"
	"chemquest/internal/infra/sqlstore"
	"chemquest/internal/report"
	transport "chemquest/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the ChemQuest server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// backends holds the adapters chosen from config.
type backends struct {
	quizzes     app.QuizRepository
	rooms       app.RoomRepository
	games       app.StateStore[domain.GameSession]
	battles     app.StateStore[domain.BattleSession]
	progress    app.ProgressRepository
	leaderboard app.Leaderboard
	closers     []func()
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	b, err := buildBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	ctx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	bosses, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	if cfg.Game.Watch && cfg.Game.Catalog != "" {
		watcher, err := catalog.NewWatcher(cfg.Game.Catalog, bosses)
		if err != nil {
			return err
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Printf("catalog watcher stopped: %v", err)
			}
		}()
		log.Printf("watching boss catalog %s", cfg.Game.Catalog)
	}

	locks := app.NewKeyedMutex()
	games := app.NewGameService(b.quizzes, b.games, b.progress, b.leaderboard,
		app.WithGameSeed(cfg.Game.Seed), app.WithGameLocks(locks))
	campaign := app.NewCampaignService(bosses, b.quizzes, b.battles, b.progress, b.leaderboard,
		app.WithCampaignSeed(cfg.Game.Seed), app.WithCampaignLocks(locks))
	progress := app.NewProgressService(b.progress, b.leaderboard, report.WriteProgressReport)
	multiplayer := app.NewMultiplayerService(b.rooms, b.quizzes)

	handler := transport.NewRouter(
		transport.NewAPI(games, campaign, progress),
		transport.NewWSHandler(multiplayer),
	)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting chemquest on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildBackends picks Redis, Postgres or sqlite where configured and falls back to memory.
func buildBackends(ctx context.Context, cfg config.Config) (*backends, error) {
	b := &backends{}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		b.closers = append(b.closers, func() { _ = redisClient.Close() })
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
	stateTTL := config.TTLDuration(cfg.Game.StateTTL, 2*time.Hour)

	var loader memory.QuizLoader = memory.NewStaticQuizLoader(memory.SampleQuizzes())
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.close()
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		loader = postgres.NewQuizLoader(pool)

		db := openBun(cfg.Postgres.URL)
		b.closers = append(b.closers, func() { _ = db.Close() })
		b.progress = sqlstore.NewProgressStore(db)
	}

	if b.progress == nil && cfg.SQLite.Path != "" {
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			b.close()
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = store.Close() })
		b.progress = store
		if redisClient == nil {
			b.leaderboard = store
		}
	}
	if b.progress == nil {
		b.progress = memory.NewProgressStore()
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	if redisClient != nil {
		b.quizzes = infraredis.NewQuizCache(redisClient, loader, quizTTL)
		b.rooms = infraredis.NewRoomStore(redisClient, redisTTL)
		b.games = infraredis.NewStateStore[domain.GameSession](redisClient, "game", stateTTL)
		b.battles = infraredis.NewStateStore[domain.BattleSession](redisClient, "battle", stateTTL)
		b.leaderboard = infraredis.NewLeaderboard(redisClient)
	} else {
		b.quizzes = memory.NewQuizCache(loader, quizTTL)
		b.rooms = memory.NewRoomStore()
		b.games = memory.NewStateStore[domain.GameSession](stateTTL)
		b.battles = memory.NewStateStore[domain.BattleSession](stateTTL)
		if b.leaderboard == nil {
			b.leaderboard = memory.NewLeaderboard()
		}
	}
	return b, nil
}
