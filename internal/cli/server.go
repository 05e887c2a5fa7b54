package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexRzehak/FlashBoxFactory/internal/app"
	"github.com/AlexRzehak/FlashBoxFactory/internal/config"
	"github.com/AlexRzehak/FlashBoxFactory/internal/domain"
	"github.com/AlexRzehak/FlashBoxFactory/internal/infra/memory"
	pgloader "github.com/AlexRzehak/FlashBoxFactory/internal/infra/postgres"
	redisinfra "github.com/AlexRzehak/FlashBoxFactory/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the engine process.
// The web frontend mounts the engine as a library; this process only
// exposes a health endpoint.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the duel engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
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

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	engine := buildEngine(cfg, redisClient, pool)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// a leaderboard read doubles as a store connectivity probe
		if _, err := engine.Top(r.Context(), 1); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting duel engine on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildEngine(cfg config.Config, redisClient *redis.Client, pool *pgxpool.Pool) *app.Engine {
	contentTTL := config.TTLDuration(cfg.Content.TTL, 10*time.Minute)

	if redisClient == nil {
		// no redis configured: run fully in-memory (dev/demo mode)
		loader := memory.NewStaticBoxLoader(sampleBoxes())
		return app.NewEngine(
			memory.NewDuelStore(),
			memory.NewRosterStore(),
			memory.NewAnswerLedger(),
			memory.NewContentProvider(loader, contentTTL),
			memory.NewIdentityProvider(),
			memory.NewScoreBoard(),
		)
	}

	var loader redisinfra.BoxLoader = staticLoader{boxes: sampleBoxes()}
	if pool != nil {
		loader = pgloader.NewBoxLoader(pool)
	}

	return app.NewEngine(
		redisinfra.NewDuelStore(redisClient),
		redisinfra.NewRosterStore(redisClient),
		redisinfra.NewAnswerLedger(redisClient),
		redisinfra.NewContentProvider(redisClient, loader, contentTTL),
		redisinfra.NewIdentityProvider(redisClient),
		redisinfra.NewScoreBoard(redisClient),
	)
}

// staticLoader adapts the sample boxes to the redis provider's loader.
type staticLoader struct {
	boxes map[string]domain.BoxSnapshot
}

func (l staticLoader) LoadBox(_ context.Context, boxID string) (domain.BoxSnapshot, error) {
	if box, ok := l.boxes[boxID]; ok {
		return box, nil
	}
	return domain.BoxSnapshot{}, domain.ErrNotFound
}

// sampleBoxes provides a minimal card set; swap the loader with the
// Postgres-backed one in production.
func sampleBoxes() map[string]domain.BoxSnapshot {
	return map[string]domain.BoxSnapshot{
		"box-1": {
			BoxID: "box-1",
			Name:  "Arithmetic Basics",
			Cards: []domain.Card{
				{
					Question:      "What is 2 + 2?",
					Answers:       []string{"3", "4", "5"},
					CorrectAnswer: 1,
					Explanation:   "Two plus two makes four.",
				},
				{
					Question:      "What is 3 * 3?",
					Answers:       []string{"9", "6", "12"},
					CorrectAnswer: 0,
					Explanation:   "Three times three makes nine.",
				},
			},
		},
	}
}
