package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"modscan/internal/catalog"
	"modscan/internal/config"
	"modscan/internal/filewalker"
	"modscan/internal/metrics"
	"modscan/internal/parser/builtin"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var metricsFile string

	rootCmd := &cobra.Command{
		Use:   "modscan",
		Short: "Parse game mods into comparable definitions",
		Long: `modscan reads strategy-game mod folders, splits every script file into
definitions (objects, variables, whole files, binary assets) and reports which
game elements are overridden by more than one mod.`,
		SilenceUsage: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if metricsFile == "" {
				return nil
			}
			return metrics.WriteFile(metricsFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	rootCmd.PersistentFlags().String("game", "Stellaris", "Game the mods belong to")

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(conflictsCmd())
	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(similarCmd())

	return rootCmd
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// loadConfig reads configuration and applies the log level.
func loadConfig() *config.Config {
	cfg := config.Load()
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return cfg
}

// newWalker builds the parser registry and a walker for the selected game.
func newWalker(cmd *cobra.Command, cfg *config.Config) (*filewalker.Walker, catalog.Game, error) {
	gameID, _ := cmd.Flags().GetString("game")

	cat, err := catalog.Load(cfg.GameCatalog)
	if err != nil {
		return nil, catalog.Game{}, err
	}
	game, err := cat.Get(gameID)
	if err != nil {
		return nil, catalog.Game{}, fmt.Errorf("%w (known: %v)", err, cat.IDs())
	}

	registry, err := builtin.NewRegistry()
	if err != nil {
		return nil, catalog.Game{}, err
	}

	w, err := filewalker.NewWalker(registry, game, cfg.ExcludeGlobs)
	if err != nil {
		return nil, catalog.Game{}, err
	}
	return w, game, nil
}

// scanMods scans each mod directory in order. Order is load order.
func scanMods(ctx context.Context, w *filewalker.Walker, dirs []string, workers int) ([]*filewalker.ModResult, error) {
	results := make([]*filewalker.ModResult, 0, len(dirs))
	for _, dir := range dirs {
		res, err := w.ScanMod(ctx, dir, workers)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		for _, f := range res.Unparsed {
			log.Warn().Str("mod", res.Descriptor.Name).Str("file", f).Msg("No parser for file")
		}
		results = append(results, res)
	}
	return results, nil
}

// initDatabase connects to PostgreSQL.
func initDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}

	if err := pgPool.Ping(ctx); err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")
	return pgPool, nil
}

// initGraph connects to Neo4j.
func initGraph(ctx context.Context, cfg *config.Config) (neo4j.DriverWithContext, error) {
	neo4jDriver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}

	if err := neo4jDriver.VerifyConnectivity(ctx); err != nil {
		neo4jDriver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")
	return neo4jDriver, nil
}
