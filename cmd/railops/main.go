// Command railops is the zone controller decision support CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"railops/internal/advisor"
	"railops/internal/config"
	"railops/internal/engine"
	"railops/internal/history"
	"railops/internal/seed"
	"railops/internal/snapshot"
	"railops/internal/store"
)

// #region globals
var (
	verbose bool
	dbPath  string

	logger *zap.Logger
)

// #endregion globals

// #region root

var rootCmd = &cobra.Command{
	Use:   "railops",
	Short: "Decision support for railway zone controllers",
	Long: `railops assembles a zone's current operational state, retrieves similar
past resolutions and produces an actionable suggestion, either from the
Gemini advisory service or from a local rule-based fallback.

Set GEMINI_API_KEY to enable the advisory service; without it every
suggestion comes from the rule-based strategy.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// #endregion root

// #region wiring

// openStore opens the database at the configured path. The --db flag wins
// over RAILOPS_DB.
func openStore(cfg config.Config) (*store.Store, error) {
	path := cfg.DBPath
	if dbPath != "" {
		path = dbPath
	}
	return store.NewStore(path)
}

// newEngine wires the full decision engine. Advisory unavailability at
// construction selects the rule-based strategy and is not an error.
func newEngine(ctx context.Context, st *store.Store, cfg config.Config) *engine.Engine {
	engCfg := engine.DefaultConfig()
	engCfg.HistoryLimit = cfg.HistoryLimit
	engCfg.Snapshot.VehicleLimit = cfg.VehicleLimit

	var primary advisor.Advisor
	gemini, err := advisor.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		logger.Warn("running without advisory service", zap.Error(err))
	} else {
		primary = gemini
	}

	return engine.NewEngine(st, primary, engCfg, logger)
}

// #endregion wiring

// #region analyze-cmd

var (
	analyzeZone  int64
	analyzeIssue string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build a decision package for a zone and issue",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		eng := newEngine(ctx, st, cfg)
		pkg, err := eng.Analyze(ctx, analyzeZone, analyzeIssue)
		if err != nil {
			return err
		}

		fmt.Print(engine.Render(pkg))
		return nil
	},
}

// #endregion analyze-cmd

// #region confirm-cmd

var (
	confirmZone    int64
	confirmAction  string
	confirmOutcome string
)

var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Persist the operator's chosen action for a zone",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		eng := engine.NewEngine(st, nil, engine.DefaultConfig(), logger)
		id, err := eng.Commit(engine.Package{
			ZoneID:    confirmZone,
			CreatedAt: time.Now().UTC(),
		}, confirmAction, store.Outcome(confirmOutcome))
		if err != nil {
			return err
		}

		fmt.Printf("decision recorded: id=%d\n", id)
		return nil
	},
}

// #endregion confirm-cmd

// #region status-cmd

var statusZone int64

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print a zone's current operational snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		snapCfg := snapshot.DefaultConfig()
		snapCfg.VehicleLimit = cfg.VehicleLimit
		snap, err := snapshot.NewAggregator(st, snapCfg, logger).Take(statusZone)
		if err != nil {
			return err
		}

		fmt.Println(advisor.FormatSnapshot(snap))
		return nil
	},
}

// #endregion status-cmd

// #region history-cmd

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [keyword]...",
	Short: "Search past decisions by keywords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		matches, err := history.NewMatcher(st, logger).SearchByKeywords(args, historyLimit)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			fmt.Println("no matching decisions")
			return nil
		}

		for _, m := range matches {
			fmt.Printf("[%s] %s (%s): %s\n",
				m.Timestamp.Format(time.RFC3339), m.ZoneName, m.Outcome, m.Action)
		}
		return nil
	},
}

// #endregion history-cmd

// #region seed-cmd

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample data (clears existing data)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		return seed.Populate(st, logger)
	},
}

// #endregion seed-cmd

// #region main

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides RAILOPS_DB)")

	analyzeCmd.Flags().Int64Var(&analyzeZone, "zone", 0, "zone id")
	analyzeCmd.Flags().StringVar(&analyzeIssue, "issue", "", "issue description")
	confirmCmd.Flags().Int64Var(&confirmZone, "zone", 0, "zone id")
	confirmCmd.Flags().StringVar(&confirmAction, "action", "", "chosen action text")
	confirmCmd.Flags().StringVar(&confirmOutcome, "outcome", "", "Resolved | Partially Resolved | Escalated")
	statusCmd.Flags().Int64Var(&statusZone, "zone", 0, "zone id")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "max results")

	rootCmd.AddCommand(analyzeCmd, confirmCmd, statusCmd, historyCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// #endregion main
