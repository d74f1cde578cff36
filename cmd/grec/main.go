// GRec CLI - 5G plan recommendation toolkit
//
// Usage:
//   grec recommend --data 10 --calls 100 --budget 50
//   grec catalog list --carrier "China Mobile"
//   grec catalog import --db catalog.db --file plans.yaml
//   grec catalog backup --db catalog.db
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/BiiZti/5GRecommendationTool/internal/backup"
	"github.com/BiiZti/5GRecommendationTool/internal/catalog"
	"github.com/BiiZti/5GRecommendationTool/internal/engine"
	"github.com/BiiZti/5GRecommendationTool/internal/store"
	"github.com/BiiZti/5GRecommendationTool/internal/version"
	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

func main() {
	app := &cli.App{
		Name:    "grec",
		Usage:   "5G plan recommendation toolkit",
		Version: version.Short(),

		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "no-builtin",
				Usage:   "Skip the bundled carrier catalogs",
				EnvVars: []string{"GREC_NO_BUILTIN"},
			},
			&cli.StringSliceFlag{
				Name:    "catalog-file",
				Aliases: []string{"f"},
				Usage:   "Load plans from a JSON or YAML catalog file (repeatable)",
				EnvVars: []string{"GREC_CATALOG_FILE"},
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Load plans from a SQLite catalog database",
				EnvVars: []string{"GREC_DB"},
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit machine-readable JSON instead of text",
			},
		},

		Commands: []*cli.Command{
			recommendCommand(),
			catalogCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// RECOMMEND COMMAND
// =============================================================================

func recommendCommand() *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Rank catalog plans against a usage profile",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Required monthly data in GB",
			},
			&cli.Float64Flag{
				Name:  "calls",
				Usage: "Required monthly call minutes",
			},
			&cli.StringFlag{
				Name:     "budget",
				Aliases:  []string{"b"},
				Required: true,
				Usage:    "Monthly budget in yuan",
			},
			&cli.StringFlag{
				Name:  "carrier",
				Usage: "Restrict matching to a single carrier",
			},
			&cli.IntFlag{
				Name:  "max-results",
				Usage: "Maximum number of recommendations",
			},
			&cli.Float64Flag{
				Name:  "functional-weight",
				Usage: "Weight of the capability score (requires --price-weight)",
			},
			&cli.Float64Flag{
				Name:  "price-weight",
				Usage: "Weight of the price score (requires --functional-weight)",
			},
		},
		Action: runRecommend,
	}
}

func runRecommend(c *cli.Context) error {
	budget, err := decimal.NewFromString(c.String("budget"))
	if err != nil {
		return fmt.Errorf("invalid budget %q: %w", c.String("budget"), err)
	}
	req := models.Requirement{
		Data:   c.Float64("data"),
		Calls:  c.Float64("calls"),
		Budget: budget,
	}

	cfg := engine.DefaultConfig()
	if c.IsSet("functional-weight") != c.IsSet("price-weight") {
		return errors.New("--functional-weight and --price-weight must be set together")
	}
	if c.IsSet("functional-weight") {
		cfg.FunctionalWeight = c.Float64("functional-weight")
		cfg.PriceWeight = c.Float64("price-weight")
	}
	if c.IsSet("max-results") {
		cfg.MaxResults = c.Int("max-results")
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	manager, closeFn, err := buildManager(c)
	if err != nil {
		return err
	}
	defer closeFn()

	plans, err := loadPlans(c.Context, manager, c.String("carrier"))
	if err != nil {
		return err
	}

	result, err := eng.Recommend(plans, req)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return writeJSON(result)
	}
	printResult(result, req)
	return nil
}

func printResult(result *models.RecommendationResult, req models.Requirement) {
	if !result.Matched() {
		fmt.Println("No plan fits the given profile.")
		for _, reason := range result.Failure.Reasons {
			fmt.Printf("  [%s] %s\n", reason.Code, reason.Suggestion)
		}
		return
	}

	fmt.Printf("%d plan(s) for data %s GB, calls %s min, budget %s yuan\n\n",
		len(result.Recommendations), fmtAmount(req.Data), fmtAmount(req.Calls), req.Budget.String())

	for i, rec := range result.Recommendations {
		marker := " "
		if rec.BestMatch {
			marker = "*"
		}
		fmt.Printf("%s %2d. %-26s %-14s %8s yuan  score %.3f  %s\n",
			marker, i+1, rec.Plan.Name, rec.Plan.Carrier, rec.Plan.Price.String(), rec.CompositeScore, rec.Tier)
		for _, r := range rec.Reasons {
			fmt.Printf("       - %s\n", r)
		}
	}
}

// =============================================================================
// CATALOG COMMANDS
// =============================================================================

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Inspect and manage plan catalogs",
		Subcommands: []*cli.Command{
			catalogListCommand(),
			catalogCarriersCommand(),
			catalogValidateCommand(),
			catalogImportCommand(),
			catalogBackupCommand(),
			catalogRestoreCommand(),
		},
	}
}

func catalogListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the plans in the configured catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "carrier",
				Usage: "List only one carrier's plans",
			},
		},
		Action: func(c *cli.Context) error {
			manager, closeFn, err := buildManager(c)
			if err != nil {
				return err
			}
			defer closeFn()

			plans, err := loadPlans(c.Context, manager, c.String("carrier"))
			if err != nil {
				return err
			}

			if c.Bool("json") {
				return writeJSON(plans)
			}

			fmt.Printf("%-18s %-14s %-26s %-14s %8s %12s %12s\n",
				"ID", "CARRIER", "NAME", "TYPE", "PRICE", "DATA", "CALLS")
			for i := range plans {
				p := &plans[i]
				fmt.Printf("%-18s %-14s %-26s %-14s %8s %12s %12s\n",
					p.ID, p.Carrier, p.Name, p.Type, p.Price.String(),
					quotaString(p.Data, "GB"), quotaString(p.Calls, "min"))
			}
			fmt.Printf("\n%d plans\n", len(plans))
			return nil
		},
	}
}

func catalogCarriersCommand() *cli.Command {
	return &cli.Command{
		Name:  "carriers",
		Usage: "List the carriers in the configured catalog",
		Action: func(c *cli.Context) error {
			manager, closeFn, err := buildManager(c)
			if err != nil {
				return err
			}
			defer closeFn()

			carriers, err := manager.Carriers(c.Context)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				return writeJSON(carriers)
			}
			for _, name := range carriers {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func catalogValidateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check every catalog plan against the model constraints",
		Action: func(c *cli.Context) error {
			manager, closeFn, err := buildManager(c)
			if err != nil {
				return err
			}
			defer closeFn()

			plans, err := manager.Plans(c.Context)
			if err != nil {
				return err
			}
			issues := catalog.ValidateAll(plans)

			if c.Bool("json") {
				return writeJSON(struct {
					Valid  bool                 `json:"valid"`
					Count  int                  `json:"count"`
					Issues []catalog.PlanIssues `json:"issues,omitempty"`
				}{Valid: issues == nil, Count: len(plans), Issues: issues})
			}

			if len(issues) == 0 {
				fmt.Printf("catalog OK: %d plans\n", len(plans))
				return nil
			}
			for _, iss := range issues {
				fmt.Printf("plan %s:\n", planRef(iss))
				for _, msg := range iss.Issues {
					fmt.Printf("  - %s\n", msg)
				}
			}
			return fmt.Errorf("catalog has %d invalid plan(s)", len(issues))
		},
	}
}

func catalogImportCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import a catalog file into a SQLite catalog database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Required: true,
				Usage:    "Catalog file to import (JSON or YAML)",
			},
			&cli.StringFlag{
				Name:  "carrier",
				Usage: "Carrier name for records that do not declare one",
			},
			&cli.BoolFlag{
				Name:  "replace",
				Usage: "Replace the stored catalog instead of appending",
			},
		},
		Action: func(c *cli.Context) error {
			dbPath := c.String("db")
			if dbPath == "" {
				return errors.New("--db is required for import")
			}

			plans, err := catalog.NewFileProvider(c.String("file"), c.String("carrier")).Plans(c.Context)
			if err != nil {
				return err
			}

			st, err := store.New(dbPath)
			if err != nil {
				return fmt.Errorf("open catalog store: %w", err)
			}
			defer st.Close()

			provider, err := catalog.NewSQLiteProvider(c.Context, st)
			if err != nil {
				return fmt.Errorf("init sqlite catalog: %w", err)
			}
			n, err := provider.Import(c.Context, plans, c.Bool("replace"))
			if err != nil {
				return err
			}
			fmt.Printf("imported %d plan(s) into %s\n", n, dbPath)
			return nil
		},
	}
}

func catalogBackupCommand() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Archive the SQLite catalog database as a tar.gz bundle",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Archive path (default: grec-backup-{timestamp}.tar.gz)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file to include in the archive",
			},
		},
		Action: func(c *cli.Context) error {
			dbPath := c.String("db")
			if dbPath == "" {
				return errors.New("--db is required for backup")
			}
			output := c.String("output")
			if output == "" {
				output = fmt.Sprintf("grec-backup-%s.tar.gz", time.Now().Format("20060102-150405"))
			}
			if err := backup.Backup(c.Context, dbPath, c.String("config"), output); err != nil {
				return err
			}
			fmt.Printf("backup created: %s\n", output)
			return nil
		},
	}
}

func catalogRestoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "restore",
		Usage: "Restore a catalog backup archive into a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "archive",
				Required: true,
				Usage:    "Backup archive to restore",
			},
			&cli.StringFlag{
				Name:  "dir",
				Value: ".",
				Usage: "Target directory for restored files",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite existing files",
			},
		},
		Action: func(c *cli.Context) error {
			if err := backup.Restore(c.Context, c.String("archive"), c.String("dir"), c.Bool("force")); err != nil {
				return err
			}
			fmt.Printf("restored into %s\n", c.String("dir"))
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(*cli.Context) error {
			fmt.Println(version.Info())
			return nil
		},
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// buildManager assembles a catalog Manager from the global source flags:
// bundled catalogs unless --no-builtin, then files, then the SQLite store.
func buildManager(c *cli.Context) (*catalog.Manager, func(), error) {
	manager := catalog.NewManager(zap.NewNop())

	if !c.Bool("no-builtin") {
		for _, p := range catalog.BuiltinProviders() {
			manager.Register(p)
		}
	}
	for _, path := range c.StringSlice("catalog-file") {
		manager.Register(catalog.NewFileProvider(path, ""))
	}

	closeFn := func() {}
	if path := c.String("db"); path != "" {
		st, err := store.New(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open catalog store: %w", err)
		}
		provider, err := catalog.NewSQLiteProvider(c.Context, st)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("init sqlite catalog: %w", err)
		}
		manager.Register(provider)
		closeFn = func() { st.Close() }
	}
	return manager, closeFn, nil
}

// loadPlans returns the merged catalog, or one carrier's slice of it.
// Unlike the Manager, an unknown carrier is an error here.
func loadPlans(ctx context.Context, manager *catalog.Manager, carrier string) ([]models.Plan, error) {
	if carrier == "" {
		return manager.Plans(ctx)
	}
	plans, err := manager.PlansByCarrier(ctx, carrier)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, fmt.Errorf("carrier %q not found in catalog", carrier)
	}
	return plans, nil
}

func planRef(iss catalog.PlanIssues) string {
	switch {
	case iss.ID != "" && iss.Name != "":
		return iss.ID + " (" + iss.Name + ")"
	case iss.ID != "":
		return iss.ID
	case iss.Name != "":
		return iss.Name
	default:
		return "#" + strconv.Itoa(iss.Index)
	}
}

func quotaString(q models.Quota, unit string) string {
	if q.Unlimited {
		return "unlimited"
	}
	return fmtAmount(q.Amount) + " " + unit
}

func fmtAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
