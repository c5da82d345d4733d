package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	json "github.com/goccy/go-json"

	"github.com/SandeshR98/scaleview/internal/datasource"
	"github.com/SandeshR98/scaleview/pkg/catalog"
	"github.com/SandeshR98/scaleview/pkg/compute"
	"github.com/SandeshR98/scaleview/pkg/config"
	"github.com/SandeshR98/scaleview/pkg/engine"
	"github.com/SandeshR98/scaleview/pkg/export"
	"github.com/SandeshR98/scaleview/pkg/model"
	"github.com/SandeshR98/scaleview/pkg/stats"
	"github.com/SandeshR98/scaleview/pkg/ui"
	"github.com/SandeshR98/scaleview/pkg/version"
	"github.com/SandeshR98/scaleview/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	dbPath := flag.String("db", "", "Load the catalog from a SQLite database instead of generating one")
	count := flag.Int("count", 0, "Override the generated catalog size")
	seed := flag.Int64("seed", -1, "Override the generator seed")
	robotFlag := flag.Bool("robot", false, "Machine-readable mode: print a JSON report and exit")
	findQuery := flag.String("find", "", "Query to run in --robot mode (e.g. 'premium widget')")
	limit := flag.Int("limit", 20, "Maximum products to include in --robot output")
	exportDB := flag.String("export-db", "", "Generate a catalog, save it as a SQLite database, and exit")
	exportHist := flag.String("export-hist", "", "Write a price histogram (.svg or .png) and exit")
	wizardFlag := flag.Bool("wizard", false, "Interactive catalog export wizard")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: sv [options]")
		fmt.Println("\nAn interactive viewer for large product catalogs.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("sv %s\n", version.Version)
		os.Exit(0)
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue with defaults.
		cfg = config.DefaultConfig()
	}
	if *count > 0 {
		cfg.Catalog.Count = *count
	}
	if *seed >= 0 {
		cfg.Catalog.Seed = *seed
	}
	if *dbPath != "" {
		cfg.Catalog.DB = *dbPath
	}

	if *wizardFlag {
		if err := runWizard(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Wizard failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *exportDB != "" {
		if err := runExportDB(cfg, *exportDB); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *exportHist != "" {
		if err := runExportHist(cfg, *exportHist); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *robotFlag || *findQuery != "" {
		if err := runRobot(cfg, *findQuery, *limit); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal (use --robot for scripted output)")
		os.Exit(1)
	}

	opts := ui.Options{Config: cfg, DBPath: cfg.Catalog.DB}

	if cfg.Catalog.DB != "" {
		if _, err := os.Stat(cfg.Catalog.DB); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open catalog database %s: %v\n", cfg.Catalog.DB, err)
			fmt.Fprintln(os.Stderr, "Create one with 'sv --export-db <path>'.")
			os.Exit(1)
		}
		w, err := watcher.New(cfg.Catalog.DB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
		} else if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
		} else {
			opts.Watcher = w
			defer w.Stop()
		}
	}

	if cfg.WorkerEnabled() {
		opts.Worker = compute.NewWorker(compute.Config{})
	}

	m := ui.NewModel(opts)
	final, err := runTUIProgram(m)
	if fm, ok := final.(ui.Model); ok {
		if w := fm.Worker(); w != nil {
			w.Stop()
		}
	} else if opts.Worker != nil {
		opts.Worker.Stop()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running catalog viewer: %v\n", err)
		os.Exit(1)
	}
}

func runTUIProgram(m ui.Model) (tea.Model, error) {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set SV_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("SV_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	final, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return final, nil
	}
	return final, err
}

// acquireProducts loads the catalog from the configured database, or
// generates one when no database is set.
func acquireProducts(cfg config.Config) ([]model.Product, string, error) {
	if cfg.Catalog.DB != "" {
		reader, err := datasource.NewReader(cfg.Catalog.DB)
		if err != nil {
			return nil, "", err
		}
		defer reader.Close()
		products, err := reader.LoadProducts()
		if err != nil {
			return nil, "", err
		}
		return products, cfg.Catalog.DB, nil
	}

	products, err := catalog.Generate(context.Background(), catalog.GenerateOptions{
		Count: cfg.Catalog.Count,
		Seed:  cfg.Catalog.Seed,
	})
	if err != nil {
		return nil, "", err
	}
	return products, "generated", nil
}

type robotReport struct {
	Source    string          `json:"source"`
	Total     int             `json:"total"`
	Query     string          `json:"query,omitempty"`
	Matches   int             `json:"matches"`
	ElapsedMs float64         `json:"elapsed_ms"`
	Products  []model.Product `json:"products"`
}

func runRobot(cfg config.Config, query string, limit int) error {
	products, source, err := acquireProducts(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	results := products
	if query != "" {
		q := model.ParseQuery(query, "")
		results = engine.Select(products, engine.Filter(products, q))
	}
	elapsed := time.Since(start)

	report := robotReport{
		Source:    source,
		Total:     len(products),
		Query:     query,
		Matches:   len(results),
		ElapsedMs: float64(elapsed.Microseconds()) / 1000,
		Products:  results,
	}
	if limit > 0 && len(report.Products) > limit {
		report.Products = report.Products[:limit]
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func runExportDB(cfg config.Config, path string) error {
	products, err := catalog.Generate(context.Background(), catalog.GenerateOptions{
		Count: cfg.Catalog.Count,
		Seed:  cfg.Catalog.Seed,
	})
	if err != nil {
		return err
	}
	if err := datasource.Save(path, products); err != nil {
		return err
	}
	fmt.Printf("Saved %d products to %s\n", len(products), path)
	return nil
}

func runExportHist(cfg config.Config, path string) error {
	products, _, err := acquireProducts(cfg)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("catalog is empty, nothing to chart")
	}
	if err := export.WriteHistogram(stats.Prices(products), export.HistogramOptions{
		Path:  path,
		Title: fmt.Sprintf("Price distribution (%d products)", len(products)),
	}); err != nil {
		return err
	}
	fmt.Printf("Wrote price histogram for %d products to %s\n", len(products), path)
	return nil
}
