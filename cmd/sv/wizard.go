package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/SandeshR98/scaleview/internal/datasource"
	"github.com/SandeshR98/scaleview/pkg/catalog"
	"github.com/SandeshR98/scaleview/pkg/config"
	"github.com/SandeshR98/scaleview/pkg/export"
	"github.com/SandeshR98/scaleview/pkg/stats"
)

// isTerminal checks if stdin is connected to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if n <= 0 || n > 10_000_000 {
		return fmt.Errorf("count must be between 1 and 10,000,000")
	}
	return nil
}

func validateSeed(s string) error {
	if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
		return fmt.Errorf("not a number")
	}
	return nil
}

// runWizard walks the user through generating a catalog and exporting it as
// a SQLite database, with an optional price histogram alongside.
func runWizard(cfg config.Config) error {
	countStr := strconv.Itoa(cfg.Catalog.Count)
	seedStr := strconv.FormatInt(cfg.Catalog.Seed, 10)
	outPath := "catalog.db"
	writeHist := false
	histPath := "prices.svg"

	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Catalog size").
				Description("How many products to generate").
				Value(&countStr).
				Validate(validateCount),
			huh.NewInput().
				Title("Generator seed").
				Description("Same seed, same catalog").
				Value(&seedStr).
				Validate(validateSeed),
			huh.NewInput().
				Title("Database path").
				Description("Where to write the SQLite file").
				Value(&outPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Also write a price histogram?").
				Value(&writeHist),
			huh.NewInput().
				Title("Histogram path").
				Description("Extension selects the format (.svg or .png)").
				Value(&histPath),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	n, _ := strconv.Atoi(strings.TrimSpace(countStr))
	seed, _ := strconv.ParseInt(strings.TrimSpace(seedStr), 10, 64)

	fmt.Printf("Generating %d products (seed %d)...\n", n, seed)
	products, err := catalog.Generate(context.Background(), catalog.GenerateOptions{
		Count: n,
		Seed:  seed,
	})
	if err != nil {
		return err
	}

	if err := datasource.Save(outPath, products); err != nil {
		return err
	}
	fmt.Printf("Saved %d products to %s\n", len(products), outPath)

	if writeHist && strings.TrimSpace(histPath) != "" {
		if err := export.WriteHistogram(stats.Prices(products), export.HistogramOptions{
			Path:  histPath,
			Title: fmt.Sprintf("Price distribution (%d products)", len(products)),
		}); err != nil {
			return err
		}
		fmt.Printf("Wrote price histogram to %s\n", histPath)
	}

	fmt.Printf("\nBrowse it with: sv --db %s\n", outPath)
	return nil
}
