package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SandeshR98/scaleview/pkg/stats"
)

const insightsHistogramBins = 16

// renderInsightsContent builds the statistics overlay for the committed
// result set: price and rating summaries plus a price histogram.
func (m *Model) renderInsightsContent() string {
	t := m.theme
	products := m.visible
	if len(products) == 0 {
		return t.MutedText.Render("no products in the current result set")
	}

	var b strings.Builder

	b.WriteString(t.PrimaryBold.Render(fmt.Sprintf("Result set: %s products", FormatCount(len(products)))))
	b.WriteString("\n\n")

	prices := stats.Prices(products)
	ratings := stats.Ratings(products)

	b.WriteString(renderSummarySection(t, "Price", stats.Summarize(prices), "$%.2f"))
	b.WriteString("\n")
	b.WriteString(renderSummarySection(t, "Rating", stats.Summarize(ratings), "%.2f"))
	b.WriteString("\n")

	b.WriteString(t.PrimaryBold.Render("Price distribution"))
	b.WriteString("\n")
	b.WriteString(m.renderHistogram(stats.Bin(prices, insightsHistogramBins)))
	b.WriteString("\n")

	b.WriteString(t.PrimaryBold.Render("By category"))
	b.WriteString("\n")
	b.WriteString(m.renderCategoryBreakdown())

	return b.String()
}

func renderSummarySection(t Theme, label string, s stats.Summary, format string) string {
	var b strings.Builder
	b.WriteString(t.PrimaryBold.Render(label))
	b.WriteString("\n")
	row := func(name string, v float64) {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", name, t.InfoText.Render(fmt.Sprintf(format, v))))
	}
	row("mean", s.Mean)
	row("stddev", s.StdDev)
	row("median", s.Median)
	row("p90", s.P90)
	row("min", s.Min)
	row("max", s.Max)
	return b.String()
}

func (m *Model) renderHistogram(h stats.Histogram) string {
	maxCount := h.MaxCount()
	if maxCount == 0 {
		return m.theme.MutedText.Render("  (empty)") + "\n"
	}

	barWidth := m.insightsView.Width - 28
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	for i, count := range h.Counts {
		lo := h.Min + float64(i)*h.Width
		bar := RenderMiniBar(float64(count)/float64(maxCount), barWidth, m.theme)
		b.WriteString(fmt.Sprintf("  %8.2f %s %s\n", lo, bar,
			m.theme.MutedText.Render(FormatCount(count))))
	}
	return b.String()
}

func (m *Model) renderCategoryBreakdown() string {
	counts := make(map[string]int)
	for _, p := range m.visible {
		counts[p.Category]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	var b strings.Builder
	for _, name := range names {
		share := float64(counts[name]) / float64(len(m.visible))
		b.WriteString(fmt.Sprintf("  %-20s %6s  %s\n",
			truncate(name, 20),
			FormatCount(counts[name]),
			RenderMiniBar(share, 24, m.theme)))
	}
	return b.String()
}
