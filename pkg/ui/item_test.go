package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/SandeshR98/scaleview/pkg/testutil"
)

func TestRowRendererClampsWidth(t *testing.T) {
	d := RowRenderer{Theme: TestTheme()}
	for _, width := range []int{40, 80, 120} {
		for _, p := range testutil.Named() {
			row := d.Render(p, false, width)
			if w := lipgloss.Width(row); w > width {
				t.Errorf("row for %q at width %d measures %d cells", p.Name, width, w)
			}
		}
	}
}

func TestRowRendererContainsFields(t *testing.T) {
	d := RowRenderer{Theme: TestTheme()}
	p := testutil.Named()[0]
	row := d.Render(p, false, 120)
	if !strings.Contains(row, p.SKU) {
		t.Errorf("row missing SKU %q: %q", p.SKU, row)
	}
	if !strings.Contains(row, "Premium Widget 1") {
		t.Errorf("row missing product name: %q", row)
	}
	if !strings.Contains(row, "19.99") {
		t.Errorf("row missing price: %q", row)
	}
}

func TestRowRendererSelectionIndicator(t *testing.T) {
	d := RowRenderer{Theme: TestTheme()}
	p := testutil.Single()[0]
	selected := d.Render(p, true, 80)
	unselected := d.Render(p, false, 80)
	if !strings.Contains(selected, "▸") {
		t.Error("selected row missing indicator")
	}
	if strings.Contains(unselected, "▸") {
		t.Error("unselected row has indicator")
	}
}

func TestRenderGroup(t *testing.T) {
	d := RowRenderer{Theme: TestTheme()}
	products := testutil.Named()

	if got := d.RenderGroup(nil, false, 80); got != "" {
		t.Errorf("empty group should render empty, got %q", got)
	}

	single := d.RenderGroup(products[:1], false, 80)
	if !strings.Contains(single, products[0].SKU) {
		t.Error("single-member group should render as a full row")
	}

	pair := d.RenderGroup(products[:2], false, 80)
	if !strings.Contains(pair, "Premium Widget 1") && !strings.Contains(pair, "Premium Wid") {
		t.Errorf("grouped row missing first member: %q", pair)
	}
}

func TestStockBadgeLevels(t *testing.T) {
	out := RenderStockBadge(0)
	low := RenderStockBadge(5)
	in := RenderStockBadge(200)
	if !strings.Contains(out, "OUT") {
		t.Errorf("zero stock badge = %q", out)
	}
	if !strings.Contains(low, "LOW") {
		t.Errorf("low stock badge = %q", low)
	}
	if !strings.Contains(in, "200") {
		t.Errorf("in-stock badge = %q", in)
	}
}

func TestRatingBar(t *testing.T) {
	if bar := RenderRatingBar(5.0); !strings.Contains(bar, "★★★★★") {
		t.Errorf("5.0 bar = %q", bar)
	}
	if bar := RenderRatingBar(1.0); !strings.Contains(bar, "★☆☆☆☆") {
		t.Errorf("1.0 bar = %q", bar)
	}
}
