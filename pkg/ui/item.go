package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SandeshR98/scaleview/pkg/model"
)

// RowRenderer renders product rows for the list. Styles are pre-computed
// once so a scroll frame does no style allocation.
type RowRenderer struct {
	Theme Theme
}

// Render renders one product as a single list row clamped to width.
//
// Layout: [sel] [cat] [stock-badge] [rating] [SKU] [name...] [price]
func (d RowRenderer) Render(p model.Product, selected bool, width int) string {
	t := d.Theme
	if width <= 0 {
		width = 80
	}
	// Reduce width by 1 to prevent terminal wrapping on the exact edge
	width = width - 1

	icon, iconColor := t.GetCategoryIcon(p.Category)
	name := p.Name
	priceStr := p.DisplayPrice()

	// Right side: price, and rating stars when the terminal is wide enough
	rightWidth := 0
	var rightParts []string
	if width > 70 {
		rightParts = append(rightParts, RenderRatingBar(p.Rating))
		rightWidth += 6
	}
	rightParts = append(rightParts, t.PriceText.Render(fmt.Sprintf("%9s", priceStr)))
	rightWidth += 10

	// Left side fixed columns
	// [selector 2] [icon 1] [stock 4] [sku 10] [space]
	leftFixedWidth := 2 + 1 + 1

	stockBadge := RenderStockBadge(p.Stock)
	leftFixedWidth += lipgloss.Width(stockBadge) + 1

	skuStr := p.SKU
	leftFixedWidth += lipgloss.Width(skuStr) + 1

	// Name gets everything in between
	nameWidth := width - leftFixedWidth - rightWidth - 2
	if nameWidth < 5 {
		nameWidth = 5
	}
	name = truncateRunesHelper(name, nameWidth, "…")
	if cur := lipgloss.Width(name); cur < nameWidth {
		name = name + strings.Repeat(" ", nameWidth-cur)
	}

	var leftSide strings.Builder

	if selected {
		leftSide.WriteString(t.PrimaryBold.Render("▸ "))
	} else {
		leftSide.WriteString("  ")
	}

	leftSide.WriteString(t.Renderer.NewStyle().Foreground(iconColor).Render(icon))
	leftSide.WriteString(" ")

	leftSide.WriteString(stockBadge)
	leftSide.WriteString(" ")

	skuStyle := t.SecondaryText
	if selected {
		skuStyle = skuStyle.Bold(true)
	}
	leftSide.WriteString(skuStyle.Render(skuStr))
	leftSide.WriteString(" ")

	nameStyle := t.Renderer.NewStyle()
	if selected {
		nameStyle = nameStyle.Foreground(t.Primary).Bold(true)
	} else {
		nameStyle = nameStyle.Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E8E8E8"})
	}
	leftSide.WriteString(nameStyle.Render(name))

	rightSide := strings.Join(rightParts, " ")

	leftLen := lipgloss.Width(leftSide.String())
	rightLen := lipgloss.Width(rightSide)
	padding := width - leftLen - rightLen
	if padding < 0 {
		padding = 0
	}

	row := leftSide.String() + strings.Repeat(" ", padding) + rightSide

	rowStyle := t.Renderer.NewStyle().Width(width).MaxWidth(width)
	if selected {
		return rowStyle.Background(t.Highlight).Render(row)
	}
	return rowStyle.Render(row)
}

// RenderGroup renders one visual row backed by a group of products. With
// GroupSize 1 this is a plain product row; with K > 1 the group members are
// rendered as compact cells sharing the width.
func (d RowRenderer) RenderGroup(group []model.Product, selected bool, width int) string {
	switch len(group) {
	case 0:
		return ""
	case 1:
		return d.Render(group[0], selected, width)
	}

	cellWidth := width/len(group) - 1
	if cellWidth < 8 {
		cellWidth = 8
	}
	cells := make([]string, len(group))
	for i, p := range group {
		label := truncate(p.Name, cellWidth-1)
		style := d.Theme.Renderer.NewStyle().Width(cellWidth).MaxWidth(cellWidth)
		if selected {
			style = style.Background(d.Theme.Highlight)
		}
		cells[i] = style.Render(label)
	}
	return strings.Join(cells, " ")
}
