package ui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# sv: product catalog viewer

## Search

| Key | Action |
|-----|--------|
| ` + "`/`" + ` | focus the search box |
| ` + "`enter`" + ` | run the query immediately |
| ` + "`esc`" + ` | leave the search box |
| ` + "`tab` / `f`" + ` | cycle the category filter |

Search is token-based: every space-separated token must appear somewhere in
the product (name, SKU, category, price, rating). Results update shortly
after you stop typing.

## Sorting

| Key | Action |
|-----|--------|
| ` + "`s`" + ` | cycle the sort field |
| ` + "`d`" + ` | flip the sort direction |

## Navigation

| Key | Action |
|-----|--------|
| ` + "`j`/`k`, arrows" + ` | move selection |
| ` + "`pgup`/`pgdown`" + ` | page |
| ` + "`g` / `G`" + ` | jump to top / bottom |

## Modes

| Key | Action |
|-----|--------|
| ` + "`w`" + ` | toggle viewport windowing / progressive mounting |
| ` + "`c`" + ` | toggle the compute worker / inline execution |
| ` + "`i`" + ` | statistics overlay for the current results |
| ` + "`y`" + ` | copy the selected product as JSON |
| ` + "`r`" + ` | reload the catalog file (when --db is set) |
| ` + "`q`" + ` | quit |
`

// renderHelpContent renders the help markdown for the current width.
// Falls back to the raw markdown if glamour cannot build a renderer.
func (m *Model) renderHelpContent() string {
	width := m.helpView.Width
	if width < 20 {
		width = 72
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
