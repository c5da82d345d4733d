// Package export renders catalog distribution charts to SVG or PNG files.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/SandeshR98/scaleview/pkg/stats"
)

// HistogramOptions configures a histogram rendering.
type HistogramOptions struct {
	Path   string // output file; extension selects the format (.svg or .png)
	Title  string
	Width  int
	Height int
	Bins   int
}

const (
	defaultChartWidth  = 900
	defaultChartHeight = 420
	defaultBins        = 30

	marginLeft   = 60
	marginRight  = 24
	marginTop    = 56
	marginBottom = 48
)

var (
	colorBackdrop = color.RGBA{R: 0x1e, G: 0x1f, B: 0x29, A: 0xff}
	colorBar      = color.RGBA{R: 0xbd, G: 0x93, B: 0xf9, A: 0xff}
	colorAxis     = color.RGBA{R: 0x62, G: 0x72, B: 0xa4, A: 0xff}
	colorText     = color.RGBA{R: 0xf8, G: 0xf8, B: 0xf2, A: 0xff}
)

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WriteHistogram bins the values and renders them to opts.Path. The format
// is chosen by extension: .svg or .png.
func WriteHistogram(values []float64, opts HistogramOptions) error {
	if len(values) == 0 {
		return fmt.Errorf("histogram: no values to render")
	}
	if opts.Width <= 0 {
		opts.Width = defaultChartWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultChartHeight
	}
	if opts.Bins <= 0 {
		opts.Bins = defaultBins
	}

	hist := stats.Bin(values, opts.Bins)

	switch strings.ToLower(filepath.Ext(opts.Path)) {
	case ".svg":
		return renderSVG(hist, opts)
	case ".png":
		return renderPNG(hist, opts)
	default:
		return fmt.Errorf("histogram: unsupported format %q (use .svg or .png)", filepath.Ext(opts.Path))
	}
}

// barGeometry returns the pixel rectangle of bin i within the plot area.
func barGeometry(hist stats.Histogram, opts HistogramOptions, i int) (x, y, w, h int) {
	plotW := opts.Width - marginLeft - marginRight
	plotH := opts.Height - marginTop - marginBottom
	maxCount := hist.MaxCount()
	if maxCount == 0 {
		maxCount = 1
	}
	bins := len(hist.Counts)
	w = plotW / bins
	if w < 1 {
		w = 1
	}
	x = marginLeft + i*w
	h = hist.Counts[i] * plotH / maxCount
	y = marginTop + plotH - h
	return x, y, w, h
}

func renderSVG(hist stats.Histogram, opts HistogramOptions) error {
	file, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	defer file.Close()
	return renderSVGToWriter(file, hist, opts)
}

func renderSVGToWriter(w io.Writer, hist stats.Histogram, opts HistogramOptions) error {
	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Text(marginLeft, 32, opts.Title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))

	for i := range hist.Counts {
		x, y, bw, h := barGeometry(hist, opts, i)
		if h == 0 {
			continue
		}
		canvas.Rect(x, y, bw-1, h, fmt.Sprintf("fill:%s", css(colorBar)))
	}

	// axis line and range labels
	axisY := opts.Height - marginBottom
	canvas.Line(marginLeft, axisY, opts.Width-marginRight, axisY,
		fmt.Sprintf("stroke:%s;stroke-width:1", css(colorAxis)))
	canvas.Text(marginLeft, axisY+20, fmt.Sprintf("%.2f", hist.Min),
		fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorText)))
	canvas.Text(opts.Width-marginRight-60, axisY+20, fmt.Sprintf("%.2f", hist.Max),
		fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorText)))

	canvas.End()
	return nil
}

func renderPNG(hist stats.Histogram, opts HistogramOptions) error {
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(opts.Title, marginLeft, 32, 0, 0.5)

	dc.SetColor(colorBar)
	for i := range hist.Counts {
		x, y, bw, h := barGeometry(hist, opts, i)
		if h == 0 {
			continue
		}
		dc.DrawRectangle(float64(x), float64(y), float64(bw-1), float64(h))
		dc.Fill()
	}

	axisY := float64(opts.Height - marginBottom)
	dc.SetColor(colorAxis)
	dc.SetLineWidth(1)
	dc.DrawLine(marginLeft, axisY, float64(opts.Width-marginRight), axisY)
	dc.Stroke()

	dc.SetColor(colorText)
	dc.DrawStringAnchored(fmt.Sprintf("%.2f", hist.Min), marginLeft, axisY+20, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.2f", hist.Max), float64(opts.Width-marginRight-60), axisY+20, 0, 0.5)

	return dc.SavePNG(opts.Path)
}
