// Package export renders slider boards to SVG and PNG images.
package export

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/rangeslider/pkg/geometry"
	"github.com/Dicklesworthstone/rangeslider/pkg/loader"
	"github.com/Dicklesworthstone/rangeslider/pkg/model"
	"github.com/Dicklesworthstone/rangeslider/pkg/store"
)

// ErrUnknownFormat is returned for anything other than svg or png
var ErrUnknownFormat = errors.New("unknown snapshot format")

// SliderSnapshot is the state of one slider at export time
type SliderSnapshot struct {
	Name        string
	Title       string
	Unit        string
	Range       model.Range
	Value       model.Value
	Orientation model.Orientation
	Disabled    bool
}

// SnapshotOptions configures SaveSnapshot
type SnapshotOptions struct {
	Path    string
	Format  string // "svg" or "png"; inferred from Path when empty
	Title   string
	Sliders []SliderSnapshot
}

// Layout, in pixels. Every slider gets one row; a vertical slider is a
// short column just after its label.
const (
	canvasWidth = 640
	rowHeight   = 64
	headerH     = 40
	marginX     = 24
	labelW      = 160
	valueW      = 110
	trackH      = 6
	thumbR      = 8
	verticalLen = 48
)

var (
	bgColor      = color.RGBA{0x28, 0x2A, 0x36, 0xFF}
	textColor    = color.RGBA{0xF8, 0xF8, 0xF2, 0xFF}
	trackColor   = color.RGBA{0x44, 0x47, 0x5A, 0xFF}
	fillColor    = color.RGBA{0x8B, 0xE9, 0xFD, 0xFF}
	thumbColor   = color.RGBA{0x50, 0xFA, 0x7B, 0xFF}
	mutedColor   = color.RGBA{0x62, 0x72, 0xA4, 0xFF}
	disableColor = color.RGBA{0x6B, 0x6B, 0x6B, 0xFF}
)

// FromFile resolves the value each slider in f starts with
func FromFile(f *loader.File) []SliderSnapshot {
	out := make([]SliderSnapshot, 0, len(f.Sliders))
	for _, spec := range f.Sliders {
		cfg := spec.EngineConfig()
		rng := cfg.Domain().Normalize()
		initial := store.Default(rng, cfg.Range)
		if cfg.DefaultValue != nil {
			initial = *cfg.DefaultValue
		}
		s := store.New(rng, cfg.Range, initial, nil)
		s.Reconcile(cfg.Value)
		out = append(out, SliderSnapshot{
			Name:        spec.Name,
			Title:       spec.Title(),
			Unit:        spec.Unit,
			Range:       rng,
			Value:       s.Value(),
			Orientation: cfg.Orientation,
			Disabled:    spec.Disabled,
		})
	}
	return out
}

// SaveSnapshot writes the board as an SVG or PNG image
func SaveSnapshot(opts SnapshotOptions) error {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.Path)), ".")
	}
	switch format {
	case "svg":
		return writeFile(opts.Path, func(w io.Writer) error {
			return WriteSVG(w, opts.Title, opts.Sliders)
		})
	case "png":
		return writeFile(opts.Path, func(w io.Writer) error {
			return WritePNG(w, opts.Title, opts.Sliders)
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// SaveAll writes <base>.svg and <base>.png into dir concurrently and
// returns the written paths.
func SaveAll(ctx context.Context, dir, base, title string, sliders []SliderSnapshot) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	formats := []string{"svg", "png"}
	paths := make([]string, len(formats))

	g, ctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		i, format := i, format
		paths[i] = filepath.Join(dir, base+"."+format)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return SaveSnapshot(SnapshotOptions{
				Path:    paths[i],
				Format:  format,
				Title:   title,
				Sliders: sliders,
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writeFile(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

func canvasHeight(n int) int {
	return headerH + n*rowHeight + marginX/2
}

// trackSpan returns the pixel extent of a horizontal track
func trackSpan() (x0, x1 float64) {
	return marginX + labelW, canvasWidth - marginX - valueW
}

// thumbX maps a value onto the horizontal track
func thumbX(v float64, r model.Range) float64 {
	x0, x1 := trackSpan()
	pos := geometry.ValueToPosition(v, r) / 100
	return x0 + pos*(x1-x0)
}

// thumbY maps a value onto a vertical track whose top is at y
func thumbY(v float64, r model.Range, y float64) float64 {
	pos := geometry.ValueToPosition(v, r) / 100
	return y + (1-pos)*verticalLen
}

func formatValue(s SliderSnapshot) string {
	var out string
	if s.Value.IsPair() {
		out = model.FormatNumber(s.Value.Low()) + " – " + model.FormatNumber(s.Value.High())
	} else {
		out = model.FormatNumber(s.Value.Scalar())
	}
	if s.Unit != "" {
		out += " " + s.Unit
	}
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// SVG
// ══════════════════════════════════════════════════════════════════════════════

// WriteSVG renders the board as SVG
func WriteSVG(w io.Writer, title string, sliders []SliderSnapshot) error {
	h := canvasHeight(len(sliders))
	canvas := svg.New(w)
	canvas.Start(canvasWidth, h)
	canvas.Rect(0, 0, canvasWidth, h, "fill:"+hex(bgColor))
	canvas.Text(marginX, 26, title, "font-family:monospace;font-size:16px;font-weight:bold;fill:"+hex(textColor))

	for i, s := range sliders {
		y := headerH + i*rowHeight
		mid := y + rowHeight/2
		fill, thumb := fillColor, thumbColor
		if s.Disabled {
			fill, thumb = disableColor, disableColor
		}
		text := "font-family:monospace;font-size:13px;fill:" + hex(textColor)
		canvas.Text(marginX, mid+4, s.Title, text)
		canvas.Text(canvasWidth-marginX-valueW+12, mid+4, formatValue(s), text)

		if s.Orientation == model.Vertical {
			cx := int(marginX + labelW + 8)
			top := float64(mid - verticalLen/2)
			canvas.Line(cx, int(top), cx, int(top)+verticalLen, "stroke-width:6;stroke:"+hex(trackColor))
			lo, hi := s.Range.Min, s.Value.Low()
			if s.Value.IsPair() {
				lo = s.Value.Low()
				hi = s.Value.High()
			}
			canvas.Line(cx, int(thumbY(hi, s.Range, top)), cx, int(thumbY(lo, s.Range, top)), "stroke-width:6;stroke:"+hex(fill))
			for _, v := range s.Value.Thumbs() {
				canvas.Circle(cx, int(thumbY(v, s.Range, top)), thumbR, "fill:"+hex(thumb))
			}
			continue
		}

		x0, x1 := trackSpan()
		canvas.Rect(int(x0), mid-trackH/2, int(x1-x0), trackH, "fill:"+hex(trackColor))
		for _, t := range geometry.Ticks(s.Range, 5) {
			tx := int(thumbX(t, s.Range))
			canvas.Line(tx, mid+thumbR+2, tx, mid+thumbR+6, "stroke-width:1;stroke:"+hex(mutedColor))
		}
		from, to := thumbX(s.Range.Min, s.Range), thumbX(s.Value.Low(), s.Range)
		if s.Value.IsPair() {
			from, to = thumbX(s.Value.Low(), s.Range), thumbX(s.Value.High(), s.Range)
		}
		canvas.Rect(int(from), mid-trackH/2, int(to-from), trackH, "fill:"+hex(fill))
		for _, v := range s.Value.Thumbs() {
			canvas.Circle(int(thumbX(v, s.Range)), mid, thumbR, "fill:"+hex(thumb))
		}
	}
	canvas.End()
	return nil
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ══════════════════════════════════════════════════════════════════════════════
// PNG
// ══════════════════════════════════════════════════════════════════════════════

// WritePNG renders the board as PNG
func WritePNG(w io.Writer, title string, sliders []SliderSnapshot) error {
	h := canvasHeight(len(sliders))
	dc := gg.NewContext(canvasWidth, h)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(textColor)
	dc.DrawString(title, marginX, 26)

	for i, s := range sliders {
		y := float64(headerH + i*rowHeight)
		mid := y + rowHeight/2
		fill, thumb := color.Color(fillColor), color.Color(thumbColor)
		if s.Disabled {
			fill, thumb = disableColor, disableColor
		}

		dc.SetColor(textColor)
		dc.DrawStringAnchored(s.Title, marginX, mid, 0, 0.5)
		dc.DrawStringAnchored(formatValue(s), canvasWidth-marginX-valueW+12, mid, 0, 0.5)

		if s.Orientation == model.Vertical {
			cx := float64(marginX + labelW + 8)
			top := mid - verticalLen/2
			dc.SetLineWidth(trackH)
			dc.SetColor(trackColor)
			dc.DrawLine(cx, top, cx, top+verticalLen)
			dc.Stroke()
			lo, hi := s.Range.Min, s.Value.Low()
			if s.Value.IsPair() {
				lo, hi = s.Value.Low(), s.Value.High()
			}
			dc.SetColor(fill)
			dc.DrawLine(cx, thumbY(hi, s.Range, top), cx, thumbY(lo, s.Range, top))
			dc.Stroke()
			dc.SetColor(thumb)
			for _, v := range s.Value.Thumbs() {
				dc.DrawCircle(cx, thumbY(v, s.Range, top), thumbR)
				dc.Fill()
			}
			continue
		}

		x0, x1 := trackSpan()
		dc.SetColor(trackColor)
		dc.DrawRectangle(x0, mid-trackH/2, x1-x0, trackH)
		dc.Fill()

		dc.SetColor(mutedColor)
		dc.SetLineWidth(1)
		for _, t := range geometry.Ticks(s.Range, 5) {
			tx := thumbX(t, s.Range)
			dc.DrawLine(tx, mid+thumbR+2, tx, mid+thumbR+6)
			dc.Stroke()
		}

		from, to := thumbX(s.Range.Min, s.Range), thumbX(s.Value.Low(), s.Range)
		if s.Value.IsPair() {
			from, to = thumbX(s.Value.Low(), s.Range), thumbX(s.Value.High(), s.Range)
		}
		dc.SetColor(fill)
		dc.DrawRectangle(from, mid-trackH/2, to-from, trackH)
		dc.Fill()

		dc.SetColor(thumb)
		for _, v := range s.Value.Thumbs() {
			dc.DrawCircle(thumbX(v, s.Range), mid, thumbR)
			dc.Fill()
		}
	}
	return dc.EncodePNG(w)
}
