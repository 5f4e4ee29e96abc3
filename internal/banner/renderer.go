// Package banner assembles SVG banners from a request, colors and an icon.
package banner

import (
	"bytes"
	"context"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"svgbanner/internal/color"
	"svgbanner/internal/domain"
)

const (
	// DefaultBackground is used when the request carries no background color.
	DefaultBackground = "999999"
	// DefaultIcon is used when the request names no icon.
	DefaultIcon = "question_mark"

	Width  = 500
	Height = 72
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
`

// IconSource resolves an icon name to SVG markup.
type IconSource interface {
	Load(ctx context.Context, name string) (string, error)
}

// Renderer turns banner requests into SVG documents.
type Renderer struct {
	icons IconSource
}

// NewRenderer returns a Renderer reading icons from src.
func NewRenderer(src IconSource) *Renderer {
	return &Renderer{icons: src}
}

// Render resolves defaults, loads the icon and writes the document.
// Color errors match domain.ErrMalformedColor; icon errors are returned as the
// IconSource produced them.
func (r *Renderer) Render(ctx context.Context, req domain.BannerRequest) (*domain.RenderedBanner, error) {
	bg, err := color.ParseHex(valueOr(req.Background, DefaultBackground))
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	fg := color.Darken(bg, color.DarkeningFactor)
	if req.Foreground != nil {
		if fg, err = color.ParseHex(*req.Foreground); err != nil {
			return nil, fmt.Errorf("foreground: %w", err)
		}
	}

	markup, err := r.icons.Load(ctx, valueOr(req.Icon, DefaultIcon))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writeDocument(&buf, req.Title, req.Text, fg, bg, injectFill(markup, fg))
	return &domain.RenderedBanner{Body: buf.Bytes(), ContentType: domain.ContentTypeSVG}, nil
}

func valueOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func fill(c color.RGB) string {
	return `fill="` + c.String() + `"`
}

// writeDocument lays out the fixed 500x72 banner. Text content is XML-escaped
// by the canvas; icon markup is written as is.
func writeDocument(w io.Writer, title, text string, fg, bg color.RGB, icon string) {
	io.WriteString(w, header)
	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d">`+"\n", Width, Height)

	canvas := svg.New(w)
	canvas.Rect(0, 0, Width, Height, fill(bg))
	canvas.Rect(87, 11, 10, 50, fill(fg))
	canvas.Gtransform("scale(1)")
	canvas.Text(110, 40, title, fill(fg), `font-size="33px"`, `font-weight="bold"`, `font-family="sans serif"`)
	canvas.Text(110, 55, text, fill(fg), `font-size="13px"`)
	canvas.Gtransform("translate(5 0) scale(3)")
	io.WriteString(canvas.Writer, icon+"\n")
	canvas.Gend()
	canvas.Gend()
	canvas.End()
}
