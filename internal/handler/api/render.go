package api

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateRenderer adapts html/template to echo.Renderer.
type templateRenderer struct {
	t *template.Template
}

func newTemplateRenderer() (*templateRenderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &templateRenderer{t: t}, nil
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

var printer = message.NewPrinter(language.English)

// formatPrice renders v as $1,234.56.
func formatPrice(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// formatPct renders v as a signed percentage, e.g. +1.25%.
func formatPct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// round2 rounds half away from zero to two decimal places. Non-finite
// values are returned unchanged.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
