// Package web holds the embedded page templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// TemplatesFS embeds HTML templates for server-side rendering.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds static assets (css).
//
//go:embed static/*
var StaticFS embed.FS

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatMoney": FormatMoney,
		"formatDate":  FormatDate,
		"inputDate":   InputDate,
	}
}

// Templates parses every embedded page and partial into one set. Pages are
// addressed by file name, e.g. "dashboard.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(TemplatesFS, "templates/*.html")
}

// Static returns the embedded static assets rooted at the static directory.
func Static() (http.FileSystem, error) {
	sub, err := fs.Sub(StaticFS, "static")
	if err != nil {
		return nil, err
	}
	return http.FS(sub), nil
}

// FormatMoney renders an amount with exactly two decimals.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatDate renders a transaction date for display.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// InputDate renders a date in the format of an HTML date input.
func InputDate(t time.Time) string {
	return t.Format("2006-01-02")
}
