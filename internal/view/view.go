// Package view turns a lookup outcome into the text shown on the page.
package view

import (
	"fmt"
	"time"

	"github.com/couchcryptid/sec-shares-service/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultTitle    = "Shares Outstanding"
	ErrorEntityName = "Error Loading Data"
	Unavailable     = "Data not available"
)

// Page holds the rendered text of every output region.
type Page struct {
	Title      string
	EntityName string
	MaxValue   string
	MaxFY      string
	MinValue   string
	MinFY      string

	OK          bool
	CIK         string
	RetrievedAt string
}

// Formatter formats share counts for one locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a Formatter for a BCP 47 locale such as "en-US".
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{printer: message.NewPrinter(tag)}, nil
}

// Number groups digits the way the locale does, with at most three
// fraction digits.
func (f *Formatter) Number(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// Render builds the page for o. A failed outcome always yields the same
// placeholder page, whatever the error kind.
func Render(o domain.Outcome, f *Formatter) Page {
	switch o.Status {
	case domain.OutcomeOK:
		r := o.Range
		return Page{
			Title:       r.EntityName + " - " + DefaultTitle,
			EntityName:  r.EntityName,
			MaxValue:    f.Number(r.Max.Val),
			MaxFY:       r.Max.FY.String(),
			MinValue:    f.Number(r.Min.Val),
			MinFY:       r.Min.FY.String(),
			OK:          true,
			CIK:         r.CIK,
			RetrievedAt: r.RetrievedAt.Format(time.RFC3339),
		}
	default:
		return Page{
			Title:      DefaultTitle,
			EntityName: ErrorEntityName,
			MaxValue:   Unavailable,
			MaxFY:      Unavailable,
			MinValue:   Unavailable,
			MinFY:      Unavailable,
		}
	}
}
