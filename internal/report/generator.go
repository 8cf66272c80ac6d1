package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	apperrors "ketotrack/internal/errors"
	"ketotrack/internal/model"
)

// Day bundles one date's entries with the read-time totals for that date.
type Day struct {
	Date          time.Time
	Entries       []model.ProductEntry
	TotalKcal     uint
	TotalCarbG    uint
	TotalFatG     uint
	TotalProteinG uint
}

// Data is everything the generator needs to render one report.
type Data struct {
	Start time.Time
	End   time.Time
	Days  []Day
}

// Generator renders intake reports as PDF artifacts.
type Generator struct{}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{}
}

const dateLayout = "2006-01-02"

// Generate renders an A4 PDF listing every entry per day plus day totals.
// Returns ErrNoEntries when no day in range has any entries: an empty
// report is never produced.
func (g *Generator) Generate(data Data) ([]byte, error) {
	total := 0
	for _, day := range data.Days {
		total += len(day.Entries)
	}
	if total == 0 {
		return nil, apperrors.ErrNoEntries
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Report for dates between %s and %s",
		data.Start.Format(dateLayout), data.End.Format(dateLayout)))
	pdf.Ln(12)

	for _, day := range data.Days {
		if len(day.Entries) == 0 {
			continue
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 8, day.Date.Format(dateLayout))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 10)
		for _, entry := range day.Entries {
			line := fmt.Sprintf("Product: %s, grams: %d, kcal: %d, fat: %d, carbs: %d, protein: %d",
				entry.Name, entry.Grams, entry.Kcal, entry.FatG, entry.CarbG, entry.ProteinG)
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}

		pdf.SetFont("Helvetica", "I", 10)
		totals := fmt.Sprintf("Total kcal: %d, total fat: %d, total carbs: %d, total protein: %d",
			day.TotalKcal, day.TotalFatG, day.TotalCarbG, day.TotalProteinG)
		pdf.Cell(0, 6, totals)
		pdf.Ln(10)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
