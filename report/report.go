// Package report renders batch simplification statistics as a PDF
// summary, one row per processed file plus corpus-wide means.
package report

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Entry holds the per-file statistics the batch driver aggregates.
type Entry struct {
	File        string
	LineCount   int
	MaskCount   int
	LinePercent float64 // mean baseline reduction fraction
	MaskPercent float64 // mean mask reduction fraction
	Unchanged   bool    // simplification left the file byte-identical
}

// Write renders the entries to a PDF file at outPath.
func Write(entries []Entry, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Annotation simplification summary", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(90, 7, "File", "B", 0, "L", false, 0, "")
	pdf.CellFormat(18, 7, "Lines", "B", 0, "R", false, 0, "")
	pdf.CellFormat(18, 7, "Masks", "B", 0, "R", false, 0, "")
	pdf.CellFormat(27, 7, "Line reduction", "B", 0, "R", false, 0, "")
	pdf.CellFormat(27, 7, "Mask reduction", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	var lineSum, maskSum float64
	for _, e := range entries {
		name := e.File
		if e.Unchanged {
			name += " (unchanged)"
		}
		pdf.CellFormat(90, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%d", e.LineCount), "", 0, "R", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%d", e.MaskCount), "", 0, "R", false, 0, "")
		pdf.CellFormat(27, 6, fmt.Sprintf("%.1f%%", e.LinePercent*100), "", 0, "R", false, 0, "")
		pdf.CellFormat(27, 6, fmt.Sprintf("%.1f%%", e.MaskPercent*100), "", 1, "R", false, 0, "")
		lineSum += e.LinePercent
		maskSum += e.MaskPercent
	}

	if n := len(entries); n > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(126, 7, "Mean", "T", 0, "L", false, 0, "")
		pdf.CellFormat(27, 7, fmt.Sprintf("%.1f%%", lineSum/float64(n)*100), "T", 0, "R", false, 0, "")
		pdf.CellFormat(27, 7, fmt.Sprintf("%.1f%%", maskSum/float64(n)*100), "T", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("writing report %s: %w", outPath, err)
	}
	return nil
}
