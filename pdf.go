package main

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	log "github.com/sirupsen/logrus"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 5   // Line height in mm
	pdfFontSize   = 9
)

// writePDFReport renders the analysis snapshot to an A4 PDF: the
// summary block, the suggestion table and the large-file list.
func writePDFReport(result AnalysisResult, outputPath string) error {
	log.Debugf("generating PDF report at %s", outputPath)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	usable := float64(pdfPageWidth - 2*pdfMargin)

	pdf.SetFont("Helvetica", "B", pdfFontSize+3)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(usable, pdfLineHeight+2, fmt.Sprintf("ctxsweep report for %s", result.Root), "", "L", false)
	pdf.Ln(pdfLineHeight / 2)

	pdf.SetFont("Helvetica", "", pdfFontSize)
	summary := fmt.Sprintf("Files scanned: %d (%d ignored, %d binary)\nContext size: %d tokens",
		result.TotalFiles, result.IgnoredCount, result.BinaryCount, result.GrandTokenTotal)
	if result.BloatTokenTotal > 0 {
		summary += fmt.Sprintf("\nBloat: %d tokens across %d files (%d%% of context)\nAfter cleanup: %d tokens",
			result.BloatTokenTotal, len(result.BloatFiles), result.ReductionPercent, result.CleanTokenTotal)
	}
	pdf.MultiCell(usable, pdfLineHeight, summary, "", "L", false)
	pdf.Ln(pdfLineHeight)

	if len(result.Suggestions) > 0 {
		pdf.SetFont("Helvetica", "B", pdfFontSize+1)
		pdf.MultiCell(usable, pdfLineHeight, "Recommended exclusions", "", "L", false)
		pdf.Ln(pdfLineHeight / 2)

		widths := []float64{20, 65, 30, 25, 15}
		headers := []string{"Priority", "Pattern", "Category", "Tokens", "Files"}
		pdf.SetFont("Helvetica", "B", pdfFontSize-1)
		for i, h := range headers {
			pdf.CellFormat(widths[i], pdfLineHeight+1, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", pdfFontSize-1)
		for _, s := range result.Suggestions {
			cells := []string{
				s.Priority.String(),
				s.DisplayPattern,
				s.Category,
				fmt.Sprintf("%d", s.TokenSavings),
				fmt.Sprintf("%d", s.FileCount),
			}
			for i, c := range cells {
				pdf.CellFormat(widths[i], pdfLineHeight+1, c, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(pdfLineHeight)
	}

	if len(result.LargeFiles) > 0 {
		pdf.SetFont("Helvetica", "B", pdfFontSize+1)
		pdf.MultiCell(usable, pdfLineHeight, "Large files worth reviewing", "", "L", false)
		pdf.Ln(pdfLineHeight / 2)

		pdf.SetFont("Courier", "", pdfFontSize-1)
		for _, f := range result.LargeFiles {
			pdf.MultiCell(usable, pdfLineHeight, fmt.Sprintf("%8d tokens  %s", f.TokenCount, f.RelativePath), "", "L", false)
		}
		pdf.Ln(pdfLineHeight)
	}

	if len(result.Stack) > 0 {
		parts := make([]string, 0, len(result.Stack))
		for _, s := range result.Stack {
			parts = append(parts, fmt.Sprintf("%s (%d files)", s.Language, s.FileCount))
		}
		pdf.SetFont("Helvetica", "", pdfFontSize)
		pdf.MultiCell(usable, pdfLineHeight, "Detected stack: "+strings.Join(parts, ", "), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	fmt.Printf("Wrote %s\n", outputPath)
	return nil
}
