package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// renderPDF lays out the report the way the original assessment PDF did:
// title block, scan info, score with risk band, findings summary, a
// detailed findings table per category, then recommendations.
func renderPDF(data TemplateData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(59, 130, 246)
	pdf.CellFormat(0, 12, "CYBER HEALTH CHECK", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(14, 165, 233)
	pdf.CellFormat(0, 8, "Security Assessment Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Scan info
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Domain: %s", data.Domain), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Scan Date: %s", data.ScanDate), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, "Assessment Type: Comprehensive Security Scan", "", 1, "", false, 0, "")
	if data.Synthetic {
		pdf.SetTextColor(239, 68, 68)
		pdf.CellFormat(0, 6, "Data Source: SYNTHETIC (scanner backend unavailable)", "", 1, "", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	// Score
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "SECURITY SCORE", "", 1, "", false, 0, "")
	setRiskFill(pdf, data.Score)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(60, 10, fmt.Sprintf("%d/100", data.Score), "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 10, fmt.Sprintf("Risk Level: %s", data.RiskLevel), "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 10, data.StatusLabel, "1", 1, "C", true, 0, "")
	pdf.Ln(5)

	// Findings summary
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "FINDINGS SUMMARY", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(228, 233, 247)
	pdf.CellFormat(60, 8, "Passed Checks", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 8, "Warning Checks", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 8, "Failed Checks", "1", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(16, 185, 129)
	pdf.CellFormat(60, 8, fmt.Sprintf("%d", data.PassCount), "1", 0, "C", true, 0, "")
	pdf.SetFillColor(245, 158, 11)
	pdf.CellFormat(60, 8, fmt.Sprintf("%d", data.WarningCount), "1", 0, "C", true, 0, "")
	pdf.SetFillColor(239, 68, 68)
	pdf.CellFormat(60, 8, fmt.Sprintf("%d", data.FailCount), "1", 1, "C", true, 0, "")
	pdf.Ln(5)

	// Detailed findings
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "DETAILED FINDINGS", "", 1, "", false, 0, "")
	for _, section := range data.Sections {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(14, 165, 233)
		pdf.CellFormat(0, 8, section.Title, "", 1, "", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		if len(section.Findings) == 0 {
			pdf.SetFont("Arial", "I", 9)
			pdf.CellFormat(0, 6, "No findings recorded for this category", "", 1, "", false, 0, "")
			pdf.Ln(2)
			continue
		}
		pdf.SetFont("Arial", "", 9)
		for _, f := range section.Findings {
			line := fmt.Sprintf("[%s] %s - %s", strings.ToUpper(string(f.Status)), f.Name, f.Description)
			if f.Details != "" {
				line += fmt.Sprintf(" (%s)", f.Details)
			}
			pdf.MultiCell(0, 5, line, "", "", false)
			if f.Mitigation != "" {
				pdf.SetFont("Arial", "I", 8)
				pdf.MultiCell(0, 4, fmt.Sprintf("    Mitigation: %s", f.Mitigation), "", "", false)
				pdf.SetFont("Arial", "", 9)
			}
		}
		pdf.Ln(2)
	}

	// Remediation priorities
	if len(data.Critical) > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(239, 68, 68)
		pdf.CellFormat(0, 8, "CRITICAL ISSUES", "", 1, "", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", 9)
		for _, issue := range data.Critical {
			pdf.MultiCell(0, 5, fmt.Sprintf("[%s] %s - %s", issue.Category.Title(), issue.Finding.Name, issue.Finding.Description), "", "", false)
		}
		pdf.Ln(2)
	}

	// Recommendations
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "RECOMMENDATIONS", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, rec := range data.Recommendations {
		pdf.MultiCell(0, 5, "- "+rec, "", "", false)
	}

	// Footer
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 5, fmt.Sprintf("Report generated on %s", data.GeneratedAt), "", 1, "", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRiskFill(pdf *gofpdf.Fpdf, score int) {
	switch {
	case score >= 80:
		pdf.SetFillColor(16, 185, 129)
	case score >= 50:
		pdf.SetFillColor(245, 158, 11)
	default:
		pdf.SetFillColor(239, 68, 68)
	}
}
