package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Brand stamped on every exported report.
const Brand = "AgriVision AI"

// jsonExport is the portable structured-data contract.
type jsonExport struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Content string `json:"content"`
	Brand   string `json:"brand"`
}

// ExportJSON serializes a report to the portable JSON contract.
func ExportJSON(rep Report, now time.Time) ([]byte, error) {
	return json.MarshalIndent(jsonExport{
		Title:   rep.Title,
		Date:    now.Format(time.RFC3339),
		Content: rep.Content,
		Brand:   Brand,
	}, "", "  ")
}

// ExportDocument renders a report as a single-page plain-text document:
// brand header, metadata lines, watermark notice, markdown-stripped body,
// footer.
func ExportDocument(rep Report, featureID string, now time.Time) []byte {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString(Brand + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Report: %s\n", featureID)
	fmt.Fprintf(&b, "Date: %s\n", now.Format("2006-01-02"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "[watermark: %s]\n\n", Brand)

	b.WriteString(stripMarkdown(rep.Content))
	b.WriteString("\n\n")

	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "Generated by %s Platform\n", Brand)

	return []byte(b.String())
}

// stripMarkdown removes markdown-light markers: bold, headings, bullet
// asterisks (turned into bullet dots), and code markers.
func stripMarkdown(content string) string {
	clean := strings.ReplaceAll(content, "**", "")
	clean = strings.ReplaceAll(clean, "#", "")
	clean = strings.ReplaceAll(clean, "*", "•")
	clean = strings.ReplaceAll(clean, "`", "")
	return strings.TrimSpace(clean)
}
