package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/exposurescan/exposurescan/internal/model"
)

// TextWriter outputs human-readable text reports for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type TextWriter struct {
	baseWriter

	// verbose enables per-result match details in the output.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose enables verbose output with per-result match details.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *TextWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeResults(&sb, report)
	w.writeRecommendations(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *TextWriter) writeHeader(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       EXPOSURE SCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Scan ID:        %s\n", report.ScanID)
	fmt.Fprintf(sb, "Scan Date:      %s\n", report.ScanDate.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Duration:       %.1fs\n", report.ScanTime)
	fmt.Fprintf(sb, "Results Found:  %d\n", report.TotalResultsFound)
	fmt.Fprintf(sb, "Analyzed:       %d\n", len(report.DetailedResults))
	sb.WriteString("\n")
}

// writeSummary writes the risk summary section.
func (w *TextWriter) writeSummary(sb *strings.Builder, report *model.ScanReport) {
	summary := report.Summary
	if summary == nil {
		return
	}

	sb.WriteString("RISK SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	fmt.Fprintf(sb, "Overall Risk:   %s\n", strings.ToUpper(summary.OverallRiskTier.String()))
	fmt.Fprintf(sb, "High Risk:      %d\n", summary.HighRiskExposures)
	fmt.Fprintf(sb, "Medium Risk:    %d\n", summary.MediumRiskExposures)
	fmt.Fprintf(sb, "Low Risk:       %d\n", summary.LowRiskExposures)

	if len(summary.ExposedInformation) > 0 {
		sb.WriteString("\nExposed Information:\n")
		for _, attr := range model.KnownAttributes {
			if count, ok := summary.ExposedInformation[attr]; ok {
				fmt.Fprintf(sb, "  %-10s found on %d page(s)\n", attr, count)
			}
		}
	}

	if len(summary.TopDomains) > 0 {
		sb.WriteString("\nTop Domains:\n")
		for _, d := range summary.TopDomains {
			fmt.Fprintf(sb, "  %-40s %d result(s)\n", d.Domain, d.Count)
		}
	}
	sb.WriteString("\n")
}

// writeResults writes the detailed results section.
func (w *TextWriter) writeResults(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("DETAILED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	if len(report.DetailedResults) == 0 {
		sb.WriteString("No exposures found.\n\n")
		return
	}

	for i, r := range report.DetailedResults {
		fmt.Fprintf(sb, "[%d] %s (score %d, %s)\n", i+1, r.URL, r.PrivacyScore, r.RiskTier)
		if r.Title != "" {
			fmt.Fprintf(sb, "    Title:   %s\n", r.Title)
		}
		if matched := r.MatchedAttributes(); len(matched) > 0 {
			fmt.Fprintf(sb, "    Matched: %s\n", strings.Join(matched, ", "))
		}

		if w.verbose {
			for _, attr := range model.KnownAttributes {
				if rec, ok := r.MatchedInfo[attr]; ok {
					fmt.Fprintf(sb, "      %s: %s match (%.2f)\n", attr, rec.MatchType, rec.Confidence)
				}
			}
			for _, risk := range r.Risks {
				fmt.Fprintf(sb, "      ! %s\n", risk)
			}
		}
		sb.WriteString("\n")
	}
}

// writeRecommendations writes the aggregate recommendation list.
func (w *TextWriter) writeRecommendations(sb *strings.Builder, report *model.ScanReport) {
	if report.Summary == nil || len(report.Summary.Recommendations) == 0 {
		return
	}

	sb.WriteString("RECOMMENDATIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	for _, rec := range report.Summary.Recommendations {
		fmt.Fprintf(sb, "  * %s\n", rec)
	}
	sb.WriteString("\n")
}
