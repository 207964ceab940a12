package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/exposurescan/exposurescan/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeRecommendations(md, report)
	w.writeResults(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	md.H1("Exposure Scan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Scan ID", "`" + report.ScanID + "`"},
			{"Scan Date", report.ScanDate.Format("2006-01-02 15:04:05 MST")},
			{"Duration", fmt.Sprintf("%.1fs", report.ScanTime)},
			{"Results Found", strconv.Itoa(report.TotalResultsFound)},
			{"Results Analyzed", strconv.Itoa(len(report.DetailedResults))},
		},
	})
	md.PlainText("")
}

// writeSummary writes the risk summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.ScanReport) {
	summary := report.Summary
	if summary == nil {
		return
	}

	md.H2("Risk Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Risk Tier", "Count"},
		Rows: [][]string{
			{"🔴 High", strconv.Itoa(summary.HighRiskExposures)},
			{"🟡 Medium", strconv.Itoa(summary.MediumRiskExposures)},
			{"🔵 Low", strconv.Itoa(summary.LowRiskExposures)},
			{"**Total**", "**" + strconv.Itoa(summary.TotalExposures) + "**"},
		},
	})
	md.PlainText("")

	if summary.TotalExposures > 0 {
		w.writePieChart(md, summary)
	}

	w.writeExposedInformation(md, summary)
	w.writeTopDomains(md, summary)
	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart for tier distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Exposure Risk Distribution"),
		piechart.WithShowData(true),
	)

	if summary.HighRiskExposures > 0 {
		chart.LabelAndIntValue("High", uint64(summary.HighRiskExposures))
	}
	if summary.MediumRiskExposures > 0 {
		chart.LabelAndIntValue("Medium", uint64(summary.MediumRiskExposures))
	}
	if summary.LowRiskExposures > 0 {
		chart.LabelAndIntValue("Low", uint64(summary.LowRiskExposures))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeExposedInformation writes the per-attribute exposure counts.
func (w *MarkdownWriter) writeExposedInformation(md *markdown.Markdown, summary *model.Summary) {
	if len(summary.ExposedInformation) == 0 {
		return
	}

	md.H3("Exposed Information")
	md.PlainText("")

	attrs := make([]string, 0, len(summary.ExposedInformation))
	for attr := range summary.ExposedInformation {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	rows := make([][]string, 0, len(attrs))
	for _, attr := range attrs {
		rows = append(rows, []string{attr, strconv.Itoa(summary.ExposedInformation[attr])})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Attribute", "Pages"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeTopDomains writes the top exposing domains.
func (w *MarkdownWriter) writeTopDomains(md *markdown.Markdown, summary *model.Summary) {
	if len(summary.TopDomains) == 0 {
		return
	}

	md.H3("Top Domains")
	md.PlainText("")

	rows := make([][]string, 0, len(summary.TopDomains))
	for _, d := range summary.TopDomains {
		rows = append(rows, []string{"`" + d.Domain + "`", strconv.Itoa(d.Count)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Domain", "Results"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAlert writes an alert matching the overall risk tier.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.Summary) {
	switch summary.OverallRiskTier {
	case model.TierHigh:
		md.Cautionf(
			"High overall exposure risk. %d result(s) expose enough information for targeted attacks.",
			summary.HighRiskExposures,
		)
	case model.TierMedium:
		md.Warningf(
			"Moderate overall exposure risk. %d result(s) warrant review.",
			summary.MediumRiskExposures,
		)
	default:
		md.Tip("Low overall exposure risk. No urgent action needed.")
	}
	md.PlainText("")
}

// writeRecommendations writes the aggregate recommendation list.
func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, report *model.ScanReport) {
	if report.Summary == nil || len(report.Summary.Recommendations) == 0 {
		return
	}

	md.H2("Recommendations")
	md.PlainText("")
	md.BulletList(report.Summary.Recommendations...)
	md.PlainText("")
}

// writeResults writes the detailed results table.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Detailed Results")
	md.PlainText("")

	if len(report.DetailedResults) == 0 {
		md.PlainText("No exposures found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.DetailedResults))
	for _, r := range report.DetailedResults {
		rows = append(rows, []string{
			strconv.Itoa(r.PrivacyScore),
			r.RiskTier.String(),
			truncateString(r.Title, 40),
			truncateString(r.URL, 60),
			strings.Join(r.MatchedAttributes(), ", "),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Score", "Tier", "Title", "URL", "Matched"},
		Rows:   rows,
	})
	md.PlainText("")

	// Per-result risk details for the results that matched something.
	for _, r := range report.DetailedResults {
		if len(r.Risks) == 0 {
			continue
		}
		md.Details(
			fmt.Sprintf("%s (score %d)", truncateString(r.URL, 60), r.PrivacyScore),
			strings.Join(r.Risks, "; "),
		)
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by exposurescan*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
