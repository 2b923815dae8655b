package main

import (
	"fmt"
	"io"
	"maturity/internal/catalog"
	"maturity/pkg/domain"
	"strings"
	"text/tabwriter"
)

func levelLabel(level domain.MaturityLevel) string {
	if !level.IsSet() {
		return "-"
	}
	if info, ok := catalog.MaturityLevelInfo(level); ok {
		return info.Label
	}
	return string(level)
}

func writeSummary(w io.Writer, a domain.Assessment) error {
	p := domain.ProgressOf(a)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Assessment:\t%s\n", a.ID)
	fmt.Fprintf(tw, "Organization:\t%s\n", a.OrganizationName)
	fmt.Fprintf(tw, "Assessors:\t%s\n", strings.Join(nonBlank(a.Assessors), ", "))
	fmt.Fprintf(tw, "Date:\t%s\n", a.AssessmentDate)
	fmt.Fprintf(tw, "Progress:\t%d/%d dimensions (%.0f%%)\n", p.Completed, p.Total, p.Percentage)
	if strings.TrimSpace(a.OverallNotes) != "" {
		fmt.Fprintf(tw, "Notes:\t%s\n", a.OverallNotes)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "DIMENSION\tLEVEL\tCOMPLETION\tNOTES")
	for _, d := range a.Dimensions {
		c := d.Completion()
		fmt.Fprintf(tw, "%s\t%s\t%d/%d (%.0f%%)\t%s\n", d.ID, levelLabel(d.MaturityLevel), c.Completed, c.Applicable, c.Percentage, firstLine(d.Notes))
	}
	return tw.Flush()
}

func writeDimension(w io.Writer, d domain.Dimension) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s (%s)\n%s\n\n", d.Name, d.ID, d.Description)
	fmt.Fprintln(tw, "ID\tSTATUS\tCATEGORY\tDESCRIPTION\tEVIDENCE")
	for _, p := range d.ProofPoints {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, status(p), p.Category, p.Description, firstLine(p.Evidence))
	}
	return tw.Flush()
}

func status(p domain.ProofPoint) string {
	switch {
	case p.NotApplicable:
		return "n/a"
	case p.Completed:
		return "[x]"
	default:
		return "[ ]"
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
