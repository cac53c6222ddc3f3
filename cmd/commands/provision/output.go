package provision

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// printJSON encodes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTrace writes trace lines with their kind prefixes. Blank lines are
// written as empty lines.
func printTrace(w io.Writer, lines []domain.TraceLine) {
	for _, line := range lines {
		if line.Kind == domain.TraceBlank {
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintf(w, "%s%s\n", line.Kind.Prefix(), line.Text)
	}
}

// printResponse writes the assistant reply followed by the trace.
func printResponse(w io.Writer, resp *domain.Response) {
	if resp.AIResponse != "" {
		fmt.Fprintf(w, "Assistant: %s\n\n", resp.AIResponse)
	}
	printTrace(w, resp.Trace)
}

// printRecords writes a resource table for one resource type.
func printRecords(w io.Writer, t domain.ResourceType, records []domain.ResourceRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tID\tNAME\tSTATUS\tREGION\tCREATED\tDETAILS")
	fmt.Fprintln(tw, "----\t--\t----\t------\t------\t-------\t-------")
	for _, r := range records {
		created := "-"
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.UTC().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t,
			dash(r.ID),
			dash(r.Name),
			dash(r.Status),
			dash(r.Region),
			created,
			dash(recordDetails(t, r)),
		)
	}
	tw.Flush()
}

// recordDetails summarises the type-specific attributes of r.
func recordDetails(t domain.ResourceType, r domain.ResourceRecord) string {
	switch t {
	case domain.ResourceServer:
		return joinNonEmpty(r.Attr("image"), r.Attr("size"), r.Attr("ipAddress"))
	case domain.ResourceDatabase:
		engine := r.Attr("engine")
		if v := r.Attr("version"); engine != "" && v != "" {
			engine += " " + v
		}
		return joinNonEmpty(engine, r.Attr("endpoint"))
	case domain.ResourceNetworking:
		return r.Attr("cidrBlock")
	}
	return ""
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
