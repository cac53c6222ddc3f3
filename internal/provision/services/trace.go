package services

import (
	"fmt"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// ExamplePrompts are suggestions shown to users before their first message.
var ExamplePrompts = []string{
	"Create a postgres database",
	"I need a mysql database version 8",
	"Make me an Ubuntu server",
	"Create an S3 bucket to store images",
	"Provision networking with CIDR 10.0.0.0/16",
}

// trace accumulates the terminal lines of one submission.
type trace struct {
	lines []domain.TraceLine
}

func (t *trace) add(kind domain.TraceKind, format string, args ...any) {
	t.lines = append(t.lines, domain.TraceLine{Kind: kind, Text: fmt.Sprintf(format, args...)})
}

func (t *trace) blank() {
	t.lines = append(t.lines, domain.TraceLine{Kind: domain.TraceBlank})
}

// resourceDetails appends the detail block for a created resource.
func (t *trace) resourceDetails(rec *domain.ResourceRecord) {
	t.add(domain.TraceHeader, "Resource Details:")
	t.add(domain.TraceSuccess, "ID: %s", orNA(rec.ID))
	t.add(domain.TraceSuccess, "Name: %s", orNA(rec.Name))

	optional := []struct{ label, value string }{
		{"Engine", rec.Attr("engine")},
		{"Version", rec.Attr("version")},
		{"Image", rec.Attr("image")},
		{"Size", rec.Attr("size")},
		{"Status", rec.Status},
		{"Region", rec.Region},
		{"IP", rec.Attr("ipAddress")},
		{"CIDR", rec.Attr("cidrBlock")},
	}
	for _, f := range optional {
		if f.value != "" {
			t.add(domain.TraceSuccess, "%s: %s", f.label, f.value)
		}
	}
}

// resourceList appends one line per listed resource.
func (t *trace) resourceList(records []domain.ResourceRecord) {
	t.add(domain.TraceHeader, "Resources:")
	for _, r := range records {
		switch {
		case r.Name != "" && r.ID != "" && r.ID != r.Name:
			t.add(domain.TraceSuccess, "%s (%s)", r.Name, r.ID)
		case r.Name != "":
			t.add(domain.TraceSuccess, "%s", r.Name)
		default:
			t.add(domain.TraceSuccess, "%s", orNA(r.ID))
		}
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
