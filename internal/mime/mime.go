// Package mime selects the one representation of a notebook output that is
// rendered for a given builder.
//
// Jupyter outputs carry a bundle of alternative representations keyed by
// MIME type. Different targets support different formats (HTML can embed
// SVG, LaTeX prefers PDF figures), so each builder has its own priority list,
// which users can edit with Override entries.
package mime

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/alnah/go-nbdoc/internal/yamlutil"
)

// ErrNoRenderableMimeType indicates no priority entry matches the available types.
var ErrNoRenderableMimeType = errors.New("no output mime type found from render priority")

// Common MIME types found in notebook outputs.
const (
	WidgetView  = "application/vnd.jupyter.widget-view+json"
	WidgetState = "application/vnd.jupyter.widget-state+json"
	JavaScript  = "application/javascript"
	PDF         = "application/pdf"
	HTML        = "text/html"
	SVG         = "image/svg+xml"
	PNG         = "image/png"
	JPEG        = "image/jpeg"
	GIF         = "image/gif"
	Markdown    = "text/markdown"
	LaTeX       = "text/latex"
	Plain       = "text/plain"
)

// Wildcard is the builder name that makes an Override apply to every builder.
const Wildcard = "*"

var (
	htmlPriority  = []string{WidgetView, JavaScript, HTML, SVG, PNG, JPEG, Markdown, LaTeX, Plain}
	latexPriority = []string{LaTeX, PDF, PNG, JPEG, SVG, Markdown, Plain}
	xmlPriority   = []string{HTML, SVG, PNG, JPEG, Markdown, LaTeX, Plain}
	textPriority  = []string{Markdown, Plain}
)

// basePriority maps builder names to their default priority list.
var basePriority = map[string][]string{
	"html":        htmlPriority,
	"html5":       htmlPriority,
	"dirhtml":     htmlPriority,
	"singlehtml":  htmlPriority,
	"epub":        htmlPriority,
	"readthedocs": htmlPriority,
	"latex":       latexPriority,
	"pdf":         latexPriority,
	"xml":         xmlPriority,
	"pseudoxml":   xmlPriority,
	"text":        textPriority,
	"man":         textPriority,
}

// Override edits the priority of one MIME type for one builder.
// A nil Priority removes the type from the builder's list.
type Override struct {
	Builder  string `yaml:"builder"`
	MimeType string `yaml:"mime_type"`
	Priority *int   `yaml:"priority"`
}

// UnmarshalYAML accepts the mapping form and the [builder, mime_type, priority]
// list form, where a null priority removes the type.
func (o *Override) UnmarshalYAML(data []byte) error {
	var raw any
	if err := yamlutil.Unmarshal(data, &raw); err != nil {
		return err
	}
	if list, ok := raw.([]any); ok {
		return o.fromList(list)
	}

	type plain Override
	var p plain
	if err := yamlutil.UnmarshalStrict(data, &p); err != nil {
		return err
	}
	*o = Override(p)
	return nil
}

func (o *Override) fromList(list []any) error {
	if len(list) != 3 {
		return fmt.Errorf("mime priority override: want [builder, mime_type, priority], got %d entries", len(list))
	}
	builder, ok := list[0].(string)
	if !ok {
		return fmt.Errorf("mime priority override: builder must be a string, got %T", list[0])
	}
	mimeType, ok := list[1].(string)
	if !ok {
		return fmt.Errorf("mime priority override: mime type must be a string, got %T", list[1])
	}

	var priority *int
	if list[2] != nil {
		n, err := toInt(list[2])
		if err != nil {
			return fmt.Errorf("mime priority override: priority: %w", err)
		}
		priority = &n
	}

	*o = Override{Builder: builder, MimeType: mimeType, Priority: priority}
	return nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not a whole number", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("got %T, want integer", v)
	}
}

// Validate checks that the override names a builder and a MIME type.
func (o Override) Validate() error {
	if o.Builder == "" {
		return fmt.Errorf("mime priority override: empty builder for %q", o.MimeType)
	}
	if o.MimeType == "" {
		return fmt.Errorf("mime priority override: empty mime type for builder %q", o.Builder)
	}
	return nil
}

// Builders returns the builder names that have a base priority list, sorted.
func Builders() []string {
	names := make([]string, 0, len(basePriority))
	for name := range basePriority {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KnownBuilder reports whether builder has a base priority list.
func KnownBuilder(builder string) bool {
	_, ok := basePriority[builder]
	return ok
}

// Priority returns the priority list for builder with overrides applied.
// Base entries are weighted 10, 20, 30, ... in order; each matching override
// sets or removes the weight of its type on a copy of the base list.
// Ties keep base order, then override order.
func Priority(builder string, overrides []Override) []string {
	type entry struct {
		mime   string
		weight int
		order  int
	}

	base := basePriority[builder]
	entries := make([]entry, 0, len(base)+len(overrides))
	for i, m := range base {
		entries = append(entries, entry{mime: m, weight: (i + 1) * 10, order: i})
	}

	for _, o := range overrides {
		if o.Builder != builder && o.Builder != Wildcard {
			continue
		}
		idx := slices.IndexFunc(entries, func(e entry) bool { return e.mime == o.MimeType })
		switch {
		case o.Priority == nil && idx >= 0:
			entries = slices.Delete(entries, idx, idx+1)
		case o.Priority == nil:
			// removing an absent type is a no-op
		case idx >= 0:
			entries[idx].weight = *o.Priority
		default:
			entries = append(entries, entry{mime: o.MimeType, weight: *o.Priority, order: len(base) + len(entries)})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight < entries[j].weight
		}
		return entries[i].order < entries[j].order
	})

	result := make([]string, len(entries))
	for i, e := range entries {
		result[i] = e.mime
	}
	return result
}

// Select returns the first entry of priority that is present in available.
// The result depends only on the order of priority, never on the order of
// available, so equal inputs always give equal results.
func Select(available, priority []string) (string, error) {
	present := make(map[string]struct{}, len(available))
	for _, m := range available {
		present[m] = struct{}{}
	}
	for _, m := range priority {
		if _, ok := present[m]; ok {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: available %v", ErrNoRenderableMimeType, sortedCopy(available))
}

func sortedCopy(s []string) []string {
	c := slices.Clone(s)
	sort.Strings(c)
	return c
}
