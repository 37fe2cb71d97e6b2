// Package pull orchestrates the two operations the CLI exposes: pulling
// form definitions and pulling sanitized form responses. Both resolve the
// configured titles against the remote listing first, then fetch and write
// one JSON file per form.
package pull

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/surveyops/formpull/internal/locate"
	"github.com/surveyops/formpull/internal/sanitize"
	"github.com/surveyops/formpull/internal/typeform"
)

// Source is the remote capability set the puller needs.
// *typeform.Client satisfies it; tests supply fakes.
type Source interface {
	locate.Lister
	GetForm(ctx context.Context, id string) (json.RawMessage, error)
	ListResponses(ctx context.Context, id string) (*typeform.ResponseSet, error)
}

// VolumeError reports a form whose responses exceed the single-page
// capacity this tool assumes. Pulling anyway would silently truncate the
// data, so the run is refused instead.
type VolumeError struct {
	Title      string
	TotalItems int
	PageCount  int
}

func (e *VolumeError) Error() string {
	return fmt.Sprintf("form %q has %d responses across %d pages; pagination support required",
		e.Title, e.TotalItems, e.PageCount)
}

// Puller pulls forms and responses for a fixed set of target titles.
type Puller struct {
	source   Source
	titles   []string
	formsDir string
	dataDir  string
}

// New creates a Puller writing form definitions to formsDir and sanitized
// response sets to dataDir.
func New(source Source, titles []string, formsDir, dataDir string) *Puller {
	return &Puller{
		source:   source,
		titles:   titles,
		formsDir: formsDir,
		dataDir:  dataDir,
	}
}

// PullForms writes the definition of every resolved target form to
// formsDir, one pretty-printed JSON file per form. Definitions carry no
// respondent PII and are stored verbatim.
func (p *Puller) PullForms(ctx context.Context) error {
	slog.Info("pulling forms")

	resolved, err := locate.Resolve(ctx, p.source, p.titles)
	if err != nil {
		return err
	}
	if len(resolved) == 0 {
		slog.Warn("no target forms found in listing", "targets", len(p.titles))
		return nil
	}

	for _, title := range sortedKeys(resolved) {
		id := resolved[title]
		slog.Info("pulling form", "title", title, "id", id)

		form, err := p.source.GetForm(ctx, id)
		if err != nil {
			return err
		}
		if err := writeJSON(filepath.Join(p.formsDir, Slug(title)+".json"), form); err != nil {
			return err
		}
	}
	return nil
}

// PullResponses fetches the response set of every resolved target form,
// sanitizes the lot, and writes one pretty-printed JSON file per form that
// has any responses. A form at or beyond the single-page capacity aborts
// the run with a VolumeError before anything is written.
func (p *Puller) PullResponses(ctx context.Context) error {
	slog.Info("pulling responses")

	resolved, err := locate.Resolve(ctx, p.source, p.titles)
	if err != nil {
		return err
	}
	if len(resolved) == 0 {
		slog.Warn("no target forms found in listing", "targets", len(p.titles))
		return nil
	}

	raw := make(map[string]typeform.ResponseSet, len(resolved))
	for _, title := range sortedKeys(resolved) {
		id := resolved[title]

		rs, err := p.source.ListResponses(ctx, id)
		if err != nil {
			return err
		}
		if rs.TotalItems >= typeform.ResponsePageSize || rs.PageCount > 1 {
			return &VolumeError{Title: title, TotalItems: rs.TotalItems, PageCount: rs.PageCount}
		}
		if rs.TotalItems == 0 {
			slog.Info("no responses to pull", "title", title)
			continue
		}

		slog.Info("pulling responses", "title", title, "count", rs.TotalItems)
		raw[title] = *rs
	}

	clean := sanitize.Responses(raw)
	for _, title := range sortedKeys(clean) {
		set := clean[title]
		if len(set.Items) == 0 {
			continue
		}
		if err := writeJSON(filepath.Join(p.dataDir, Slug(title)+".json"), set); err != nil {
			return err
		}
	}
	return nil
}

// slugReplacer rewrites the characters form titles commonly carry into
// filesystem-friendly ones. Nothing else is transformed.
var slugReplacer = strings.NewReplacer(" ", "-", "&", "and")

// Slug renders a form title as a lowercase hyphenated file name stem,
// e.g. "Dogs & Children Survey" -> "dogs-and-children-survey".
func Slug(title string) string {
	return strings.ToLower(slugReplacer.Replace(title))
}

// writeJSON pretty-prints v to path with 2-space indentation, creating
// parent directories as needed. Whole-file overwrite.
func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("wrote file", "path", path)
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
