package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"firstthought/internal/modules/session/domain"
	sessionout "firstthought/internal/modules/session/port/out"
	"firstthought/internal/platform/format"
	"firstthought/internal/platform/markdown"
	"firstthought/internal/platform/tagword"
)

// NoteMeta is the frontmatter of an exported session note.
type NoteMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	Tag           string `yaml:"tag"`
	StartedAt     string `yaml:"started_at"`
	EndedAt       string `yaml:"ended_at"`
	DurationMs    int64  `yaml:"duration_ms"`
	CreatedAt     string `yaml:"created_at"`
}

type MarkdownExporter struct{}

func NewMarkdownExporter() sessionout.Exporter {
	return MarkdownExporter{}
}

// Export writes one note per session under dir/YYYY/MM/DD and returns the
// paths written.
func (MarkdownExporter) Export(ctx context.Context, dir string, sessions []domain.Session) ([]string, error) {
	paths := make([]string, 0, len(sessions))
	for _, session := range sessions {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		date := session.StartedAt
		noteDir := filepath.Join(dir, date.Format("2006"), date.Format("01"), date.Format("02"))
		if err := os.MkdirAll(noteDir, 0o755); err != nil {
			return paths, fmt.Errorf("create export dir: %w", err)
		}
		base := fmt.Sprintf("%s-%s", date.Format("150405"), tagword.FileSafe(session.Tag))
		path, err := notePath(noteDir, base, session.ID)
		if err != nil {
			return paths, err
		}

		meta := NoteMeta{
			SchemaVersion: domain.SchemaVersion,
			ID:            session.ID,
			Tag:           session.Tag,
			StartedAt:     session.StartedAt.Format(timestampLayout),
			EndedAt:       session.EndedAt.Format(timestampLayout),
			DurationMs:    session.DurationMs,
			CreatedAt:     session.CreatedAt.Format(timestampLayout),
		}
		body := fmt.Sprintf("# %s\n\n- Duration: %s\n- Started: %s\n", session.Tag, format.DurationLong(session.DurationMs), format.DateTime(session.StartedAt))
		rendered, err := markdown.RenderNote(meta, body)
		if err != nil {
			return paths, err
		}
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return paths, fmt.Errorf("write session note: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// notePath picks the file for a session note. A note already exported for
// the same session is overwritten; any other file at the name is left alone
// and the next numbered name is tried.
func notePath(dir, base, id string) (string, error) {
	for n := 1; ; n++ {
		name := base + ".md"
		if n > 1 {
			name = fmt.Sprintf("%s-%d.md", base, n)
		}
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("read existing note: %w", err)
		}
		meta := NoteMeta{}
		if _, err := markdown.ParseNote(string(raw), &meta); err == nil && meta.ID == id {
			return path, nil
		}
	}
}
