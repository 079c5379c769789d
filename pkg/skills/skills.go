// Package skills holds the skill texts agents prepend to their instructions.
// A Library is loaded once at start-up and handed to agent constructors.
package skills

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed builtin
var builtin embed.FS

const separator = "\n\n---\n\n"

type Library struct {
	mu    sync.RWMutex
	fsys  fs.FS
	texts map[string]string
}

// Builtin loads the skills shipped with the binary.
func Builtin() (*Library, error) {
	sub, err := fs.Sub(builtin, "builtin")
	if err != nil {
		return nil, fmt.Errorf("builtin skills: %w", err)
	}
	return Load(sub)
}

// Dir loads skills from a directory on disk.
func Dir(dir string) (*Library, error) {
	return Load(os.DirFS(dir))
}

// Load reads every markdown file of fsys, keyed by its slash path.
func Load(fsys fs.FS) (*Library, error) {
	l := &Library{fsys: fsys}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload rereads the underlying files. Agents keep the instructions they
// composed at construction.
func (l *Library) Reload() error {
	texts := map[string]string{}
	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".md" {
			return nil
		}
		b, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		texts[p] = string(b)
		return nil
	})
	if err != nil {
		return fmt.Errorf("load skills: %w", err)
	}

	l.mu.Lock()
	l.texts = texts
	l.mu.Unlock()
	return nil
}

func (l *Library) Get(p string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.texts[p]
	return t, ok
}

// Compose joins the named skills into one block, each under a title derived
// from its file name. Unknown or empty skills are skipped.
func (l *Library) Compose(paths []string) string {
	sections := make([]string, 0, len(paths))
	for _, p := range paths {
		text, ok := l.Get(p)
		if !ok || strings.TrimSpace(text) == "" {
			log.Warn().Str("skill", p).Msg("could not load skill file")
			continue
		}
		sections = append(sections, fmt.Sprintf("### %s\n\n%s", Title(p), strings.TrimSpace(text)))
	}
	return strings.Join(sections, separator)
}

// Title turns "research/market-analysis.md" into "Market Analysis".
func Title(p string) string {
	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}
