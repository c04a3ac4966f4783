// Package prompt loads markdown prompt templates with ${var} substitution.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

var varPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// Loader reads .md templates from a directory and caches their raw
// contents. Substitution is tolerant: a variable with no binding is left
// in place rather than failing the render.
type Loader struct {
	dir string

	mu    sync.RWMutex
	cache map[string]string
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[string]string),
	}
}

// LoadRaw returns the raw template contents, reading from disk on first
// use. Names without an extension resolve to name.md.
func (l *Loader) LoadRaw(name string) (string, error) {
	l.mu.RLock()
	cached, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		return cached, nil
	}

	path := filepath.Join(l.dir, name)
	if !strings.HasSuffix(strings.ToLower(path), ".md") {
		path += ".md"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", name, err)
	}

	text := string(data)
	l.mu.Lock()
	l.cache[name] = text
	l.mu.Unlock()
	return text, nil
}

// Render loads the template and substitutes ${var} markers from vars.
func (l *Loader) Render(name string, vars map[string]string) (string, error) {
	raw, err := l.LoadRaw(name)
	if err != nil {
		return "", err
	}
	if len(vars) == 0 {
		return raw, nil
	}
	return varPattern.ReplaceAllStringFunc(raw, func(match string) string {
		key := varPattern.FindStringSubmatch(match)[1]
		if v, ok := vars[key]; ok {
			return v
		}
		return match
	}), nil
}
