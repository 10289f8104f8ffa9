// Package script runs tengo snippets as contact listeners. A script
// defines an `on_contact` function; the library compiles it once and
// invokes it per forwarded contact with the strength, counterpart tag,
// and how many contacts the gate's stats have seen.
package script

import (
	"fmt"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const contactDispatchScript = `
__message = on_contact(__strength, __tag, __count)
`

// Runner is one compiled contact listener.
type Runner struct {
	name     string
	compiled *tengo.Compiled
}

// NewRunner compiles a listener from source. The source must define
// on_contact := func(strength, tag, count) { ... } returning a string
// (empty for silence).
func NewRunner(name string, src []byte) (*Runner, error) {
	if strings.TrimSpace(string(src)) == "" {
		return nil, fmt.Errorf("script: %s is empty", name)
	}

	full := string(src) + "\n" + contactDispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__strength", 0.0)
	_ = s.Add("__tag", "")
	_ = s.Add("__count", 0)
	_ = s.Add("__message", "")
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Runner{name: name, compiled: compiled}, nil
}

// OnContact invokes the listener and returns its message, if any.
func (r *Runner) OnContact(strength float64, tag string, count int) (string, error) {
	if r == nil || r.compiled == nil {
		return "", fmt.Errorf("script: runner not compiled")
	}
	c := r.compiled.Clone()
	if err := c.Set("__strength", strength); err != nil {
		return "", fmt.Errorf("script: %s: %w", r.name, err)
	}
	if err := c.Set("__tag", tag); err != nil {
		return "", fmt.Errorf("script: %s: %w", r.name, err)
	}
	if err := c.Set("__count", count); err != nil {
		return "", fmt.Errorf("script: %s: %w", r.name, err)
	}
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("script: run %s: %w", r.name, err)
	}
	return c.Get("__message").String(), nil
}

// Library caches compiled listeners by name, loading sources through
// the provided loader (usually prefabs.LoadScript).
type Library struct {
	load func(name string) ([]byte, error)

	mu      sync.Mutex
	runners map[string]*Runner
}

// NewLibrary creates a Library backed by a source loader.
func NewLibrary(load func(name string) ([]byte, error)) *Library {
	return &Library{load: load, runners: map[string]*Runner{}}
}

// OnContact runs the named listener, compiling it on first use.
func (l *Library) OnContact(name string, strength float64, tag string, count int) (string, error) {
	r, err := l.runner(name)
	if err != nil {
		return "", err
	}
	return r.OnContact(strength, tag, count)
}

// Invalidate drops a cached listener so the next use recompiles it.
// Called by the hot-reload watcher when a script file changes.
func (l *Library) Invalidate(name string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.runners, name)
}

func (l *Library) runner(name string) (*Runner, error) {
	if l == nil || l.load == nil {
		return nil, fmt.Errorf("script: no loader configured")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if r, ok := l.runners[name]; ok && r != nil {
		return r, nil
	}
	src, err := l.load(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	r, err := NewRunner(name, src)
	if err != nil {
		return nil, err
	}
	l.runners[name] = r
	return r, nil
}
