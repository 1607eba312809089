package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of world operations with expectations,
// loaded from YAML. Entities are addressed by slot index; each reference is
// resolved to the slot's live handle when the step runs.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`

	path string
}

// Step holds exactly one operation.
type Step struct {
	Create  int      `yaml:"create,omitempty"`
	Assign  *Target  `yaml:"assign,omitempty"`
	Remove  *Target  `yaml:"remove,omitempty"`
	Destroy []uint32 `yaml:"destroy,omitempty"`
	Queue   []uint32 `yaml:"queue,omitempty"` // mark for deferred destruction
	Flush   bool     `yaml:"flush,omitempty"`
	Expect  *Expect  `yaml:"expect,omitempty"`
}

type Target struct {
	Component string   `yaml:"component"`
	Entities  []uint32 `yaml:"entities"`
}

// Expect checks the result of a runtime view over View. Entities, when
// given, is compared as a set of indices; Count, when given, is compared
// to the number of matches. Alive checks the world's live count.
type Expect struct {
	View       []string          `yaml:"view,omitempty"`
	Entities   []uint32          `yaml:"entities,omitempty"`
	Count      *int              `yaml:"count,omitempty"`
	Alive      *int              `yaml:"alive,omitempty"`
	Generation map[uint32]uint32 `yaml:"generation,omitempty"`
}

func (s Step) kind() string {
	switch {
	case s.Create > 0:
		return "create"
	case s.Assign != nil:
		return "assign"
	case s.Remove != nil:
		return "remove"
	case len(s.Destroy) > 0:
		return "destroy"
	case len(s.Queue) > 0:
		return "queue"
	case s.Flush:
		return "flush"
	case s.Expect != nil:
		return "expect"
	}
	return ""
}

func (s Step) ops() int {
	n := 0
	for _, set := range []bool{
		s.Create > 0, s.Assign != nil, s.Remove != nil, len(s.Destroy) > 0,
		len(s.Queue) > 0, s.Flush, s.Expect != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Parse decodes a scenario document and validates its steps.
func Parse(raw []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario has no name")
	}
	for i, st := range sc.Steps {
		if n := st.ops(); n != 1 {
			return nil, fmt.Errorf("scenario %s: step %d has %d operations, want 1", sc.Name, i+1, n)
		}
		if st.Create < 0 {
			return nil, fmt.Errorf("scenario %s: step %d: negative create", sc.Name, i+1)
		}
	}
	return &sc, nil
}

// Load reads one scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sc.path = path
	return sc, nil
}

// LoadDir loads every .yaml/.yml file in dir, sorted by file name.
// A missing directory yields no scenarios.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	out := make([]*Scenario, 0, len(names))
	for _, name := range names {
		sc, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

// Path returns the file the scenario was loaded from, if any.
func (sc *Scenario) Path() string { return sc.path }
