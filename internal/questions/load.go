package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the catalog manifest inside a catalog directory.
const ManifestFile = "catalog.yaml"

// manifest lists the category set files in catalog order.
type manifest struct {
	Version string        `yaml:"version"`
	Sets    []manifestSet `yaml:"sets"`
}

type manifestSet struct {
	Category Category `yaml:"category"`
	File     string   `yaml:"file"`
}

// Load reads a catalog directory: a manifest plus one YAML file per category.
// The manifest must list every category exactly once, in AllCategories order.
func Load(fsys fs.FS) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if !semver.IsValid(m.Version) {
		return nil, fmt.Errorf("manifest version %q is not a semantic version (want vMAJOR.MINOR.PATCH)", m.Version)
	}

	got := make([]Category, len(m.Sets))
	for i, s := range m.Sets {
		got[i] = s.Category
	}
	if !slices.Equal(got, AllCategories()) {
		return nil, fmt.Errorf("manifest sets must be %v in that order, got %v", AllCategories(), got)
	}

	var problems []string
	sets := make([]Set, 0, len(m.Sets))
	for _, ms := range m.Sets {
		raw, err := fs.ReadFile(fsys, ms.File)
		if err != nil {
			return nil, fmt.Errorf("read %s set: %w", ms.Category, err)
		}
		set, err := DecodeSet(ms.File, ms.Category, raw)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				problems = append(problems, verr.Problems...)
				continue
			}
			return nil, err
		}
		sets = append(sets, set)
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	c, err := New(sets...)
	if err != nil {
		return nil, err
	}
	c.version = m.Version
	return c, nil
}

// DecodeSet parses one YAML category set. Each entry is checked against the
// question schema before typed decoding, so shape errors such as a string
// weight are reported against the field rather than as a decode failure.
func DecodeSet(name string, category Category, data []byte) (Set, error) {
	var doc struct {
		Questions []any `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Set{}, fmt.Errorf("parse %s: %w", name, err)
	}

	set := Set{Name: name, Category: category}
	var problems []string
	for i, raw := range doc.Questions {
		raw = normalizeYAML(raw)
		if err := validateRaw(raw); err != nil {
			problems = append(problems, fmt.Sprintf("%s[%d] (id %q): %v", name, i, rawID(raw), err))
		}
		doc.Questions[i] = raw
	}
	if len(problems) > 0 {
		return Set{}, &ValidationError{Problems: problems}
	}

	b, err := json.Marshal(doc.Questions)
	if err != nil {
		return Set{}, fmt.Errorf("encode %s: %w", name, err)
	}
	if err := json.Unmarshal(b, &set.Questions); err != nil {
		return Set{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return set, nil
}

// normalizeYAML turns the map[any]any nodes yaml.v3 produces for
// non-string keys (e.g. an unquoted score key 3) into map[string]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}

func rawID(v any) string {
	if m, ok := v.(map[string]any); ok {
		if id, ok := m["id"].(string); ok {
			return id
		}
	}
	return ""
}
