package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultPattern matches every catalog document below the filesystem root.
const DefaultPattern = "**/*.{json,yaml,yml}"

// LoadOption customises LoadFS.
type LoadOption func(*loadConfig)

type loadConfig struct {
	pattern string
}

// WithPattern overrides the doublestar pattern used to discover catalog files.
func WithPattern(pattern string) LoadOption {
	return func(cfg *loadConfig) {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			cfg.pattern = trimmed
		}
	}
}

// Store indexes loaded catalogs by name.
type Store struct {
	catalogs map[string]Catalog
}

// LoadFS discovers JSON/YAML catalog documents in fsys and validates each one.
// When fsys is nil or holds no matching files the returned store is empty.
func LoadFS(fsys fs.FS, options ...LoadOption) (*Store, error) {
	cfg := loadConfig{pattern: DefaultPattern}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	store := &Store{catalogs: make(map[string]Catalog)}
	if fsys == nil {
		return store, nil
	}

	matches, err := doublestar.Glob(fsys, cfg.pattern)
	if err != nil {
		return nil, fmt.Errorf("catalog: glob %q: %w", cfg.pattern, err)
	}
	sort.Strings(matches)

	for _, file := range matches {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", file, err)
		}

		cat, err := Parse(data, file)
		if err != nil {
			return nil, err
		}
		if cat.Name == "" {
			cat.Name = strings.TrimSuffix(path.Base(file), path.Ext(file))
		}
		if _, exists := store.catalogs[cat.Name]; exists {
			return nil, fmt.Errorf("catalog: duplicate catalog %q (file %s)", cat.Name, file)
		}
		store.catalogs[cat.Name] = cat
	}

	return store, nil
}

// Parse decodes a single catalog document, trying JSON first and YAML second,
// then normalises and validates it. source is only used in error messages.
func Parse(data []byte, source string) (Catalog, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Catalog{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		cat = Catalog{}
		if yamlErr := yaml.Unmarshal(data, &cat); yamlErr != nil {
			return Catalog{}, fmt.Errorf("catalog: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	cat = normalise(cat)
	if err := Validate(cat); err != nil {
		return Catalog{}, fmt.Errorf("catalog: %s: %w", source, err)
	}
	return cat, nil
}

// Validate checks the invariants every front end relies on: non-empty,
// duplicate-free option tables, a parseable language tag and the copy needed
// for the trait notice and the document title.
func Validate(cat Catalog) error {
	if _, err := language.Parse(cat.Language); err != nil {
		return fmt.Errorf("invalid language %q: %w", cat.Language, err)
	}

	tables := []struct {
		name   string
		values []string
	}{
		{"disabilityTypes", cat.DisabilityTypes},
		{"traits", cat.Traits},
		{"grades", cat.Grades},
		{"subjects", cat.Subjects},
		{"teachingModels", cat.TeachingModels},
	}
	for _, table := range tables {
		if len(table.values) == 0 {
			return fmt.Errorf("%s is empty", table.name)
		}
		seen := make(map[string]struct{}, len(table.values))
		for idx, value := range table.values {
			if value == "" {
				return fmt.Errorf("%s contains an empty entry at index %d", table.name, idx)
			}
			if _, dup := seen[value]; dup {
				return fmt.Errorf("%s contains duplicate entry %q", table.name, value)
			}
			seen[value] = struct{}{}
		}
	}

	if cat.Notices.TraitLimit == "" {
		return fmt.Errorf("notices.traitLimit is required")
	}
	if cat.Document.TitlePlaceholder == "" || cat.Document.TitleSuffix == "" {
		return fmt.Errorf("document.titlePlaceholder and document.titleSuffix are required")
	}
	if family := cat.Document.FontFamily; family != "" && !IsSerifFamily(family) {
		return fmt.Errorf("document.fontFamily %q must end in serif", family)
	}
	return nil
}

// Get returns the catalog registered under name.
func (s *Store) Get(name string) (Catalog, bool) {
	if s == nil {
		return Catalog{}, false
	}
	cat, ok := s.catalogs[strings.TrimSpace(name)]
	if !ok {
		return Catalog{}, false
	}
	return cat.Clone(), true
}

// Names lists the registered catalog names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.catalogs))
	for name := range s.catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any catalogs.
func (s *Store) Empty() bool {
	return s == nil || len(s.catalogs) == 0
}

func normalise(cat Catalog) Catalog {
	cat.Name = strings.TrimSpace(cat.Name)
	cat.Language = strings.TrimSpace(cat.Language)
	if cat.Language != "" {
		if tag, err := language.Parse(cat.Language); err == nil {
			cat.Language = tag.String()
		}
	}
	cat.DisabilityTypes = trimAll(cat.DisabilityTypes)
	cat.Traits = trimAll(cat.Traits)
	cat.Grades = trimAll(cat.Grades)
	cat.Subjects = trimAll(cat.Subjects)
	cat.TeachingModels = trimAll(cat.TeachingModels)
	cat.Notices.TraitLimit = strings.TrimSpace(cat.Notices.TraitLimit)
	cat.Document.TitlePlaceholder = strings.TrimSpace(cat.Document.TitlePlaceholder)
	cat.Document.TitleSuffix = strings.TrimSpace(cat.Document.TitleSuffix)
	if cat.Shell.AdSlots < 0 {
		cat.Shell.AdSlots = 0
	}
	return cat
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
