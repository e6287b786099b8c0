package blueprint

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/kopye/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// RegistryFiles are the registry file names at a source root, in lookup order.
var RegistryFiles = []string{"blueprints.toml", "blueprints.yaml", "blueprints.yml"}

// Entry is one blueprint declared in the registry.
type Entry struct {
	Name        string   `mapstructure:"-"`
	Path        string   `mapstructure:"path"`
	Description string   `mapstructure:"description"`
	Ignore      []string `mapstructure:"ignore"`
}

// Registry maps blueprint names to their directories within a source root.
type Registry struct {
	Root    string
	entries []Entry
}

// LoadRegistry reads the registry file found at root.
func LoadRegistry(root string) (*Registry, error) {
	path, err := findFile(root, RegistryFiles)
	if err != nil {
		return nil, err
	}

	raw, err := readEntries(path)
	if err != nil {
		return nil, err
	}

	reg := &Registry{Root: root}
	for _, e := range raw {
		var item Entry
		if err := mapstructure.Decode(e.Fields, &item); err != nil {
			return nil, &domain.ParseError{Format: mustFormat(path), Path: path, Err: err}
		}
		item.Name = e.Key
		if item.Path == "" {
			item.Path = e.Key
		}
		reg.entries = append(reg.entries, item)
	}
	return reg, nil
}

func mustFormat(path string) domain.FileFormat {
	f, _ := formatOf(path)
	return f
}

// Entries returns the blueprints in declaration order.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Names returns the blueprint names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup finds a blueprint by name.
func (r *Registry) Lookup(name string) (Entry, error) {
	for _, e := range r.entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, &domain.LookupError{Name: name, Available: r.Names()}
}

// Dir resolves the blueprint directory of an entry. The registry path is normalized so it
// never escapes the registry root.
func (r *Registry) Dir(e Entry) (string, error) {
	if !utf8.ValidString(e.Path) {
		return "", &domain.EncodingError{Path: e.Path}
	}
	return filepath.Join(r.Root, NormalizePath(e.Path)), nil
}

// NormalizePath drops "." segments and resolves ".." without climbing above the start.
func NormalizePath(p string) string {
	cleaned := filepath.Clean("/" + filepath.ToSlash(p))
	return filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))
}
