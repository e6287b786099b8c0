package blueprint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/kopye/pkg/domain"
	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
	"gopkg.in/yaml.v3"
)

// entry is one top-level key of a question or registry file, with its raw fields.
type entry struct {
	Key    string
	Fields map[string]any
}

// formatOf maps a file extension to its structured format.
func formatOf(path string) (domain.FileFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return domain.FormatTOML, true
	case ".yaml", ".yml":
		return domain.FormatYAML, true
	}
	return "", false
}

// findFile returns the first candidate that exists in dir.
func findFile(dir string, candidates []string) (string, error) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	path := filepath.Join(dir, candidates[0])
	return "", &domain.IOError{Op: domain.OpRead, Path: path, Err: os.ErrNotExist}
}

// readEntries decodes a TOML or YAML mapping while keeping the declaration order of its
// top-level keys.
func readEntries(path string) ([]entry, error) {
	format, ok := formatOf(path)
	if !ok {
		return nil, &domain.ParseError{Format: domain.FileFormat(filepath.Ext(path)), Path: path, Err: fmt.Errorf("unsupported file format")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.IOError{Op: domain.OpRead, Path: path, Err: err}
	}

	var entries []entry
	switch format {
	case domain.FormatTOML:
		entries, err = decodeTOML(data)
	case domain.FormatYAML:
		entries, err = decodeYAML(data)
	}
	if err != nil {
		return nil, &domain.ParseError{Format: format, Path: path, Err: err}
	}
	return entries, nil
}

func decodeTOML(data []byte) ([]entry, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	order, err := tomlKeyOrder(data)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(order))
	for _, key := range order {
		fields, ok := doc[key].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key '%s' must be a table", key)
		}
		entries = append(entries, entry{Key: key, Fields: fields})
	}
	return entries, nil
}

// tomlKeyOrder lists the top-level keys of a TOML document in the order they first appear,
// whether declared as [table] headers or as root-level key/values.
func tomlKeyOrder(data []byte) ([]string, error) {
	p := unstable.Parser{}
	p.Reset(data)

	var order []string
	seen := make(map[string]struct{})
	inTable := false

	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			inTable = true
		case unstable.KeyValue:
			if inTable {
				continue
			}
		default:
			continue
		}

		it := expr.Key()
		if !it.Next() {
			continue
		}
		key := string(it.Node().Data)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		order = append(order, key)
	}
	if err := p.Error(); err != nil {
		return nil, err
	}
	return order, nil
}

func decodeYAML(data []byte) ([]entry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document root must be a mapping")
	}

	entries := make([]entry, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		var fields map[string]any
		if err := value.Decode(&fields); err != nil {
			return nil, fmt.Errorf("key '%s' (line %d): %w", key.Value, key.Line, err)
		}
		entries = append(entries, entry{Key: key.Value, Fields: fields})
	}
	return entries, nil
}
