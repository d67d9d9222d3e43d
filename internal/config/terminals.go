package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/ferry-wait-etl/internal/domain"
)

// terminalsFile is the YAML layout of TERMINALS_FILE:
//
//	route_prefix: "edm/king -"
//	terminals:
//	  - name: edmonds
//	    alt_names: [edm, edms, " ed"]
//	  - name: kingston
//	    alt_names: [kgstn, king]
type terminalsFile struct {
	RoutePrefix *string         `yaml:"route_prefix"`
	Terminals   []terminalEntry `yaml:"terminals"`
}

type terminalEntry struct {
	Name     string   `yaml:"name"`
	AltNames []string `yaml:"alt_names"`
}

// LoadTerminals reads the terminal configuration from a YAML file. An empty
// path returns domain.DefaultTerminals. A missing route_prefix key keeps the
// default prefix; an explicit empty string disables prefix stripping.
func LoadTerminals(path string) (domain.Terminals, error) {
	if path == "" {
		return domain.DefaultTerminals(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Terminals{}, fmt.Errorf("terminals file %s not found: %w", path, err)
		}
		return domain.Terminals{}, fmt.Errorf("read terminals file: %w", err)
	}
	return ParseTerminals(data)
}

// ParseTerminals decodes a terminals YAML document.
func ParseTerminals(data []byte) (domain.Terminals, error) {
	var f terminalsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.Terminals{}, fmt.Errorf("parse terminals file: %w", err)
	}

	names := make([]string, 0, len(f.Terminals))
	alt := make(domain.AltNameTable, len(f.Terminals))
	for _, entry := range f.Terminals {
		names = append(names, entry.Name)
		if len(entry.AltNames) > 0 {
			alt[entry.Name] = entry.AltNames
		}
	}

	prefix := domain.DefaultRoutePrefix
	if f.RoutePrefix != nil {
		prefix = *f.RoutePrefix
	}

	terminals, err := domain.NewTerminals(names, alt, prefix)
	if err != nil {
		return domain.Terminals{}, fmt.Errorf("invalid terminals file: %w", err)
	}
	return terminals, nil
}
