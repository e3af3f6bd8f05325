package clap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Default sources, lowest precedence first. The command line always wins.
//
//	builder Default < defaults file < environment < command line

// ErrUnsupportedDefaults is returned for a defaults file with an unknown extension.
var ErrUnsupportedDefaults = errors.New("clap: unsupported defaults file format")

// loadDefaultsFile reads path from fsys and flattens it into raw values keyed
// by spec name. Nested tables become dotted keys; lists become multiple values.
func loadDefaultsFile(fsys afero.Fs, path string) (map[string][]string, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("clap: reading defaults %s: %w", path, err)
	}

	var doc map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDefaults, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("clap: decoding defaults %s: %w", path, err)
	}

	out := make(map[string][]string)
	flattenDefaults("", doc, out)
	return out, nil
}

func flattenDefaults(prefix string, src map[string]any, dst map[string][]string) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case nil:
		case map[string]any:
			flattenDefaults(key, val, dst)
		case []any:
			dst[key] = lo.Map(val, func(item any, _ int) string { return scalarString(item) })
		default:
			dst[key] = []string{scalarString(val)}
		}
	}
}

// scalarString renders decoded config scalars the way they would be typed on
// the command line, e.g. JSON's float64(10) as "10".
func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}

// envNames returns the variables consulted for a spec, in order.
func (s *Schema) envNames(name string, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	if s.settings.envPrefix == "" {
		return nil
	}
	v := strings.ToUpper(s.settings.envPrefix + "_" + name)
	return []string{strings.NewReplacer("-", "_", ".", "_").Replace(v)}
}

// fallback resolves the raw default values for a value spec: the first set
// environment variable, else the defaults file entry.
func (s *Schema) fallback(name string, env []string, multiple bool) []string {
	lookup := s.settings.lookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range s.envNames(name, env) {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		if !multiple {
			return []string{v}
		}
		parts := lo.Map(strings.Split(v, ","), func(p string, _ int) string { return strings.TrimSpace(p) })
		return lo.Compact(parts)
	}
	if vals, ok := s.settings.fileDefaults[name]; ok {
		if !multiple && len(vals) > 1 {
			return vals[len(vals)-1:]
		}
		return vals
	}
	return nil
}

// DefaultKeys lists the keys loaded from the defaults file, sorted.
func (s *Schema) DefaultKeys() []string {
	keys := lo.Keys(s.settings.fileDefaults)
	sort.Strings(keys)
	return keys
}
