package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/bahostetterlewis/PyBakUP/log"
)

// load is a [kong.ConfigurationLoader] that reads flag values from a YAML
// document.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(load, "/path/to/config.yaml")
//
// Keys name flags without their leading dashes. Nested mappings are joined
// with a hyphen, so both of the following set --log-level:
//
//	log-level: debug
//
//	log:
//	  level: debug
//
// Underscores may be used in place of hyphens. Command-line flags override
// values read from the file.
func load(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		log.Warn("ignoring unreadable configuration",
			slog.Any("error", err))

		return config{}, nil
	}

	cfg := make(config, len(doc))
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over a flat map of flag names.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}

func (c config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		if prefix != "" {
			key = prefix + "-" + key
		}

		if sub, ok := value.(map[string]any); ok {
			c.flatten(key, sub)

			continue
		}

		c[key] = scalar(value)
	}
}

// scalar converts a decoded YAML value to one the kong mappers accept.
// Scalar numbers are parsed by kong from their text. Sequences are left
// as they are.
func scalar(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339)
	case nil, bool, string, []any:
		return v
	default:
		return fmt.Sprint(v)
	}
}
