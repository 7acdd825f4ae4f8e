package colourdb

import (
	"strings"

	"palette/internal/core/colour"
	perr "palette/internal/platform/errors"
)

// Config selects where dynamic colour records come from
type Config struct {
	// Kind is "builtin" or "file"; empty means builtin
	Kind string

	// Path locates the YAML document for the file kind
	Path string
}

// Open returns the source described by cfg. The builtin kind yields a nil
// source: callers leave the registry's lazy default in place
func Open(cfg Config) (colour.Source, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", "builtin":
		return nil, nil
	case "file":
		if strings.TrimSpace(cfg.Path) == "" {
			return nil, perr.InvalidArgf("file colour source requires a path")
		}
		return NewFile(cfg.Path), nil
	default:
		return nil, perr.InvalidArgf("unknown colour source kind %q", cfg.Kind)
	}
}
