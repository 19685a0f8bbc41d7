package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ParseArgs parses command line arguments into Config. Every flag has a
// default, so a bare invocation runs the full demo.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{Classes: DefaultClasses()}

	fs := pflag.NewFlagSet("dslgen", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Mode, "mode", "m", ModeReflect, "introspection mode: reflect or source")
	fs.StringVar(&cfg.Library, "library", "", "library to introspect (defaults per mode)")
	fs.StringVarP(&cfg.Snippet, "snippet", "s", DefaultSnippet, "snippet to parse with the synthesized grammar")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	switch cfg.Mode {
	case ModeReflect, ModeSource:
	default:
		return nil, fmt.Errorf("--mode must be %q or %q, got %q", ModeReflect, ModeSource, cfg.Mode)
	}
	if cfg.Snippet == "" {
		return nil, fmt.Errorf("--snippet must not be empty")
	}
	return cfg, nil
}
