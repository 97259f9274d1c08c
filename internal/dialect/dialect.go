// Package dialect loads the optional TOML feature-flag file that selects
// scanner behavior not fixed by the canonical grammar: base-suffixed
// integer literals, comment spelling, and the token-retention window.
// Grounded on internal/tqw's BurntSushi/toml decode-into-struct convention.
package dialect

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors internal/lex.Config but is the on-disk representation;
// the orchestrator translates it after loading.
type Config struct {
	BaseSuffixedIntegers *bool  `toml:"base_suffixed_integers"`
	CommentStyle         string `toml:"comment_style"`
	MaxRetainedLines      int   `toml:"max_retained_lines"`
}

// Default returns the canonical dialect's defaults: base-suffixed integers
// on, block comments, unbounded retention.
func Default() Config {
	enabled := true
	return Config{BaseSuffixedIntegers: &enabled, CommentStyle: "block", MaxRetainedLines: 0}
}

// Load reads and decodes a dialect TOML file at path, applying Default()
// for any field the file leaves unset. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw := struct {
		BaseSuffixedIntegers *bool  `toml:"base_suffixed_integers"`
		CommentStyle         string `toml:"comment_style"`
		MaxRetainedLines     int    `toml:"max_retained_lines"`
	}{}

	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return Config{}, fmt.Errorf("load dialect config %s: %w", path, err)
	}

	if raw.BaseSuffixedIntegers != nil {
		cfg.BaseSuffixedIntegers = raw.BaseSuffixedIntegers
	}
	if raw.CommentStyle != "" {
		if raw.CommentStyle != "block" && raw.CommentStyle != "line" {
			return Config{}, fmt.Errorf("load dialect config %s: comment_style must be %q or %q, got %q", path, "block", "line", raw.CommentStyle)
		}
		cfg.CommentStyle = raw.CommentStyle
	}
	if raw.MaxRetainedLines != 0 {
		cfg.MaxRetainedLines = raw.MaxRetainedLines
	}

	return cfg, nil
}

// exists reports whether path names a regular, readable file; useful to the
// CLI layer deciding whether to pass an explicit --dialect-config through to
// Load at all.
func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Exists is the exported form of exists, used by cmd/tinylangc.
func Exists(path string) bool {
	return exists(path)
}
