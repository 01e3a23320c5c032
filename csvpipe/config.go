package csvpipe

import (
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/floppywaste/gutil/errdefs"
	"github.com/floppywaste/gutil/ioutils"
)

const (
	DefaultDelimiter = ","
	DefaultEncoding  = "utf-8"
)

// Config configures a Pipeline. It is usually loaded from TOML:
//
//	delimiter = ";"
//	key_column = 0
//	value_column = 2
//	encoding = "iso-8859-1"
//	skip_header = true
type Config struct {
	Delimiter      string `toml:"delimiter"`
	KeyColumn      int    `toml:"key_column" default:"0"`
	ValueColumn    int    `toml:"value_column" default:"2"`
	Encoding       string `toml:"encoding"`
	SkipHeader     bool   `toml:"skip_header" default:"false"`
	OmitEmptyLines bool   `toml:"omit_empty_lines" default:"true"`
}

// DefaultConfig returns the configuration for comma separated UTF-8 with
// keys in the first column and values in the third.
func DefaultConfig() Config {
	return Config{
		Delimiter:      DefaultDelimiter,
		KeyColumn:      0,
		ValueColumn:    2,
		Encoding:       DefaultEncoding,
		OmitEmptyLines: true,
	}
}

// ParseConfig parses a TOML document. Missing keys take their value from
// DefaultConfig.
func ParseConfig(b []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, errors.Wrapf(errdefs.ErrParse, "csvpipe: config: %v", err)
	}
	if err := cfg.withDefaults(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads and parses the TOML file at path.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errdefs.IO(err, "csvpipe: config")
	}
	return ParseConfig(b)
}

// withDefaults fills the empty string fields of cfg from DefaultConfig.
func (cfg *Config) withDefaults() error {
	def := DefaultConfig()
	def.KeyColumn, def.ValueColumn = 0, 0
	def.OmitEmptyLines = false
	if err := mergo.Merge(cfg, def); err != nil {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "csvpipe: config: %v", err)
	}
	return nil
}

// Merge returns cfg with every non-zero field of o applied over it.
func (cfg Config) Merge(o Config) (Config, error) {
	if err := mergo.Merge(&cfg, o, mergo.WithOverride); err != nil {
		return Config{}, errors.Wrapf(errdefs.ErrInvalidArgument, "csvpipe: config: %v", err)
	}
	return cfg, nil
}

// Validate reports the first invalid field of cfg.
func (cfg Config) Validate() error {
	switch {
	case cfg.KeyColumn < 0:
		return errors.Wrapf(errdefs.ErrInvalidArgument, "csvpipe: key_column %d", cfg.KeyColumn)
	case cfg.ValueColumn < 0:
		return errors.Wrapf(errdefs.ErrInvalidArgument, "csvpipe: value_column %d", cfg.ValueColumn)
	}
	_, err := LookupEncoding(cfg.Encoding)
	return err
}

var encodings = map[string]encoding.Encoding{
	"utf-8":        ioutils.UTF8,
	"iso-8859-1":   charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
}

// LookupEncoding returns the encoding named name, ignoring case. An empty
// name is UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return ioutils.UTF8, nil
	}
	enc, ok := encodings[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(errdefs.ErrInvalidArgument, "csvpipe: unknown encoding %q", name)
	}
	return enc, nil
}
