package engine

import (
	"os"

	"github.com/BurntSushi/toml"
)

// LoadOptions reads engine options from a TOML file at path, starting
// from DefaultOptions so a file only needs to override what it cares
// about.
func LoadOptions(path string) (Options, error) {
	options := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return options, err
	}
	if _, err := toml.Decode(string(data), &options); err != nil {
		return options, err
	}
	if options.HashSizeMB == 0 {
		options.HashSizeMB = DefaultHashTableSizeMB
	}
	return options, nil
}
