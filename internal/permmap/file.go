package permmap

import (
	"fmt"

	"github.com/spf13/viper"
)

// tableFile is the on-disk layout of a mapping table. Rows are a list so that
// table order survives decoding.
//
//	mappings:
//	  - backend: getAllProducts
//	    frontend: viewProduct
type tableFile struct {
	Mappings []Entry `mapstructure:"mappings"`
}

// LoadEntriesFile reads mapping table rows from a YAML, JSON or TOML file, the
// format being taken from the extension. An empty path returns the built-in
// table.
func LoadEntriesFile(path string) ([]Entry, error) {
	if path == "" {
		return DefaultEntries(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read mapping table %s: %w", path, err)
	}

	var doc tableFile
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode mapping table %s: %w", path, err)
	}
	if len(doc.Mappings) == 0 {
		return nil, fmt.Errorf("mapping table %s has no mappings", path)
	}

	return doc.Mappings, nil
}
