// internal/domain/preview/paintings.go
package preview

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/paintings.yaml
var paintingsYAML []byte

// LoadPaintingIndex parses a number -> filename table
func LoadPaintingIndex(data []byte) (map[int]string, error) {
	index := make(map[int]string)
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse painting index: %w", err)
	}
	return index, nil
}

// DefaultPaintingIndex returns the embedded gallery index
func DefaultPaintingIndex() map[int]string {
	index, err := LoadPaintingIndex(paintingsYAML)
	if err != nil {
		// embedded data is validated by tests
		panic(err)
	}
	return index
}
