package configuration

import (
	"fmt"

	"github.com/joho/godotenv"
)

// GodotenvProvider is a generic configuration provider based on godotenv.
type GodotenvProvider struct{}

// Read reads the given environment files into a key-value map.
func (*GodotenvProvider) Read(filenames ...string) (map[string]string, error) {
	data, err := godotenv.Read(filenames...)
	if err != nil {
		return nil, fmt.Errorf("(config-godotenv) %w", err)
	}

	return data, nil
}
