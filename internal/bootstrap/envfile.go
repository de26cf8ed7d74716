package bootstrap

import (
	"bytes"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/vvka-141/pkgdata/internal/files/filesystem"
	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

// LoadEnvFile reads KEY=VALUE pairs for Options.Env from a dotenv file.
func LoadEnvFile(provider filesystem.FileSystemProvider, path string) (map[string]string, error) {
	content, err := provider.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	env, err := godotenv.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file %s: %w: %w", path, pkgdata.ErrInvalidConfig, err)
	}
	return env, nil
}
