package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// AppDir returns ~/.devlinks.
func AppDir() string {
	return filepath.Join(home(), ".devlinks")
}

// ConfigFile returns ~/.devlinks/config.yaml.
func ConfigFile() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// EnvFile returns ~/.devlinks/.env.
func EnvFile() string {
	return filepath.Join(AppDir(), ".env")
}

// PlatformsFile returns ~/.devlinks/platforms.yaml, the default location of a
// custom platform catalog.
func PlatformsFile() string {
	return filepath.Join(AppDir(), "platforms.yaml")
}
