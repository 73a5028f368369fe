package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ruminaider/devlinks/internal/paths"
	"github.com/stretchr/testify/assert"
)

func TestAppDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	assert.True(t, strings.HasPrefix(paths.AppDir(), home))
	assert.True(t, strings.HasSuffix(paths.AppDir(), ".devlinks"))
}

func TestConfigFile(t *testing.T) {
	assert.True(t, strings.HasSuffix(paths.ConfigFile(), "config.yaml"))
	assert.Equal(t, paths.AppDir(), filepath.Dir(paths.ConfigFile()))
}

func TestEnvFile(t *testing.T) {
	assert.Equal(t, ".env", filepath.Base(paths.EnvFile()))
}

func TestPlatformsFile(t *testing.T) {
	assert.True(t, strings.HasSuffix(paths.PlatformsFile(), "platforms.yaml"))
}
