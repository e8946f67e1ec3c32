package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_ResolvesRelativeRuntimePath(t *testing.T) {
	t.Setenv("LADO_RUNTIME_PATH", ".lado")

	c := NewAppConfig(context.Background())
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".lado"), c.GetRuntimePath())
	assert.Equal(t, filepath.Join(home, ".lado", "lado.db"), c.GetDatabasePath())
	assert.Equal(t, GetRuntimePath(), c.GetRuntimePath(), "both resolvers must agree")
}

func TestNewAppConfig_KeepsAbsoluteRuntimePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LADO_RUNTIME_PATH", dir)

	c := NewAppConfig(context.Background())
	assert.Equal(t, dir, c.GetRuntimePath())
	assert.Equal(t, filepath.Join(dir, "lado.db"), c.GetDatabasePath())
	assert.Equal(t, filepath.Join(dir, "words.txt"), c.GetWordListPath())
}
