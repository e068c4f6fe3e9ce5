package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageWidth(t *testing.T) {
	assert.Equal(t, uint(1984), PageWidth(210, 300, 0.8))
	assert.Equal(t, uint(2480), PageWidth(210, 300, 1))
	assert.Equal(t, uint(992), PageWidth(210, 150, 0.8))
}

func TestLoad(t *testing.T) {
	t.Setenv("IMRESIZE_OUTPUT_DIR", "out")
	t.Setenv("IMRESIZE_DPI", "150")

	require.NoError(t, Load())
	assert.Equal(t, "out", Current.OutputDir)
	assert.Equal(t, "config.yaml", Current.ConfigFile)
	assert.Equal(t, uint(992), Current.Width())

	t.Setenv("IMRESIZE_TARGET_WIDTH", "945")
	require.NoError(t, Load())
	assert.Equal(t, uint(945), Current.Width())
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("IMRESIZE_WIDTH_RATIO", "1.5")
	assert.Error(t, Load())

	t.Setenv("IMRESIZE_WIDTH_RATIO", "abc")
	assert.Error(t, Load())
}
