package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{"4608", 0x1200, false},
		{"0x1200", 0x1200, false},
		{"0X00ff", 0x00FF, false},
		{"$D000", 0xD000, false},
		{" 0xFFFF ", 0xFFFF, false},
		{"0x10000", 0, true},
		{"-1", 0, true},
		{"$", 0, true},
		{"load", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAddress(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "custom", outputName("custom", "out/boot.h", "firmware"))
	assert.Equal(t, "boot", outputName("", "out/boot.h", "firmware"))
	assert.Equal(t, "_1st_stage", outputName("", "1st-stage.inc", "firmware"))
	assert.Equal(t, "firmware", outputName("", "", "firmware"))
}

func TestWriteOutputReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.bin")
	require.NoError(t, os.WriteFile(path, []byte("old contents"), 0o600))

	require.NoError(t, writeOutput(path, []byte{1, 2, 3}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteOutputMissingDir(t *testing.T) {
	err := writeOutput(filepath.Join(t.TempDir(), "missing", "image.bin"), []byte{1})
	assert.Error(t, err)
}

func TestReadInputDirectory(t *testing.T) {
	_, err := readInput(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "none.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)

	cfg, err = loadConfig("", true)
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"format: ihex\ncompression: zstd\npragma_once: true\nload_address: \"0x2000\"\nlog_level: debug\n"), 0o644))
	cfg, err = loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Format:      "ihex",
		Compression: "zstd",
		PragmaOnce:  true,
		LoadAddress: "0x2000",
		LogLevel:    "debug",
	}, cfg)
}
