// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, strings.HasSuffix(cfg.DataDir, ".reflink"))
	assert.Equal(t, "mainnet", cfg.Network)
	assert.Equal(t, AddressingSequence, cfg.PurchaseAddressing)
	assert.Equal(t, FeeOrderBefore, cfg.PlatformFeeOrder)
	assert.False(t, cfg.VerifyPayerSignature)
	assert.Empty(t, cfg.AssetsFile, "native asset only")
	assert.NoError(t, ValidateConfig(cfg))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config")
	original := Config{
		DataDir:              "/srv/$HOME/reflink #1",
		Network:              "regtest",
		LogLevel:             "debug",
		LogFile:              "/var/log/reflink.log",
		AssetsFile:           "/etc/reflink/assets.yaml",
		PurchaseAddressing:   AddressingEvent,
		PlatformFeeOrder:     FeeOrderIndependent,
		VerifyPayerSignature: true,
	}
	require.NoError(t, SaveConfig(path, original))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestSaveConfig_QuotesStrings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	cfg := DefaultConfig()
	cfg.DataDir = "/data"
	require.NoError(t, SaveConfig(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "# Reflink Configuration\n"))
	assert.Contains(t, content, "datadir = '/data'\n")
	assert.Contains(t, content, "logfile = ''\n")
	assert.Contains(t, content, "purchase_addressing = 'sequence'\n")
	assert.Contains(t, content, "verify_payer_signature = false\n")
}

func TestSaveConfig_RejectsUnquotable(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"single quote": func(c *Config) { c.DataDir = "/srv/o'brien" },
		"newline":      func(c *Config) { c.LogFile = "a\nnetwork = mainnet" },
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config")
			cfg := DefaultConfig()
			mutate(&cfg)

			err := SaveConfig(path, cfg)
			assert.ErrorIs(t, err, ErrUnquotableValue)
			assert.NoFileExists(t, path)
		})
	}
}

func TestLoadConfig_Dollar(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		wantErr error
	}{
		{"unquoted", "datadir = /srv/$HOME/reflink", "", ErrUnquotedDollar},
		{"braced", "datadir = /srv/${HOME}", "", ErrUnquotedDollar},
		{"double quoted", `datadir = "/srv/$HOME/reflink"`, "", ErrUnquotedDollar},
		{"single quoted", "datadir = '/srv/$HOME/reflink'", "/srv/$HOME/reflink", nil},
		{"no dollar", "datadir = /srv/reflink", "/srv/reflink", nil},
	}
	t.Setenv("HOME", "/home/someone")

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, "# data\n"+tc.line+"\n"))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.DataDir)
		})
	}
}

func TestLoadConfig_PolicyKeys(t *testing.T) {
	path := writeConfig(t, `# reflink
purchase_addressing = EVENT

platform_fee_order = independent
verify_payer_signature = true
assets = /etc/reflink/assets.yaml
futurekey = ignored
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, AddressingEvent, cfg.PurchaseAddressing, "lowercased")
	assert.Equal(t, FeeOrderIndependent, cfg.PlatformFeeOrder)
	assert.True(t, cfg.VerifyPayerSignature)
	assert.Equal(t, "/etc/reflink/assets.yaml", cfg.AssetsFile)
	assert.Equal(t, "mainnet", cfg.Network, "unset keys keep defaults")
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrConfigNotFound)

	_, err = LoadConfig(writeConfig(t, "this-is-not-key-value\n"))
	assert.ErrorIs(t, err, ErrInvalidConfigLine)

	_, err = LoadConfig(writeConfig(t, "verify_payer_signature = maybe\n"))
	assert.ErrorIs(t, err, ErrInvalidBool)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"regtest", func(c *Config) { c.Network = "regtest" }, nil},
		{"mixed case level", func(c *Config) { c.LogLevel = "WARN" }, nil},
		{"event addressing", func(c *Config) { c.PurchaseAddressing = AddressingEvent }, nil},
		{"empty datadir", func(c *Config) { c.DataDir = "" }, ErrEmptyDataDir},
		{"devnet", func(c *Config) { c.Network = "devnet" }, ErrInvalidNetwork},
		{"verbose", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
		{"random addressing", func(c *Config) { c.PurchaseAddressing = "random" }, ErrInvalidPurchaseAddressing},
		{"fee after", func(c *Config) { c.PlatformFeeOrder = "after" }, ErrInvalidFeeOrder},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := ValidateConfig(cfg)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/user/.reflink", "config"), ConfigPath("/home/user/.reflink"))
}
