// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads and saves the reflink engine configuration file.
//
// The file is a flat list of "key = value" lines. Blank lines and lines
// starting with '#' are ignored, as are unknown keys. Values are taken
// literally only inside single quotes, so a '$' anywhere else is rejected
// rather than expanded from the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Purchase addressing modes.
const (
	AddressingSequence = "sequence"
	AddressingEvent    = "event"
)

// Platform fee orders.
const (
	FeeOrderBefore      = "before"
	FeeOrderIndependent = "independent"
)

// Config holds engine settings.
type Config struct {
	DataDir              string // directory holding reflink.db
	Network              string // mainnet, testnet or regtest
	LogLevel             string
	LogFile              string // empty logs to stderr
	AssetsFile           string // YAML token list; empty accepts only the native asset
	PurchaseAddressing   string
	PlatformFeeOrder     string
	VerifyPayerSignature bool
}

const (
	keyDataDir      = "datadir"
	keyNetwork      = "network"
	keyLogLevel     = "loglevel"
	keyLogFile      = "logfile"
	keyAssets       = "assets"
	keyAddressing   = "purchase_addressing"
	keyFeeOrder     = "platform_fee_order"
	keyVerifyPayer  = "verify_payer_signature"
	configFileName  = "config"
	defaultDirName  = ".reflink"
	defaultNetwork  = "mainnet"
	defaultLogLevel = "info"
)

// DefaultDataDir returns ~/.reflink, or ./.reflink when the home
// directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDirName
	}
	return filepath.Join(home, defaultDirName)
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		DataDir:            DefaultDataDir(),
		Network:            defaultNetwork,
		LogLevel:           defaultLogLevel,
		PurchaseAddressing: AddressingSequence,
		PlatformFeeOrder:   FeeOrderBefore,
	}
}

// ConfigPath returns the config file location inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(filepath.Clean(dataDir), configFileName)
}

// LoadConfig reads path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := checkExpansion(data); err != nil {
		return Config{}, err
	}
	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfigLine, err)
	}

	cfg := DefaultConfig()
	for rawKey, value := range values {
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(rawKey)) {
		case keyDataDir:
			cfg.DataDir = value
		case keyNetwork:
			cfg.Network = value
		case keyLogLevel:
			cfg.LogLevel = value
		case keyLogFile:
			cfg.LogFile = value
		case keyAssets:
			cfg.AssetsFile = value
		case keyAddressing:
			cfg.PurchaseAddressing = strings.ToLower(value)
		case keyFeeOrder:
			cfg.PlatformFeeOrder = strings.ToLower(value)
		case keyVerifyPayer:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Config{}, fmt.Errorf("%w: %s = %q", ErrInvalidBool, keyVerifyPayer, value)
			}
			cfg.VerifyPayerSignature = b
		}
	}
	return cfg, nil
}

// checkExpansion rejects any value that would be variable-expanded:
// unquoted and double-quoted values both are.
func checkExpansion(data []byte) error {
	for n, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		_, value, ok := strings.Cut(line, "=")
		if !ok || strings.HasPrefix(strings.TrimSpace(value), "'") {
			continue
		}
		if strings.Contains(value, "$") {
			return fmt.Errorf("%w: line %d: %s", ErrUnquotedDollar, n+1, line)
		}
	}
	return nil
}

// SaveConfig writes cfg to path, creating parent directories. String
// values are single-quoted so they load back literally.
func SaveConfig(path string, cfg Config) error {
	strs := []struct{ key, value string }{
		{keyDataDir, cfg.DataDir},
		{keyNetwork, cfg.Network},
		{keyLogLevel, cfg.LogLevel},
		{keyLogFile, cfg.LogFile},
		{keyAssets, cfg.AssetsFile},
		{keyAddressing, cfg.PurchaseAddressing},
		{keyFeeOrder, cfg.PlatformFeeOrder},
	}
	for _, kv := range strs {
		if strings.ContainsAny(kv.value, "'\n") {
			return fmt.Errorf("%w: %s = %q", ErrUnquotableValue, kv.key, kv.value)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Reflink Configuration\n\n")
	for _, kv := range strs {
		switch kv.key {
		case keyAddressing:
			b.WriteString("\n# sequence | event\n")
		case keyFeeOrder:
			b.WriteString("# before | independent\n")
		}
		fmt.Fprintf(&b, "%s = '%s'\n", kv.key, kv.value)
	}
	fmt.Fprintf(&b, "%s = %t\n", keyVerifyPayer, cfg.VerifyPayerSignature)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
