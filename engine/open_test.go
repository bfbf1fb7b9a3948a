package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/reflink-go/config"
	"github.com/bitfsorg/reflink-go/record"
)

func TestOpen_PersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	assetsPath := filepath.Join(dir, "assets.yaml")
	require.NoError(t, os.WriteFile(assetsPath,
		[]byte("native:\n  symbol: SOL\n  decimals: 9\ntokens:\n  - symbol: USDC\n    mint: "+usdcMint+"\n    decimals: 6\n"), 0600))

	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.LogFile = filepath.Join(dir, "reflink.log")
	cfg.AssetsFile = assetsPath
	cfg.Network = "regtest"
	require.NoError(t, config.SaveConfig(config.ConfigPath(cfg.DataDir), cfg))

	loaded, err := config.LoadConfig(config.ConfigPath(cfg.DataDir))
	require.NoError(t, err)

	e, err := Open(loaded)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Assets().Len())

	owner := makeIdentity(0x10)
	addr, err := e.RegisterMerchant(owner, MerchantParams{Name: "Acme", RateBps: 800})
	require.NoError(t, err)
	require.NoError(t, e.Fund(owner, record.Native, 1_500_000_000))
	require.NoError(t, e.Close())

	e, err = Open(loaded)
	require.NoError(t, err)
	defer e.Close()

	m, err := e.Merchant(addr)
	require.NoError(t, err)
	assert.Equal(t, "Acme", m.Name)
	bal, err := e.Balance(owner, record.Native)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000_000), bal)

	logData, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(logData), `"merchant registered"`))
	assert.True(t, strings.Contains(string(logData), `"network":"regtest"`))
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	bad := cfg
	bad.PurchaseAddressing = "random"
	_, err := Open(bad)
	assert.ErrorIs(t, err, config.ErrInvalidPurchaseAddressing)

	bad = cfg
	bad.AssetsFile = filepath.Join(cfg.DataDir, "missing.yaml")
	_, err = Open(bad)
	assert.Error(t, err)
}
