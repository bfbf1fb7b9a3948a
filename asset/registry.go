// Package asset lists the assets a deployment accepts and renders raw
// integer amounts in display units.
//
// The asset file is YAML:
//
//	native:
//	  symbol: SOL
//	  decimals: 9
//	tokens:
//	  - symbol: USDC
//	    mint: 3b442cb3912157f13a933d0134282d032b5ffecd01a2dbf1b7790608df002ea7
//	    decimals: 6
package asset

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/bitfsorg/reflink-go/record"
)

const (
	// DefaultNativeSymbol names the native asset when the file omits it.
	DefaultNativeSymbol = "NATIVE"
	// DefaultNativeDecimals is the native asset precision when the file omits it.
	DefaultNativeDecimals = 9
	maxDecimals           = 18
)

// Info describes one accepted asset.
type Info struct {
	Symbol   string
	Asset    record.Asset
	Decimals int32
}

type fileEntry struct {
	Symbol   string `yaml:"symbol"`
	Mint     string `yaml:"mint"`
	Decimals *int32 `yaml:"decimals"`
}

type file struct {
	Native *fileEntry  `yaml:"native"`
	Tokens []fileEntry `yaml:"tokens"`
}

// Registry maps asset identities to display metadata.
type Registry struct {
	native Info
	tokens map[[32]byte]Info
}

// Default returns a registry that accepts only the native asset.
func Default() *Registry {
	return &Registry{
		native: Info{Symbol: DefaultNativeSymbol, Asset: record.Native, Decimals: DefaultNativeDecimals},
		tokens: make(map[[32]byte]Info),
	}
}

// Load reads and parses the asset file at path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("asset: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML.
func Parse(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAssetFile, err)
	}

	r := Default()
	if f.Native != nil {
		if f.Native.Mint != "" {
			return nil, fmt.Errorf("%w: native asset must not have a mint", ErrInvalidAssetFile)
		}
		if s := strings.TrimSpace(f.Native.Symbol); s != "" {
			r.native.Symbol = strings.ToUpper(s)
		}
		if f.Native.Decimals != nil {
			d, err := checkDecimals(r.native.Symbol, *f.Native.Decimals)
			if err != nil {
				return nil, err
			}
			r.native.Decimals = d
		}
	}

	symbols := map[string]bool{r.native.Symbol: true}
	for i, entry := range f.Tokens {
		symbol := strings.ToUpper(strings.TrimSpace(entry.Symbol))
		if symbol == "" {
			return nil, fmt.Errorf("%w: token at index %d missing symbol", ErrInvalidAssetFile, i)
		}
		mintBytes, err := hex.DecodeString(strings.TrimSpace(entry.Mint))
		if err != nil || len(mintBytes) != 32 {
			return nil, fmt.Errorf("%w: token %s mint must be 32 hex bytes", ErrInvalidAssetFile, symbol)
		}
		if entry.Decimals == nil {
			return nil, fmt.Errorf("%w: token %s missing decimals", ErrInvalidAssetFile, symbol)
		}
		decimals, err := checkDecimals(symbol, *entry.Decimals)
		if err != nil {
			return nil, err
		}

		var mint [32]byte
		copy(mint[:], mintBytes)
		if symbols[symbol] {
			return nil, fmt.Errorf("%w: symbol %s", ErrDuplicateAsset, symbol)
		}
		if _, dup := r.tokens[mint]; dup {
			return nil, fmt.Errorf("%w: mint %x", ErrDuplicateAsset, mint)
		}
		symbols[symbol] = true
		r.tokens[mint] = Info{Symbol: symbol, Asset: record.TokenAsset(mint), Decimals: decimals}
	}
	return r, nil
}

func checkDecimals(symbol string, d int32) (int32, error) {
	if d < 0 || d > maxDecimals {
		return 0, fmt.Errorf("%w: %s decimals %d out of range [0, %d]", ErrInvalidAssetFile, symbol, d, maxDecimals)
	}
	return d, nil
}

// Lookup returns the metadata for a, or ErrUnknownAsset.
func (r *Registry) Lookup(a record.Asset) (Info, error) {
	switch a.Kind {
	case record.AssetNative:
		return r.native, nil
	case record.AssetToken:
		if info, ok := r.tokens[a.Mint]; ok {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("%w: %s", ErrUnknownAsset, a)
}

// BySymbol finds an asset by its symbol, case-insensitively.
func (r *Registry) BySymbol(symbol string) (Info, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == r.native.Symbol {
		return r.native, nil
	}
	for _, info := range r.tokens {
		if info.Symbol == symbol {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("%w: symbol %s", ErrUnknownAsset, symbol)
}

// Len returns the number of accepted assets, native included.
func (r *Registry) Len() int { return len(r.tokens) + 1 }

// Amount converts a raw integer amount into display units.
func (r *Registry) Amount(a record.Asset, raw uint64) (decimal.Decimal, error) {
	info, err := r.Lookup(a)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -info.Decimals), nil
}

// Format renders raw as "<amount> <symbol>", falling back to the raw
// integer for unknown assets.
func (r *Registry) Format(a record.Asset, raw uint64) string {
	info, err := r.Lookup(a)
	if err != nil {
		return fmt.Sprintf("%d %s", raw, a)
	}
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -info.Decimals)
	return d.String() + " " + info.Symbol
}
