// Package engine exposes the referral ledger operations. Every operation
// runs inside one store transaction and either commits all of its record
// and balance changes or none of them.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/bitfsorg/reflink-go/asset"
	"github.com/bitfsorg/reflink-go/commission"
	"github.com/bitfsorg/reflink-go/config"
	"github.com/bitfsorg/reflink-go/logging"
	"github.com/bitfsorg/reflink-go/store"
	"github.com/bitfsorg/reflink-go/transfer"
)

// DBFileName is the bolt database file inside the data directory.
const DBFileName = "reflink.db"

// Addressing selects how purchase records are keyed.
type Addressing uint8

const (
	// AddressBySequence keys purchases by (affiliate, merchant, affiliate sequence).
	AddressBySequence Addressing = iota
	// AddressByEvent keys purchases by (campaign or merchant, customer, event type).
	AddressByEvent
)

func (a Addressing) String() string {
	switch a {
	case AddressBySequence:
		return config.AddressingSequence
	case AddressByEvent:
		return config.AddressingEvent
	default:
		return fmt.Sprintf("addressing(%d)", uint8(a))
	}
}

// ParseAddressing maps a config value to an Addressing. Empty means sequence.
func ParseAddressing(s string) (Addressing, error) {
	switch s {
	case "", config.AddressingSequence:
		return AddressBySequence, nil
	case config.AddressingEvent:
		return AddressByEvent, nil
	default:
		return 0, fmt.Errorf("%w: purchase addressing %q", ErrInvalidParam, s)
	}
}

// Options configures New. The zero value is usable.
type Options struct {
	Assets      *asset.Registry // nil accepts only the native asset
	Logger      *zap.Logger     // nil discards logs
	Addressing  Addressing
	FeeOrder    commission.FeeOrder
	VerifyPayer bool             // check PurchaseRequest.Signature against the customer
	Now         func() time.Time // nil uses time.Now
}

// Engine runs ledger operations against a store.
type Engine struct {
	store       store.Store
	transfers   *transfer.Engine
	assets      *asset.Registry
	log         *zap.Logger
	addressing  Addressing
	feeOrder    commission.FeeOrder
	verifyPayer bool
	now         func() time.Time
	cleanup     func()
}

// New wraps s. The caller keeps ownership of s unless the engine was
// built by Open.
func New(s store.Store, opts Options) *Engine {
	e := &Engine{
		store:       s,
		assets:      opts.Assets,
		log:         opts.Logger,
		addressing:  opts.Addressing,
		feeOrder:    opts.FeeOrder,
		verifyPayer: opts.VerifyPayer,
		now:         opts.Now,
	}
	if e.assets == nil {
		e.assets = asset.Default()
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.now == nil {
		e.now = time.Now
	}
	e.transfers = transfer.NewEngine(e.assets)
	return e
}

// Open builds an engine from a configuration: it validates cfg, loads the
// asset file, sets up logging and opens the bolt database in cfg.DataDir.
func Open(cfg config.Config) (*Engine, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	addressing, err := ParseAddressing(cfg.PurchaseAddressing)
	if err != nil {
		return nil, err
	}
	feeOrder, err := commission.ParseFeeOrder(cfg.PlatformFeeOrder)
	if err != nil {
		return nil, err
	}

	assets := asset.Default()
	if cfg.AssetsFile != "" {
		if assets, err = asset.Load(cfg.AssetsFile); err != nil {
			return nil, fmt.Errorf("engine: load assets: %w", err)
		}
	}

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("engine: create data dir: %w", err)
	}

	logger, syncLog, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}

	s, err := store.OpenBoltStore(filepath.Join(cfg.DataDir, DBFileName))
	if err != nil {
		syncLog()
		return nil, fmt.Errorf("engine: open store: %w", err)
	}

	e := New(s, Options{
		Assets:      assets,
		Logger:      logger.With(zap.String("network", cfg.Network)),
		Addressing:  addressing,
		FeeOrder:    feeOrder,
		VerifyPayer: cfg.VerifyPayerSignature,
	})
	e.cleanup = syncLog
	e.log.Info("engine opened",
		zap.String("datadir", cfg.DataDir),
		zap.Stringer("addressing", addressing),
		zap.Stringer("fee_order", feeOrder),
		zap.Int("assets", assets.Len()))
	return e, nil
}

// Close closes the store and flushes the logger.
func (e *Engine) Close() error {
	err := e.store.Close()
	if e.cleanup != nil {
		e.cleanup()
	}
	return err
}

// Assets returns the asset registry the engine admits tokens from.
func (e *Engine) Assets() *asset.Registry { return e.assets }

func (e *Engine) timestamp() int64 { return e.now().Unix() }
