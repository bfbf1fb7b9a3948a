// Package transfer moves value between balance records inside a caller's
// store transaction. A transfer either applies every leg or, through the
// enclosing transaction's rollback, none of them.
package transfer

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/bitfsorg/reflink-go/address"
	"github.com/bitfsorg/reflink-go/record"
	"github.com/bitfsorg/reflink-go/registry"
	"github.com/bitfsorg/reflink-go/store"
)

// Leg is one credit of a split transfer.
type Leg struct {
	Recipient address.Identity
	Amount    uint64
}

// Engine checks each transfer against the strategy for the asset kind,
// then applies the legs to the balance records for that asset.
type Engine struct {
	strategies map[record.AssetKind]Strategy
}

// NewEngine returns an engine with the native strategy and a token
// strategy backed by assets.
func NewEngine(assets AssetLookup) *Engine {
	return NewEngineWithStrategies(Native{}, Token{Assets: assets})
}

// NewEngineWithStrategies registers the given strategies by kind. A later
// strategy of the same kind replaces an earlier one.
func NewEngineWithStrategies(strategies ...Strategy) *Engine {
	e := &Engine{strategies: make(map[record.AssetKind]Strategy, len(strategies))}
	for _, s := range strategies {
		e.strategies[s.Kind()] = s
	}
	return e
}

// Admit reports whether some registered strategy can move a.
func (e *Engine) Admit(a record.Asset) error {
	s, ok := e.strategies[a.Kind]
	if !ok {
		return fmt.Errorf("%w: no strategy for %s", ErrUnknownAsset, a.Kind)
	}
	return s.Admit(a)
}

// Transfer debits payer by the sum of legs and credits each recipient.
// The supplied asset must equal want.
func (e *Engine) Transfer(tx store.Tx, payer address.Identity, a, want record.Asset, legs []Leg) error {
	if a != want {
		return fmt.Errorf("%w: got %s, want %s", ErrAssetMismatch, a, want)
	}
	if err := e.Admit(a); err != nil {
		return err
	}
	if len(legs) == 0 {
		return ErrNoRecipients
	}

	var total uint64
	for _, leg := range legs {
		sum, carry := bits.Add64(total, leg.Amount, 0)
		if carry != 0 {
			return fmt.Errorf("%w: transfer total", ErrOverflow)
		}
		total = sum
	}

	if err := debit(tx, payer, a, total); err != nil {
		return err
	}
	for _, leg := range legs {
		if leg.Amount == 0 {
			continue
		}
		if err := credit(tx, leg.Recipient, a, leg.Amount); err != nil {
			return err
		}
	}
	return nil
}

// Fund credits owner with amount out of thin air. It stands in for the
// deposit path of the execution environment.
func (e *Engine) Fund(tx store.Tx, owner address.Identity, a record.Asset, amount uint64) error {
	if err := e.Admit(a); err != nil {
		return err
	}
	return credit(tx, owner, a, amount)
}

// BalanceOf returns owner's balance of a, zero when no record exists.
func BalanceOf(tx store.Tx, owner address.Identity, a record.Asset) (uint64, error) {
	bal, err := registry.FetchBalance(tx, address.Balance(owner, a.ID()))
	if errors.Is(err, registry.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return bal.Amount, nil
}

func debit(tx store.Tx, owner address.Identity, a record.Asset, amount uint64) error {
	addr := address.Balance(owner, a.ID())
	bal, err := registry.FetchBalance(tx, addr)
	if errors.Is(err, registry.ErrNotFound) {
		if amount == 0 {
			return nil
		}
		return fmt.Errorf("%w: %s holds 0 %s, needs %d", ErrInsufficientBalance, owner, a, amount)
	}
	if err != nil {
		return err
	}
	if bal.Amount < amount {
		return fmt.Errorf("%w: %s holds %d %s, needs %d", ErrInsufficientBalance, owner, bal.Amount, a, amount)
	}
	bal.Amount -= amount
	return registry.UpdateBalance(tx, addr, bal)
}

func credit(tx store.Tx, owner address.Identity, a record.Asset, amount uint64) error {
	addr := address.Balance(owner, a.ID())
	bal, err := registry.FetchBalance(tx, addr)
	if errors.Is(err, registry.ErrNotFound) {
		return registry.CreateBalance(tx, addr, &record.Balance{Owner: owner, Asset: a, Amount: amount})
	}
	if err != nil {
		return err
	}
	sum, carry := bits.Add64(bal.Amount, amount, 0)
	if carry != 0 {
		return fmt.Errorf("%w: balance of %s", ErrOverflow, owner)
	}
	bal.Amount = sum
	return registry.UpdateBalance(tx, addr, bal)
}
