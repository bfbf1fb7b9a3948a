package transfer

import (
	"math"
	"testing"

	"github.com/bitfsorg/reflink-go/address"
	"github.com/bitfsorg/reflink-go/asset"
	"github.com/bitfsorg/reflink-go/record"
	"github.com/bitfsorg/reflink-go/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usdcMint = "3b442cb3912157f13a933d0134282d032b5ffecd01a2dbf1b7790608df002ea7"

func makeIdentity(seed byte) address.Identity {
	var id address.Identity
	id[0] = 0x02
	for i := 1; i < len(id); i++ {
		id[i] = seed
	}
	return id
}

func testAssets(t *testing.T) (*asset.Registry, record.Asset) {
	t.Helper()
	reg, err := asset.Parse([]byte("tokens:\n  - symbol: USDC\n    mint: " + usdcMint + "\n    decimals: 6\n"))
	require.NoError(t, err)
	usdc, err := record.ParseAsset("token:" + usdcMint)
	require.NoError(t, err)
	return reg, usdc
}

func balance(t *testing.T, s store.Store, owner address.Identity, a record.Asset) uint64 {
	t.Helper()
	var amount uint64
	require.NoError(t, s.View(func(tx store.Tx) error {
		var err error
		amount, err = BalanceOf(tx, owner, a)
		return err
	}))
	return amount
}

func fund(t *testing.T, s store.Store, e *Engine, owner address.Identity, a record.Asset, amount uint64) {
	t.Helper()
	require.NoError(t, s.Update(func(tx store.Tx) error {
		return e.Fund(tx, owner, a, amount)
	}))
}

func TestTransfer_NativeSplit(t *testing.T) {
	s := store.NewMemStore()
	e := NewEngine(asset.Default())
	payer, aff, merch := makeIdentity(1), makeIdentity(2), makeIdentity(3)
	fund(t, s, e, payer, record.Native, 2_000_000_000)

	err := s.Update(func(tx store.Tx) error {
		return e.Transfer(tx, payer, record.Native, record.Native, []Leg{
			{Recipient: aff, Amount: 100_000_000},
			{Recipient: merch, Amount: 900_000_000},
		})
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(1_000_000_000), balance(t, s, payer, record.Native))
	assert.Equal(t, uint64(100_000_000), balance(t, s, aff, record.Native))
	assert.Equal(t, uint64(900_000_000), balance(t, s, merch, record.Native))
}

func TestTransfer_ZeroSum(t *testing.T) {
	s := store.NewMemStore()
	e := NewEngine(asset.Default())
	ids := []address.Identity{makeIdentity(1), makeIdentity(2), makeIdentity(3), makeIdentity(4)}
	fund(t, s, e, ids[0], record.Native, 1_000_000)

	total := func() uint64 {
		var sum uint64
		for _, id := range ids {
			sum += balance(t, s, id, record.Native)
		}
		return sum
	}
	before := total()

	for _, legs := range [][]Leg{
		{{ids[1], 1}, {ids[2], 2}, {ids[3], 3}},
		{{ids[1], 0}, {ids[2], 999}},
		{{ids[0], 10}},
	} {
		require.NoError(t, s.Update(func(tx store.Tx) error {
			return e.Transfer(tx, ids[0], record.Native, record.Native, legs)
		}))
		assert.Equal(t, before, total())
	}
}

func TestTransfer_InsufficientBalanceLeavesNoPartialState(t *testing.T) {
	s := store.NewMemStore()
	e := NewEngine(asset.Default())
	payer, aff, merch := makeIdentity(1), makeIdentity(2), makeIdentity(3)
	fund(t, s, e, payer, record.Native, 500)

	err := s.Update(func(tx store.Tx) error {
		return e.Transfer(tx, payer, record.Native, record.Native, []Leg{
			{Recipient: aff, Amount: 100},
			{Recipient: merch, Amount: 900},
		})
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Equal(t, uint64(500), balance(t, s, payer, record.Native))
	assert.Zero(t, balance(t, s, aff, record.Native))
	assert.Zero(t, balance(t, s, merch, record.Native))
}

func TestTransfer_NoBalanceRecord(t *testing.T) {
	s := store.NewMemStore()
	e := NewEngine(asset.Default())

	err := s.Update(func(tx store.Tx) error {
		return e.Transfer(tx, makeIdentity(9), record.Native, record.Native, []Leg{{makeIdentity(2), 1}})
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestTransfer_Token(t *testing.T) {
	s, err := store.OpenBoltStore(t.TempDir() + "/transfer.db")
	require.NoError(t, err)
	defer s.Close()

	reg, usdc := testAssets(t)
	e := NewEngine(reg)
	payer, merch := makeIdentity(1), makeIdentity(3)
	fund(t, s, e, payer, usdc, 50_000_000)

	require.NoError(t, s.Update(func(tx store.Tx) error {
		return e.Transfer(tx, payer, usdc, usdc, []Leg{{merch, 12_500_000}})
	}))
	assert.Equal(t, uint64(37_500_000), balance(t, s, payer, usdc))
	assert.Equal(t, uint64(12_500_000), balance(t, s, merch, usdc))
	assert.Zero(t, balance(t, s, payer, record.Native), "token and native balances are separate")
}

func TestTransfer_KindsKeepSeparateBalances(t *testing.T) {
	s, err := store.OpenBoltStore(t.TempDir() + "/transfer.db")
	require.NoError(t, err)
	defer s.Close()

	reg, usdc := testAssets(t)
	e := NewEngine(reg)
	payer, merch := makeIdentity(1), makeIdentity(3)
	fund(t, s, e, payer, record.Native, 700)
	fund(t, s, e, payer, usdc, 300)

	require.NoError(t, s.Update(func(tx store.Tx) error {
		return e.Transfer(tx, payer, usdc, usdc, []Leg{{merch, 300}})
	}))
	assert.Equal(t, uint64(700), balance(t, s, payer, record.Native))
	assert.Zero(t, balance(t, s, merch, record.Native))

	// The native balance cannot cover a token debit.
	err = s.Update(func(tx store.Tx) error {
		return e.Transfer(tx, payer, usdc, usdc, []Leg{{merch, 1}})
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	require.NoError(t, s.Update(func(tx store.Tx) error {
		return e.Transfer(tx, payer, record.Native, record.Native, []Leg{{merch, 700}})
	}))
	assert.Equal(t, uint64(700), balance(t, s, merch, record.Native))
	assert.Equal(t, uint64(300), balance(t, s, merch, usdc))
	assert.Zero(t, balance(t, s, payer, usdc))
}

func TestTransfer_Rejections(t *testing.T) {
	reg, usdc := testAssets(t)
	unlisted := record.TokenAsset([32]byte{0xAA})
	payer := makeIdentity(1)

	tests := []struct {
		name    string
		asset   record.Asset
		want    record.Asset
		legs    []Leg
		wantErr error
	}{
		{"asset mismatch", record.Native, usdc, []Leg{{makeIdentity(2), 1}}, ErrAssetMismatch},
		{"unlisted token", unlisted, unlisted, []Leg{{makeIdentity(2), 1}}, ErrUnknownAsset},
		{"unknown kind", record.Asset{Kind: 7}, record.Asset{Kind: 7}, []Leg{{makeIdentity(2), 1}}, ErrUnknownAsset},
		{"no legs", usdc, usdc, nil, ErrNoRecipients},
		{"overflow", usdc, usdc, []Leg{{makeIdentity(2), math.MaxUint64}, {makeIdentity(3), 1}}, ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemStore()
			e := NewEngine(reg)
			fund(t, s, e, payer, usdc, 1_000)

			err := s.Update(func(tx store.Tx) error {
				return e.Transfer(tx, payer, tt.asset, tt.want, tt.legs)
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, uint64(1_000), balance(t, s, payer, usdc))
		})
	}
}

func TestFund_Overflow(t *testing.T) {
	s := store.NewMemStore()
	e := NewEngine(asset.Default())
	owner := makeIdentity(1)
	fund(t, s, e, owner, record.Native, math.MaxUint64)

	err := s.Update(func(tx store.Tx) error {
		return e.Fund(tx, owner, record.Native, 1)
	})
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, uint64(math.MaxUint64), balance(t, s, owner, record.Native))
}

func TestTokenStrategy_NilRegistry(t *testing.T) {
	_, usdc := testAssets(t)
	assert.ErrorIs(t, Token{}.Admit(usdc), ErrUnknownAsset)
	assert.ErrorIs(t, Token{}.Admit(record.Native), ErrAssetMismatch)
	assert.ErrorIs(t, Native{}.Admit(usdc), ErrAssetMismatch)
	assert.NoError(t, Native{}.Admit(record.Native))
}
