package engine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/reflink-go/address"
	"github.com/bitfsorg/reflink-go/record"
)

func TestProcessPurchase_Concurrent(t *testing.T) {
	const n = 32

	for _, mode := range []Addressing{AddressBySequence, AddressByEvent} {
		t.Run(mode.String(), func(t *testing.T) {
			f := setup(t, Options{Addressing: mode})
			platform, feeTo := makeIdentity(0x40), makeIdentity(0x41)
			require.NoError(t, f.e.InitializePlatform(platform, 500, feeTo))

			ids := []address.Identity{f.customer, f.affiliate, f.merchant, feeTo}
			before := f.balances(t, record.Native, ids...)

			addrs := make([]address.Address, n)
			errs := make([]error, n)
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					req := f.purchase(1_000_000)
					req.EventType = fmt.Sprintf("checkout-%d", i)
					addrs[i], errs[i] = f.e.ProcessPurchase(req)
				}(i)
			}
			wg.Wait()

			for i, err := range errs {
				require.NoError(t, err, "purchase %d", i)
			}

			after := f.balances(t, record.Native, ids...)
			assert.Equal(t, sum(before), sum(after), "value is conserved")
			assert.Equal(t, before[0]-n*1_000_000, after[0])

			camp, err := f.e.Campaign(f.campAddr)
			require.NoError(t, err)
			assert.Equal(t, uint64(n), camp.Purchases)
			assert.Equal(t, uint64(n*1_000_000), camp.Revenue)

			aff, err := f.e.Affiliate(f.affAddr)
			require.NoError(t, err)
			assert.Equal(t, uint64(n), aff.PurchaseSeq)

			seen := make(map[address.Address]bool, n)
			seqs := make(map[uint64]bool, n)
			for _, addr := range addrs {
				assert.False(t, seen[addr], "address %s reused", addr)
				seen[addr] = true

				rec, err := f.e.Purchase(addr)
				require.NoError(t, err)
				seqs[rec.Sequence] = true
			}
			assert.Len(t, seqs, n, "every purchase took its own sequence number")
		})
	}
}
