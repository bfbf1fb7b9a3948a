package engine

import (
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/reflink-go/address"
	"github.com/bitfsorg/reflink-go/record"
)

func TestProcessPurchase_VerifyPayerSignature(t *testing.T) {
	e, priv, req := signedFixture(t)
	customer := req.Customer

	_, err := e.ProcessPurchase(req)
	assert.ErrorIs(t, err, ErrInvalidSignature, "unsigned purchase")

	req.Signature = sign(t, priv, req.Digest())

	tampered := req
	tampered.Gross = 20_000
	_, err = e.ProcessPurchase(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature, "signature covers the amount")

	_, err = e.ProcessPurchase(req)
	require.NoError(t, err)

	bal, err := e.Balance(customer, record.Native)
	require.NoError(t, err)
	assert.Equal(t, uint64(990_000), bal)
}

// signedFixture registers a campaign with a promoting affiliate and a
// customer whose key the test holds, with payer signatures enforced.
func signedFixture(t *testing.T) (*Engine, *ec.PrivateKey, PurchaseRequest) {
	t.Helper()
	e := newTestEngine(t, Options{VerifyPayer: true})
	merchant, affiliate := makeIdentity(0x10), makeIdentity(0x20)

	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	customer := address.IdentityFromPublicKey(priv.PubKey())

	_, err = e.RegisterMerchant(merchant, MerchantParams{Name: "Acme", RateBps: 1000})
	require.NoError(t, err)
	_, err = e.RegisterAffiliate(affiliate, "Ann")
	require.NoError(t, err)
	campAddr, err := e.CreateCampaign(merchant, "signed", nil)
	require.NoError(t, err)
	_, err = e.Promote(affiliate, campAddr)
	require.NoError(t, err)
	require.NoError(t, e.Fund(customer, record.Native, 1_000_000))

	return e, priv, PurchaseRequest{
		Campaign:  campAddr,
		Affiliate: affiliate,
		Customer:  customer,
		Gross:     10_000,
		Asset:     record.Native,
		EventType: "checkout",
	}
}

func sign(t *testing.T, priv *ec.PrivateKey, digest []byte) []byte {
	t.Helper()
	sig, err := priv.Sign(digest)
	require.NoError(t, err)
	return sig.Serialize()
}

func TestProcessPurchase_SignatureNotReplayable(t *testing.T) {
	e, priv, req := signedFixture(t)
	req.Signature = sign(t, priv, req.Digest())

	_, err := e.ProcessPurchase(req)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = e.ProcessPurchase(req)
		assert.ErrorIs(t, err, ErrInvalidSignature, "replay %d", i)
	}

	bal, err := e.Balance(req.Customer, record.Native)
	require.NoError(t, err)
	assert.Equal(t, uint64(990_000), bal, "one signature pays once")

	// A fresh signature over the next sequence is accepted.
	aff, err := e.Affiliate(address.Affiliate(req.Affiliate))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), aff.PurchaseSeq)

	next := req
	next.Sequence = aff.PurchaseSeq
	next.Signature = sign(t, priv, next.Digest())
	_, err = e.ProcessPurchase(next)
	require.NoError(t, err)

	bal, err = e.Balance(req.Customer, record.Native)
	require.NoError(t, err)
	assert.Equal(t, uint64(980_000), bal)
}

func TestProcessPurchase_SignedForOtherSequence(t *testing.T) {
	e, priv, req := signedFixture(t)
	req.Sequence = 7
	req.Signature = sign(t, priv, req.Digest())

	_, err := e.ProcessPurchase(req)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	bal, err := e.Balance(req.Customer, record.Native)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), bal)
}

func TestLogConversion_SignatureNotReplayable(t *testing.T) {
	e, priv, req := signedFixture(t)
	conv := ConversionRequest{
		Campaign:  req.Campaign,
		Affiliate: req.Affiliate,
		Customer:  req.Customer,
		EventType: "upgrade",
		Amount:    20_000,
		Asset:     record.Native,
	}
	conv.Signature = sign(t, priv, conv.Digest())

	_, err := e.LogConversion(conv)
	require.NoError(t, err)

	_, err = e.LogConversion(conv)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	moved := conv
	moved.Sequence = 1
	_, err = e.LogConversion(moved)
	assert.ErrorIs(t, err, ErrInvalidSignature, "signature does not cover the new sequence")

	bal, err := e.Balance(req.Customer, record.Native)
	require.NoError(t, err)
	assert.Equal(t, uint64(980_000), bal)
}

func TestRequestDigest_Distinct(t *testing.T) {
	a := PurchaseRequest{Gross: 1, EventType: "ab", Metadata: "c"}
	b := PurchaseRequest{Gross: 1, EventType: "a", Metadata: "bc"}
	assert.NotEqual(t, a.Digest(), b.Digest())
	assert.Equal(t, a.Digest(), a.Digest())

	conv := ConversionRequest{Amount: 1, EventType: "ab", Metadata: "c"}
	assert.NotEqual(t, a.Digest(), conv.Digest())

	next := a
	next.Sequence = 1
	assert.NotEqual(t, a.Digest(), next.Digest(), "sequence is signed")
}
