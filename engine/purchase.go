package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bitfsorg/reflink-go/address"
	"github.com/bitfsorg/reflink-go/campaign"
	"github.com/bitfsorg/reflink-go/commission"
	"github.com/bitfsorg/reflink-go/guard"
	"github.com/bitfsorg/reflink-go/record"
	"github.com/bitfsorg/reflink-go/registry"
	"github.com/bitfsorg/reflink-go/store"
	"github.com/bitfsorg/reflink-go/transfer"
)

// target is the merchant, and optionally the campaign, a purchase pays.
type target struct {
	merchantAddr address.Address
	merchant     *record.Merchant
	campaignAddr address.Address
	campaign     *record.Campaign // nil for direct merchant purchases
}

func (t *target) rate() uint16 {
	if t.campaign != nil {
		return t.campaign.RateBps
	}
	return t.merchant.RateBps
}

func (t *target) asset() record.Asset {
	if t.campaign != nil {
		return t.campaign.Asset
	}
	return t.merchant.Asset
}

func (t *target) scope() address.Address {
	if t.campaign != nil {
		return t.campaignAddr
	}
	return t.merchantAddr
}

// referrer is the affiliate side of a purchase with whichever link ties it
// to the target.
type referrer struct {
	authority   address.Identity
	addr        address.Address
	affiliate   *record.Affiliate
	linkAddr    address.Address
	link        *record.ReferralLink          // campaign purchases
	programLink *record.AffiliateMerchantLink // direct merchant purchases
}

// resolveTarget loads the purchase target and runs the lifecycle checks.
func resolveTarget(tx store.Tx, campaignAddr, merchantAddr address.Address) (*target, error) {
	t := &target{}
	switch {
	case !campaignAddr.IsZero():
		c, err := registry.FetchCampaign(tx, campaignAddr)
		if err != nil {
			return nil, err
		}
		if err := campaign.CheckPurchasable(c); err != nil {
			return nil, err
		}
		if !merchantAddr.IsZero() && merchantAddr != c.Merchant {
			return nil, fmt.Errorf("%w: campaign %s does not belong to merchant %s", ErrInvalidParam, campaignAddr, merchantAddr)
		}
		t.campaignAddr, t.campaign, t.merchantAddr = campaignAddr, c, c.Merchant
	case !merchantAddr.IsZero():
		t.merchantAddr = merchantAddr
	default:
		return nil, fmt.Errorf("%w: purchase needs a campaign or a merchant", ErrInvalidParam)
	}

	m, err := registry.FetchMerchant(tx, t.merchantAddr)
	if err != nil {
		return nil, err
	}
	if err := campaign.CheckMerchant(m); err != nil {
		return nil, err
	}
	t.merchant = m
	return t, nil
}

func resolveReferrer(tx store.Tx, t *target, authority address.Identity) (*referrer, error) {
	r := &referrer{authority: authority, addr: address.Affiliate(authority)}
	aff, err := registry.FetchAffiliate(tx, r.addr)
	if err != nil {
		return nil, err
	}
	r.affiliate = aff

	if t.campaign != nil {
		r.linkAddr = address.ReferralLink(t.campaignAddr, authority)
		link, err := registry.FetchReferralLink(tx, r.linkAddr)
		if err != nil {
			return nil, err
		}
		if !link.Active {
			return nil, fmt.Errorf("%w: referral link %s", ErrCampaignInactive, r.linkAddr)
		}
		r.link = link
		return r, nil
	}

	r.linkAddr = address.AffiliateMerchantLink(r.addr, t.merchantAddr)
	pl, err := registry.FetchAffiliateMerchantLink(tx, r.linkAddr)
	if err != nil {
		return nil, err
	}
	r.programLink = pl
	return r, nil
}

// checkSequence rejects a signed request whose sequence the affiliate has
// already moved past, which is how a replayed signature shows up.
func checkSequence(r *referrer, signed uint64) error {
	if signed != r.affiliate.PurchaseSeq {
		return fmt.Errorf("%w: signed for sequence %d, affiliate is at %d",
			ErrInvalidSignature, signed, r.affiliate.PurchaseSeq)
	}
	return nil
}

// platformFee returns the fee rate and recipient, or zero when no platform
// has been initialized.
func platformFee(tx store.Tx) (uint16, address.Identity, error) {
	p, err := registry.FetchPlatform(tx, address.Platform())
	if errors.Is(err, registry.ErrNotFound) {
		return 0, address.Identity{}, nil
	}
	if err != nil {
		return 0, address.Identity{}, err
	}
	return p.FeeBps, p.Recipient, nil
}

// settle computes the breakdown of gross and moves it from payer.
func (e *Engine) settle(tx store.Tx, t *target, r *referrer, payer address.Identity, gross uint64, a record.Asset) (commission.Breakdown, error) {
	feeBps, feeRecipient, err := platformFee(tx)
	if err != nil {
		return commission.Breakdown{}, err
	}
	b, err := commission.Plan(gross, t.rate(), feeBps, e.feeOrder)
	if err != nil {
		return commission.Breakdown{}, err
	}

	legs := []transfer.Leg{
		{Recipient: r.authority, Amount: b.Commission},
		{Recipient: t.merchant.Authority, Amount: b.MerchantAmount},
	}
	if b.PlatformFee > 0 {
		legs = append(legs, transfer.Leg{Recipient: feeRecipient, Amount: b.PlatformFee})
	}
	if err := e.transfers.Transfer(tx, payer, a, t.asset(), legs); err != nil {
		return commission.Breakdown{}, err
	}
	return b, nil
}

type counter struct {
	dst  *uint64
	v    uint64
	what string
}

// applyCounters adds a purchase to every counter it touches. sale is false
// for conversions that moved no value; they count as link conversions only.
func applyCounters(t *target, r *referrer, b commission.Breakdown, sale bool) error {
	var referrals uint64
	if sale {
		referrals = 1
	}
	steps := []counter{
		{&t.merchant.TotalRevenue, b.Gross, "merchant revenue"},
		{&t.merchant.TotalReferrals, referrals, "merchant referrals"},
		{&r.affiliate.TotalEarned, b.Commission, "affiliate earnings"},
		{&r.affiliate.TotalReferrals, referrals, "affiliate referrals"},
		{&r.affiliate.PurchaseSeq, 1, "affiliate purchase sequence"},
	}
	if t.campaign != nil {
		steps = append(steps,
			counter{&t.campaign.Purchases, referrals, "campaign purchases"},
			counter{&t.campaign.Revenue, b.Gross, "campaign revenue"},
			counter{&t.campaign.Commission, b.Commission, "campaign commission"})
	}
	if r.link != nil {
		steps = append(steps,
			counter{&r.link.Conversions, 1, "link conversions"},
			counter{&r.link.Sales, b.Gross, "link sales"},
			counter{&r.link.Commission, b.Commission, "link commission"})
	}
	if r.programLink != nil {
		steps = append(steps,
			counter{&r.programLink.Earned, b.Commission, "program link earnings"},
			counter{&r.programLink.Referrals, referrals, "program link referrals"})
	}
	for _, s := range steps {
		if err := inc(s.dst, s.v, s.what); err != nil {
			return err
		}
	}
	return nil
}

// persist writes back every record applyCounters changed.
func persist(tx store.Tx, t *target, r *referrer) error {
	if err := registry.UpdateMerchant(tx, t.merchantAddr, t.merchant); err != nil {
		return err
	}
	if err := registry.UpdateAffiliate(tx, r.addr, r.affiliate); err != nil {
		return err
	}
	if t.campaign != nil {
		if err := registry.UpdateCampaign(tx, t.campaignAddr, t.campaign); err != nil {
			return err
		}
	}
	if r.link != nil {
		return registry.UpdateReferralLink(tx, r.linkAddr, r.link)
	}
	return registry.UpdateAffiliateMerchantLink(tx, r.linkAddr, r.programLink)
}

// purchaseAddress keys the record for the affiliate's current sequence
// number, before applyCounters advances it.
func purchaseAddress(mode Addressing, t *target, r *referrer, customer address.Identity, eventType string) address.Address {
	if mode == AddressByEvent {
		return address.PurchaseByEvent(t.scope(), customer, eventType)
	}
	return address.PurchaseBySequence(r.addr, t.merchantAddr, r.affiliate.PurchaseSeq)
}

// ProcessPurchase pays for a purchase referred by an affiliate and
// records it. The lifecycle of the campaign and merchant is checked before
// anything else, and nothing is written unless every step succeeds.
func (e *Engine) ProcessPurchase(req PurchaseRequest) (address.Address, error) {
	var (
		recAddr address.Address
		rec     *record.PurchaseRecord
	)
	err := e.store.Update(func(tx store.Tx) error {
		t, err := resolveTarget(tx, req.Campaign, req.Merchant)
		if err != nil {
			return err
		}
		if e.verifyPayer {
			if err := guard.VerifyPayer(req.Customer, req.Digest(), req.Signature); err != nil {
				return err
			}
		}
		if req.Asset != t.asset() {
			return fmt.Errorf("%w: paid in %s, %s accepts %s", ErrAssetMismatch, req.Asset, t.scope(), t.asset())
		}
		if req.Gross == 0 {
			return fmt.Errorf("%w: zero gross amount", ErrInvalidParam)
		}
		if err := requireIdentity(req.Customer, "customer"); err != nil {
			return err
		}
		r, err := resolveReferrer(tx, t, req.Affiliate)
		if err != nil {
			return err
		}
		if e.verifyPayer {
			if err := checkSequence(r, req.Sequence); err != nil {
				return err
			}
		}

		b, err := e.settle(tx, t, r, req.Customer, req.Gross, req.Asset)
		if err != nil {
			return err
		}

		seq := r.affiliate.PurchaseSeq
		recAddr = purchaseAddress(e.addressing, t, r, req.Customer, req.EventType)
		if err := applyCounters(t, r, b, true); err != nil {
			return err
		}
		if err := persist(tx, t, r); err != nil {
			return err
		}
		rec = &record.PurchaseRecord{
			Affiliate:      r.addr,
			Merchant:       t.merchantAddr,
			Campaign:       t.campaignAddr,
			Customer:       req.Customer,
			Gross:          b.Gross,
			Commission:     b.Commission,
			PlatformFee:    b.PlatformFee,
			MerchantAmount: b.MerchantAmount,
			Asset:          req.Asset,
			EventType:      req.EventType,
			Metadata:       req.Metadata,
			Sequence:       seq,
			Timestamp:      e.timestamp(),
		}
		return registry.CreatePurchase(tx, recAddr, rec)
	})
	if err != nil {
		e.log.Warn("purchase rejected",
			zap.Stringer("campaign", req.Campaign),
			zap.Stringer("merchant", req.Merchant),
			zap.Stringer("affiliate", req.Affiliate),
			zap.String("gross", e.assets.Format(req.Asset, req.Gross)),
			zap.Error(err))
		return address.Address{}, err
	}
	e.logPurchase("purchase processed", recAddr, rec)
	return recAddr, nil
}

// LogConversion records a conversion event on a campaign, always keyed by
// (campaign, customer, event type). A non-zero Amount is split exactly as
// ProcessPurchase splits Gross.
func (e *Engine) LogConversion(req ConversionRequest) (address.Address, error) {
	if req.EventType == "" {
		return address.Address{}, fmt.Errorf("%w: conversion needs an event type", ErrInvalidParam)
	}
	if req.Campaign.IsZero() {
		return address.Address{}, fmt.Errorf("%w: conversion needs a campaign", ErrInvalidParam)
	}

	var (
		recAddr address.Address
		rec     *record.PurchaseRecord
	)
	err := e.store.Update(func(tx store.Tx) error {
		t, err := resolveTarget(tx, req.Campaign, address.Address{})
		if err != nil {
			return err
		}
		sale := req.Amount > 0
		if sale && e.verifyPayer {
			if err := guard.VerifyPayer(req.Customer, req.Digest(), req.Signature); err != nil {
				return err
			}
		}
		if sale && req.Asset != t.asset() {
			return fmt.Errorf("%w: paid in %s, campaign accepts %s", ErrAssetMismatch, req.Asset, t.asset())
		}
		if err := requireIdentity(req.Customer, "customer"); err != nil {
			return err
		}
		r, err := resolveReferrer(tx, t, req.Affiliate)
		if err != nil {
			return err
		}
		if sale && e.verifyPayer {
			if err := checkSequence(r, req.Sequence); err != nil {
				return err
			}
		}

		b := commission.Breakdown{}
		if sale {
			if b, err = e.settle(tx, t, r, req.Customer, req.Amount, req.Asset); err != nil {
				return err
			}
		}

		seq := r.affiliate.PurchaseSeq
		recAddr = purchaseAddress(AddressByEvent, t, r, req.Customer, req.EventType)
		if err := applyCounters(t, r, b, sale); err != nil {
			return err
		}
		if err := persist(tx, t, r); err != nil {
			return err
		}
		rec = &record.PurchaseRecord{
			Affiliate:      r.addr,
			Merchant:       t.merchantAddr,
			Campaign:       t.campaignAddr,
			Customer:       req.Customer,
			Gross:          b.Gross,
			Commission:     b.Commission,
			PlatformFee:    b.PlatformFee,
			MerchantAmount: b.MerchantAmount,
			Asset:          t.asset(),
			EventType:      req.EventType,
			Metadata:       req.Metadata,
			Sequence:       seq,
			Timestamp:      e.timestamp(),
		}
		return registry.CreatePurchase(tx, recAddr, rec)
	})
	if err != nil {
		e.log.Warn("conversion rejected",
			zap.Stringer("campaign", req.Campaign),
			zap.Stringer("affiliate", req.Affiliate),
			zap.String("event_type", req.EventType),
			zap.Error(err))
		return address.Address{}, err
	}
	e.logPurchase("conversion logged", recAddr, rec)
	return recAddr, nil
}

func (e *Engine) logPurchase(msg string, addr address.Address, rec *record.PurchaseRecord) {
	e.log.Info(msg,
		zap.Stringer("purchase", addr),
		zap.Stringer("merchant", rec.Merchant),
		zap.Stringer("affiliate", rec.Affiliate),
		zap.String("event_type", rec.EventType),
		zap.Uint64("sequence", rec.Sequence),
		zap.String("gross", e.assets.Format(rec.Asset, rec.Gross)),
		zap.String("commission", e.assets.Format(rec.Asset, rec.Commission)),
		zap.String("platform_fee", e.assets.Format(rec.Asset, rec.PlatformFee)),
		zap.String("merchant_amount", e.assets.Format(rec.Asset, rec.MerchantAmount)))
}
