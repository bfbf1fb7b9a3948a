package engine

import (
	"fmt"
	"math/bits"

	"go.uber.org/zap"

	"github.com/bitfsorg/reflink-go/address"
	"github.com/bitfsorg/reflink-go/campaign"
	"github.com/bitfsorg/reflink-go/commission"
	"github.com/bitfsorg/reflink-go/guard"
	"github.com/bitfsorg/reflink-go/record"
	"github.com/bitfsorg/reflink-go/registry"
	"github.com/bitfsorg/reflink-go/store"
)

// inc adds v to *dst, failing rather than wrapping.
func inc(dst *uint64, v uint64, what string) error {
	sum, carry := bits.Add64(*dst, v, 0)
	if carry != 0 {
		return fmt.Errorf("%w: %s", ErrOverflow, what)
	}
	*dst = sum
	return nil
}

// CreateCampaign opens a campaign under the merchant owned by
// merchantAuthority. A nil rate inherits the merchant's default rate.
func (e *Engine) CreateCampaign(merchantAuthority address.Identity, identifier string, rateBps *uint16) (address.Address, error) {
	merchAddr := address.Merchant(merchantAuthority)
	campAddr := address.Campaign(merchAddr, identifier)

	var rate uint16
	err := e.store.Update(func(tx store.Tx) error {
		m, err := registry.FetchMerchant(tx, merchAddr)
		if err != nil {
			return err
		}
		if err := guard.Authorize(m.Authority, merchantAuthority); err != nil {
			return err
		}
		rate = m.RateBps
		if rateBps != nil {
			rate = *rateBps
		}
		if err := commission.ValidateRate(rate); err != nil {
			return err
		}
		if err := registry.CreateCampaign(tx, campAddr, &record.Campaign{
			Merchant:   merchAddr,
			Identifier: identifier,
			RateBps:    rate,
			Asset:      m.Asset,
			Open:       true,
			Active:     true,
			CreatedAt:  e.timestamp(),
		}); err != nil {
			return err
		}
		if err := inc(&m.CampaignCount, 1, "merchant campaign count"); err != nil {
			return err
		}
		return registry.UpdateMerchant(tx, merchAddr, m)
	})
	if err != nil {
		return address.Address{}, err
	}
	e.log.Info("campaign created",
		zap.Stringer("campaign", campAddr),
		zap.Stringer("merchant", merchAddr),
		zap.String("identifier", identifier),
		zap.Uint16("rate_bps", rate))
	return campAddr, nil
}

// CreateReferralLink gives a registered affiliate a tracking link on an
// open campaign. One link exists per (campaign, promoter).
func (e *Engine) CreateReferralLink(promoter address.Identity, campaignAddr address.Address, code string) (address.Address, error) {
	linkAddr := address.ReferralLink(campaignAddr, promoter)
	err := e.store.Update(func(tx store.Tx) error {
		c, err := registry.FetchCampaign(tx, campaignAddr)
		if err != nil {
			return err
		}
		if err := campaign.CheckPurchasable(c); err != nil {
			return err
		}
		if _, err := registry.FetchAffiliate(tx, address.Affiliate(promoter)); err != nil {
			return err
		}
		return registry.CreateReferralLink(tx, linkAddr, &record.ReferralLink{
			Promoter:  promoter,
			Campaign:  campaignAddr,
			Code:      code,
			Active:    true,
			CreatedAt: e.timestamp(),
		})
	})
	if err != nil {
		return address.Address{}, err
	}
	e.log.Info("referral link created",
		zap.Stringer("link", linkAddr),
		zap.Stringer("campaign", campaignAddr),
		zap.Stringer("promoter", promoter),
		zap.String("code", code))
	return linkAddr, nil
}

// Promote is CreateReferralLink without a code.
func (e *Engine) Promote(promoter address.Identity, campaignAddr address.Address) (address.Address, error) {
	return e.CreateReferralLink(promoter, campaignAddr, "")
}

// withMerchantCampaign loads a campaign, checks that authority owns its
// merchant, lets fn change it and stores the result.
func (e *Engine) withMerchantCampaign(campaignAddr address.Address, authority address.Identity, fn func(*record.Campaign) error) error {
	return e.store.Update(func(tx store.Tx) error {
		c, err := registry.FetchCampaign(tx, campaignAddr)
		if err != nil {
			return err
		}
		m, err := registry.FetchMerchant(tx, c.Merchant)
		if err != nil {
			return err
		}
		if err := guard.Authorize(m.Authority, authority); err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		return registry.UpdateCampaign(tx, campaignAddr, c)
	})
}

// CloseCampaign permanently stops a campaign from accepting purchases.
// Existing purchase records are untouched.
func (e *Engine) CloseCampaign(campaignAddr address.Address, authority address.Identity) error {
	if err := e.withMerchantCampaign(campaignAddr, authority, campaign.Close); err != nil {
		return err
	}
	e.log.Info("campaign closed", zap.Stringer("campaign", campaignAddr))
	return nil
}

// ToggleCampaign pauses or resumes an open campaign and returns the new
// active flag.
func (e *Engine) ToggleCampaign(campaignAddr address.Address, authority address.Identity) (bool, error) {
	var active bool
	err := e.withMerchantCampaign(campaignAddr, authority, func(c *record.Campaign) error {
		var err error
		active, err = campaign.Toggle(c)
		return err
	})
	if err != nil {
		return false, err
	}
	e.log.Info("campaign toggled", zap.Stringer("campaign", campaignAddr), zap.Bool("active", active))
	return active, nil
}

// ToggleReferralLink lets a promoter pause or resume their own link.
func (e *Engine) ToggleReferralLink(link address.Address, promoter address.Identity) (bool, error) {
	var active bool
	err := e.store.Update(func(tx store.Tx) error {
		l, err := registry.FetchReferralLink(tx, link)
		if err != nil {
			return err
		}
		if err := guard.Authorize(l.Promoter, promoter); err != nil {
			return err
		}
		l.Active = !l.Active
		active = l.Active
		return registry.UpdateReferralLink(tx, link, l)
	})
	if err != nil {
		return false, err
	}
	e.log.Info("referral link toggled", zap.Stringer("link", link), zap.Bool("active", active))
	return active, nil
}

// RecordClick counts a visit through a referral link.
func (e *Engine) RecordClick(link address.Address) error {
	return e.store.Update(func(tx store.Tx) error {
		l, err := registry.FetchReferralLink(tx, link)
		if err != nil {
			return err
		}
		if !l.Active {
			return fmt.Errorf("%w: referral link %s", ErrCampaignInactive, link)
		}
		c, err := registry.FetchCampaign(tx, l.Campaign)
		if err != nil {
			return err
		}
		if err := campaign.CheckPurchasable(c); err != nil {
			return err
		}
		if err := inc(&l.Clicks, 1, "link clicks"); err != nil {
			return err
		}
		return registry.UpdateReferralLink(tx, link, l)
	})
}
