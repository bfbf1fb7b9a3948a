package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bitfsorg/reflink-go/address"
	"github.com/bitfsorg/reflink-go/campaign"
	"github.com/bitfsorg/reflink-go/commission"
	"github.com/bitfsorg/reflink-go/guard"
	"github.com/bitfsorg/reflink-go/record"
	"github.com/bitfsorg/reflink-go/registry"
	"github.com/bitfsorg/reflink-go/store"
)

// MerchantParams describes a merchant at registration.
type MerchantParams struct {
	Name    string
	Website string
	RateBps uint16
	Asset   record.Asset // asset purchases must be paid in; zero value is native
}

func requireIdentity(id address.Identity, what string) error {
	if id.IsZero() {
		return fmt.Errorf("%w: empty %s", ErrInvalidParam, what)
	}
	return nil
}

// RegisterMerchant creates the merchant owned by authority. A second
// registration by the same authority fails with ErrAlreadyExists.
func (e *Engine) RegisterMerchant(authority address.Identity, p MerchantParams) (address.Address, error) {
	if err := requireIdentity(authority, "merchant authority"); err != nil {
		return address.Address{}, err
	}
	if err := commission.ValidateRate(p.RateBps); err != nil {
		return address.Address{}, err
	}
	if err := e.transfers.Admit(p.Asset); err != nil {
		return address.Address{}, err
	}

	addr := address.Merchant(authority)
	err := e.store.Update(func(tx store.Tx) error {
		return registry.CreateMerchant(tx, addr, &record.Merchant{
			Authority: authority,
			Name:      p.Name,
			Website:   p.Website,
			RateBps:   p.RateBps,
			Asset:     p.Asset,
			Active:    true,
			CreatedAt: e.timestamp(),
		})
	})
	if err != nil {
		return address.Address{}, err
	}
	e.log.Info("merchant registered",
		zap.Stringer("merchant", addr),
		zap.String("name", p.Name),
		zap.Uint16("rate_bps", p.RateBps),
		zap.Stringer("asset", p.Asset))
	return addr, nil
}

// RegisterAffiliate creates the affiliate owned by authority.
func (e *Engine) RegisterAffiliate(authority address.Identity, name string) (address.Address, error) {
	if err := requireIdentity(authority, "affiliate authority"); err != nil {
		return address.Address{}, err
	}
	addr := address.Affiliate(authority)
	err := e.store.Update(func(tx store.Tx) error {
		return registry.CreateAffiliate(tx, addr, &record.Affiliate{
			Authority: authority,
			Name:      name,
			CreatedAt: e.timestamp(),
		})
	})
	if err != nil {
		return address.Address{}, err
	}
	e.log.Info("affiliate registered", zap.Stringer("affiliate", addr), zap.String("name", name))
	return addr, nil
}

// JoinMerchant enrols the affiliate owned by affiliateAuthority in a
// merchant's program. Joining twice fails with ErrAlreadyExists.
func (e *Engine) JoinMerchant(affiliateAuthority address.Identity, merchant address.Address) (address.Address, error) {
	affAddr := address.Affiliate(affiliateAuthority)
	linkAddr := address.AffiliateMerchantLink(affAddr, merchant)

	err := e.store.Update(func(tx store.Tx) error {
		if _, err := registry.FetchAffiliate(tx, affAddr); err != nil {
			return err
		}
		if _, err := registry.FetchMerchant(tx, merchant); err != nil {
			return err
		}
		return registry.CreateAffiliateMerchantLink(tx, linkAddr, &record.AffiliateMerchantLink{
			Merchant:  merchant,
			Affiliate: affAddr,
			CreatedAt: e.timestamp(),
		})
	})
	if err != nil {
		return address.Address{}, err
	}
	e.log.Info("affiliate joined merchant",
		zap.Stringer("affiliate", affAddr),
		zap.Stringer("merchant", merchant),
		zap.Stringer("link", linkAddr))
	return linkAddr, nil
}

// ToggleMerchantStatus flips the merchant's active flag and returns the
// new value.
func (e *Engine) ToggleMerchantStatus(merchant address.Address, authority address.Identity) (bool, error) {
	var active bool
	err := e.store.Update(func(tx store.Tx) error {
		m, err := registry.FetchMerchant(tx, merchant)
		if err != nil {
			return err
		}
		if err := guard.Authorize(m.Authority, authority); err != nil {
			return err
		}
		active = campaign.ToggleMerchant(m)
		return registry.UpdateMerchant(tx, merchant, m)
	})
	if err != nil {
		return false, err
	}
	e.log.Info("merchant status toggled", zap.Stringer("merchant", merchant), zap.Bool("active", active))
	return active, nil
}

// UpdateMerchantCommission sets the merchant's default rate. Existing
// campaigns keep their own rate.
func (e *Engine) UpdateMerchantCommission(merchant address.Address, rateBps uint16, authority address.Identity) error {
	err := e.store.Update(func(tx store.Tx) error {
		m, err := registry.FetchMerchant(tx, merchant)
		if err != nil {
			return err
		}
		if err := guard.Authorize(m.Authority, authority); err != nil {
			return err
		}
		if err := commission.ValidateRate(rateBps); err != nil {
			return err
		}
		m.RateBps = rateBps
		return registry.UpdateMerchant(tx, merchant, m)
	})
	if err != nil {
		return err
	}
	e.log.Info("merchant commission updated", zap.Stringer("merchant", merchant), zap.Uint16("rate_bps", rateBps))
	return nil
}

// InitializePlatform creates the platform fee singleton. It succeeds once.
func (e *Engine) InitializePlatform(authority address.Identity, feeBps uint16, recipient address.Identity) error {
	if err := requireIdentity(authority, "platform authority"); err != nil {
		return err
	}
	if err := requireIdentity(recipient, "platform recipient"); err != nil {
		return err
	}
	if err := commission.ValidateRate(feeBps); err != nil {
		return err
	}
	err := e.store.Update(func(tx store.Tx) error {
		return registry.CreatePlatform(tx, address.Platform(), &record.Platform{
			Authority: authority,
			FeeBps:    feeBps,
			Recipient: recipient,
			CreatedAt: e.timestamp(),
		})
	})
	if err != nil {
		return err
	}
	e.log.Info("platform initialized", zap.Uint16("fee_bps", feeBps), zap.Stringer("recipient", recipient))
	return nil
}

// UpdatePlatform changes the platform fee and recipient.
func (e *Engine) UpdatePlatform(authority address.Identity, feeBps uint16, recipient address.Identity) error {
	if err := requireIdentity(recipient, "platform recipient"); err != nil {
		return err
	}
	err := e.store.Update(func(tx store.Tx) error {
		p, err := registry.FetchPlatform(tx, address.Platform())
		if err != nil {
			return err
		}
		if err := guard.Authorize(p.Authority, authority); err != nil {
			return err
		}
		if err := commission.ValidateRate(feeBps); err != nil {
			return err
		}
		p.FeeBps = feeBps
		p.Recipient = recipient
		return registry.UpdatePlatform(tx, address.Platform(), p)
	})
	if err != nil {
		return err
	}
	e.log.Info("platform updated", zap.Uint16("fee_bps", feeBps), zap.Stringer("recipient", recipient))
	return nil
}

// Fund credits owner with amount of a. It is the deposit hook of the
// execution environment.
func (e *Engine) Fund(owner address.Identity, a record.Asset, amount uint64) error {
	if err := requireIdentity(owner, "owner"); err != nil {
		return err
	}
	err := e.store.Update(func(tx store.Tx) error {
		return e.transfers.Fund(tx, owner, a, amount)
	})
	if err != nil {
		return err
	}
	e.log.Debug("balance funded", zap.Stringer("owner", owner), zap.String("amount", e.assets.Format(a, amount)))
	return nil
}
