// Package campaign implements the campaign lifecycle: open campaigns may be
// paused and resumed, and closing is permanent.
package campaign

import (
	"fmt"

	"github.com/bitfsorg/reflink-go/record"
)

// State is the lifecycle position of a campaign.
type State uint8

const (
	// StateActive accepts purchases and conversions.
	StateActive State = iota
	// StateInactive is paused by the merchant; Toggle resumes it.
	StateInactive
	// StateClosed is terminal. No transition leaves it.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Status reports the state of c. Closed takes precedence over Active.
func Status(c *record.Campaign) State {
	switch {
	case !c.Open:
		return StateClosed
	case !c.Active:
		return StateInactive
	default:
		return StateActive
	}
}

// CheckPurchasable returns nil when c accepts purchases.
func CheckPurchasable(c *record.Campaign) error {
	switch Status(c) {
	case StateClosed:
		return fmt.Errorf("%w: %q", ErrCampaignClosed, c.Identifier)
	case StateInactive:
		return fmt.Errorf("%w: %q", ErrCampaignInactive, c.Identifier)
	}
	return nil
}

// CheckMerchant returns ErrCampaignInactive for a deactivated merchant.
func CheckMerchant(m *record.Merchant) error {
	if !m.Active {
		return fmt.Errorf("%w: merchant %q", ErrCampaignInactive, m.Name)
	}
	return nil
}

// Close moves c to the terminal closed state.
func Close(c *record.Campaign) error {
	if !c.Open {
		return fmt.Errorf("%w: %q already closed", ErrCampaignClosed, c.Identifier)
	}
	c.Open = false
	return nil
}

// Toggle pauses or resumes an open campaign and returns the new Active flag.
func Toggle(c *record.Campaign) (bool, error) {
	if !c.Open {
		return false, fmt.Errorf("%w: cannot toggle %q", ErrCampaignClosed, c.Identifier)
	}
	c.Active = !c.Active
	return c.Active, nil
}

// ToggleMerchant flips a merchant's Active flag and returns the new value.
func ToggleMerchant(m *record.Merchant) bool {
	m.Active = !m.Active
	return m.Active
}
