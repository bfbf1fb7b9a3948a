package campaign

import "errors"

var (
	// ErrCampaignClosed indicates the campaign has been permanently closed.
	ErrCampaignClosed = errors.New("campaign: closed")

	// ErrCampaignInactive indicates the campaign or merchant is paused.
	ErrCampaignInactive = errors.New("campaign: inactive")
)
