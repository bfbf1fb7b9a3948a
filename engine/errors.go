package engine

import (
	"errors"

	"github.com/bitfsorg/reflink-go/address"
	"github.com/bitfsorg/reflink-go/campaign"
	"github.com/bitfsorg/reflink-go/commission"
	"github.com/bitfsorg/reflink-go/guard"
	"github.com/bitfsorg/reflink-go/registry"
	"github.com/bitfsorg/reflink-go/transfer"
)

// Errors surfaced by engine operations. Each aliases the sentinel of the
// package that detects the condition, so errors.Is works with either name.
var (
	ErrNotFound            = registry.ErrNotFound
	ErrAlreadyExists       = registry.ErrAlreadyExists
	ErrUnauthorized        = guard.ErrUnauthorized
	ErrInvalidSignature    = guard.ErrInvalidSignature
	ErrInvalidRate         = commission.ErrInvalidRate
	ErrAssetMismatch       = transfer.ErrAssetMismatch
	ErrInsufficientBalance = transfer.ErrInsufficientBalance
	ErrUnknownAsset        = transfer.ErrUnknownAsset
	ErrOverflow            = transfer.ErrOverflow
	ErrCampaignClosed      = campaign.ErrCampaignClosed
	ErrCampaignInactive    = campaign.ErrCampaignInactive
	ErrAddressCollision    = address.ErrAddressCollision

	// ErrInvalidParam indicates a malformed request field.
	ErrInvalidParam = errors.New("engine: invalid parameter")
)
