// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", or \"regtest\")")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidPurchaseAddressing indicates an unknown purchase addressing mode.
	ErrInvalidPurchaseAddressing = errors.New("config: invalid purchase addressing (must be \"sequence\" or \"event\")")

	// ErrInvalidFeeOrder indicates an unknown platform fee order.
	ErrInvalidFeeOrder = errors.New("config: invalid platform fee order (must be \"before\" or \"independent\")")

	// ErrInvalidBool indicates a boolean key holds something other than true/false.
	ErrInvalidBool = errors.New("config: invalid boolean value")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")

	// ErrUnquotedDollar indicates a '$' outside single quotes, which the
	// parser would expand from the environment.
	ErrUnquotedDollar = errors.New("config: '$' is only allowed in single-quoted values")

	// ErrUnquotableValue indicates a value SaveConfig cannot single-quote.
	ErrUnquotableValue = errors.New("config: value contains a single quote")
)
