// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"

	"github.com/33cn/mines/types"
)

// mines errors
var (
	ErrInvalidBetAmount      = errors.New("ErrInvalidBetAmount")
	ErrInvalidNumMines       = errors.New("ErrInvalidNumMines")
	ErrInvalidCommitmentLen  = errors.New("ErrInvalidCommitmentLen")
	ErrInvalidHouse          = errors.New("ErrInvalidHouse")
	ErrInvalidFamily         = errors.New("ErrInvalidFamily")
	ErrGameNotFound          = errors.New("ErrGameNotFound")
	ErrGameNotActive         = errors.New("ErrGameNotActive")
	ErrGameNotRevealed       = errors.New("ErrGameNotRevealed")
	ErrInvalidTileIndex      = errors.New("ErrInvalidTileIndex")
	ErrTileAlreadyRevealed   = errors.New("ErrTileAlreadyRevealed")
	ErrPlayerLost            = errors.New("ErrPlayerLost")
	ErrNothingToCashOut      = errors.New("ErrNothingToCashOut")
	ErrGameNotLost           = errors.New("ErrGameNotLost")
	ErrNotExpired            = errors.New("ErrNotExpired")
	ErrDeprecatedInstruction = errors.New("ErrDeprecatedInstruction")
	ErrInvalidCommitment     = errors.New("ErrInvalidCommitment")
	ErrNotPlayer             = errors.New("ErrNotPlayer")
	ErrNotHouse              = errors.New("ErrNotHouse")
	ErrVaultMismatch         = errors.New("ErrVaultMismatch")
	ErrGameRecordCorrupt     = errors.New("ErrGameRecordCorrupt")
)

func init() {
	types.RegisterErrorKind(types.KindValidation, ErrInvalidBetAmount, ErrInvalidNumMines,
		ErrInvalidCommitmentLen, ErrInvalidHouse, ErrInvalidFamily, ErrInvalidTileIndex)
	types.RegisterErrorKind(types.KindPrecondition, ErrGameNotFound, ErrGameNotActive,
		ErrGameNotRevealed, ErrTileAlreadyRevealed, ErrPlayerLost, ErrNothingToCashOut,
		ErrGameNotLost, ErrNotExpired, ErrDeprecatedInstruction)
	types.RegisterErrorKind(types.KindCryptographicMismatch, ErrInvalidCommitment)
	types.RegisterErrorKind(types.KindUnauthorized, ErrNotPlayer, ErrNotHouse)
	types.RegisterErrorKind(types.KindInternal, ErrVaultMismatch, ErrGameRecordCorrupt)
}
