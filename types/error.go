// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	ErrNotFound          = errors.New("ErrNotFound")
	ErrNoBalance         = errors.New("ErrNoBalance")
	ErrAmount            = errors.New("ErrAmount")
	ErrSendSameToRecv    = errors.New("ErrSendSameToRecv")
	ErrOverflow          = errors.New("ErrOverflow")
	ErrInvalidParam      = errors.New("ErrInvalidParam")
	ErrActionNotSupport  = errors.New("ErrActionNotSupport")
	ErrQueryNotSupport   = errors.New("ErrQueryNotSupport")
	ErrExecNotFound      = errors.New("ErrExecNotFound")
	ErrExecNameNotAllow  = errors.New("ErrExecNameNotAllow")
	ErrInvalidAddress    = errors.New("ErrInvalidAddress")
	ErrUnauthorized      = errors.New("ErrUnauthorized")
	ErrTxSize            = errors.New("ErrTxSize")
	ErrEmptyTx           = errors.New("ErrEmptyTx")
	ErrDecode            = errors.New("ErrDecode")
	ErrGenesisDone       = errors.New("ErrGenesisDone")
	ErrRateLimited       = errors.New("ErrRateLimited")
	ErrStoreDriverNotSet = errors.New("ErrStoreDriverNotSet")
)

func init() {
	RegisterErrorKind(KindValidation, ErrAmount, ErrSendSameToRecv, ErrInvalidParam,
		ErrActionNotSupport, ErrQueryNotSupport, ErrExecNameNotAllow, ErrInvalidAddress,
		ErrTxSize, ErrEmptyTx, ErrDecode)
	RegisterErrorKind(KindPrecondition, ErrNotFound, ErrNoBalance, ErrExecNotFound,
		ErrGenesisDone, ErrRateLimited)
	RegisterErrorKind(KindOverflow, ErrOverflow)
	RegisterErrorKind(KindUnauthorized, ErrUnauthorized)
}
