// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/mines/common"
	"github.com/33cn/mines/common/address"
)

// Transaction one operation submitted to an executor.
// From is the principal already authenticated by the gateway in front of the node.
type Transaction struct {
	Execer  string `json:"execer"`
	Payload []byte `json:"payload"`
	From    string `json:"from"`
	Nonce   int64  `json:"nonce"`
}

// Hash sha256 of the encoded transaction
func (tx *Transaction) Hash() []byte {
	return common.Sha256(Encode(tx))
}

// Size encoded size
func (tx *Transaction) Size() int {
	return len(Encode(tx))
}

// Check basic format check, done before the executor is looked up
func (tx *Transaction) Check() error {
	if tx == nil || tx.Execer == "" {
		return ErrEmptyTx
	}
	if tx.Size() > MaxTxSize {
		return ErrTxSize
	}
	// 托管地址没有私钥, 不能发起交易
	if err := address.CheckUserAddress(tx.From); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// CreateFormatTx builds a transaction for execer with an encoded action payload
func CreateFormatTx(execer string, from string, payload []byte) *Transaction {
	return &Transaction{
		Execer:  execer,
		Payload: payload,
		From:    from,
		Nonce:   common.RandInt64(),
	}
}
