// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// Account 账户余额
type Account struct {
	Currency int32  `json:"currency,omitempty"`
	Balance  int64  `json:"balance"`
	Frozen   int64  `json:"frozen"`
	Addr     string `json:"addr"`
}

// GetBalance nil safe
func (acc *Account) GetBalance() int64 {
	if acc == nil {
		return 0
	}
	return acc.Balance
}

// GetFrozen nil safe
func (acc *Account) GetFrozen() int64 {
	if acc == nil {
		return 0
	}
	return acc.Frozen
}

// KeyValue a state change, nil Value deletes the key on commit
type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// GetKey nil safe
func (kv *KeyValue) GetKey() []byte {
	if kv == nil {
		return nil
	}
	return kv.Key
}

// ReceiptLog typed log emitted by an action
type ReceiptLog struct {
	Ty  int32  `json:"ty"`
	Log []byte `json:"log"`
}

// Receipt result of executing one transaction
type Receipt struct {
	Ty   int32         `json:"ty"`
	KV   []*KeyValue   `json:"kv"`
	Logs []*ReceiptLog `json:"logs"`
}

// ReceiptData receipt without KV, input of ExecLocal
type ReceiptData struct {
	Ty   int32         `json:"ty"`
	Logs []*ReceiptLog `json:"logs"`
}

// GetTy nil safe
func (r *ReceiptData) GetTy() int32 {
	if r == nil {
		return ExecErr
	}
	return r.Ty
}

// Data strips the KV part of the receipt
func (r *Receipt) Data() *ReceiptData {
	return &ReceiptData{Ty: r.Ty, Logs: r.Logs}
}

// LocalDBSet local index changes produced by ExecLocal
type LocalDBSet struct {
	KV []*KeyValue `json:"kv"`
}

// ReceiptAccountTransfer balance snapshot before and after a transfer
type ReceiptAccountTransfer struct {
	Prev    *Account `json:"prev"`
	Current *Account `json:"current"`
}

// ReqAddr query by address
type ReqAddr struct {
	Addr string `json:"addr"`
}

// Int64 single int64 reply
type Int64 struct {
	Data int64 `json:"data"`
}

// ReplyString single string reply
type ReplyString struct {
	Data string `json:"data"`
}

// MergeReceipt appends r2 to r1
func MergeReceipt(r1, r2 *Receipt) *Receipt {
	if r1 == nil {
		return r2
	}
	if r2 == nil {
		return r1
	}
	r1.KV = append(r1.KV, r2.KV...)
	r1.Logs = append(r1.Logs, r2.Logs...)
	return r1
}

// TxResult 执行成功的交易及其回执, 保存在本地数据库
type TxResult struct {
	Height     int64        `json:"height"`
	Index      int32        `json:"index"`
	Blocktime  int64        `json:"blocktime"`
	Tx         *Transaction `json:"tx"`
	Receipt    *ReceiptData `json:"receipt"`
	ActionName string       `json:"actionName"`
}

// ReplyTxInfo 地址索引中的交易摘要
type ReplyTxInfo struct {
	Hash       string `json:"hash"`
	Height     int64  `json:"height"`
	Index      int64  `json:"index"`
	ActionName string `json:"actionName"`
}

// ReplyTxInfos 交易摘要列表
type ReplyTxInfos struct {
	TxInfos []*ReplyTxInfo `json:"txInfos"`
}

// ReqTxsByAddr 按地址翻页查询交易
type ReqTxsByAddr struct {
	Addr      string `json:"addr"`
	Count     int32  `json:"count"`
	Direction int32  `json:"direction"`
	// Height 为 -1 时从最新开始, 否则从 (Height, Index) 之后开始
	Height int64 `json:"height"`
	Index  int64 `json:"index"`
}

// ReqHash 按hash查询
type ReqHash struct {
	Hash string `json:"hash"`
}

// ExecResult 交易执行成功后的返回
type ExecResult struct {
	Hash      string       `json:"hash"`
	Height    int64        `json:"height"`
	Blocktime int64        `json:"blocktime"`
	Receipt   *ReceiptData `json:"receipt"`
}
