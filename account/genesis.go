// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"github.com/33cn/mines/types"
)

// GenesisInit 生成创世地址账户收据
func (acc *DB) GenesisInit(addr string, amount int64) (*types.Receipt, error) {
	return acc.depositBalance(addr, amount, types.TyLogGenesis)
}

// GenesisInitAll 依次分配创世资金
func (acc *DB) GenesisInitAll(allocs []*types.GenesisAccount) (*types.Receipt, error) {
	var receipt *types.Receipt
	for _, alloc := range allocs {
		r, err := acc.GenesisInit(alloc.Addr, alloc.Amount)
		if err != nil {
			alog.Error("GenesisInitAll", "addr", alloc.Addr, "amount", alloc.Amount, "err", err)
			return nil, err
		}
		receipt = types.MergeReceipt(receipt, r)
	}
	if receipt == nil {
		receipt = &types.Receipt{Ty: types.ExecOk}
	}
	return receipt, nil
}
