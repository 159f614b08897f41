// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drivers

import (
	"fmt"

	"github.com/33cn/mines/common"
	"github.com/33cn/mines/types"
)

// MaxQueryCount 单次列表查询的最大条数
const MaxQueryCount = 100

// HeightIndexStr 按高度排序的定长字符串, 翻页查询的游标
func HeightIndexStr(height, index int64) string {
	return fmt.Sprintf("%018d", height*types.MaxTxsPerHeight+index)
}

// CalcTxKey 交易结果
func CalcTxKey(hash []byte) []byte {
	return []byte(fmt.Sprintf("%stx-%s", types.LocalPrefix, common.ToHex(hash)))
}

// CalcTxAddrHashKey 用于存储地址相关的hash列表，key=tx-addr:addr:height*100000 + index
func CalcTxAddrHashKey(addr string, heightindex string) []byte {
	return []byte(fmt.Sprintf("%stx-addr:%s:%s", types.LocalPrefix, addr, heightindex))
}
