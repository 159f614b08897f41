// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	"github.com/33cn/mines/types"
)

// Key 游戏记录在状态数据库中的 key
func Key(id string) (key []byte) {
	key = append(key, []byte(types.StatePrefix+mt.MinesX+"-game-")...)
	key = append(key, []byte(id)...)
	return key
}

// SeqKey 玩家的开局序号
func SeqKey(addr string) []byte {
	return []byte(types.StatePrefix + mt.MinesX + "-seq-" + addr)
}

func calcMinesStatusKey(status int32, index int64) []byte {
	return []byte(fmt.Sprintf("%s%s-status:%d:%018d", types.LocalPrefix, mt.MinesX, status, index))
}

func calcMinesStatusPrefix(status int32) []byte {
	return []byte(fmt.Sprintf("%s%s-status:%d:", types.LocalPrefix, mt.MinesX, status))
}

func calcMinesAddrKey(status int32, addr string, index int64) []byte {
	return []byte(fmt.Sprintf("%s%s-addr:%d:%s:%018d", types.LocalPrefix, mt.MinesX, status, addr, index))
}

func calcMinesAddrPrefix(status int32, addr string) []byte {
	return []byte(fmt.Sprintf("%s%s-addr:%d:%s:", types.LocalPrefix, mt.MinesX, status, addr))
}
