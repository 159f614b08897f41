// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/mines/account"
	dbm "github.com/33cn/mines/common/db"
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	"github.com/33cn/mines/types"
)

func readGame(db dbm.KV, id string) (*Game, error) {
	if db == nil || id == "" {
		return nil, mt.ErrGameNotFound
	}
	value, err := db.Get(Key(id))
	if isNotFound(err) {
		return nil, mt.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return DecodeGame(id, value)
}

func (m *Mines) queryGame(req *mt.ReqGameID) (*mt.GameView, error) {
	game, err := readGame(m.GetQueryDB(), req.GameID)
	if err != nil {
		return nil, err
	}
	return game.View(), nil
}

func (m *Mines) queryVault(req *mt.ReqGameID) (*mt.VaultView, error) {
	db := m.GetQueryDB()
	game, err := readGame(db, req.GameID)
	if err != nil {
		return nil, err
	}
	addr := game.VaultAddr()
	acc, err := account.NewCoinsAccount(db).LoadAccount(addr)
	if err != nil {
		return nil, err
	}
	return &mt.VaultView{
		GameID:  game.ID,
		Addr:    addr,
		Bump:    game.Vault.Bump,
		Balance: game.Vault.Balance,
		Ledger:  acc.GetBalance(),
	}, nil
}

func checkStatus(status int32) error {
	if status < mt.StatusActive || status > mt.StatusRefunded {
		return types.ErrInvalidParam
	}
	return nil
}

// listGames 按状态(以及地址)翻页, Index 为 0 时从头开始
func (m *Mines) listGames(req *mt.ReqListGames) (*mt.ReplyGameList, error) {
	if err := checkStatus(req.Status); err != nil {
		return nil, err
	}
	db := m.GetQueryDB()
	if db == nil {
		return nil, types.ErrNotFound
	}
	count := req.Count
	if count <= 0 {
		count = mt.DefaultCount
	}
	if count > mt.MaxCount {
		count = mt.MaxCount
	}
	var prefix, key []byte
	if req.Addr == "" {
		prefix = calcMinesStatusPrefix(req.Status)
		if req.Index != 0 {
			key = calcMinesStatusKey(req.Status, req.Index)
		}
	} else {
		prefix = calcMinesAddrPrefix(req.Status, req.Addr)
		if req.Index != 0 {
			key = calcMinesAddrKey(req.Status, req.Addr, req.Index)
		}
	}
	values := dbm.NewListHelper(db).List(prefix, key, count, req.Direction)
	if len(values) == 0 {
		return nil, types.ErrNotFound
	}
	var reply mt.ReplyGameList
	for _, value := range values {
		var summary mt.GameSummary
		if err := types.Decode(value, &summary); err != nil {
			mlog.Error("listGames", "err", err)
			return nil, err
		}
		reply.Games = append(reply.Games, &summary)
	}
	return &reply, nil
}

func (m *Mines) gameCount(req *mt.ReqGameCount) (*types.Int64, error) {
	if err := checkStatus(req.Status); err != nil {
		return nil, err
	}
	db := m.GetQueryDB()
	if db == nil {
		return nil, types.ErrNotFound
	}
	prefix := calcMinesStatusPrefix(req.Status)
	if req.Addr != "" {
		prefix = calcMinesAddrPrefix(req.Status, req.Addr)
	}
	return &types.Int64{Data: dbm.NewListHelper(db).PrefixCount(prefix)}, nil
}
