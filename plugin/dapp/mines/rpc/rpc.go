// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"context"

	"github.com/33cn/mines/common"
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	"github.com/33cn/mines/types"
)

func (c *channelClient) send(ctx context.Context, from string, ty int32, payload interface{}) (*types.ExecResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tx := mt.CreateTx(from, ty, payload)
	return c.api.Exec(tx)
}

func (c *channelClient) Start(ctx context.Context, req *StartReq) (*types.ExecResult, error) {
	commitment, err := common.FromHex(req.Commitment)
	if err != nil {
		return nil, mt.ErrInvalidCommitmentLen
	}
	return c.send(ctx, req.From, mt.MinesActionStart, &mt.MinesStart{
		Amount:     req.Amount,
		NumMines:   req.NumMines,
		Commitment: commitment,
		House:      req.House,
	})
}

func (c *channelClient) Reveal(ctx context.Context, req *RevealReq) (*types.ExecResult, error) {
	nonce, err := common.FromHex(req.Nonce)
	if err != nil {
		return nil, mt.ErrInvalidCommitment
	}
	proof := make([][]byte, len(req.Proof))
	for i, p := range req.Proof {
		if proof[i], err = common.FromHex(p); err != nil {
			return nil, mt.ErrInvalidCommitment
		}
	}
	return c.send(ctx, req.From, mt.MinesActionReveal, &mt.MinesReveal{
		GameID:    req.GameID,
		TileIndex: req.TileIndex,
		IsMine:    req.IsMine,
		Nonce:     nonce,
		Proof:     proof,
		PathBits:  req.PathBits,
	})
}

func (c *channelClient) CashOut(ctx context.Context, req *GameReq) (*types.ExecResult, error) {
	return c.send(ctx, req.From, mt.MinesActionCashOut, &mt.MinesCashOut{GameID: req.GameID})
}

func (c *channelClient) CollectHouse(ctx context.Context, req *GameReq) (*types.ExecResult, error) {
	return c.send(ctx, req.From, mt.MinesActionCollectHouse, &mt.MinesCollectHouse{GameID: req.GameID})
}

func (c *channelClient) AbortRefund(ctx context.Context, req *GameReq) (*types.ExecResult, error) {
	return c.send(ctx, req.From, mt.MinesActionAbortRefund, &mt.MinesAbortRefund{GameID: req.GameID})
}

func (c *channelClient) SetMinePositions(ctx context.Context, req *SetMinePositionsReq) (*types.ExecResult, error) {
	return c.send(ctx, req.From, mt.MinesActionSetMinePositions, &mt.MinesSetMinePositions{GameID: req.GameID, Positions: req.Positions})
}

func (c *channelClient) query(ctx context.Context, funcName string, req types.Message) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.api.Query(mt.MinesX, funcName, types.Encode(req))
}
