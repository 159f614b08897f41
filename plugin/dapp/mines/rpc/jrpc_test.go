// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/33cn/mines/common"
	"github.com/33cn/mines/common/address"
	dbm "github.com/33cn/mines/common/db"
	"github.com/33cn/mines/common/merkle"
	execs "github.com/33cn/mines/executor"
	minesexec "github.com/33cn/mines/plugin/dapp/mines/executor"
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	rpcserver "github.com/33cn/mines/rpc"
	"github.com/33cn/mines/rpc/jsonclient"
	"github.com/33cn/mines/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	playerAddr = address.PubKeyToAddress([]byte("rpc test player")).String()
	houseAddr  = address.PubKeyToAddress([]byte("rpc test house")).String()
)

func init() {
	minesexec.Init()
}

func newTestClient(t *testing.T) (*jsonclient.JSONClient, *jsonclient.JSONClient) {
	cfg, err := types.InitCfgString(fmt.Sprintf(`
title="local"
[[exec.genesis]]
addr="%s"
amount=10000
[[exec.genesis]]
addr="%s"
amount=10000
`, playerAddr, houseAddr))
	require.NoError(t, err)
	db, err := dbm.NewGoMemDB("mines", "", 0)
	require.NoError(t, err)
	exec, err := execs.New(cfg, db, types.NewFixedClock(1000), nil)
	require.NoError(t, err)

	server := rpcserver.NewJSONRPCServer(cfg.RPC)
	require.NoError(t, rpcserver.InitChain(server, exec))
	require.NoError(t, InitRPC(server, exec))
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	chain, err := jsonclient.NewJSONClient(ts.URL)
	require.NoError(t, err)
	mines, err := jsonclient.New(mt.JRPCName, ts.URL)
	require.NoError(t, err)
	return chain, mines
}

func revealReq(t *testing.T, board *mt.Board, id string, tile uint32) *RevealReq {
	reveal, err := board.Reveal(id, tile)
	require.NoError(t, err)
	req := &RevealReq{
		From:      playerAddr,
		GameID:    id,
		TileIndex: reveal.TileIndex,
		IsMine:    reveal.IsMine,
		Nonce:     common.ToHex(reveal.Nonce),
		PathBits:  reveal.PathBits,
	}
	for _, p := range reveal.Proof {
		req.Proof = append(req.Proof, common.ToHex(p))
	}
	return req
}

func startGame(t *testing.T, mines *jsonclient.JSONClient, board *mt.Board) string {
	var res types.ExecResult
	err := mines.Call("Start", &StartReq{
		From:       playerAddr,
		Amount:     500,
		NumMines:   uint32(board.NumMines()),
		Commitment: board.Commitment,
		House:      houseAddr,
	}, &res)
	require.NoError(t, err)
	for _, l := range res.Receipt.Logs {
		if l.Ty == mt.TyLogMinesStart {
			var r mt.ReceiptMines
			require.NoError(t, types.Decode(l.Log, &r))
			return r.GameID
		}
	}
	t.Fatal("start receipt not found")
	return ""
}

func TestJrpcGameFlow(t *testing.T) {
	chain, mines := newTestClient(t)
	board, err := mt.NewBoardWithMines(merkle.SHA256, 25, []uint32{3, 4})
	require.NoError(t, err)

	id := startGame(t, mines, board)

	var view mt.GameView
	require.NoError(t, mines.Call("GetGame", &mt.ReqGameID{GameID: id}, &view))
	assert.Equal(t, playerAddr, view.Player)
	assert.Equal(t, int64(500), view.Stake)
	assert.True(t, view.Active)

	var vault mt.VaultView
	require.NoError(t, mines.Call("GetVault", &mt.ReqGameID{GameID: id}, &vault))
	assert.Equal(t, int64(500), vault.Ledger)

	var res types.ExecResult
	require.NoError(t, mines.Call("Reveal", revealReq(t, board, id, 0), &res))

	// 重复揭示同一格
	err = mines.Call("Reveal", revealReq(t, board, id, 0), &res)
	require.Error(t, err)
	assert.Equal(t, "PreconditionError: ErrTileAlreadyRevealed", err.Error())

	// 庄家不能提现
	err = mines.Call("CashOut", &GameReq{From: houseAddr, GameID: id}, &res)
	require.Error(t, err)
	assert.Equal(t, "Unauthorized: ErrNotPlayer", err.Error())

	require.NoError(t, mines.Call("CashOut", &GameReq{From: playerAddr, GameID: id}, &res))

	var acc types.Account
	require.NoError(t, chain.Call("GetBalance", &types.ReqAddr{Addr: playerAddr}, &acc))
	assert.Equal(t, int64(10000), acc.Balance)

	err = mines.Call("GetGame", &mt.ReqGameID{GameID: id}, &view)
	require.Error(t, err)
	assert.Equal(t, "PreconditionError: ErrGameNotFound", err.Error())

	var count types.Int64
	require.NoError(t, mines.Call("GameCount", &mt.ReqGameCount{Status: mt.StatusCashedOut}, &count))
	assert.Equal(t, int64(1), count.Data)

	var list mt.ReplyGameList
	require.NoError(t, mines.Call("ListGames", &mt.ReqListGames{Addr: houseAddr, Status: mt.StatusCashedOut}, &list))
	require.Len(t, list.Games, 1)
	assert.Equal(t, id, list.Games[0].GameID)
}

func TestJrpcRejects(t *testing.T) {
	_, mines := newTestClient(t)
	var res types.ExecResult

	err := mines.Call("Start", &StartReq{From: playerAddr, Amount: 10, NumMines: 3, Commitment: "0xzz", House: houseAddr}, &res)
	require.Error(t, err)
	assert.Equal(t, "ValidationError: ErrInvalidCommitmentLen", err.Error())

	err = mines.Call("SetMinePositions", &SetMinePositionsReq{From: playerAddr, GameID: "0x00", Positions: []uint32{1}}, &res)
	require.Error(t, err)
	assert.Equal(t, "PreconditionError: ErrDeprecatedInstruction", err.Error())

	board, err := mt.NewBoardWithMines(merkle.SHA256, 25, []uint32{7})
	require.NoError(t, err)
	id := startGame(t, mines, board)
	req := revealReq(t, board, id, 1)
	req.Nonce = "0xzz"
	err = mines.Call("Reveal", req, &res)
	require.Error(t, err)
	assert.Equal(t, "CryptographicMismatch: ErrInvalidCommitment", err.Error())

	var family mt.Family
	require.NoError(t, mines.Call("GetFamily", &types.ReqAddr{}, &family))
	assert.Equal(t, 25, family.BoardSize)
}
