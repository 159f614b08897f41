// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands mines 命令行
package commands

import (
	"fmt"
	"os"

	minesrpc "github.com/33cn/mines/plugin/dapp/mines/rpc"
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	jsonrpc "github.com/33cn/mines/rpc/jsonclient"
	"github.com/33cn/mines/types"
	"github.com/spf13/cobra"
)

// Cmd 插件注册用
func Cmd() *cobra.Command {
	return MinesCmd()
}

// MinesCmd mines 命令集
func MinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mines",
		Short: "provably fair mines game",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		StartCmd(),
		RevealCmd(),
		CashOutCmd(),
		CollectCmd(),
		AbortCmd(),
		GameCmd(),
		VaultCmd(),
		ListCmd(),
		CountCmd(),
		FamilyCmd(),
		HouseCmd(),
	)
	return cmd
}

func runTx(cmd *cobra.Command, method string, params interface{}) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	var res types.ExecResult
	ctx := jsonrpc.NewRpcCtx(rpcLaddr, method, params, &res).SetPrefix(mt.JRPCName)
	ctx.Run()
}

// StartCmd 开局
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a game, the stake moves into the game vault",
		Run:   minesStart,
	}
	cmd.Flags().StringP("from", "f", "", "player address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("amount", "a", "", "stake in coins, e.g. 1.5")
	cmd.MarkFlagRequired("amount")
	cmd.Flags().StringP("house", "H", "", "house address")
	cmd.MarkFlagRequired("house")
	cmd.Flags().Uint32P("mines", "m", 0, "number of mines")
	cmd.Flags().StringP("commitment", "c", "", "board commitment, hex")
	cmd.Flags().StringP("board", "b", "", "board file, overrides mines and commitment")
	return cmd
}

func minesStart(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	amountStr, _ := cmd.Flags().GetString("amount")
	house, _ := cmd.Flags().GetString("house")
	numMines, _ := cmd.Flags().GetUint32("mines")
	commitment, _ := cmd.Flags().GetString("commitment")
	boardFile, _ := cmd.Flags().GetString("board")

	amount, err := parseCoins(amountStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if boardFile != "" {
		board, err := mt.LoadBoard(boardFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		numMines = uint32(board.NumMines())
		commitment = board.Commitment
	}
	params := &minesrpc.StartReq{
		From:       from,
		Amount:     amount,
		NumMines:   numMines,
		Commitment: commitment,
		House:      house,
	}
	runTx(cmd, "Start", params)
}

// RevealCmd 揭示一个格子, 证明来自棋盘文件或直接给出
func RevealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reveal one tile with its merkle proof",
		Run:   minesReveal,
	}
	addGameFlags(cmd)
	cmd.Flags().Uint32P("tile", "t", 0, "tile index")
	cmd.MarkFlagRequired("tile")
	cmd.Flags().StringP("board", "b", "", "board file")
	cmd.Flags().Uint8("mine", 0, "1 if the tile is a mine")
	cmd.Flags().String("nonce", "", "tile nonce, hex")
	cmd.Flags().StringSlice("proof", nil, "sibling hashes from leaf to root, hex")
	cmd.Flags().Uint32("pathBits", 0, "path bits, equal to the tile index")
	return cmd
}

func minesReveal(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	gameID, _ := cmd.Flags().GetString("gameID")
	tile, _ := cmd.Flags().GetUint32("tile")
	boardFile, _ := cmd.Flags().GetString("board")

	var params *minesrpc.RevealReq
	if boardFile != "" {
		var err error
		params, err = revealFromBoard(boardFile, gameID, tile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
	} else {
		isMine, _ := cmd.Flags().GetUint8("mine")
		nonce, _ := cmd.Flags().GetString("nonce")
		proof, _ := cmd.Flags().GetStringSlice("proof")
		pathBits, _ := cmd.Flags().GetUint32("pathBits")
		params = &minesrpc.RevealReq{
			GameID:    gameID,
			TileIndex: tile,
			IsMine:    isMine,
			Nonce:     nonce,
			Proof:     proof,
			PathBits:  pathBits,
		}
	}
	params.From = from
	runTx(cmd, "Reveal", params)
}

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("from", "f", "", "caller address")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("gameID", "g", "", "game id")
	cmd.MarkFlagRequired("gameID")
}

func gameReq(cmd *cobra.Command) *minesrpc.GameReq {
	from, _ := cmd.Flags().GetString("from")
	gameID, _ := cmd.Flags().GetString("gameID")
	return &minesrpc.GameReq{From: from, GameID: gameID}
}

// CashOutCmd 玩家提现
func CashOutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cashout",
		Short: "Cash out after at least one safe reveal",
		Run: func(cmd *cobra.Command, args []string) {
			runTx(cmd, "CashOut", gameReq(cmd))
		},
	}
	addGameFlags(cmd)
	return cmd
}

// CollectCmd 庄家收取输掉的赌注
func CollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "House collects the stake of a lost game",
		Run: func(cmd *cobra.Command, args []string) {
			runTx(cmd, "CollectHouse", gameReq(cmd))
		},
	}
	addGameFlags(cmd)
	return cmd
}

// AbortCmd 超时退款
func AbortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "abort",
		Short: "Refund the stake after the game expired",
		Run: func(cmd *cobra.Command, args []string) {
			runTx(cmd, "AbortRefund", gameReq(cmd))
		},
	}
	addGameFlags(cmd)
	return cmd
}
