// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/33cn/mines/common"
	"github.com/33cn/mines/common/merkle"
	minesrpc "github.com/33cn/mines/plugin/dapp/mines/rpc"
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	"github.com/spf13/cobra"
)

// HouseCmd 庄家在本地生成棋盘与证明, 不访问节点
func HouseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "house",
		Short: "Offline board tools for the house",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		HouseBoardCmd(),
		HouseProofCmd(),
	)
	return cmd
}

// HouseBoardCmd 生成棋盘并输出 commitment
func HouseBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Generate a secret board file and print its commitment",
		Run:   houseBoard,
	}
	cmd.Flags().StringP("out", "o", "board.json", "board file to write")
	cmd.Flags().IntP("mines", "m", 3, "number of mines")
	cmd.Flags().IntP("size", "s", 25, "board size")
	cmd.Flags().StringP("hash", "t", merkle.SHA256, "hash type: sha256, sha3 or keccak256")
	return cmd
}

func houseBoard(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")
	numMines, _ := cmd.Flags().GetInt("mines")
	size, _ := cmd.Flags().GetInt("size")
	hashType, _ := cmd.Flags().GetString("hash")

	board, err := mt.NewBoard(hashType, size, numMines)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if err := board.Save(out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(board.Commitment)
}

// HouseProofCmd 输出某个格子的揭示参数
func HouseProofCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proof",
		Short: "Print the reveal parameters of one tile",
		Run:   houseProof,
	}
	cmd.Flags().StringP("board", "b", "board.json", "board file")
	cmd.Flags().StringP("gameID", "g", "", "game id")
	cmd.MarkFlagRequired("gameID")
	cmd.Flags().Uint32P("tile", "t", 0, "tile index")
	cmd.MarkFlagRequired("tile")
	return cmd
}

func houseProof(cmd *cobra.Command, args []string) {
	boardFile, _ := cmd.Flags().GetString("board")
	gameID, _ := cmd.Flags().GetString("gameID")
	tile, _ := cmd.Flags().GetUint32("tile")

	req, err := revealFromBoard(boardFile, gameID, tile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	data, err := json.MarshalIndent(req, "", "    ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}

func revealFromBoard(boardFile, gameID string, tile uint32) (*minesrpc.RevealReq, error) {
	board, err := mt.LoadBoard(boardFile)
	if err != nil {
		return nil, err
	}
	reveal, err := board.Reveal(gameID, tile)
	if err != nil {
		return nil, err
	}
	req := &minesrpc.RevealReq{
		GameID:    gameID,
		TileIndex: reveal.TileIndex,
		IsMine:    reveal.IsMine,
		Nonce:     common.ToHex(reveal.Nonce),
		Proof:     make([]string, len(reveal.Proof)),
		PathBits:  reveal.PathBits,
	}
	for i, p := range reveal.Proof {
		req.Proof[i] = common.ToHex(p)
	}
	return req, nil
}
