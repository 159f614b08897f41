// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	jsonrpc "github.com/33cn/mines/rpc/jsonclient"
	"github.com/33cn/mines/types"
	"github.com/spf13/cobra"
)

// GameResult 命令行输出, 金额以 coin 为单位
type GameResult struct {
	*mt.GameView
	Stake string `json:"stake"`
}

// VaultResult 命令行输出
type VaultResult struct {
	*mt.VaultView
	Balance string `json:"balance"`
	Ledger  string `json:"ledger"`
}

// SummaryResult 命令行输出
type SummaryResult struct {
	*mt.GameSummary
	Stake  string `json:"stake"`
	Status string `json:"status"`
}

func runQuery(cmd *cobra.Command, method string, params, res interface{}, cb jsonrpc.Callback) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	ctx := jsonrpc.NewRpcCtx(rpcLaddr, method, params, res).SetPrefix(mt.JRPCName)
	if cb != nil {
		ctx.SetResultCb(cb)
	}
	ctx.Run()
}

// GameCmd 查询游戏
func GameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Show a game that is active or waiting for collection",
		Run: func(cmd *cobra.Command, args []string) {
			gameID, _ := cmd.Flags().GetString("gameID")
			var res mt.GameView
			runQuery(cmd, "GetGame", &mt.ReqGameID{GameID: gameID}, &res, func(r interface{}) (interface{}, error) {
				v := r.(*mt.GameView)
				return &GameResult{GameView: v, Stake: formatCoins(v.Stake)}, nil
			})
		},
	}
	cmd.Flags().StringP("gameID", "g", "", "game id")
	cmd.MarkFlagRequired("gameID")
	return cmd
}

// VaultCmd 查询托管账户
func VaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Show the vault of a game",
		Run: func(cmd *cobra.Command, args []string) {
			gameID, _ := cmd.Flags().GetString("gameID")
			var res mt.VaultView
			runQuery(cmd, "GetVault", &mt.ReqGameID{GameID: gameID}, &res, func(r interface{}) (interface{}, error) {
				v := r.(*mt.VaultView)
				return &VaultResult{VaultView: v, Balance: formatCoins(v.Balance), Ledger: formatCoins(v.Ledger)}, nil
			})
		},
	}
	cmd.Flags().StringP("gameID", "g", "", "game id")
	cmd.MarkFlagRequired("gameID")
	return cmd
}

// ListCmd 按地址或状态列出游戏
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games by status, optionally filtered by address",
		Run:   minesList,
	}
	cmd.Flags().StringP("addr", "a", "", "player or house address")
	cmd.Flags().Int32P("status", "s", mt.StatusActive, "1:active 2:lost 3:cashed out 4:collected 5:refunded")
	cmd.Flags().Int32P("count", "c", mt.DefaultCount, "max games to list")
	cmd.Flags().Int32P("direction", "d", types.ListDESC, "0:desc 1:asc")
	cmd.Flags().Int64P("index", "i", 0, "list after this index, 0 for the first page")
	return cmd
}

func minesList(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	status, _ := cmd.Flags().GetInt32("status")
	count, _ := cmd.Flags().GetInt32("count")
	direction, _ := cmd.Flags().GetInt32("direction")
	index, _ := cmd.Flags().GetInt64("index")
	params := &mt.ReqListGames{
		Addr:      addr,
		Status:    status,
		Count:     count,
		Direction: direction,
		Index:     index,
	}
	var res mt.ReplyGameList
	runQuery(cmd, "ListGames", params, &res, func(r interface{}) (interface{}, error) {
		list := r.(*mt.ReplyGameList)
		result := make([]*SummaryResult, 0, len(list.Games))
		for _, g := range list.Games {
			result = append(result, &SummaryResult{GameSummary: g, Stake: formatCoins(g.Stake), Status: mt.StatusName(g.Status)})
		}
		return result, nil
	})
}

// CountCmd 按状态统计
func CountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count games by status, optionally filtered by address",
		Run: func(cmd *cobra.Command, args []string) {
			addr, _ := cmd.Flags().GetString("addr")
			status, _ := cmd.Flags().GetInt32("status")
			var res types.Int64
			runQuery(cmd, "GameCount", &mt.ReqGameCount{Addr: addr, Status: status}, &res, nil)
		},
	}
	cmd.Flags().StringP("addr", "a", "", "player or house address")
	cmd.Flags().Int32P("status", "s", mt.StatusActive, "1:active 2:lost 3:cashed out 4:collected 5:refunded")
	return cmd
}

// FamilyCmd 棋盘参数
func FamilyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "family",
		Short: "Show board size, mine limits and expiry of this deployment",
		Run: func(cmd *cobra.Command, args []string) {
			var res mt.Family
			runQuery(cmd, "GetFamily", &types.ReqAddr{}, &res, nil)
		},
	}
}
