// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"github.com/33cn/mines/rpc/jsonclient"
	"github.com/33cn/mines/types"
	"github.com/spf13/cobra"
)

// AccountCmd 账户相关
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account balance",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(balanceCmd())
	return cmd
}

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get balance of an address",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			addr, _ := cmd.Flags().GetString("addr")
			var res types.Account
			ctx := jsonclient.NewRpcCtx(rpcLaddr, "Chain.GetBalance", &types.ReqAddr{Addr: addr}, &res)
			ctx.Run()
		},
	}
	cmd.Flags().StringP("addr", "a", "", "account address")
	cmd.MarkFlagRequired("addr")
	return cmd
}

// TxCmd 交易查询
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction query",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		queryTxCmd(),
		queryTxByAddrCmd(),
		heightCmd(),
	)
	return cmd
}

func queryTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query_hash",
		Short: "Query transaction by hash",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			hash, _ := cmd.Flags().GetString("hash")
			var res types.TxResult
			ctx := jsonclient.NewRpcCtx(rpcLaddr, "Chain.QueryTransaction", &types.ReqHash{Hash: hash}, &res)
			ctx.Run()
		},
	}
	cmd.Flags().StringP("hash", "s", "", "transaction hash")
	cmd.MarkFlagRequired("hash")
	return cmd
}

func queryTxByAddrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query_addr",
		Short: "Query transactions sent by an address",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			addr, _ := cmd.Flags().GetString("addr")
			count, _ := cmd.Flags().GetInt32("count")
			direction, _ := cmd.Flags().GetInt32("direction")
			height, _ := cmd.Flags().GetInt64("height")
			index, _ := cmd.Flags().GetInt64("index")
			req := &types.ReqTxsByAddr{
				Addr:      addr,
				Count:     count,
				Direction: direction,
				Height:    height,
				Index:     index,
			}
			var res types.ReplyTxInfos
			ctx := jsonclient.NewRpcCtx(rpcLaddr, "Chain.GetTxByAddr", req, &res)
			ctx.Run()
		},
	}
	cmd.Flags().StringP("addr", "a", "", "account address")
	cmd.MarkFlagRequired("addr")
	cmd.Flags().Int32P("count", "c", 10, "maximum return number")
	cmd.Flags().Int32P("direction", "d", types.ListDESC, "query direction (0: desc, 1: asc)")
	cmd.Flags().Int64P("height", "t", -1, "transaction's block height, -1 for the latest")
	cmd.Flags().Int64P("index", "i", 0, "transaction's index")
	return cmd
}

func heightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "height",
		Short: "Number of executed transactions",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			var res types.Int64
			ctx := jsonclient.NewRpcCtx(rpcLaddr, "Chain.GetHeight", &types.ReqAddr{}, &res)
			ctx.Run()
		},
	}
}
