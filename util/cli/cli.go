// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli 节点与命令行的启动入口
package cli

import (
	"fmt"
	"os"

	"github.com/33cn/mines/common/log"
	"github.com/33cn/mines/pluginmgr"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mines-cli",
	Short: "mines client tools",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get node version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

func init() {
	rootCmd.AddCommand(
		AccountCmd(),
		TxCmd(),
		versionCmd,
	)
}

//Run :
func Run(RPCAddr string) {
	pluginmgr.AddCmd(rootCmd)
	log.SetLogLevel("error")
	rootCmd.PersistentFlags().String("rpc_laddr", RPCAddr, "http url")
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
