// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	dbm "github.com/33cn/mines/common/db"
	clog "github.com/33cn/mines/common/log"
	"github.com/33cn/mines/executor"
	"github.com/33cn/mines/metrics"
	"github.com/33cn/mines/pluginmgr"
	"github.com/33cn/mines/rpc"
	"github.com/33cn/mines/types"
	log "github.com/inconshreveable/log15"
	gometrics "github.com/rcrowley/go-metrics"
)

var (
	configPath = flag.String("f", "", "configfile")
	datadir    = flag.String("datadir", "", "data dir of mines, include logs and datas")
)

// Version 节点版本
const Version = "1.0.0"

// RunMines 启动节点, 收到 SIGINT/SIGTERM 后退出
func RunMines(name string) {
	flag.Parse()
	cfg, err := loadConfig(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *datadir != "" {
		resetDatadir(cfg, *datadir)
	}
	clog.SetFileLog(cfg.Log)
	defer clog.Close()
	log.Info(cfg.Title + "-mines:" + Version)

	t := time.Tick(10 * time.Minute)
	go func() {
		for range t {
			watching()
		}
	}()

	log.Info("loading store module", "driver", cfg.Store.Driver, "path", cfg.Store.DbPath)
	db, err := dbm.NewDB("mines", cfg.Store.Driver, cfg.Store.DbPath, cfg.Store.DbCache)
	if err != nil {
		log.Crit("NewDB", "err", err)
		os.Exit(1)
	}

	log.Info("loading execs module")
	pluginmgr.InitExec()
	exec, err := executor.New(cfg, db, types.SystemClock(), gometrics.DefaultRegistry)
	if err != nil {
		db.Close()
		log.Crit("executor.New", "err", err)
		os.Exit(1)
	}

	log.Info("loading rpc module")
	server := rpc.NewJSONRPCServer(cfg.RPC)
	if err = rpc.InitChain(server, exec); err == nil {
		err = pluginmgr.AddRPC(server, exec)
	}
	if err == nil {
		_, err = server.Listen()
	}
	if err != nil {
		db.Close()
		log.Crit("rpc", "err", err)
		os.Exit(1)
	}
	emitter := metrics.StartMetrics(cfg.Metrics, gometrics.DefaultRegistry)

	defer func() {
		log.Info("begin close rpc module")
		server.Close()
		log.Info("begin close metrics module")
		emitter.Close()
		log.Info("begin close store module")
		db.Close()
	}()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Info("receive signal", "signal", s, "height", exec.Height())
}

func loadConfig(name string) (*types.Config, error) {
	if *configPath == "" {
		if name == "" {
			name = "mines"
		}
		*configPath = name + ".toml"
		if _, err := os.Stat(*configPath); os.IsNotExist(err) {
			log.Info("config file not found, use default config", "path", *configPath)
			return types.InitCfgString(types.DefaultConfig)
		}
	}
	return types.ReadFile(*configPath)
}

func resetDatadir(cfg *types.Config, datadir string) {
	cfg.Store.DbPath = filepath.Join(datadir, filepath.Base(cfg.Store.DbPath))
	if cfg.Log.LogFile != "" {
		cfg.Log.LogFile = filepath.Join(datadir, cfg.Log.LogFile)
	}
}

func watching() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Info("info:", "NumGoroutine:", runtime.NumGoroutine())
	log.Info("info:", "Mem:", m.Sys/(1024*1024))
	log.Info("info:", "HeapAlloc:", m.HeapAlloc/(1024*1024))
}
