// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config 节点配置
type Config struct {
	Title   string   `toml:"title"`
	FixTime bool     `toml:"fixTime"`
	Log     *Log     `toml:"log"`
	Store   *Store   `toml:"store"`
	RPC     *RPC     `toml:"rpc"`
	Metrics *Metrics `toml:"metrics"`
	Exec    *Exec    `toml:"exec"`

	md toml.MetaData
}

// Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `toml:"logFile"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `toml:"maxFileSize"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `toml:"maxBackups"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32 `toml:"maxAge"`
	// 日志文件名是否使用本地事件（否则使用UTC时间）
	LocalTime bool `toml:"localTime"`
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool `toml:"compress"`
	// 是否打印调用源文件和行号
	CallerFile bool `toml:"callerFile"`
	// 是否打印调用方法
	CallerFunction bool `toml:"callerFunction"`
}

// Store 数据库配置
type Store struct {
	Driver  string `toml:"driver"`
	DbPath  string `toml:"dbPath"`
	DbCache int32  `toml:"dbCache"`
}

// RPC json rpc 配置
type RPC struct {
	JrpcBindAddr string   `toml:"jrpcBindAddr"`
	Whitelist    []string `toml:"whitelist"`
	CorsOrigins  []string `toml:"corsOrigins"`
	// 每个 ip 每秒允许的请求数, 0 表示不限制
	RateLimit float64 `toml:"rateLimit"`
	RateBurst int64   `toml:"rateBurst"`
}

// Metrics 统计配置
type Metrics struct {
	EnableMetrics bool `toml:"enableMetrics"`
	// 输出间隔（秒）
	Duration int64 `toml:"duration"`
}

// Exec 执行器配置
type Exec struct {
	Genesis []*GenesisAccount          `toml:"genesis"`
	Sub     map[string]toml.Primitive `toml:"sub"`
}

// GenesisAccount 初始资金分配
type GenesisAccount struct {
	Addr   string `toml:"addr"`
	Amount int64  `toml:"amount"`
}

// ReadFile 读取配置文件
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return InitCfgString(string(data))
}

// InitCfgString 解析配置字符串
func InitCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(cfgstring, &cfg)
	if err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.md = md
	cfg.fillDefault()
	return &cfg, nil
}

// MustInitCfgString panics on a malformed config, used for embedded configs
func MustInitCfgString(cfgstring string) *Config {
	cfg, err := InitCfgString(cfgstring)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) fillDefault() {
	if c.Title == "" {
		c.Title = "local"
	}
	if c.Log == nil {
		c.Log = &Log{}
	}
	if c.Store == nil {
		c.Store = &Store{Driver: "memdb"}
	}
	if c.RPC == nil {
		c.RPC = &RPC{}
	}
	if c.Metrics == nil {
		c.Metrics = &Metrics{}
	}
	if c.Exec == nil {
		c.Exec = &Exec{}
	}
}

// HasSub 是否存在执行器子配置
func (c *Config) HasSub(name string) bool {
	if c.Exec == nil || c.Exec.Sub == nil {
		return false
	}
	_, ok := c.Exec.Sub[name]
	return ok
}

// DecodeSub decodes [exec.sub.<name>] into v, ErrNotFound when absent
func (c *Config) DecodeSub(name string, v interface{}) error {
	if !c.HasSub(name) {
		return ErrNotFound
	}
	if err := c.md.PrimitiveDecode(c.Exec.Sub[name], v); err != nil {
		return errors.Wrapf(err, "decode exec.sub.%s", name)
	}
	return nil
}
