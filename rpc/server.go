// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc json rpc over http. 请求先经过 ip 白名单与按 ip 限流, 再交给 net/rpc 处理.
package rpc

import (
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"

	"github.com/33cn/mines/types"
	"github.com/google/uuid"
	log "github.com/inconshreveable/log15"
	"github.com/kevinms/leakybucket-go"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

var rlog = log.New("module", "rpc")

// maxBodySize 单个请求体的上限
const maxBodySize = 4 << 20

// JSONRPCServer a json rpcserver object
type JSONRPCServer struct {
	cfg       *types.RPC
	s         *rpc.Server
	l         net.Listener
	whitelist map[string]bool
	limiter   *leakybucket.Collector
	mu        sync.Mutex
}

// NewJSONRPCServer new json rpcserver object
func NewJSONRPCServer(cfg *types.RPC) *JSONRPCServer {
	if cfg == nil {
		cfg = &types.RPC{}
	}
	j := &JSONRPCServer{
		cfg:       cfg,
		s:         rpc.NewServer(),
		whitelist: initIPWhitelist(cfg.Whitelist),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = int64(cfg.RateLimit)
		}
		if burst <= 0 {
			burst = 1
		}
		j.limiter = leakybucket.NewCollector(cfg.RateLimit, burst, true)
	}
	return j
}

// RegisterName 注册服务
func (j *JSONRPCServer) RegisterName(name string, rcvr interface{}) error {
	return j.s.RegisterName(name, rcvr)
}

func initIPWhitelist(list []string) map[string]bool {
	whitelist := make(map[string]bool)
	if len(list) == 0 {
		whitelist["127.0.0.1"] = true
		return whitelist
	}
	for _, addr := range list {
		if addr == "*" {
			whitelist["0.0.0.0"] = true
			continue
		}
		whitelist[addr] = true
	}
	return whitelist
}

func (j *JSONRPCServer) checkIPWhitelist(addr string) bool {
	//回环网络直接允许
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	if ip.IsLoopback() {
		return true
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		addr = ipv4.String()
	}
	if j.whitelist["0.0.0.0"] {
		return true
	}
	return j.whitelist[addr]
}

// allow 按 ip 限流
func (j *JSONRPCServer) allow(ip string) bool {
	if j.limiter == nil {
		return true
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.limiter.Remaining(ip) <= 0 {
		return false
	}
	j.limiter.Add(ip, 1)
	return true
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ServeHTTP 每个 http 请求处理一个 json rpc 调用
func (j *JSONRPCServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ip := remoteIP(r)
	if !j.checkIPWhitelist(ip) {
		rlog.Error("ServeHTTP", "reject ip", ip)
		http.Error(w, "reject", http.StatusForbidden)
		return
	}
	if !j.allow(ip) {
		rlog.Debug("ServeHTTP", "rate limited", ip)
		http.Error(w, types.ErrRateLimited.Error(), http.StatusTooManyRequests)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	reqid := uuid.New().String()
	serverCodec := jsonrpc.NewServerCodec(&HTTPConn{in: io.LimitReader(r.Body, maxBodySize), out: w})
	w.Header().Set("Content-type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := j.s.ServeRequest(serverCodec)
	if err != nil {
		rlog.Debug("Error while serving JSON request", "reqid", reqid, "ip", ip, "err", err)
		return
	}
	rlog.Debug("ServeHTTP", "reqid", reqid, "ip", ip)
}

// Handler 加上 cors 的 http handler
func (j *JSONRPCServer) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: j.cfg.CorsOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(j)
}

// Listen 绑定 jrpcBindAddr, 返回实际端口
func (j *JSONRPCServer) Listen() (int, error) {
	listener, err := net.Listen("tcp", j.cfg.JrpcBindAddr)
	if err != nil {
		return 0, errors.Wrapf(err, "listen %s", j.cfg.JrpcBindAddr)
	}
	j.l = listener
	go func() {
		err := http.Serve(listener, j.Handler())
		if err != nil {
			rlog.Info("http.Serve exit", "err", err)
		}
	}()
	port := listener.Addr().(*net.TCPAddr).Port
	rlog.Info("rpc Listen port", "jrpc", port)
	return port, nil
}

// Close json rpcserver close
func (j *JSONRPCServer) Close() {
	if j.l != nil {
		err := j.l.Close()
		if err != nil {
			rlog.Error("JSONRPCServer close", "err", err)
		}
	}
}
