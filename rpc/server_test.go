// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/33cn/mines/common"
	"github.com/33cn/mines/rpc/jsonclient"
	"github.com/33cn/mines/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddr = "14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"

type mockAPI struct {
	height int64
}

func (m *mockAPI) Exec(tx *types.Transaction) (*types.ExecResult, error) {
	return nil, types.ErrActionNotSupport
}

func (m *mockAPI) Query(driver string, funcName string, params []byte) (interface{}, error) {
	if driver != "echo" {
		return nil, types.ErrExecNotFound
	}
	var req types.ReqAddr
	if err := types.Decode(params, &req); err != nil {
		return nil, err
	}
	return &types.ReplyString{Data: funcName + ":" + req.Addr}, nil
}

func (m *mockAPI) GetBalance(addr string) (*types.Account, error) {
	return &types.Account{Addr: addr, Balance: 100}, nil
}

func (m *mockAPI) GetTxResult(hash string) (*types.TxResult, error) {
	return nil, types.ErrNotFound
}

func (m *mockAPI) GetTxsByAddr(req *types.ReqTxsByAddr) (*types.ReplyTxInfos, error) {
	return &types.ReplyTxInfos{TxInfos: []*types.ReplyTxInfo{{Hash: "0x01", Height: 1}}}, nil
}

func (m *mockAPI) Height() int64 {
	return m.height
}

func newTestServer(t *testing.T, cfg *types.RPC) (*httptest.Server, *JSONRPCServer) {
	s := NewJSONRPCServer(cfg)
	require.NoError(t, InitChain(s, &mockAPI{height: 7}))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, s
}

func TestChainService(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	client, err := jsonclient.NewJSONClient(ts.URL)
	require.NoError(t, err)

	var acc types.Account
	require.NoError(t, client.Call("GetBalance", &types.ReqAddr{Addr: testAddr}, &acc))
	assert.Equal(t, int64(100), acc.Balance)

	err = client.Call("GetBalance", &types.ReqAddr{Addr: "bad"}, &acc)
	require.Error(t, err)
	assert.Equal(t, "ValidationError: ErrInvalidAddress", err.Error())

	var height types.Int64
	require.NoError(t, client.Call("Chain.GetHeight", &types.ReqAddr{}, &height))
	assert.Equal(t, int64(7), height.Data)

	var reply types.ReplyString
	payload := common.ToHex(types.Encode(&types.ReqAddr{Addr: testAddr}))
	require.NoError(t, client.Call("Query", &Query4Jrpc{Execer: "echo", FuncName: "F", Payload: payload}, &reply))
	assert.Equal(t, "F:"+testAddr, reply.Data)
	err = client.Call("Query", &Query4Jrpc{Execer: "echo", FuncName: "F", Payload: "0xzz"}, &reply)
	assert.Equal(t, "ValidationError: ErrInvalidParam", err.Error())
	err = client.Call("Query", &Query4Jrpc{Execer: "echo", FuncName: "F", Payload: "0x10"}, &reply)
	assert.Contains(t, err.Error(), "ErrDecode")

	err = client.Call("QueryTransaction", &types.ReqHash{Hash: "0x00"}, &reply)
	assert.Equal(t, "PreconditionError: ErrNotFound", err.Error())

	var txs types.ReplyTxInfos
	require.NoError(t, client.Call("GetTxByAddr", &types.ReqTxsByAddr{Addr: testAddr, Height: -1}, &txs))
	assert.Len(t, txs.TxInfos, 1)
}

func TestRpcCtx(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	var acc types.Account
	ctx := jsonclient.NewRpcCtx(ts.URL, "GetBalance", &types.ReqAddr{Addr: testAddr}, &acc)
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		return res.(*types.Account).Balance * 2, nil
	})
	result, err := ctx.RunResult()
	require.NoError(t, err)
	assert.Equal(t, int64(200), result)

	// 指定服务名
	var height types.Int64
	result, err = jsonclient.NewRpcCtx(ts.URL, "GetHeight", &types.ReqAddr{}, &height).SetPrefix("Chain").RunResult()
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.(*types.Int64).Data)

	_, err = jsonclient.NewRpcCtx(ts.URL, "GetBalance", &types.ReqAddr{Addr: "bad"}, &acc).RunResult()
	assert.Equal(t, "ValidationError: ErrInvalidAddress", err.Error())
}

func TestIPWhitelist(t *testing.T) {
	s := NewJSONRPCServer(&types.RPC{Whitelist: []string{"192.168.1.2"}})
	assert.True(t, s.checkIPWhitelist("127.0.0.1"))
	assert.True(t, s.checkIPWhitelist("192.168.1.2"))
	assert.False(t, s.checkIPWhitelist("192.168.1.3"))
	assert.False(t, s.checkIPWhitelist("not an ip"))

	s = NewJSONRPCServer(&types.RPC{Whitelist: []string{"*"}})
	assert.True(t, s.checkIPWhitelist("8.8.8.8"))

	s = NewJSONRPCServer(&types.RPC{})
	assert.False(t, s.checkIPWhitelist("8.8.8.8"))

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{}"))
	req.RemoteAddr = "8.8.8.8:1234"
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit(t *testing.T) {
	s := NewJSONRPCServer(&types.RPC{RateLimit: 0.001, RateBurst: 2})
	assert.True(t, s.allow("10.0.0.1"))
	assert.True(t, s.allow("10.0.0.1"))
	assert.False(t, s.allow("10.0.0.1"))
	// 每个 ip 单独计数
	assert.True(t, s.allow("10.0.0.2"))

	ts, _ := newTestServer(t, &types.RPC{RateLimit: 0.001, RateBurst: 1})
	client, err := jsonclient.NewJSONClient(ts.URL)
	require.NoError(t, err)
	var height types.Int64
	require.NoError(t, client.Call("GetHeight", &types.ReqAddr{}, &height))
	err = client.Call("GetHeight", &types.ReqAddr{}, &height)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestHTTPMethods(t *testing.T) {
	ts, _ := newTestServer(t, &types.RPC{CorsOrigins: []string{"http://example.com"}})

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/other", "application/json", bytes.NewBufferString("{}"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req, err := http.NewRequest(http.MethodOptions, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}
