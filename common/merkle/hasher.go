// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"errors"
	"sort"
	"sync"

	"github.com/33cn/mines/common"
)

// 支持的hash类型
const (
	SHA256    = "sha256"
	SHA3      = "sha3"
	KECCAK256 = "keccak256"
)

// ErrHashType 不支持的hash类型
var ErrHashType = errors.New("ErrHashType")

// HashFunc 32字节输出的hash函数
type HashFunc func([]byte) []byte

var (
	hmu     sync.RWMutex
	hashers = make(map[string]HashFunc)
)

func init() {
	RegisterHashFunc(SHA256, common.Sha256)
	RegisterHashFunc(SHA3, common.Sha3)
	RegisterHashFunc(KECCAK256, common.ShaKeccak256)
}

// RegisterHashFunc 注册hash函数，重复注册会panic
func RegisterHashFunc(name string, fn HashFunc) {
	hmu.Lock()
	defer hmu.Unlock()
	if fn == nil {
		panic("merkle: RegisterHashFunc fn is nil")
	}
	if _, dup := hashers[name]; dup {
		panic("merkle: RegisterHashFunc called twice for " + name)
	}
	hashers[name] = fn
}

// HashTypes 已注册的hash类型
func HashTypes() []string {
	hmu.RLock()
	defer hmu.RUnlock()
	names := make([]string, 0, len(hashers))
	for name := range hashers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hasher 绑定了一种hash函数的merkle计算
type Hasher struct {
	name string
	fn   HashFunc
}

// NewHasher 按名字获取hasher, 空名字为sha256
func NewHasher(name string) (*Hasher, error) {
	if name == "" {
		name = SHA256
	}
	hmu.RLock()
	fn, ok := hashers[name]
	hmu.RUnlock()
	if !ok {
		return nil, ErrHashType
	}
	return &Hasher{name: name, fn: fn}, nil
}

// MustNewHasher panic on unknown name
func MustNewHasher(name string) *Hasher {
	h, err := NewHasher(name)
	if err != nil {
		panic(err)
	}
	return h
}

// Name hash类型
func (h *Hasher) Name() string {
	return h.name
}

// Sum hash of the concatenation of parts
func (h *Hasher) Sum(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	buf := make([]byte, 0, size)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return h.fn(buf)
}
