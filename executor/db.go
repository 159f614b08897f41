// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sort"

	dbm "github.com/33cn/mines/common/db"
	"github.com/33cn/mines/types"
	"github.com/pkg/errors"
)

// StateDB 交易执行期间的内存状态, 写入只在执行器提交时落盘.
// cache 中 value 为 nil 的项表示删除.
type StateDB struct {
	db      dbm.KV
	cache   map[string][]byte
	txcache map[string][]byte
	keys    []string
	intx    bool
}

// NewStateDB new state db
func NewStateDB(db dbm.KV) *StateDB {
	return &StateDB{
		db:    db,
		cache: make(map[string][]byte),
	}
}

// Begin 开启内存事务处理
func (s *StateDB) Begin() {
	s.intx = true
	s.keys = nil
	s.txcache = nil
}

// Rollback reset tx
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 把txcache合并到cache
func (s *StateDB) Commit() {
	for k, v := range s.txcache {
		s.cache[k] = v
	}
	s.resetTx()
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = nil
	s.keys = nil
}

// Get get value from state db
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if s.intx && s.txcache != nil {
		if value, ok := s.txcache[skey]; ok {
			return nilNotFound(value)
		}
	}
	if value, ok := s.cache[skey]; ok {
		return nilNotFound(value)
	}
	return getFromDB(s.db, key)
}

// Set set key value to state db, nil value 表示删除
func (s *StateDB) Set(key []byte, value []byte) error {
	skey := string(key)
	if s.intx {
		if s.txcache == nil {
			s.txcache = make(map[string][]byte)
		}
		s.keys = append(s.keys, skey)
		s.txcache[skey] = value
	} else {
		s.cache[skey] = value
	}
	return nil
}

// GetSetKeys 当前事务写过的key
func (s *StateDB) GetSetKeys() (keys []string) {
	return s.keys
}

// KVList 已提交的全部变化, 按key排序
func (s *StateDB) KVList() []*types.KeyValue {
	return sortedKV(s.cache)
}

// LocalDB 本地索引数据库, 读取已提交的数据, 写入由执行器统一落盘
type LocalDB struct {
	db    dbm.KV
	cache map[string][]byte
}

// NewLocalDB new local db
func NewLocalDB(db dbm.KV) *LocalDB {
	return &LocalDB{db: db, cache: make(map[string][]byte)}
}

// Get get value from local db
func (l *LocalDB) Get(key []byte) ([]byte, error) {
	if value, ok := l.cache[string(key)]; ok {
		return nilNotFound(value)
	}
	return getFromDB(l.db, key)
}

// Set set key value to local db
func (l *LocalDB) Set(key []byte, value []byte) error {
	l.cache[string(key)] = value
	return nil
}

// KVList 全部变化, 按key排序
func (l *LocalDB) KVList() []*types.KeyValue {
	return sortedKV(l.cache)
}

func nilNotFound(value []byte) ([]byte, error) {
	if value == nil {
		return nil, types.ErrNotFound
	}
	return value, nil
}

func getFromDB(db dbm.KV, key []byte) ([]byte, error) {
	if db == nil {
		return nil, types.ErrNotFound
	}
	value, err := db.Get(key)
	if errors.Cause(err) == dbm.ErrNotFoundInDb {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func sortedKV(m map[string][]byte) []*types.KeyValue {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kvs := make([]*types.KeyValue, len(keys))
	for i, k := range keys {
		kvs[i] = &types.KeyValue{Key: []byte(k), Value: m[k]}
	}
	return kvs
}
