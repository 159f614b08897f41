// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db kv存储接口以及memdb, goleveldb, badger三种实现
package db

import (
	"bytes"
	"errors"
	"sync"

	pkgerr "github.com/pkg/errors"
)

//ErrNotFoundInDb error
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

//ErrBackendNotSupport error
var ErrBackendNotSupport = errors.New("ErrBackendNotSupport")

//KV 状态读写接口, value为nil表示删除
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
}

//IteratorDB 迭代
type IteratorDB interface {
	Iterator(prefix []byte, reverse bool) Iterator
}

//DB 数据库
type DB interface {
	KV
	IteratorDB
	Delete(key []byte) error
	NewBatch(sync bool) Batch
	Close()
}

//Batch 原子批量写
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	ValueSize() int
	Reset()
}

//Iterator 前缀迭代器. reverse时Rewind指向最后一个key, Seek指向<=key的最大key
type Iterator interface {
	Rewind() bool
	Seek(key []byte) bool
	Next() bool
	Valid() bool
	Key() []byte
	Value() []byte
	ValueCopy() []byte
	Error() error
	Close()
}

//const
const (
	GoLevelDBBackendStr  = "goleveldb"
	MemDBBackendStr      = "memdb"
	GoBadgerDBBackendStr = "gobadgerdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var (
	bmu      sync.RWMutex
	backends = map[string]dbCreator{}
)

func registerDBCreator(backend string, creator dbCreator, force bool) {
	bmu.Lock()
	defer bmu.Unlock()
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

//NewDB new
func NewDB(name string, backend string, dir string, cache int32) (DB, error) {
	bmu.RLock()
	creator, ok := backends[backend]
	bmu.RUnlock()
	if !ok {
		return nil, pkgerr.Wrap(ErrBackendNotSupport, backend)
	}
	db, err := creator(name, dir, int(cache))
	if err != nil {
		return nil, pkgerr.Wrapf(err, "NewDB %s at %s", backend, dir)
	}
	return db, nil
}

//Backends 已注册的存储类型
func Backends() []string {
	bmu.RLock()
	defer bmu.RUnlock()
	var names []string
	for name := range backends {
		names = append(names, name)
	}
	return names
}

func cloneByte(v []byte) []byte {
	if v == nil {
		return nil
	}
	value := make([]byte, len(v))
	copy(value, v)
	return value
}

// bytesPrefix 返回prefix之后第一个不以prefix开头的key, nil表示没有上界
func bytesPrefix(prefix []byte) []byte {
	var limit []byte
	for i := len(prefix) - 1; i >= 0; i-- {
		c := prefix[i]
		if c < 0xff {
			limit = make([]byte, i+1)
			copy(limit, prefix)
			limit[i] = c + 1
			break
		}
	}
	return limit
}

func hasPrefix(key, prefix []byte) bool {
	return bytes.HasPrefix(key, prefix)
}
