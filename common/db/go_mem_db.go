// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"sort"
	"sync"

	log "github.com/inconshreveable/log15"
)

var mlog = log.New("module", "db.memdb")

// memdb 应该无需区分同步与异步操作

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoMemDB(name, dir, cache)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

//GoMemDB db
type GoMemDB struct {
	db   map[string][]byte
	lock sync.RWMutex
}

//NewGoMemDB new
func NewGoMemDB(name string, dir string, cache int) (*GoMemDB, error) {
	// memdb 不需要创建文件
	return &GoMemDB{
		db: make(map[string][]byte),
	}, nil
}

//Get get
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if entry, ok := db.db[string(key)]; ok {
		return cloneByte(entry), nil
	}
	return nil, ErrNotFoundInDb
}

//Set set, value为nil时删除
func (db *GoMemDB) Set(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	db.set(key, value)
	return nil
}

func (db *GoMemDB) set(key []byte, value []byte) {
	if value == nil {
		delete(db.db, string(key))
		return
	}
	db.db[string(key)] = cloneByte(value)
}

//Delete delete
func (db *GoMemDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	delete(db.db, string(key))
	return nil
}

//Close 关闭
func (db *GoMemDB) Close() {
	db.lock.Lock()
	defer db.lock.Unlock()
	mlog.Debug("Close", "keys", len(db.db))
}

//Iterator 对前缀做一次快照
func (db *GoMemDB) Iterator(prefix []byte, reverse bool) Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()
	it := &memIterator{reverse: reverse, index: -1}
	for k := range db.db {
		if hasPrefix([]byte(k), prefix) {
			it.keys = append(it.keys, k)
		}
	}
	sort.Strings(it.keys)
	if reverse {
		for i, j := 0, len(it.keys)-1; i < j; i, j = i+1, j-1 {
			it.keys[i], it.keys[j] = it.keys[j], it.keys[i]
		}
	}
	it.values = make([][]byte, len(it.keys))
	for i, k := range it.keys {
		it.values[i] = db.db[k]
	}
	return it
}

type memIterator struct {
	keys    []string
	values  [][]byte
	index   int
	reverse bool
}

func (it *memIterator) Rewind() bool {
	it.index = 0
	return it.Valid()
}

func (it *memIterator) Seek(key []byte) bool {
	target := string(key)
	if it.reverse {
		it.index = sort.Search(len(it.keys), func(i int) bool { return it.keys[i] <= target })
	} else {
		it.index = sort.SearchStrings(it.keys, target)
	}
	return it.Valid()
}

func (it *memIterator) Next() bool {
	it.index++
	return it.Valid()
}

func (it *memIterator) Valid() bool {
	return it.index >= 0 && it.index < len(it.keys)
}

func (it *memIterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	return []byte(it.keys[it.index])
}

func (it *memIterator) Value() []byte {
	if !it.Valid() {
		return nil
	}
	return it.values[it.index]
}

func (it *memIterator) ValueCopy() []byte {
	return cloneByte(it.Value())
}

func (it *memIterator) Error() error {
	return nil
}

func (it *memIterator) Close() {
	it.keys = nil
	it.values = nil
}

//NewBatch new
func (db *GoMemDB) NewBatch(sync bool) Batch {
	return &memBatch{db: db}
}

type kv struct {
	k, v []byte
}

type memBatch struct {
	db     *GoMemDB
	writes []kv
	size   int
}

func (b *memBatch) Set(key, value []byte) {
	b.writes = append(b.writes, kv{cloneByte(key), cloneByte(value)})
	b.size += len(value)
}

func (b *memBatch) Delete(key []byte) {
	b.writes = append(b.writes, kv{cloneByte(key), nil})
	b.size++
}

// Write 在一把锁内完成全部写入
func (b *memBatch) Write() error {
	b.db.lock.Lock()
	defer b.db.lock.Unlock()
	for _, kv := range b.writes {
		b.db.set(kv.k, kv.v)
	}
	return nil
}

func (b *memBatch) ValueSize() int {
	return b.size
}

func (b *memBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
