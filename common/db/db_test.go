// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T, backend string) (DB, func()) {
	dir, err := ioutil.TempDir("", "minesdb")
	require.NoError(t, err)
	db, err := NewDB("test", backend, dir, 16)
	require.NoError(t, err)
	return db, func() {
		db.Close()
		os.RemoveAll(dir)
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, db DB)) {
	for _, backend := range []string{MemDBBackendStr, GoLevelDBBackendStr, GoBadgerDBBackendStr} {
		t.Run(backend, func(t *testing.T) {
			db, closer := newTestDB(t, backend)
			defer closer()
			fn(t, db)
		})
	}
}

func TestUnknownBackend(t *testing.T) {
	_, err := NewDB("test", "cleveldb", "", 0)
	assert.Error(t, err)
}

func TestGetSetDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db DB) {
		_, err := db.Get([]byte("a"))
		assert.Equal(t, ErrNotFoundInDb, err)

		require.NoError(t, db.Set([]byte("a"), []byte("1")))
		v, err := db.Get([]byte("a"))
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), v)

		// nil value 表示删除
		require.NoError(t, db.Set([]byte("a"), nil))
		_, err = db.Get([]byte("a"))
		assert.Equal(t, ErrNotFoundInDb, err)

		require.NoError(t, db.Set([]byte("b"), []byte("2")))
		require.NoError(t, db.Delete([]byte("b")))
		_, err = db.Get([]byte("b"))
		assert.Equal(t, ErrNotFoundInDb, err)
	})
}

func TestBatch(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db DB) {
		require.NoError(t, db.Set([]byte("old"), []byte("x")))
		batch := db.NewBatch(true)
		batch.Set([]byte("k1"), []byte("v1"))
		batch.Set([]byte("k2"), []byte("v2"))
		batch.Delete([]byte("old"))
		assert.True(t, batch.ValueSize() > 0)

		// 写入之前不可见
		_, err := db.Get([]byte("k1"))
		assert.Equal(t, ErrNotFoundInDb, err)

		require.NoError(t, batch.Write())
		v, err := db.Get([]byte("k2"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), v)
		_, err = db.Get([]byte("old"))
		assert.Equal(t, ErrNotFoundInDb, err)

		batch.Reset()
		assert.Equal(t, 0, batch.ValueSize())
	})
}

func TestListHelper(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db DB) {
		for _, k := range []string{"aaaaaa/1", "my_key/1", "my_key/2", "my_key/3", "my_key/4", "my", "my_", "zzzzzz/1"} {
			require.NoError(t, db.Set([]byte(k), []byte(k)))
		}
		require.NoError(t, db.Set([]byte{0xff}, []byte("0xff")))

		it := NewListHelper(db)
		list := it.PrefixScan(nil)
		assert.Equal(t, [][]byte{[]byte("aaaaaa/1"), []byte("my"), []byte("my_"), []byte("my_key/1"), []byte("my_key/2"), []byte("my_key/3"), []byte("my_key/4"), []byte("zzzzzz/1"), []byte("0xff")}, list)

		list = it.IteratorScanFromFirst([]byte("my"), 2)
		assert.Equal(t, [][]byte{[]byte("my"), []byte("my_")}, list)

		list = it.IteratorScanFromLast([]byte("my"), 100)
		assert.Equal(t, [][]byte{[]byte("my_key/4"), []byte("my_key/3"), []byte("my_key/2"), []byte("my_key/1"), []byte("my_"), []byte("my")}, list)

		list = it.IteratorScan([]byte("my"), []byte("my_key/3"), 100, ListASC)
		assert.Equal(t, [][]byte{[]byte("my_key/4")}, list)

		list = it.IteratorScan([]byte("my"), []byte("my_key/3"), 100, ListDESC)
		assert.Equal(t, [][]byte{[]byte("my_key/2"), []byte("my_key/1"), []byte("my_"), []byte("my")}, list)

		list = it.List([]byte("my_key/"), nil, 2, ListDESC)
		assert.Equal(t, [][]byte{[]byte("my_key/4"), []byte("my_key/3")}, list)

		list = it.List([]byte("my_key/"), []byte("my_key/2"), 1, ListASC)
		assert.Equal(t, [][]byte{[]byte("my_key/3")}, list)

		// 不存在的key, 从下一个开始
		list = it.List([]byte("my_key/"), []byte("my_key/25"), 10, ListDESC)
		assert.Equal(t, [][]byte{[]byte("my_key/2"), []byte("my_key/1")}, list)

		list = it.IteratorScanFromLast([]byte{0xff}, 10)
		assert.Equal(t, [][]byte{[]byte("0xff")}, list)

		assert.Equal(t, int64(6), it.PrefixCount([]byte("my")))
		assert.Equal(t, int64(0), it.PrefixCount([]byte("none")))
	})
}

func TestBytesPrefix(t *testing.T) {
	assert.Equal(t, []byte("ab"), bytesPrefix([]byte("aa")))
	assert.Equal(t, []byte{0x02}, bytesPrefix([]byte{0x01, 0xff}))
	assert.Nil(t, bytesPrefix([]byte{0xff, 0xff}))
	assert.Nil(t, bytesPrefix(nil))
}
