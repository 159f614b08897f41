// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	b, err := FromHex("0x0102")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	b, err = FromHex("102")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	assert.Equal(t, "0x0102", ToHex([]byte{1, 2}))
	assert.Equal(t, "", ToHex(nil))
	assert.True(t, HasHexPrefix("0xab"))

	_, err = FromHex("0xzz")
	assert.Error(t, err)
}

func TestHashes(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", Bytes2Hex(Sha256([]byte("abc"))))
	// sha3-256("abc")
	assert.Equal(t, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532", Bytes2Hex(Sha3([]byte("abc"))))
	// keccak256("")
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", Bytes2Hex(ShaKeccak256(nil)))
	assert.Len(t, Rimp160AfterSha256([]byte("abc")), 20)
	h := Sha2Sum([]byte("abc"))
	assert.Equal(t, Sha256(Sha256([]byte("abc"))), h[:])
}

func TestCopyBytes(t *testing.T) {
	assert.Nil(t, CopyBytes(nil))
	src := []byte{1, 2, 3}
	dst := CopyBytes(src)
	dst[0] = 9
	assert.Equal(t, byte(1), src[0])
}

func TestRand(t *testing.T) {
	assert.Len(t, GetRandBytes(32), 32)
	assert.True(t, RandInt64() >= 0)
}
