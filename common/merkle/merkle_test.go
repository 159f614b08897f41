// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNonce(i int) []byte {
	return bytes.Repeat([]byte{byte(i + 1)}, NonceSize)
}

func buildBoard(t *testing.T, h *Hasher, n int, mines map[int]bool) *Tree {
	leaves := make([][]byte, n)
	for i := 0; i < n; i++ {
		leaves[i] = h.LeafHash(uint32(i), mines[i], testNonce(i))
	}
	tree, err := NewTree(h, leaves)
	require.NoError(t, err)
	return tree
}

func proofOf(t *testing.T, tree *Tree, i int, isMine bool) *Proof {
	branch, err := tree.Branch(uint32(i))
	require.NoError(t, err)
	return &Proof{Index: uint32(i), IsMine: isMine, Nonce: testNonce(i), Branch: branch, PathBits: uint32(i)}
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, Depth(1))
	assert.Equal(t, 1, Depth(2))
	assert.Equal(t, 2, Depth(3))
	assert.Equal(t, 2, Depth(4))
	assert.Equal(t, 5, Depth(25))
	assert.Equal(t, 5, Depth(32))
	assert.Equal(t, 6, Depth(33))
}

func TestNewHasher(t *testing.T) {
	h, err := NewHasher("")
	require.NoError(t, err)
	assert.Equal(t, SHA256, h.Name())
	_, err = NewHasher("md5")
	assert.Equal(t, ErrHashType, err)
	assert.Equal(t, []string{KECCAK256, SHA256, SHA3}, HashTypes())
	assert.Panics(t, func() { RegisterHashFunc(SHA256, h.fn) })
}

func TestLeafDomainSeparation(t *testing.T) {
	h := MustNewHasher(SHA256)
	nonce := testNonce(0)
	assert.NotEqual(t, h.LeafHash(0, false, nonce), h.LeafHash(0, true, nonce))
	assert.NotEqual(t, h.LeafHash(0, false, nonce), h.LeafHash(1, false, nonce))
	assert.NotEqual(t, h.LeafHash(25, false, nonce), h.PadLeaf(25))
	assert.Len(t, h.PadLeaf(31), HashSize)
}

func TestVerifyAllTiles(t *testing.T) {
	for _, name := range HashTypes() {
		h := MustNewHasher(name)
		mines := map[int]bool{5: true, 11: true, 24: true}
		tree := buildBoard(t, h, 25, mines)
		assert.Equal(t, 5, tree.Depth())
		for i := 0; i < 25; i++ {
			p := proofOf(t, tree, i, mines[i])
			assert.True(t, h.Verify(tree.Root(), 25, p), "%s tile %d", name, i)
			// 同一个位置不能证明为相反的值
			p.IsMine = !p.IsMine
			assert.False(t, h.Verify(tree.Root(), 25, p), "%s tile %d flipped", name, i)
		}
	}
}

func TestVerifySingleBitMutation(t *testing.T) {
	h := MustNewHasher(SHA256)
	mines := map[int]bool{5: true}
	tree := buildBoard(t, h, 25, mines)
	root := tree.Root()

	good := proofOf(t, tree, 6, false)
	require.True(t, h.Verify(root, 25, good))

	for bit := 0; bit < NonceSize*8; bit++ {
		p := proofOf(t, tree, 6, false)
		p.Nonce[bit/8] ^= 1 << uint(bit%8)
		assert.False(t, h.Verify(root, 25, p))
	}
	for l := 0; l < len(good.Branch); l++ {
		for bit := 0; bit < HashSize*8; bit += 7 {
			p := proofOf(t, tree, 6, false)
			p.Branch[l][bit/8] ^= 1 << uint(bit%8)
			assert.False(t, h.Verify(root, 25, p))
		}
	}
	for bit := 0; bit < 32; bit++ {
		p := proofOf(t, tree, 6, false)
		p.PathBits ^= 1 << uint(bit)
		assert.False(t, h.Verify(root, 25, p))

		p = proofOf(t, tree, 6, false)
		p.Index ^= 1 << uint(bit)
		assert.False(t, h.Verify(root, 25, p))
	}
	badRoot := append([]byte{}, root...)
	badRoot[31] ^= 1
	assert.False(t, h.Verify(badRoot, 25, good))
}

func TestVerifyMalformed(t *testing.T) {
	h := MustNewHasher(SHA256)
	tree := buildBoard(t, h, 25, nil)
	root := tree.Root()

	p := proofOf(t, tree, 3, false)
	p.Branch = p.Branch[:4]
	assert.False(t, h.Verify(root, 25, p))

	p = proofOf(t, tree, 3, false)
	p.Branch = append(p.Branch, make([]byte, HashSize))
	assert.False(t, h.Verify(root, 25, p))

	p = proofOf(t, tree, 3, false)
	p.Branch[0] = p.Branch[0][:31]
	assert.False(t, h.Verify(root, 25, p))

	p = proofOf(t, tree, 3, false)
	p.Nonce = p.Nonce[:31]
	assert.False(t, h.Verify(root, 25, p))

	assert.False(t, h.Verify(root[:31], 25, proofOf(t, tree, 3, false)))
	assert.False(t, h.Verify(root, 25, nil))
	// 索引超出棋盘
	assert.False(t, h.Verify(root, 3, proofOf(t, tree, 3, false)))
}

func TestPaddingSlotNotProvable(t *testing.T) {
	h := MustNewHasher(SHA256)
	tree := buildBoard(t, h, 25, nil)
	// 位置25是补齐叶子，任何nonce都不能把它证明为格子
	leaves := tree.levels[0]
	assert.Equal(t, h.PadLeaf(25), leaves[25])
	_, err := tree.Branch(25)
	assert.Equal(t, ErrLeafCount, err)
}

func TestHasherRootsDiffer(t *testing.T) {
	a := buildBoard(t, MustNewHasher(SHA256), 25, nil)
	b := buildBoard(t, MustNewHasher(SHA3), 25, nil)
	assert.NotEqual(t, a.Root(), b.Root())
}
