// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package merkle 棋盘承诺的merkle树：叶子编码，路径校验，以及庄家侧的建树
package merkle

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

// HashSize 叶子，节点以及承诺的长度
const HashSize = 32

// NonceSize 每个叶子的随机盐长度
const NonceSize = 32

// MaxDepth 路径位用uint32表示
const MaxDepth = 32

var (
	leafTag = []byte("leaf")
	padTag  = []byte("pad")
)

// Depth 容纳n个叶子需要的层数 ceil(log2(n))
func Depth(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// LeafHash H("leaf" ‖ LE32(index) ‖ byte(isMine) ‖ nonce)
func (h *Hasher) LeafHash(index uint32, isMine bool, nonce []byte) []byte {
	var bindex [4]byte
	binary.LittleEndian.PutUint32(bindex[:], index)
	flag := []byte{0}
	if isMine {
		flag[0] = 1
	}
	return h.Sum(leafTag, bindex[:], flag, nonce)
}

// PadLeaf 棋盘之外，容量之内的位置使用的固定叶子 H("pad" ‖ LE32(index))
func (h *Hasher) PadLeaf(index uint32) []byte {
	var bindex [4]byte
	binary.LittleEndian.PutUint32(bindex[:], index)
	return h.Sum(padTag, bindex[:])
}

// GetHashFromTwoHash 计算左右节点hash的父hash
func (h *Hasher) GetHashFromTwoHash(left []byte, right []byte) []byte {
	if left == nil || right == nil {
		return nil
	}
	return h.Sum(left, right)
}

// GetMerkleRootFromBranch 通过branch获取roothash, 第l层pathBits的第l位为1表示当前节点是右孩子
func (h *Hasher) GetMerkleRootFromBranch(branch [][]byte, leaf []byte, pathBits uint32) []byte {
	hash := leaf
	for _, sibling := range branch {
		if (pathBits & 1) != 0 {
			hash = h.GetHashFromTwoHash(sibling, hash)
		} else {
			hash = h.GetHashFromTwoHash(hash, sibling)
		}
		pathBits >>= 1
	}
	return hash
}

// Proof 揭示一个格子需要的全部数据
type Proof struct {
	Index    uint32   `json:"index"`
	IsMine   bool     `json:"isMine"`
	Nonce    []byte   `json:"nonce"`
	Branch   [][]byte `json:"branch"`
	PathBits uint32   `json:"pathBits"`
}

// Verify checks p against commitment for a board of boardSize tiles.
// The branch length must be exactly Depth(boardSize) and pathBits must
// equal the tile index, so each index has exactly one leaf position.
func (h *Hasher) Verify(commitment []byte, boardSize int, p *Proof) bool {
	if p == nil || len(commitment) != HashSize || len(p.Nonce) != NonceSize {
		return false
	}
	if boardSize <= 0 || uint64(p.Index) >= uint64(boardSize) {
		return false
	}
	depth := Depth(boardSize)
	if depth > MaxDepth || len(p.Branch) != depth {
		return false
	}
	if p.PathBits != p.Index {
		return false
	}
	if depth < MaxDepth && p.PathBits>>uint(depth) != 0 {
		return false
	}
	for _, sibling := range p.Branch {
		if len(sibling) != HashSize {
			return false
		}
	}
	leaf := h.LeafHash(p.Index, p.IsMine, p.Nonce)
	root := h.GetMerkleRootFromBranch(p.Branch, leaf, p.PathBits)
	return bytes.Equal(root, commitment)
}
