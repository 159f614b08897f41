// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"errors"
)

// ErrLeafCount 叶子数量超出范围
var ErrLeafCount = errors.New("ErrLeafCount")

// Tree 完全二叉树，叶子不足2^depth时用PadLeaf补齐
type Tree struct {
	hasher *Hasher
	depth  int
	size   int
	levels [][][]byte
}

// NewTree 由真实叶子构造树
func NewTree(h *Hasher, leaves [][]byte) (*Tree, error) {
	n := len(leaves)
	if n == 0 {
		return nil, ErrLeafCount
	}
	depth := Depth(n)
	if depth > 20 {
		return nil, ErrLeafCount
	}
	capacity := 1 << uint(depth)
	level := make([][]byte, capacity)
	for i := 0; i < capacity; i++ {
		if i < n {
			level[i] = leaves[i]
		} else {
			level[i] = h.PadLeaf(uint32(i))
		}
	}
	t := &Tree{hasher: h, depth: depth, size: n}
	t.levels = append(t.levels, level)
	for len(level) > 1 {
		next := make([][]byte, len(level)/2)
		for i := range next {
			next[i] = h.GetHashFromTwoHash(level[2*i], level[2*i+1])
		}
		t.levels = append(t.levels, next)
		level = next
	}
	return t, nil
}

// Root 承诺
func (t *Tree) Root() []byte {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Depth 层数
func (t *Tree) Depth() int {
	return t.depth
}

// Branch 从叶子到根的兄弟节点
func (t *Tree) Branch(index uint32) ([][]byte, error) {
	if uint64(index) >= uint64(t.size) {
		return nil, ErrLeafCount
	}
	branch := make([][]byte, 0, t.depth)
	pos := int(index)
	for l := 0; l < t.depth; l++ {
		branch = append(branch, t.levels[l][pos^1])
		pos >>= 1
	}
	return branch, nil
}
