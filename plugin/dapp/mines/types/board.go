// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"os"
	"sort"

	"github.com/33cn/mines/common"
	"github.com/33cn/mines/common/merkle"
	"github.com/pkg/errors"
)

// Board 庄家保存的秘密棋盘. 公开 Commitment, 其余部分在揭示前不能泄露.
type Board struct {
	HashType   string   `json:"hashType"`
	BoardSize  int      `json:"boardSize"`
	Mines      []uint32 `json:"mines"`
	Nonces     []string `json:"nonces"`
	Commitment string   `json:"commitment"`

	hasher *merkle.Hasher
	isMine []bool
	tree   *merkle.Tree
}

// NewBoard 随机布雷并为每个格子生成 nonce
func NewBoard(hashType string, boardSize, numMines int) (*Board, error) {
	if boardSize < 2 || boardSize > MaxBoardSize {
		return nil, ErrInvalidFamily
	}
	if numMines <= 0 || numMines >= boardSize {
		return nil, ErrInvalidNumMines
	}
	mines, err := sampleMines(boardSize, numMines)
	if err != nil {
		return nil, err
	}
	return NewBoardWithMines(hashType, boardSize, mines)
}

// NewBoardWithMines 指定雷的位置, nonce 仍然随机
func NewBoardWithMines(hashType string, boardSize int, mines []uint32) (*Board, error) {
	if boardSize < 2 || boardSize > MaxBoardSize {
		return nil, ErrInvalidFamily
	}
	if len(mines) == 0 || len(mines) >= boardSize {
		return nil, ErrInvalidNumMines
	}
	hasher, err := merkle.NewHasher(hashType)
	if err != nil {
		return nil, err
	}
	b := &Board{
		HashType:  hasher.Name(),
		BoardSize: boardSize,
		Mines:     append([]uint32(nil), mines...),
		Nonces:    make([]string, boardSize),
	}
	sort.Slice(b.Mines, func(i, j int) bool { return b.Mines[i] < b.Mines[j] })
	for i := range b.Nonces {
		b.Nonces[i] = common.ToHex(common.GetRandBytes(merkle.NonceSize))
	}
	if err = b.build(); err != nil {
		return nil, err
	}
	return b, nil
}

// sampleMines 部分 Fisher-Yates, 返回排好序的雷的位置
func sampleMines(n, m int) ([]uint32, error) {
	tiles := make([]uint32, n)
	for i := range tiles {
		tiles[i] = uint32(i)
	}
	for i := 0; i < m; i++ {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(n-i)))
		if err != nil {
			return nil, errors.Wrap(err, "sampleMines")
		}
		k := i + int(j.Int64())
		tiles[i], tiles[k] = tiles[k], tiles[i]
	}
	mines := append([]uint32(nil), tiles[:m]...)
	sort.Slice(mines, func(a, b int) bool { return mines[a] < mines[b] })
	return mines, nil
}

func (b *Board) build() error {
	hasher, err := merkle.NewHasher(b.HashType)
	if err != nil {
		return err
	}
	if b.BoardSize < 2 || b.BoardSize > MaxBoardSize || len(b.Nonces) != b.BoardSize {
		return errors.Wrap(ErrInvalidFamily, "board size")
	}
	b.hasher = hasher
	b.isMine = make([]bool, b.BoardSize)
	for _, pos := range b.Mines {
		if int(pos) >= b.BoardSize || b.isMine[pos] {
			return errors.Wrapf(ErrInvalidNumMines, "mine position %d", pos)
		}
		b.isMine[pos] = true
	}
	leaves := make([][]byte, b.BoardSize)
	for i := range leaves {
		nonce, err := common.FromHex(b.Nonces[i])
		if err != nil || len(nonce) != merkle.NonceSize {
			return errors.Wrapf(ErrInvalidCommitment, "nonce %d", i)
		}
		leaves[i] = hasher.LeafHash(uint32(i), b.isMine[i], nonce)
	}
	b.tree, err = merkle.NewTree(hasher, leaves)
	if err != nil {
		return err
	}
	root := common.ToHex(b.tree.Root())
	if b.Commitment != "" && b.Commitment != root {
		return errors.Wrap(ErrInvalidCommitment, "board file does not match its commitment")
	}
	b.Commitment = root
	return nil
}

// CommitmentBytes 32 字节承诺
func (b *Board) CommitmentBytes() []byte {
	return b.tree.Root()
}

// NumMines 雷数
func (b *Board) NumMines() int {
	return len(b.Mines)
}

// IsMine 某个格子是否为雷
func (b *Board) IsMine(index uint32) bool {
	return int(index) < len(b.isMine) && b.isMine[index]
}

// Proof 导出一个格子的揭示证明
func (b *Board) Proof(index uint32) (*merkle.Proof, error) {
	if int(index) >= b.BoardSize {
		return nil, ErrInvalidTileIndex
	}
	branch, err := b.tree.Branch(index)
	if err != nil {
		return nil, err
	}
	nonce, err := common.FromHex(b.Nonces[index])
	if err != nil {
		return nil, err
	}
	return &merkle.Proof{
		Index:    index,
		IsMine:   b.isMine[index],
		Nonce:    nonce,
		Branch:   branch,
		PathBits: index,
	}, nil
}

// Reveal 构造揭示交易负载
func (b *Board) Reveal(gameID string, index uint32) (*MinesReveal, error) {
	p, err := b.Proof(index)
	if err != nil {
		return nil, err
	}
	reveal := &MinesReveal{
		GameID:    gameID,
		TileIndex: p.Index,
		Nonce:     p.Nonce,
		Proof:     p.Branch,
		PathBits:  p.PathBits,
	}
	if p.IsMine {
		reveal.IsMine = 1
	}
	return reveal, nil
}

// Save 写入文件, 权限 0600
func (b *Board) Save(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal board")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0600), "write board %s", path)
}

// LoadBoard 读取棋盘文件并校验承诺
func LoadBoard(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read board %s", path)
	}
	var b Board
	if err = json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrapf(err, "decode board %s", path)
	}
	if err = b.build(); err != nil {
		return nil, err
	}
	return &b, nil
}
