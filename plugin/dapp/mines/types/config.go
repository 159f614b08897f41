// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/mines/common/merkle"
	"github.com/33cn/mines/types"
	"github.com/pkg/errors"
)

// MaxBoardSize 编码时 boardSize 使用 u16, 建树深度不超过 10
const MaxBoardSize = 1024

// Family 一类游戏的固定参数, 来自 [exec.sub.mines]
type Family struct {
	BoardSize     int    `toml:"boardSize" json:"boardSize"`
	MaxMines      int    `toml:"maxMines" json:"maxMines"`
	ExpirySeconds int64  `toml:"expirySeconds" json:"expirySeconds"`
	HashType      string `toml:"hashType" json:"hashType"`
	MinAmount     int64  `toml:"minAmount" json:"minAmount"`
	MaxAmount     int64  `toml:"maxAmount" json:"maxAmount"`
}

// DefaultFamily 5x5 棋盘, 十分钟超时
func DefaultFamily() *Family {
	return &Family{
		BoardSize:     25,
		MaxMines:      24,
		ExpirySeconds: 600,
		HashType:      merkle.SHA256,
		MinAmount:     1,
		MaxAmount:     types.MaxCoin - 1,
	}
}

// LoadFamily 读取子配置, 缺省字段使用默认值
func LoadFamily(cfg *types.Config) (*Family, error) {
	f := DefaultFamily()
	if cfg != nil {
		err := cfg.DecodeSub(MinesX, f)
		if err != nil && err != types.ErrNotFound {
			return nil, err
		}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate 1 <= maxMines < boardSize, 超时为正, 金额范围合法
func (f *Family) Validate() error {
	if f.BoardSize < 2 || f.BoardSize > MaxBoardSize {
		return errors.Wrapf(ErrInvalidFamily, "boardSize %d", f.BoardSize)
	}
	if f.MaxMines < 1 || f.MaxMines >= f.BoardSize {
		return errors.Wrapf(ErrInvalidFamily, "maxMines %d", f.MaxMines)
	}
	if f.ExpirySeconds <= 0 {
		return errors.Wrapf(ErrInvalidFamily, "expirySeconds %d", f.ExpirySeconds)
	}
	if _, err := merkle.NewHasher(f.HashType); err != nil {
		return errors.Wrapf(ErrInvalidFamily, "hashType %s", f.HashType)
	}
	if f.MinAmount <= 0 || f.MaxAmount < f.MinAmount || f.MaxAmount >= types.MaxCoin {
		return errors.Wrapf(ErrInvalidFamily, "amount range [%d, %d]", f.MinAmount, f.MaxAmount)
	}
	return nil
}

// Depth 证明路径长度
func (f *Family) Depth() int {
	return merkle.Depth(f.BoardSize)
}

// Hasher 承诺使用的哈希
func (f *Family) Hasher() *merkle.Hasher {
	return merkle.MustNewHasher(f.HashType)
}
