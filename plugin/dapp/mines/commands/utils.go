// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/33cn/mines/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var coinPrecision = decimal.New(types.Coin, 0)

// parseCoins "1.5" -> 150000000, 小数位超过精度时报错
func parseCoins(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(types.ErrAmount, "parse %q", s)
	}
	v := d.Mul(coinPrecision)
	if !v.Equal(v.Truncate(0)) {
		return 0, errors.Wrapf(types.ErrAmount, "%s has more than 8 decimals", s)
	}
	if v.Sign() <= 0 || v.Cmp(decimal.New(types.MaxCoin, 0)) >= 0 {
		return 0, errors.Wrapf(types.ErrAmount, "%s out of range", s)
	}
	return v.IntPart(), nil
}

// formatCoins 150000000 -> "1.5000"
func formatCoins(amount int64) string {
	return decimal.New(amount, 0).Div(coinPrecision).StringFixed(4)
}
