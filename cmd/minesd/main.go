// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build go1.8
// +build go1.8

package main

import (
	_ "github.com/33cn/mines/plugin/init"
	"github.com/33cn/mines/util/cli"
)

func main() {
	cli.RunMines("")
}
