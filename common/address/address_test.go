// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecAddress(t *testing.T) {
	addr := ExecAddress("mines")
	require.NoError(t, CheckAddress(addr))
	assert.Equal(t, addr, ExecAddress("mines"))
	assert.NotEqual(t, addr, ExecAddress("coins"))
}

func TestCheckAddress(t *testing.T) {
	require.NoError(t, CheckAddress("14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"))
	assert.Error(t, CheckAddress("14KEKbYtKKQm4wMthSK9J4La4nAiidGozu"))
	assert.Error(t, CheckAddress(""))
	assert.Error(t, CheckAddress("1"))

	a, err := NewAddrFromString("14KEKbYtKKQm4wMthSK9J4La4nAiidGozt")
	require.NoError(t, err)
	assert.Equal(t, "14KEKbYtKKQm4wMthSK9J4La4nAiidGozt", a.String())
}

func TestPubKeyToAddressRoundTrip(t *testing.T) {
	addr := PubKeyToAddress([]byte("some public key")).String()
	a, err := NewAddrFromString(addr)
	require.NoError(t, err)
	assert.Equal(t, PubKeyToAddress([]byte("some public key")).Hash160, a.Hash160)
}

func TestDeriveID(t *testing.T) {
	id1 := DeriveID("mines", "player", 1)
	assert.Len(t, id1, 32)
	assert.Equal(t, id1, DeriveID("mines", "player", 1))
	assert.NotEqual(t, id1, DeriveID("mines", "player", 2))
	assert.NotEqual(t, id1, DeriveID("mines", "player2", 1))
	assert.NotEqual(t, id1, DeriveID("minesx", "player", 1))
	// domain and creator are separated, "ab"+"c" differs from "a"+"bc"
	assert.NotEqual(t, DeriveID("ab", "c", 0), DeriveID("a", "bc", 0))
}

func TestVaultAddress(t *testing.T) {
	id := DeriveID("mines", "player", 1)
	v1 := VaultAddress("mines", id, DefaultVaultBump)
	require.NoError(t, CheckAddress(v1))
	assert.Equal(t, v1, VaultAddress("mines", id, DefaultVaultBump))
	assert.NotEqual(t, v1, VaultAddress("mines", id, DefaultVaultBump-1))
	assert.NotEqual(t, v1, VaultAddress("mines", DeriveID("mines", "player", 2), DefaultVaultBump))

	// 托管地址与普通地址版本号不同
	a, err := NewAddrFromString(v1)
	require.NoError(t, err)
	assert.Equal(t, VaultVer, a.Version)
	assert.True(t, IsVaultAddress(v1))
	assert.Equal(t, ErrVaultAddress, CheckUserAddress(v1))

	user := PubKeyToAddress([]byte("user")).String()
	assert.False(t, IsVaultAddress(user))
	assert.NoError(t, CheckUserAddress(user))
	assert.False(t, IsVaultAddress(ExecAddress("mines")))
	assert.False(t, IsVaultAddress("bad"))
	assert.Error(t, CheckUserAddress("bad"))
}
