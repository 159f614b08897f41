// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"encoding/binary"
	"fmt"

	"github.com/33cn/mines/common"
)

var (
	deriveSeed = []byte("derive id seed bytes")
	vaultSeed  = []byte("vault seed bytes for escrow")
)

// DefaultVaultBump the bump byte written into every new vault
const DefaultVaultBump = uint8(255)

// DeriveID deterministic 32 byte id for the seq-th object of creator in domain.
// It is a lookup key only; it carries no secrecy and grants no authority.
func DeriveID(domain, creator string, seq int64) []byte {
	var bseq [8]byte
	binary.LittleEndian.PutUint64(bseq[:], uint64(seq))
	buf := make([]byte, 0, len(deriveSeed)+len(domain)+len(creator)+10)
	buf = append(buf, deriveSeed...)
	buf = append(buf, []byte(domain)...)
	buf = append(buf, 0)
	buf = append(buf, []byte(creator)...)
	buf = append(buf, 0)
	buf = append(buf, bseq[:]...)
	return common.Sha256(buf)
}

// VaultAddress escrow account address bound to one object id.
// Its version byte is VaultVer so it can never pass CheckUserAddress.
func VaultAddress(domain string, id []byte, bump uint8) string {
	key := fmt.Sprintf("%s:%x:%d", domain, id, bump)
	if value, ok := addressCache.Get(key); ok {
		return value.(string)
	}
	buf := make([]byte, 0, len(vaultSeed)+len(domain)+len(id)+2)
	buf = append(buf, vaultSeed...)
	buf = append(buf, []byte(domain)...)
	buf = append(buf, 0)
	buf = append(buf, id...)
	buf = append(buf, bump)
	hash := common.Sha2Sum(buf)
	a := PubKeyToAddress(hash[:])
	a.Version = VaultVer
	addr := a.String()
	addressCache.Add(key, addr)
	return addr
}
