// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/mines/account"
	"github.com/33cn/mines/common"
	"github.com/33cn/mines/common/address"
	dbm "github.com/33cn/mines/common/db"
	"github.com/33cn/mines/common/merkle"
	mt "github.com/33cn/mines/plugin/dapp/mines/types"
	"github.com/33cn/mines/types"
	"github.com/pkg/errors"
)

// Action 一笔 mines 交易的执行上下文. 时间与调用者在构造时读取一次.
type Action struct {
	coinsAccount *account.DB
	db           dbm.KV
	txhash       []byte
	fromaddr     string
	blocktime    int64
	height       int64
	index        int
	execaddr     string
	family       *mt.Family
	hasher       *merkle.Hasher
}

// NewAction new
func NewAction(m *Mines, tx *types.Transaction, index int) *Action {
	return &Action{
		coinsAccount: m.GetCoinsAccount(),
		db:           m.GetStateDB(),
		txhash:       tx.Hash(),
		fromaddr:     tx.From,
		blocktime:    m.GetBlockTime(),
		height:       m.GetHeight(),
		index:        index,
		execaddr:     m.GetAddr(),
		family:       m.family,
		hasher:       m.hasher,
	}
}

// GetIndex height*MaxTxsPerHeight+index
func (action *Action) GetIndex() int64 {
	return action.height*types.MaxTxsPerHeight + int64(action.index)
}

func (action *Action) saveGame(g *Game) *types.KeyValue {
	kv := &types.KeyValue{Key: Key(g.ID), Value: EncodeGame(g)}
	action.db.Set(kv.Key, kv.Value)
	return kv
}

func (action *Action) deleteGame(g *Game) *types.KeyValue {
	kv := &types.KeyValue{Key: Key(g.ID), Value: nil}
	action.db.Set(kv.Key, kv.Value)
	return kv
}

func (action *Action) receiptMines(g *Game, status, prevStatus int32, prevIndex int64) *mt.ReceiptMines {
	return &mt.ReceiptMines{
		GameID:        g.ID,
		Player:        g.Player,
		House:         g.House,
		Stake:         g.Stake,
		Status:        status,
		PrevStatus:    prevStatus,
		Index:         g.Index,
		PrevIndex:     prevIndex,
		RevealedCount: uint32(g.RevealedCount),
	}
}

func receiptLog(ty int32, r *mt.ReceiptMines) *types.ReceiptLog {
	return &types.ReceiptLog{Ty: ty, Log: types.Encode(r)}
}

// reject 记录被拒绝的检查, 返回原错误
func (action *Action) reject(op, id string, err error) error {
	mlog.Error(op, "addr", action.fromaddr, "execaddr", action.execaddr, "id", id, "err", err)
	return err
}

func (action *Action) loadSeq(addr string) (int64, error) {
	value, err := action.db.Get(SeqKey(addr))
	if isNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var seq types.Int64
	if err = types.Decode(value, &seq); err != nil {
		return 0, err
	}
	return seq.Data, nil
}

// MinesStart 开局: 校验参数, 创建记录, 把押注转入新的托管账户
func (action *Action) MinesStart(start *mt.MinesStart) (*types.Receipt, error) {
	family := action.family
	if address.IsVaultAddress(action.fromaddr) {
		return nil, action.reject("MinesStart", "", types.ErrInvalidAddress)
	}
	if start.Amount <= 0 || start.Amount < family.MinAmount || start.Amount > family.MaxAmount {
		mlog.Error("MinesStart", "addr", action.fromaddr, "amount", start.Amount, "err", mt.ErrInvalidBetAmount)
		return nil, mt.ErrInvalidBetAmount
	}
	if start.NumMines == 0 || int64(start.NumMines) >= int64(family.BoardSize) || int64(start.NumMines) > int64(family.MaxMines) {
		mlog.Error("MinesStart", "addr", action.fromaddr, "numMines", start.NumMines, "err", mt.ErrInvalidNumMines)
		return nil, mt.ErrInvalidNumMines
	}
	if len(start.Commitment) != merkle.HashSize {
		return nil, action.reject("MinesStart", "", mt.ErrInvalidCommitmentLen)
	}
	// 庄家不能是玩家自己, 也不能是托管地址
	if address.CheckUserAddress(start.House) != nil || start.House == action.fromaddr {
		mlog.Error("MinesStart", "addr", action.fromaddr, "house", start.House, "err", mt.ErrInvalidHouse)
		return nil, mt.ErrInvalidHouse
	}

	seq, err := action.loadSeq(action.fromaddr)
	if err != nil {
		return nil, err
	}
	next, err := types.SafeAdd(seq, 1)
	if err != nil {
		mlog.Error("MinesStart", "addr", action.fromaddr, "seq", seq, "err", err)
		return nil, err
	}
	seq = next
	expiry, err := types.SafeAdd(action.blocktime, family.ExpirySeconds)
	if err != nil {
		mlog.Error("MinesStart", "addr", action.fromaddr, "blocktime", action.blocktime, "expiry", family.ExpirySeconds, "err", err)
		return nil, err
	}
	id := address.DeriveID(mt.MinesX, action.fromaddr, seq)
	game := &Game{
		ID:         common.Bytes2Hex(id),
		Seq:        seq,
		Player:     action.fromaddr,
		House:      start.House,
		Stake:      start.Amount,
		BoardSize:  family.BoardSize,
		MineCount:  int(start.NumMines),
		Commitment: common.CopyBytes(start.Commitment),
		Revealed:   make([]bool, family.BoardSize),
		Active:     true,
		State:      mt.StateCommitted,
		StartedAt:  action.blocktime,
		ExpiryAt:   expiry,
		Index:      action.GetIndex(),
		Vault:      Vault{Bump: address.DefaultVaultBump},
	}
	vaultAddr := game.VaultAddr()
	// 托管地址必须是全新的
	vacc, err := action.coinsAccount.LoadAccount(vaultAddr)
	if err != nil {
		return nil, err
	}
	if vacc.GetBalance() != 0 || vacc.GetFrozen() != 0 {
		mlog.Error("MinesStart", "addr", action.fromaddr, "vault", vaultAddr, "balance", vacc.GetBalance(), "err", mt.ErrVaultMismatch)
		return nil, mt.ErrVaultMismatch
	}

	receipt, err := action.coinsAccount.Transfer(action.fromaddr, vaultAddr, start.Amount)
	if err != nil {
		mlog.Error("MinesStart", "addr", action.fromaddr, "execaddr", action.execaddr, "amount", start.Amount, "err", err)
		return nil, err
	}
	game.Vault.Balance = start.Amount

	var logs []*types.ReceiptLog
	var kv []*types.KeyValue
	logs = append(logs, receipt.Logs...)
	kv = append(kv, receipt.KV...)

	seqkv := &types.KeyValue{Key: SeqKey(action.fromaddr), Value: types.Encode(&types.Int64{Data: seq})}
	action.db.Set(seqkv.Key, seqkv.Value)
	kv = append(kv, seqkv)
	kv = append(kv, action.saveGame(game))
	logs = append(logs, receiptLog(mt.TyLogMinesStart, action.receiptMines(game, mt.StatusActive, 0, 0)))
	mlog.Debug("MinesStart", "id", game.ID, "player", game.Player, "house", game.House, "stake", game.Stake)
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: logs}, nil
}

func (action *Action) readGame(id string) (*Game, error) {
	if id == "" {
		return nil, mt.ErrGameNotFound
	}
	value, err := action.db.Get(Key(id))
	if isNotFound(err) {
		return nil, mt.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return DecodeGame(id, value)
}

// MinesReveal 揭示一个格子, 证明通过后写入位图; 是雷则游戏结束
func (action *Action) MinesReveal(reveal *mt.MinesReveal) (*types.Receipt, error) {
	game, err := action.readGame(reveal.GameID)
	if err != nil {
		mlog.Error("MinesReveal", "addr", action.fromaddr, "id", reveal.GameID, "err", err)
		return nil, err
	}
	if action.fromaddr != game.Player {
		return nil, action.reject("MinesReveal", game.ID, mt.ErrNotPlayer)
	}
	if !game.Active {
		return nil, action.reject("MinesReveal", game.ID, mt.ErrGameNotActive)
	}
	if game.State != mt.StateCommitted {
		return nil, action.reject("MinesReveal", game.ID, mt.ErrGameNotRevealed)
	}
	if uint64(reveal.TileIndex) >= uint64(game.BoardSize) {
		return nil, action.reject("MinesReveal", game.ID, mt.ErrInvalidTileIndex)
	}
	if game.Revealed[reveal.TileIndex] {
		return nil, action.reject("MinesReveal", game.ID, mt.ErrTileAlreadyRevealed)
	}
	if reveal.IsMine > 1 {
		return nil, action.reject("MinesReveal", game.ID, mt.ErrInvalidCommitment)
	}
	proof := &merkle.Proof{
		Index:    reveal.TileIndex,
		IsMine:   reveal.IsMine == 1,
		Nonce:    reveal.Nonce,
		Branch:   reveal.Proof,
		PathBits: reveal.PathBits,
	}
	if !action.hasher.Verify(game.Commitment, game.BoardSize, proof) {
		mlog.Error("MinesReveal", "addr", action.fromaddr, "id", game.ID, "tile", reveal.TileIndex, "err", mt.ErrInvalidCommitment)
		return nil, mt.ErrInvalidCommitment
	}

	prevIndex := game.Index
	game.Revealed[reveal.TileIndex] = true
	game.RevealedCount++
	game.Index = action.GetIndex()
	ty := int32(mt.TyLogMinesReveal)
	if proof.IsMine {
		game.Active = false
		game.Lost = true
		game.State = mt.StateFinished
		ty = mt.TyLogMinesLost
	}
	r := action.receiptMines(game, game.Status(), mt.StatusActive, prevIndex)
	r.TileIndex = reveal.TileIndex
	r.IsMine = proof.IsMine
	log := receiptLog(ty, r)

	kv := []*types.KeyValue{action.saveGame(game)}
	mlog.Debug("MinesReveal", "id", game.ID, "tile", reveal.TileIndex, "mine", proof.IsMine, "count", game.RevealedCount)
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: []*types.ReceiptLog{log}}, nil
}

// settle 托管余额全部转给 to, 然后删除托管账户与游戏记录
func (action *Action) settle(game *Game, to string, ty int32, status int32) (*types.Receipt, error) {
	vaultAddr := game.VaultAddr()
	vacc, err := action.coinsAccount.LoadAccount(vaultAddr)
	if err != nil {
		return nil, err
	}
	if game.Vault.Balance != game.Stake || vacc.GetBalance() != game.Vault.Balance {
		mlog.Error("settle", "id", game.ID, "vault", vaultAddr, "recorded", game.Vault.Balance,
			"ledger", vacc.GetBalance(), "stake", game.Stake, "err", mt.ErrVaultMismatch)
		return nil, mt.ErrVaultMismatch
	}
	receipt, err := action.coinsAccount.Transfer(vaultAddr, to, game.Vault.Balance)
	if err != nil {
		mlog.Error("settle", "id", game.ID, "vault", vaultAddr, "to", to, "err", err)
		return nil, err
	}
	remove, err := action.coinsAccount.Remove(vaultAddr)
	if err != nil {
		return nil, err
	}
	receipt = types.MergeReceipt(receipt, remove)

	prevStatus := game.Status()
	prevIndex := game.Index
	game.Vault.Balance = 0
	game.Index = action.GetIndex()
	receipt.KV = append(receipt.KV, action.deleteGame(game))

	r := action.receiptMines(game, status, prevStatus, prevIndex)
	r.Addr = to
	receipt.Logs = append(receipt.Logs, receiptLog(ty, r))
	mlog.Debug("settle", "id", game.ID, "to", to, "amount", game.Stake, "status", mt.StatusName(status))
	return receipt, nil
}

// MinesCashOut 玩家至少揭示了一个安全格子后提走全部押注
func (action *Action) MinesCashOut(cashout *mt.MinesCashOut) (*types.Receipt, error) {
	game, err := action.readGame(cashout.GameID)
	if err != nil {
		mlog.Error("MinesCashOut", "addr", action.fromaddr, "id", cashout.GameID, "err", err)
		return nil, err
	}
	if action.fromaddr != game.Player {
		return nil, action.reject("MinesCashOut", game.ID, mt.ErrNotPlayer)
	}
	if game.Lost {
		return nil, action.reject("MinesCashOut", game.ID, mt.ErrPlayerLost)
	}
	if !game.Active {
		return nil, action.reject("MinesCashOut", game.ID, mt.ErrGameNotActive)
	}
	if game.RevealedCount == 0 {
		return nil, action.reject("MinesCashOut", game.ID, mt.ErrNothingToCashOut)
	}
	return action.settle(game, game.Player, mt.TyLogMinesCashOut, mt.StatusCashedOut)
}

// MinesCollectHouse 玩家踩雷后, 庄家收取托管余额
func (action *Action) MinesCollectHouse(collect *mt.MinesCollectHouse) (*types.Receipt, error) {
	game, err := action.readGame(collect.GameID)
	if err != nil {
		mlog.Error("MinesCollectHouse", "addr", action.fromaddr, "id", collect.GameID, "err", err)
		return nil, err
	}
	if action.fromaddr != game.House {
		return nil, action.reject("MinesCollectHouse", game.ID, mt.ErrNotHouse)
	}
	if !game.Lost {
		return nil, action.reject("MinesCollectHouse", game.ID, mt.ErrGameNotLost)
	}
	return action.settle(game, game.House, mt.TyLogMinesCollect, mt.StatusCollected)
}

// MinesAbortRefund 超时后玩家取回押注, 庄家未配合揭示时使用
func (action *Action) MinesAbortRefund(abort *mt.MinesAbortRefund) (*types.Receipt, error) {
	game, err := action.readGame(abort.GameID)
	if err != nil {
		mlog.Error("MinesAbortRefund", "addr", action.fromaddr, "id", abort.GameID, "err", err)
		return nil, err
	}
	if action.fromaddr != game.Player {
		return nil, action.reject("MinesAbortRefund", game.ID, mt.ErrNotPlayer)
	}
	if game.Lost {
		return nil, action.reject("MinesAbortRefund", game.ID, mt.ErrPlayerLost)
	}
	if !game.Active {
		return nil, action.reject("MinesAbortRefund", game.ID, mt.ErrGameNotActive)
	}
	if action.blocktime < game.ExpiryAt {
		mlog.Error("MinesAbortRefund", "addr", action.fromaddr, "id", game.ID, "now", action.blocktime, "expiry", game.ExpiryAt, "err", mt.ErrNotExpired)
		return nil, mt.ErrNotExpired
	}
	return action.settle(game, game.Player, mt.TyLogMinesRefund, mt.StatusRefunded)
}

// MinesSetMinePositions 旧接口, 直接公开棋盘会破坏公平性, 不再支持
func (action *Action) MinesSetMinePositions(set *mt.MinesSetMinePositions) (*types.Receipt, error) {
	return nil, action.reject("MinesSetMinePositions", set.GetGameID(), mt.ErrDeprecatedInstruction)
}

func isNotFound(err error) bool {
	cause := errors.Cause(err)
	return cause == types.ErrNotFound || cause == dbm.ErrNotFoundInDb
}
