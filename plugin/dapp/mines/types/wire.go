// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math"

	"github.com/33cn/mines/types"
	"github.com/pkg/errors"
)

// MarshalAppend ty=1, 负载字段 2..7 至多一个
func (m *MinesAction) MarshalAppend(b []byte) []byte {
	b = types.AppendInt32(b, 1, m.Ty)
	switch {
	case m.Start != nil:
		b = types.AppendMessage(b, 2, m.Start)
	case m.Reveal != nil:
		b = types.AppendMessage(b, 3, m.Reveal)
	case m.CashOut != nil:
		b = types.AppendMessage(b, 4, m.CashOut)
	case m.Collect != nil:
		b = types.AppendMessage(b, 5, m.Collect)
	case m.Abort != nil:
		b = types.AppendMessage(b, 6, m.Abort)
	case m.SetMinePositions != nil:
		b = types.AppendMessage(b, 7, m.SetMinePositions)
	}
	return b
}

// Unmarshal 同 oneof, 后出现的负载覆盖前面的
func (m *MinesAction) Unmarshal(data []byte) error {
	*m = MinesAction{}
	return types.UnmarshalFields(data, func(f *types.Field) error {
		if f.Num >= 2 && f.Num <= 7 {
			m.Start, m.Reveal, m.CashOut, m.Collect, m.Abort, m.SetMinePositions = nil, nil, nil, nil, nil, nil
		}
		switch f.Num {
		case 1:
			m.Ty = f.Int32()
		case 2:
			m.Start = &MinesStart{}
			f.Message(m.Start)
		case 3:
			m.Reveal = &MinesReveal{}
			f.Message(m.Reveal)
		case 4:
			m.CashOut = &MinesCashOut{}
			f.Message(m.CashOut)
		case 5:
			m.Collect = &MinesCollectHouse{}
			f.Message(m.Collect)
		case 6:
			m.Abort = &MinesAbortRefund{}
			f.Message(m.Abort)
		case 7:
			m.SetMinePositions = &MinesSetMinePositions{}
			f.Message(m.SetMinePositions)
		}
		return nil
	})
}

// MarshalAppend amount=1 numMines=2 commitment=3 house=4
func (m *MinesStart) MarshalAppend(b []byte) []byte {
	b = types.AppendInt64(b, 1, m.Amount)
	b = types.AppendUint32(b, 2, m.NumMines)
	b = types.AppendBytes(b, 3, m.Commitment)
	return types.AppendString(b, 4, m.House)
}

// Unmarshal decode
func (m *MinesStart) Unmarshal(data []byte) error {
	*m = MinesStart{}
	return types.UnmarshalFields(data, func(f *types.Field) error {
		switch f.Num {
		case 1:
			m.Amount = f.Int64()
		case 2:
			m.NumMines = f.Uint32()
		case 3:
			m.Commitment = f.Bytes()
		case 4:
			m.House = f.String()
		}
		return nil
	})
}

// MarshalAppend gameId=1 tileIndex=2 isMine=3 nonce=4 proof=5 pathBits=6
func (m *MinesReveal) MarshalAppend(b []byte) []byte {
	b = types.AppendString(b, 1, m.GameID)
	b = types.AppendUint32(b, 2, m.TileIndex)
	b = types.AppendUint32(b, 3, uint32(m.IsMine))
	b = types.AppendBytes(b, 4, m.Nonce)
	b = types.AppendRepeatedBytes(b, 5, m.Proof)
	return types.AppendUint32(b, 6, m.PathBits)
}

// Unmarshal decode
func (m *MinesReveal) Unmarshal(data []byte) error {
	*m = MinesReveal{}
	return types.UnmarshalFields(data, func(f *types.Field) error {
		switch f.Num {
		case 1:
			m.GameID = f.String()
		case 2:
			m.TileIndex = f.Uint32()
		case 3:
			v := f.Uint32()
			if v > math.MaxUint8 {
				return errors.Errorf("isMine %d out of range", v)
			}
			m.IsMine = uint8(v)
		case 4:
			m.Nonce = f.Bytes()
		case 5:
			m.Proof = append(m.Proof, f.Bytes())
		case 6:
			m.PathBits = f.Uint32()
		}
		return nil
	})
}

func unmarshalGameID(data []byte, id *string) error {
	*id = ""
	return types.UnmarshalFields(data, func(f *types.Field) error {
		if f.Num == 1 {
			*id = f.String()
		}
		return nil
	})
}

// MarshalAppend gameId=1
func (m *MinesCashOut) MarshalAppend(b []byte) []byte {
	return types.AppendString(b, 1, m.GameID)
}

// Unmarshal decode
func (m *MinesCashOut) Unmarshal(data []byte) error {
	return unmarshalGameID(data, &m.GameID)
}

// MarshalAppend gameId=1
func (m *MinesCollectHouse) MarshalAppend(b []byte) []byte {
	return types.AppendString(b, 1, m.GameID)
}

// Unmarshal decode
func (m *MinesCollectHouse) Unmarshal(data []byte) error {
	return unmarshalGameID(data, &m.GameID)
}

// MarshalAppend gameId=1
func (m *MinesAbortRefund) MarshalAppend(b []byte) []byte {
	return types.AppendString(b, 1, m.GameID)
}

// Unmarshal decode
func (m *MinesAbortRefund) Unmarshal(data []byte) error {
	return unmarshalGameID(data, &m.GameID)
}

// MarshalAppend gameId=1
func (req *ReqGameID) MarshalAppend(b []byte) []byte {
	return types.AppendString(b, 1, req.GameID)
}

// Unmarshal decode
func (req *ReqGameID) Unmarshal(data []byte) error {
	return unmarshalGameID(data, &req.GameID)
}

// MarshalAppend gameId=1 positions=2
func (m *MinesSetMinePositions) MarshalAppend(b []byte) []byte {
	b = types.AppendString(b, 1, m.GameID)
	return types.AppendPackedUint32(b, 2, m.Positions)
}

// Unmarshal decode
func (m *MinesSetMinePositions) Unmarshal(data []byte) error {
	*m = MinesSetMinePositions{}
	return types.UnmarshalFields(data, func(f *types.Field) error {
		switch f.Num {
		case 1:
			m.GameID = f.String()
		case 2:
			m.Positions = f.PackedUint32(m.Positions)
		}
		return nil
	})
}

// MarshalAppend 字段号按结构体顺序 1..12
func (r *ReceiptMines) MarshalAppend(b []byte) []byte {
	b = types.AppendString(b, 1, r.GameID)
	b = types.AppendString(b, 2, r.Player)
	b = types.AppendString(b, 3, r.House)
	b = types.AppendInt64(b, 4, r.Stake)
	b = types.AppendInt32(b, 5, r.Status)
	b = types.AppendInt32(b, 6, r.PrevStatus)
	b = types.AppendInt64(b, 7, r.Index)
	b = types.AppendInt64(b, 8, r.PrevIndex)
	b = types.AppendUint32(b, 9, r.TileIndex)
	b = types.AppendBool(b, 10, r.IsMine)
	b = types.AppendUint32(b, 11, r.RevealedCount)
	return types.AppendString(b, 12, r.Addr)
}

// Unmarshal decode
func (r *ReceiptMines) Unmarshal(data []byte) error {
	*r = ReceiptMines{}
	return types.UnmarshalFields(data, func(f *types.Field) error {
		switch f.Num {
		case 1:
			r.GameID = f.String()
		case 2:
			r.Player = f.String()
		case 3:
			r.House = f.String()
		case 4:
			r.Stake = f.Int64()
		case 5:
			r.Status = f.Int32()
		case 6:
			r.PrevStatus = f.Int32()
		case 7:
			r.Index = f.Int64()
		case 8:
			r.PrevIndex = f.Int64()
		case 9:
			r.TileIndex = f.Uint32()
		case 10:
			r.IsMine = f.Bool()
		case 11:
			r.RevealedCount = f.Uint32()
		case 12:
			r.Addr = f.String()
		}
		return nil
	})
}

// MarshalAppend 字段号按结构体顺序 1..8
func (s *GameSummary) MarshalAppend(b []byte) []byte {
	b = types.AppendString(b, 1, s.GameID)
	b = types.AppendString(b, 2, s.Player)
	b = types.AppendString(b, 3, s.House)
	b = types.AppendInt64(b, 4, s.Stake)
	b = types.AppendInt32(b, 5, s.Status)
	b = types.AppendInt64(b, 6, s.Index)
	b = types.AppendUint32(b, 7, s.Revealed)
	return types.AppendInt64(b, 8, s.UpdatedAt)
}

// Unmarshal decode
func (s *GameSummary) Unmarshal(data []byte) error {
	*s = GameSummary{}
	return types.UnmarshalFields(data, func(f *types.Field) error {
		switch f.Num {
		case 1:
			s.GameID = f.String()
		case 2:
			s.Player = f.String()
		case 3:
			s.House = f.String()
		case 4:
			s.Stake = f.Int64()
		case 5:
			s.Status = f.Int32()
		case 6:
			s.Index = f.Int64()
		case 7:
			s.Revealed = f.Uint32()
		case 8:
			s.UpdatedAt = f.Int64()
		}
		return nil
	})
}

// MarshalAppend addr=1 status=2 count=3 direction=4 index=5
func (req *ReqListGames) MarshalAppend(b []byte) []byte {
	b = types.AppendString(b, 1, req.Addr)
	b = types.AppendInt32(b, 2, req.Status)
	b = types.AppendInt32(b, 3, req.Count)
	b = types.AppendInt32(b, 4, req.Direction)
	return types.AppendInt64(b, 5, req.Index)
}

// Unmarshal decode
func (req *ReqListGames) Unmarshal(data []byte) error {
	*req = ReqListGames{}
	return types.UnmarshalFields(data, func(f *types.Field) error {
		switch f.Num {
		case 1:
			req.Addr = f.String()
		case 2:
			req.Status = f.Int32()
		case 3:
			req.Count = f.Int32()
		case 4:
			req.Direction = f.Int32()
		case 5:
			req.Index = f.Int64()
		}
		return nil
	})
}

// MarshalAppend addr=1 status=2
func (req *ReqGameCount) MarshalAppend(b []byte) []byte {
	b = types.AppendString(b, 1, req.Addr)
	return types.AppendInt32(b, 2, req.Status)
}

// Unmarshal decode
func (req *ReqGameCount) Unmarshal(data []byte) error {
	*req = ReqGameCount{}
	return types.UnmarshalFields(data, func(f *types.Field) error {
		switch f.Num {
		case 1:
			req.Addr = f.String()
		case 2:
			req.Status = f.Int32()
		}
		return nil
	})
}
