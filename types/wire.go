// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// MarshalAppend currency=1 balance=2 frozen=3 addr=4
func (acc *Account) MarshalAppend(b []byte) []byte {
	b = AppendInt32(b, 1, acc.Currency)
	b = AppendInt64(b, 2, acc.Balance)
	b = AppendInt64(b, 3, acc.Frozen)
	return AppendString(b, 4, acc.Addr)
}

// Unmarshal decode
func (acc *Account) Unmarshal(data []byte) error {
	*acc = Account{}
	return UnmarshalFields(data, func(f *Field) error {
		switch f.Num {
		case 1:
			acc.Currency = f.Int32()
		case 2:
			acc.Balance = f.Int64()
		case 3:
			acc.Frozen = f.Int64()
		case 4:
			acc.Addr = f.String()
		}
		return nil
	})
}

// MarshalAppend ty=1 log=2
func (l *ReceiptLog) MarshalAppend(b []byte) []byte {
	b = AppendInt32(b, 1, l.Ty)
	return AppendBytes(b, 2, l.Log)
}

// Unmarshal decode
func (l *ReceiptLog) Unmarshal(data []byte) error {
	*l = ReceiptLog{}
	return UnmarshalFields(data, func(f *Field) error {
		switch f.Num {
		case 1:
			l.Ty = f.Int32()
		case 2:
			l.Log = f.Bytes()
		}
		return nil
	})
}

// MarshalAppend ty=1 logs=2
func (r *ReceiptData) MarshalAppend(b []byte) []byte {
	b = AppendInt32(b, 1, r.Ty)
	for _, l := range r.Logs {
		if l != nil {
			b = AppendMessage(b, 2, l)
		}
	}
	return b
}

// Unmarshal decode
func (r *ReceiptData) Unmarshal(data []byte) error {
	*r = ReceiptData{}
	return UnmarshalFields(data, func(f *Field) error {
		switch f.Num {
		case 1:
			r.Ty = f.Int32()
		case 2:
			l := &ReceiptLog{}
			f.Message(l)
			r.Logs = append(r.Logs, l)
		}
		return nil
	})
}

// MarshalAppend prev=1 current=2
func (r *ReceiptAccountTransfer) MarshalAppend(b []byte) []byte {
	if r.Prev != nil {
		b = AppendMessage(b, 1, r.Prev)
	}
	if r.Current != nil {
		b = AppendMessage(b, 2, r.Current)
	}
	return b
}

// Unmarshal decode
func (r *ReceiptAccountTransfer) Unmarshal(data []byte) error {
	*r = ReceiptAccountTransfer{}
	return UnmarshalFields(data, func(f *Field) error {
		switch f.Num {
		case 1:
			r.Prev = &Account{}
			f.Message(r.Prev)
		case 2:
			r.Current = &Account{}
			f.Message(r.Current)
		}
		return nil
	})
}

// MarshalAppend addr=1
func (req *ReqAddr) MarshalAppend(b []byte) []byte {
	return AppendString(b, 1, req.Addr)
}

// Unmarshal decode
func (req *ReqAddr) Unmarshal(data []byte) error {
	*req = ReqAddr{}
	return UnmarshalFields(data, func(f *Field) error {
		if f.Num == 1 {
			req.Addr = f.String()
		}
		return nil
	})
}

// MarshalAppend data=1
func (i *Int64) MarshalAppend(b []byte) []byte {
	return AppendInt64(b, 1, i.Data)
}

// Unmarshal decode
func (i *Int64) Unmarshal(data []byte) error {
	*i = Int64{}
	return UnmarshalFields(data, func(f *Field) error {
		if f.Num == 1 {
			i.Data = f.Int64()
		}
		return nil
	})
}

// MarshalAppend execer=1 payload=2 from=3 nonce=4
func (tx *Transaction) MarshalAppend(b []byte) []byte {
	b = AppendString(b, 1, tx.Execer)
	b = AppendBytes(b, 2, tx.Payload)
	b = AppendString(b, 3, tx.From)
	return AppendInt64(b, 4, tx.Nonce)
}

// Unmarshal decode
func (tx *Transaction) Unmarshal(data []byte) error {
	*tx = Transaction{}
	return UnmarshalFields(data, func(f *Field) error {
		switch f.Num {
		case 1:
			tx.Execer = f.String()
		case 2:
			tx.Payload = f.Bytes()
		case 3:
			tx.From = f.String()
		case 4:
			tx.Nonce = f.Int64()
		}
		return nil
	})
}

// MarshalAppend height=1 index=2 blocktime=3 tx=4 receipt=5 actionName=6
func (r *TxResult) MarshalAppend(b []byte) []byte {
	b = AppendInt64(b, 1, r.Height)
	b = AppendInt32(b, 2, r.Index)
	b = AppendInt64(b, 3, r.Blocktime)
	if r.Tx != nil {
		b = AppendMessage(b, 4, r.Tx)
	}
	if r.Receipt != nil {
		b = AppendMessage(b, 5, r.Receipt)
	}
	return AppendString(b, 6, r.ActionName)
}

// Unmarshal decode
func (r *TxResult) Unmarshal(data []byte) error {
	*r = TxResult{}
	return UnmarshalFields(data, func(f *Field) error {
		switch f.Num {
		case 1:
			r.Height = f.Int64()
		case 2:
			r.Index = f.Int32()
		case 3:
			r.Blocktime = f.Int64()
		case 4:
			r.Tx = &Transaction{}
			f.Message(r.Tx)
		case 5:
			r.Receipt = &ReceiptData{}
			f.Message(r.Receipt)
		case 6:
			r.ActionName = f.String()
		}
		return nil
	})
}

// MarshalAppend hash=1 height=2 index=3 actionName=4
func (info *ReplyTxInfo) MarshalAppend(b []byte) []byte {
	b = AppendString(b, 1, info.Hash)
	b = AppendInt64(b, 2, info.Height)
	b = AppendInt64(b, 3, info.Index)
	return AppendString(b, 4, info.ActionName)
}

// Unmarshal decode
func (info *ReplyTxInfo) Unmarshal(data []byte) error {
	*info = ReplyTxInfo{}
	return UnmarshalFields(data, func(f *Field) error {
		switch f.Num {
		case 1:
			info.Hash = f.String()
		case 2:
			info.Height = f.Int64()
		case 3:
			info.Index = f.Int64()
		case 4:
			info.ActionName = f.String()
		}
		return nil
	})
}
