// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Message 以 protobuf 线格式编码的消息, 字段号见各类型的 MarshalAppend.
// 零值字段不写出, 与 proto3 一致.
type Message interface {
	MarshalAppend(b []byte) []byte
	Unmarshal(data []byte) error
}

// Encode 编码
func Encode(msg Message) []byte {
	return msg.MarshalAppend(make([]byte, 0, 64))
}

// Size 消息大小
func Size(msg Message) int {
	return len(msg.MarshalAppend(nil))
}

// Decode 解码
func Decode(data []byte, msg Message) error {
	if err := msg.Unmarshal(data); err != nil {
		return errors.Wrap(ErrDecode, err.Error())
	}
	return nil
}

// AppendVarint 非零时写出 varint 字段
func AppendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// AppendInt64 int64 字段
func AppendInt64(b []byte, num protowire.Number, v int64) []byte {
	return AppendVarint(b, num, uint64(v))
}

// AppendInt32 int32 字段, 负数按 64 位符号扩展
func AppendInt32(b []byte, num protowire.Number, v int32) []byte {
	return AppendVarint(b, num, uint64(int64(v)))
}

// AppendUint32 uint32 字段
func AppendUint32(b []byte, num protowire.Number, v uint32) []byte {
	return AppendVarint(b, num, uint64(v))
}

// AppendBool bool 字段
func AppendBool(b []byte, num protowire.Number, v bool) []byte {
	return AppendVarint(b, num, protowire.EncodeBool(v))
}

// AppendBytes 非空时写出 bytes 字段
func AppendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// AppendString string 字段
func AppendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// AppendRepeatedBytes repeated bytes, 空元素也要写出
func AppendRepeatedBytes(b []byte, num protowire.Number, list [][]byte) []byte {
	for _, v := range list {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendBytes(b, v)
	}
	return b
}

// AppendPackedUint32 packed repeated uint32
func AppendPackedUint32(b []byte, num protowire.Number, list []uint32) []byte {
	if len(list) == 0 {
		return b
	}
	var packed []byte
	for _, v := range list {
		packed = protowire.AppendVarint(packed, uint64(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

// AppendMessage 嵌套消息, 调用者负责跳过 nil
func AppendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.MarshalAppend(nil))
}

// Field 解析出的一个字段. 取值方法在线类型不符时记录错误, 由 UnmarshalFields 返回.
type Field struct {
	Num  protowire.Number
	Type protowire.Type
	v    uint64
	b    []byte
	err  *error
}

func (f *Field) fail(format string, args ...interface{}) {
	if *f.err == nil {
		*f.err = errors.Errorf("field %d: "+format, append([]interface{}{f.Num}, args...)...)
	}
}

func (f *Field) want(typ protowire.Type) bool {
	if f.Type != typ {
		f.fail("wire type %d, want %d", f.Type, typ)
		return false
	}
	return true
}

// Uint64 varint
func (f *Field) Uint64() uint64 {
	if !f.want(protowire.VarintType) {
		return 0
	}
	return f.v
}

// Int64 int64
func (f *Field) Int64() int64 {
	return int64(f.Uint64())
}

// Int32 int32
func (f *Field) Int32() int32 {
	v := int64(f.Uint64())
	if v < math.MinInt32 || v > math.MaxInt32 {
		f.fail("int32 out of range")
		return 0
	}
	return int32(v)
}

// Uint32 uint32
func (f *Field) Uint32() uint32 {
	v := f.Uint64()
	if v > math.MaxUint32 {
		f.fail("uint32 out of range")
		return 0
	}
	return uint32(v)
}

// Bool 只接受 0 和 1
func (f *Field) Bool() bool {
	v := f.Uint64()
	if v > 1 {
		f.fail("bool out of range")
	}
	return v == 1
}

// Bytes 拷贝一份, 不引用输入缓冲
func (f *Field) Bytes() []byte {
	if !f.want(protowire.BytesType) {
		return nil
	}
	return append([]byte{}, f.b...)
}

// String string
func (f *Field) String() string {
	if !f.want(protowire.BytesType) {
		return ""
	}
	return string(f.b)
}

// Message 解码嵌套消息
func (f *Field) Message(m Message) {
	if !f.want(protowire.BytesType) {
		return
	}
	if err := m.Unmarshal(f.b); err != nil {
		f.fail("%v", err)
	}
}

// PackedUint32 packed 与非 packed 两种写法都接受
func (f *Field) PackedUint32(list []uint32) []uint32 {
	if f.Type == protowire.VarintType {
		return append(list, f.Uint32())
	}
	if !f.want(protowire.BytesType) {
		return list
	}
	data := f.b
	for len(data) > 0 {
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			f.fail("%v", protowire.ParseError(n))
			return list
		}
		if v > math.MaxUint32 {
			f.fail("uint32 out of range")
			return list
		}
		list = append(list, uint32(v))
		data = data[n:]
	}
	return list
}

// UnmarshalFields 按顺序把每个字段交给 fn. 未知字段由 fn 决定忽略还是报错.
func UnmarshalFields(data []byte, fn func(f *Field) error) error {
	var err error
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		f := Field{Num: num, Type: typ, err: &err}
		switch typ {
		case protowire.VarintType:
			f.v, n = protowire.ConsumeVarint(data)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(data)
			f.v = uint64(v)
		case protowire.Fixed64Type:
			f.v, n = protowire.ConsumeFixed64(data)
		case protowire.BytesType:
			f.b, n = protowire.ConsumeBytes(data)
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		if e := fn(&f); e != nil {
			return e
		}
		if err != nil {
			return err
		}
	}
	return nil
}
