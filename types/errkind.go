// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrorKind classifies a rejected operation. Every kind aborts the whole
// operation without partial writes.
type ErrorKind int

// error kinds
const (
	KindInternal ErrorKind = iota
	KindValidation
	KindPrecondition
	KindCryptographicMismatch
	KindOverflow
	KindUnauthorized
)

var kindNames = map[ErrorKind]string{
	KindInternal:              "Internal",
	KindValidation:            "ValidationError",
	KindPrecondition:          "PreconditionError",
	KindCryptographicMismatch: "CryptographicMismatch",
	KindOverflow:              "OverflowError",
	KindUnauthorized:          "Unauthorized",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

var (
	kindMu    sync.RWMutex
	errorKind = make(map[error]ErrorKind)
)

// RegisterErrorKind 把 sentinel error 归类
func RegisterErrorKind(kind ErrorKind, errs ...error) {
	kindMu.Lock()
	defer kindMu.Unlock()
	for _, err := range errs {
		errorKind[err] = kind
	}
}

// KindOf returns the kind of err after unwrapping pkg/errors context.
// Unregistered errors are Internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}
	cause := errors.Cause(err)
	kindMu.RLock()
	defer kindMu.RUnlock()
	if kind, ok := errorKind[cause]; ok {
		return kind
	}
	return KindInternal
}
