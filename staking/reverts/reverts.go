// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation was rejected. Every rejection is
// detected before any state mutation, so a returned Revert always means
// the operation left no trace.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindLifecycle
	KindAuthorization
	KindInsufficientBalance
	KindCooldown
	KindIssuanceCap
	KindTransferFailure
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindLifecycle:
		return "lifecycle"
	case KindAuthorization:
		return "authorization"
	case KindInsufficientBalance:
		return "insufficient balance"
	case KindCooldown:
		return "cooldown"
	case KindIssuanceCap:
		return "issuance cap"
	case KindTransferFailure:
		return "transfer failure"
	}
	return "unknown"
}

// Revert is an operation rejection carrying its kind.
type Revert struct {
	kind    Kind
	message string
}

func (e *Revert) Error() string {
	return e.message
}

func (e *Revert) Kind() Kind {
	return e.kind
}

// New creates a revert of the given kind.
func New(kind Kind, message string) *Revert {
	return &Revert{kind: kind, message: message}
}

// Newf creates a revert of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Revert {
	return &Revert{kind: kind, message: fmt.Sprintf(format, args...)}
}

func Configuration(message string) *Revert {
	return New(KindConfiguration, message)
}

func Lifecycle(message string) *Revert {
	return New(KindLifecycle, message)
}

func Authorization(message string) *Revert {
	return New(KindAuthorization, message)
}

func InsufficientBalance(message string) *Revert {
	return New(KindInsufficientBalance, message)
}

func Cooldown(message string) *Revert {
	return New(KindCooldown, message)
}

func IssuanceCap(message string) *Revert {
	return New(KindIssuanceCap, message)
}

func TransferFailure(message string) *Revert {
	return New(KindTransferFailure, message)
}

// IsRevert reports whether err is (or wraps) a Revert.
func IsRevert(err error) bool {
	var re *Revert
	return errors.As(err, &re)
}

// Is reports whether err is a Revert of the given kind.
func Is(err error, kind Kind) bool {
	var re *Revert
	if !errors.As(err, &re) {
		return false
	}
	return re.kind == kind
}

// KindOf returns the kind of err, or KindUnknown for non-revert errors.
func KindOf(err error) Kind {
	var re *Revert
	if !errors.As(err, &re) {
		return KindUnknown
	}
	return re.kind
}
