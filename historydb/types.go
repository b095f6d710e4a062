// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package historydb

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Action is one recorded engine mutation.
type Action struct {
	Time    uint64
	Op      string
	PoolID  uint64
	Owner   common.Address
	Amount  *big.Int
	TokenID uint64
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds actions by logical time, inclusive.
type Range struct {
	From uint64
	To   uint64
}

// Options paginates query results.
type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects recorded actions. Zero-valued fields match anything.
type Filter struct {
	Range   *Range
	PoolID  *uint64
	Owner   *common.Address
	Op      string
	Order   Order
	Options *Options
}
