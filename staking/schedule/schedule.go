// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schedule

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Schedule is the linear release curve for one reward asset. It caps
// how much of the asset's total allocation may leave the system by a
// given time, across every pool drawing from that asset.
type Schedule struct {
	Asset            common.Address
	StartTime        uint64
	EndTime          uint64
	ClaimDeadline    uint64 // finalization allowed strictly after this
	TotalAllocation  *big.Int
	TotalAssigned    *big.Int // portion claimed by started pools
	TotalDistributed *big.Int
	Sink             common.Address // receiver of the finalization sweep
}

// IsEmpty returns whether the entry can be treated as empty.
func (s *Schedule) IsEmpty() bool {
	return s.TotalAllocation == nil || s.TotalAllocation.Sign() == 0
}

// Released returns the cumulative amount unlocked at the given time.
// Zero before start, the full allocation at or after end, and linear
// in between with truncating division. Monotonic, continuous at both
// boundaries.
func (s *Schedule) Released(now uint64) *big.Int {
	if now <= s.StartTime {
		return big.NewInt(0)
	}
	if now >= s.EndTime {
		return new(big.Int).Set(s.TotalAllocation)
	}
	elapsed := new(big.Int).SetUint64(now - s.StartTime)
	window := new(big.Int).SetUint64(s.EndTime - s.StartTime)
	released := new(big.Int).Mul(s.TotalAllocation, elapsed)
	return released.Div(released, window)
}

// Remainder returns the undistributed part of the allocation.
func (s *Schedule) Remainder() *big.Int {
	return new(big.Int).Sub(s.TotalAllocation, s.TotalDistributed)
}

// Unassigned returns the allocation not yet assigned to any pool.
func (s *Schedule) Unassigned() *big.Int {
	return new(big.Int).Sub(s.TotalAllocation, s.TotalAssigned)
}

// Covers reports whether the given emission window lies inside the
// schedule's release window.
func (s *Schedule) Covers(start, end uint64) bool {
	return start >= s.StartTime && end <= s.EndTime
}
