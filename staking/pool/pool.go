// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Scale is the fixed-point factor for AccRewardPerShare. All divisions
// on the reward path truncate; the conservation invariant depends on
// rounding down, so this must not change to round-to-nearest.
var Scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// MaxPools is the hard cap on the number of pools.
const MaxPools = 128

type Kind = uint8

const (
	KindUnknown   = Kind(iota) // 0 -> default value
	KindToken                  // stakes a fungible asset
	KindLiquidity              // stakes liquidity positions by their liquidity amount
)

// Pool is one independently configured staking pool.
type Pool struct {
	ID   uint64
	Name string
	Kind Kind

	StakeAsset  common.Address // zero for liquidity pools
	RewardAsset common.Address

	// liquidity pool admission criteria
	PairAssetA common.Address
	PairAssetB common.Address
	FeeTier    uint32

	TotalRewards      *big.Int
	RewardRate        *big.Int // per second, set exactly once at start
	TotalStaked       *big.Int
	AccRewardPerShare *big.Int // scaled by Scale, never decreases

	LastUpdateTime uint64
	StartTime      uint64 // 0 = not started
	EndTime        uint64

	MinDeposit     *big.Int
	CooldownPeriod uint64
	Active         bool
}

// IsEmpty returns whether the entry can be treated as empty.
func (p *Pool) IsEmpty() bool {
	return p.ID == 0
}

// Started returns whether emission has been started.
func (p *Pool) Started() bool {
	return p.StartTime != 0
}

// Ended returns whether the emission window is over.
func (p *Pool) Ended(now uint64) bool {
	return p.Started() && now >= p.EndTime
}

// Settle lazily advances the accumulator to the given time. Idempotent
// within the same instant. Time spent with an empty pool earns nothing
// and is permanently lost. Must run before any TotalStaked mutation.
func (p *Pool) Settle(now uint64) {
	if !p.Started() || now <= p.LastUpdateTime {
		return
	}
	if p.TotalStaked.Sign() == 0 {
		p.LastUpdateTime = now
		return
	}
	cutoff := min(now, p.EndTime)
	if cutoff <= p.LastUpdateTime {
		return
	}
	p.AccRewardPerShare = new(big.Int).Add(p.AccRewardPerShare, p.accrualPerShare(cutoff))
	p.LastUpdateTime = cutoff
}

// AccRewardPerShareAt previews the accumulator at the given time
// without mutating the pool.
func (p *Pool) AccRewardPerShareAt(now uint64) *big.Int {
	if !p.Started() || p.TotalStaked.Sign() == 0 {
		return new(big.Int).Set(p.AccRewardPerShare)
	}
	cutoff := min(now, p.EndTime)
	if cutoff <= p.LastUpdateTime {
		return new(big.Int).Set(p.AccRewardPerShare)
	}
	return new(big.Int).Add(p.AccRewardPerShare, p.accrualPerShare(cutoff))
}

func (p *Pool) accrualPerShare(cutoff uint64) *big.Int {
	elapsed := new(big.Int).SetUint64(cutoff - p.LastUpdateTime)
	accrued := new(big.Int).Mul(elapsed, p.RewardRate)
	accrued.Mul(accrued, Scale)
	return accrued.Div(accrued, p.TotalStaked)
}
