// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"math/big"

	"github.com/nextswap/staking-engine/staking/pool"
)

// LiquidityToken is one staked liquidity position. Its liquidity
// amount contributes to the position balance.
type LiquidityToken struct {
	ID        uint64
	Liquidity *big.Int
}

// Position is one owner's stake in one pool.
type Position struct {
	Balance          *big.Int
	RewardCheckpoint *big.Int // accumulator value at last settlement
	PendingRewards   *big.Int // settled but unclaimed
	TotalClaimed     *big.Int

	StakedAt      uint64
	LastClaimAt   uint64
	LastUnstakeAt uint64

	Tokens []LiquidityToken // staked liquidity positions, liquidity pools only
}

// NewPosition returns a zeroed position.
func NewPosition() *Position {
	return &Position{
		Balance:          big.NewInt(0),
		RewardCheckpoint: big.NewInt(0),
		PendingRewards:   big.NewInt(0),
		TotalClaimed:     big.NewInt(0),
	}
}

// IsEmpty returns whether the position holds nothing and owes nothing.
func (p *Position) IsEmpty() bool {
	return p.Balance.Sign() == 0 &&
		p.PendingRewards.Sign() == 0 &&
		p.TotalClaimed.Sign() == 0 &&
		len(p.Tokens) == 0
}

// TotalEarned returns everything the position ever accrued.
func (p *Position) TotalEarned() *big.Int {
	return new(big.Int).Add(p.TotalClaimed, p.PendingRewards)
}

// Settle banks the reward earned since the last checkpoint against the
// given accumulator value and moves the checkpoint. Mandatory before
// any balance change; skipping it misattributes accrued rewards.
func (p *Position) Settle(accRewardPerShare *big.Int) {
	earned := p.earnedSince(accRewardPerShare)
	if earned.Sign() > 0 {
		p.PendingRewards = new(big.Int).Add(p.PendingRewards, earned)
	}
	p.RewardCheckpoint = new(big.Int).Set(accRewardPerShare)
}

// PendingAt previews pending rewards against an accumulator value
// without mutating the position.
func (p *Position) PendingAt(accRewardPerShare *big.Int) *big.Int {
	return new(big.Int).Add(p.PendingRewards, p.earnedSince(accRewardPerShare))
}

func (p *Position) earnedSince(accRewardPerShare *big.Int) *big.Int {
	if p.Balance.Sign() == 0 {
		return big.NewInt(0)
	}
	earned := new(big.Int).Sub(accRewardPerShare, p.RewardCheckpoint)
	earned.Mul(earned, p.Balance)
	return earned.Div(earned, pool.Scale)
}

// Token returns the staked liquidity token with the given id, or nil.
func (p *Position) Token(id uint64) *LiquidityToken {
	for i := range p.Tokens {
		if p.Tokens[i].ID == id {
			return &p.Tokens[i]
		}
	}
	return nil
}

// RemoveToken drops the staked liquidity token with the given id.
func (p *Position) RemoveToken(id uint64) {
	for i := range p.Tokens {
		if p.Tokens[i].ID == id {
			p.Tokens = append(p.Tokens[:i], p.Tokens[i+1:]...)
			return
		}
	}
}
