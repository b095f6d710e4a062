// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/nextswap/staking-engine/staking/cooldown"
	"github.com/nextswap/staking-engine/staking/pool"
	"github.com/nextswap/staking-engine/staking/position"
)

// Pool is the JSON shape of one pool. Amounts are decimal strings.
type Pool struct {
	ID                uint64         `json:"id"`
	Name              string         `json:"name"`
	Kind              uint8          `json:"kind"`
	StakeAsset        common.Address `json:"stakeAsset"`
	RewardAsset       common.Address `json:"rewardAsset"`
	PairAssetA        common.Address `json:"pairAssetA"`
	PairAssetB        common.Address `json:"pairAssetB"`
	FeeTier           uint32         `json:"feeTier"`
	TotalRewards      string         `json:"totalRewards"`
	RewardRate        string         `json:"rewardRate"`
	TotalStaked       string         `json:"totalStaked"`
	AccRewardPerShare string         `json:"accRewardPerShare"`
	StartTime         uint64         `json:"startTime"`
	EndTime           uint64         `json:"endTime"`
	MinDeposit        string         `json:"minDeposit"`
	CooldownPeriod    uint64         `json:"cooldownPeriod"`
	Active            bool           `json:"active"`
}

func convertPool(p *pool.Pool) *Pool {
	return &Pool{
		ID:                p.ID,
		Name:              p.Name,
		Kind:              p.Kind,
		StakeAsset:        p.StakeAsset,
		RewardAsset:       p.RewardAsset,
		PairAssetA:        p.PairAssetA,
		PairAssetB:        p.PairAssetB,
		FeeTier:           p.FeeTier,
		TotalRewards:      p.TotalRewards.String(),
		RewardRate:        p.RewardRate.String(),
		TotalStaked:       p.TotalStaked.String(),
		AccRewardPerShare: p.AccRewardPerShare.String(),
		StartTime:         p.StartTime,
		EndTime:           p.EndTime,
		MinDeposit:        p.MinDeposit.String(),
		CooldownPeriod:    p.CooldownPeriod,
		Active:            p.Active,
	}
}

// LiquidityToken is the JSON shape of one staked liquidity position.
type LiquidityToken struct {
	ID        uint64 `json:"id"`
	Liquidity string `json:"liquidity"`
}

// Position is the JSON shape of one owner's stake in one pool.
type Position struct {
	Balance        string           `json:"balance"`
	PendingRewards string           `json:"pendingRewards"`
	TotalClaimed   string           `json:"totalClaimed"`
	StakedAt       uint64           `json:"stakedAt"`
	LastClaimAt    uint64           `json:"lastClaimAt"`
	LastUnstakeAt  uint64           `json:"lastUnstakeAt"`
	Tokens         []LiquidityToken `json:"tokens,omitempty"`
}

func convertPosition(pos *position.Position) *Position {
	res := &Position{
		Balance:        pos.Balance.String(),
		PendingRewards: pos.PendingRewards.String(),
		TotalClaimed:   pos.TotalClaimed.String(),
		StakedAt:       pos.StakedAt,
		LastClaimAt:    pos.LastClaimAt,
		LastUnstakeAt:  pos.LastUnstakeAt,
	}
	for _, tok := range pos.Tokens {
		res.Tokens = append(res.Tokens, LiquidityToken{ID: tok.ID, Liquidity: tok.Liquidity.String()})
	}
	return res
}

// UnstakeRequest is the JSON shape of one pending withdrawal.
type UnstakeRequest struct {
	Amount     string `json:"amount"`
	UnlockTime uint64 `json:"unlockTime"`
	TokenID    uint64 `json:"tokenID,omitempty"`
}

func convertRequests(reqs []cooldown.Request) []UnstakeRequest {
	res := make([]UnstakeRequest, 0, len(reqs))
	for _, req := range reqs {
		res = append(res, UnstakeRequest{
			Amount:     req.Amount.String(),
			UnlockTime: req.UnlockTime,
			TokenID:    req.TokenID,
		})
	}
	return res
}
