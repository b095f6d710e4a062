// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func startedPool(totalRewards, duration uint64) *Pool {
	rate := new(big.Int).Div(new(big.Int).SetUint64(totalRewards), new(big.Int).SetUint64(duration))
	return &Pool{
		ID:                1,
		Kind:              KindToken,
		TotalRewards:      new(big.Int).SetUint64(totalRewards),
		RewardRate:        rate,
		TotalStaked:       big.NewInt(0),
		AccRewardPerShare: big.NewInt(0),
		StartTime:         1, // 0 means not started, emission windows in tests start at 1
		EndTime:           1 + duration,
		LastUpdateTime:    1,
		Active:            true,
	}
}

func TestSettleIdempotent(t *testing.T) {
	p := startedPool(1000, 1000)
	p.TotalStaked = big.NewInt(100)

	p.Settle(501)
	acc := new(big.Int).Set(p.AccRewardPerShare)

	// same instant: no-op
	p.Settle(501)
	assert.Equal(t, 0, acc.Cmp(p.AccRewardPerShare))
	assert.Equal(t, uint64(501), p.LastUpdateTime)

	// time going backwards: no-op
	p.Settle(400)
	assert.Equal(t, 0, acc.Cmp(p.AccRewardPerShare))
}

func TestSettleMonotonic(t *testing.T) {
	p := startedPool(99_999, 777)
	p.TotalStaked = big.NewInt(31)

	prev := big.NewInt(-1)
	for now := uint64(1); now < 900; now += 13 {
		p.Settle(now)
		assert.True(t, p.AccRewardPerShare.Cmp(prev) >= 0, "accumulator decreased at t=%d", now)
		prev = new(big.Int).Set(p.AccRewardPerShare)
	}
}

func TestSettleEmptyPoolLosesTime(t *testing.T) {
	p := startedPool(1000, 1000)

	// empty pool: clock advances, accumulator does not
	p.Settle(500)
	assert.Equal(t, int64(0), p.AccRewardPerShare.Int64())
	assert.Equal(t, uint64(500), p.LastUpdateTime)

	// a later staker does not inherit the empty stretch
	p.TotalStaked = big.NewInt(100)
	p.Settle(600)
	expected := new(big.Int).Mul(big.NewInt(100), Scale) // 100s * rate 1 / 100 staked
	expected.Div(expected, big.NewInt(100))
	assert.Equal(t, 0, expected.Cmp(p.AccRewardPerShare))
}

func TestSettleClampsAtEnd(t *testing.T) {
	p := startedPool(1000, 1000)
	p.TotalStaked = big.NewInt(100)

	p.Settle(5000)
	assert.Equal(t, uint64(1001), p.LastUpdateTime)
	acc := new(big.Int).Set(p.AccRewardPerShare)

	// nothing accrues past the end
	p.Settle(9000)
	assert.Equal(t, 0, acc.Cmp(p.AccRewardPerShare))
}

func TestSettleNotStarted(t *testing.T) {
	p := &Pool{
		ID:                1,
		TotalRewards:      big.NewInt(1000),
		RewardRate:        big.NewInt(0),
		TotalStaked:       big.NewInt(100),
		AccRewardPerShare: big.NewInt(0),
	}
	p.Settle(100)
	assert.Equal(t, int64(0), p.AccRewardPerShare.Int64())
	assert.Equal(t, uint64(0), p.LastUpdateTime)
}

func TestAccRewardPerShareAtPreview(t *testing.T) {
	p := startedPool(1000, 1000)
	p.TotalStaked = big.NewInt(100)

	preview := p.AccRewardPerShareAt(501)
	assert.Equal(t, int64(0), p.AccRewardPerShare.Int64(), "preview must not mutate")
	assert.Equal(t, uint64(1), p.LastUpdateTime)

	p.Settle(501)
	assert.Equal(t, 0, preview.Cmp(p.AccRewardPerShare))
}
