// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nextswap/staking-engine/staking/cooldown"
	"github.com/nextswap/staking-engine/staking/pool"
	"github.com/nextswap/staking-engine/staking/position"
	"github.com/nextswap/staking-engine/staking/schedule"
)

// GetPool returns the pool, or an error when it does not exist.
func (e *Engine) GetPool(id uint64) (*pool.Pool, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()
	return e.pools.GetExisting(id)
}

// Pools returns every registered pool in id order.
func (e *Engine) Pools() ([]*pool.Pool, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()
	return e.pools.All()
}

// GetPosition returns the owner's position in the pool. A never-touched
// position comes back zeroed, not as an error.
func (e *Engine) GetPosition(poolID uint64, owner common.Address) (*position.Position, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()
	return e.positions.Get(poolID, owner)
}

// PendingRewards previews the rewards claimable at the given time
// without mutating anything.
func (e *Engine) PendingRewards(poolID uint64, owner common.Address, now uint64) (*big.Int, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()
	p, err := e.pools.GetExisting(poolID)
	if err != nil {
		return nil, err
	}
	pos, err := e.positions.Get(poolID, owner)
	if err != nil {
		return nil, err
	}
	return pos.PendingAt(p.AccRewardPerShareAt(now)), nil
}

// GetSchedule returns the release schedule of a reward asset.
func (e *Engine) GetSchedule(asset common.Address) (*schedule.Schedule, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()
	return e.issuer.GetExisting(asset)
}

// UnstakeRequests returns the owner's pending withdrawals in the pool,
// oldest first.
func (e *Engine) UnstakeRequests(poolID uint64, owner common.Address) ([]cooldown.Request, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()
	q, err := e.queues.Get(poolID, owner)
	if err != nil {
		return nil, err
	}
	return q.Requests, nil
}

// Unlockable returns the fungible amount the owner could unstake at the
// given time.
func (e *Engine) Unlockable(poolID uint64, owner common.Address, now uint64) (*big.Int, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()
	q, err := e.queues.Get(poolID, owner)
	if err != nil {
		return nil, err
	}
	return q.Unlockable(now), nil
}
