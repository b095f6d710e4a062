// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/nextswap/staking-engine/staking/pool"
	"github.com/nextswap/staking-engine/staking/position"
	"github.com/nextswap/staking-engine/staking/reverts"
)

// StakeItem is one entry of a batch stake.
type StakeItem struct {
	PoolID uint64
	Amount *big.Int
}

// ClaimResult is one pool's payout of a claim-all sweep.
type ClaimResult struct {
	PoolID uint64
	Asset  common.Address
	Amount *big.Int
}

// assetTotal accumulates transfer amounts per asset so a batch issues
// one vault transfer per asset instead of one per item.
type assetTotal struct {
	asset common.Address
	total *big.Int
}

func addIntent(intents []assetTotal, asset common.Address, amount *big.Int) []assetTotal {
	for i := range intents {
		if intents[i].asset == asset {
			intents[i].total = new(big.Int).Add(intents[i].total, amount)
			return intents
		}
	}
	return append(intents, assetTotal{asset: asset, total: new(big.Int).Set(amount)})
}

func (e *Engine) lockPositions(owner common.Address, poolIDs []uint64) (func(), error) {
	locked := make([]positionRef, 0, len(poolIDs))
	unlock := func() {
		for _, ref := range locked {
			e.unlockPosition(ref)
		}
	}
	for _, id := range poolIDs {
		ref := positionRef{pool: id, owner: owner}
		if err := e.lockPosition(ref); err != nil {
			unlock()
			return nil, err
		}
		locked = append(locked, ref)
	}
	return unlock, nil
}

//
// Fungible staking
//

// Stake deposits amount of the pool's stake asset for owner. The
// deposit is pulled from the owner through the vault; a failed pull
// reverts the whole operation.
func (e *Engine) Stake(caller, owner common.Address, poolID uint64, amount *big.Int, now uint64) error {
	if err := e.guardMutate(); err != nil {
		return err
	}
	if err := e.requireAuthorized(caller, owner); err != nil {
		return err
	}
	if err := e.requireNotBlocked(caller, owner); err != nil {
		return err
	}
	ref := positionRef{pool: poolID, owner: owner}
	if err := e.lockPosition(ref); err != nil {
		return err
	}
	defer e.unlockPosition(ref)

	err := e.atomically(func() error {
		asset, err := e.stakeOne(owner, poolID, amount, now)
		if err != nil {
			return err
		}
		if err := e.vault.TransferIn(asset, owner, amount); err != nil {
			return reverts.TransferFailure(err.Error())
		}
		return nil
	})
	if err != nil {
		logger.Debug("stake failed", "pool", poolID, "owner", owner, "error", err)
		return err
	}

	e.record(&Record{Time: now, Op: OpStake, PoolID: poolID, Owner: owner, Amount: amount})
	logger.Info("staked", "pool", poolID, "owner", owner, "amount", amount)
	return nil
}

// stakeOne validates and applies one fungible deposit, returning the
// pool's stake asset for the caller to transfer. No external calls.
func (e *Engine) stakeOne(owner common.Address, poolID uint64, amount *big.Int, now uint64) (common.Address, error) {
	p, err := e.pools.GetExisting(poolID)
	if err != nil {
		return common.Address{}, err
	}
	if p.Kind != pool.KindToken {
		return common.Address{}, reverts.Configuration("pool does not stake a fungible asset")
	}
	if !p.Active {
		return common.Address{}, reverts.Lifecycle("pool is not active")
	}
	if !p.Started() {
		return common.Address{}, reverts.Lifecycle("pool has not started")
	}
	if p.Ended(now) {
		return common.Address{}, reverts.Lifecycle("pool emission has ended")
	}
	if amount == nil || amount.Sign() <= 0 {
		return common.Address{}, reverts.InsufficientBalance("stake amount must be positive")
	}
	if amount.Cmp(p.MinDeposit) < 0 {
		return common.Address{}, reverts.InsufficientBalance("stake below pool minimum deposit")
	}

	pos, err := e.positions.Get(poolID, owner)
	if err != nil {
		return common.Address{}, err
	}

	p.Settle(now)
	pos.Settle(p.AccRewardPerShare)

	pos.Balance = new(big.Int).Add(pos.Balance, amount)
	if pos.StakedAt == 0 {
		pos.StakedAt = now
	}
	p.TotalStaked = new(big.Int).Add(p.TotalStaked, amount)

	if err := e.pools.Set(p); err != nil {
		return common.Address{}, err
	}
	if err := e.positions.Set(poolID, owner, pos); err != nil {
		return common.Address{}, err
	}
	return p.StakeAsset, nil
}

// RequestUnstake queues a withdrawal of amount from the position. The
// amount keeps earning until the request is executed but cannot be
// requested again.
func (e *Engine) RequestUnstake(caller, owner common.Address, poolID uint64, amount *big.Int, now uint64) error {
	if err := e.guardMutate(); err != nil {
		return err
	}
	if err := e.requireAuthorized(caller, owner); err != nil {
		return err
	}
	ref := positionRef{pool: poolID, owner: owner}
	if err := e.lockPosition(ref); err != nil {
		return err
	}
	defer e.unlockPosition(ref)

	err := e.atomically(func() error {
		p, err := e.pools.GetExisting(poolID)
		if err != nil {
			return err
		}
		if p.Kind != pool.KindToken {
			return reverts.Configuration("pool does not stake a fungible asset")
		}
		if amount == nil || amount.Sign() <= 0 {
			return reverts.InsufficientBalance("unstake amount must be positive")
		}

		pos, err := e.positions.Get(poolID, owner)
		if err != nil {
			return err
		}
		q, err := e.queues.Get(poolID, owner)
		if err != nil {
			return err
		}
		available := new(big.Int).Sub(pos.Balance, q.Reserved())
		if available.Cmp(amount) < 0 {
			return reverts.InsufficientBalance("amount exceeds unreserved balance")
		}

		q.Push(amount, now+p.CooldownPeriod, 0)
		return e.queues.Set(poolID, owner, q)
	})
	if err != nil {
		logger.Debug("request unstake failed", "pool", poolID, "owner", owner, "error", err)
		return err
	}

	e.record(&Record{Time: now, Op: OpRequestUnstake, PoolID: poolID, Owner: owner, Amount: amount})
	logger.Info("requested unstake", "pool", poolID, "owner", owner, "amount", amount)
	return nil
}

// Unstake executes matured withdrawal requests for amount and returns
// the stake asset to the owner. The amount must be covered by matured
// requests; it is never clamped down to what has matured.
func (e *Engine) Unstake(caller, owner common.Address, poolID uint64, amount *big.Int, now uint64) error {
	if err := e.guardMutate(); err != nil {
		return err
	}
	if err := e.requireAuthorized(caller, owner); err != nil {
		return err
	}
	ref := positionRef{pool: poolID, owner: owner}
	if err := e.lockPosition(ref); err != nil {
		return err
	}
	defer e.unlockPosition(ref)

	err := e.atomically(func() error {
		p, err := e.pools.GetExisting(poolID)
		if err != nil {
			return err
		}
		if p.Kind != pool.KindToken {
			return reverts.Configuration("pool does not stake a fungible asset")
		}

		pos, err := e.positions.Get(poolID, owner)
		if err != nil {
			return err
		}
		q, err := e.queues.Get(poolID, owner)
		if err != nil {
			return err
		}

		p.Settle(now)
		pos.Settle(p.AccRewardPerShare)

		if err := q.Consume(amount, now); err != nil {
			return err
		}

		pos.Balance = new(big.Int).Sub(pos.Balance, amount)
		pos.LastUnstakeAt = now
		p.TotalStaked = new(big.Int).Sub(p.TotalStaked, amount)

		if err := e.pools.Set(p); err != nil {
			return err
		}
		if err := e.positions.Set(poolID, owner, pos); err != nil {
			return err
		}
		if err := e.queues.Set(poolID, owner, q); err != nil {
			return err
		}
		if err := e.vault.TransferOut(p.StakeAsset, owner, amount); err != nil {
			return reverts.TransferFailure(err.Error())
		}
		return nil
	})
	if err != nil {
		logger.Debug("unstake failed", "pool", poolID, "owner", owner, "error", err)
		return err
	}

	e.record(&Record{Time: now, Op: OpUnstake, PoolID: poolID, Owner: owner, Amount: amount})
	logger.Info("unstaked", "pool", poolID, "owner", owner, "amount", amount)
	return nil
}

//
// Claims
//

// ClaimRewards pays out the position's settled rewards. Claiming with
// nothing pending is an error, not a silent no-op.
func (e *Engine) ClaimRewards(caller, owner common.Address, poolID uint64, now uint64) (*big.Int, error) {
	if err := e.guardMutate(); err != nil {
		return nil, err
	}
	if err := e.requireAuthorized(caller, owner); err != nil {
		return nil, err
	}
	if err := e.requireNotBlocked(caller, owner); err != nil {
		return nil, err
	}
	ref := positionRef{pool: poolID, owner: owner}
	if err := e.lockPosition(ref); err != nil {
		return nil, err
	}
	defer e.unlockPosition(ref)

	var claimed *big.Int
	err := e.atomically(func() error {
		amount, asset, err := e.claimOne(owner, poolID, now)
		if err != nil {
			return err
		}
		if err := e.vault.TransferOut(asset, owner, amount); err != nil {
			return reverts.TransferFailure(err.Error())
		}
		claimed = amount
		return nil
	})
	if err != nil {
		logger.Debug("claim failed", "pool", poolID, "owner", owner, "error", err)
		return nil, err
	}

	e.record(&Record{Time: now, Op: OpClaim, PoolID: poolID, Owner: owner, Amount: claimed})
	logger.Info("claimed rewards", "pool", poolID, "owner", owner, "amount", claimed)
	return claimed, nil
}

// claimOne settles and zeroes one position's pending rewards, gated by
// the reward asset's release schedule. No external calls.
func (e *Engine) claimOne(owner common.Address, poolID uint64, now uint64) (*big.Int, common.Address, error) {
	p, err := e.pools.GetExisting(poolID)
	if err != nil {
		return nil, common.Address{}, err
	}
	pos, err := e.positions.Get(poolID, owner)
	if err != nil {
		return nil, common.Address{}, err
	}

	p.Settle(now)
	pos.Settle(p.AccRewardPerShare)

	amount := pos.PendingRewards
	if amount.Sign() == 0 {
		return nil, common.Address{}, reverts.InsufficientBalance("no rewards to claim")
	}
	if err := e.issuer.Authorize(p.RewardAsset, amount, now); err != nil {
		return nil, common.Address{}, err
	}

	pos.PendingRewards = big.NewInt(0)
	pos.TotalClaimed = new(big.Int).Add(pos.TotalClaimed, amount)
	pos.LastClaimAt = now

	if err := e.pools.Set(p); err != nil {
		return nil, common.Address{}, err
	}
	if err := e.positions.Set(poolID, owner, pos); err != nil {
		return nil, common.Address{}, err
	}
	return amount, p.RewardAsset, nil
}

//
// Batch operations
//

// BatchStake applies all items or none. Pulls are aggregated into one
// vault transfer per stake asset.
func (e *Engine) BatchStake(caller, owner common.Address, items []StakeItem, now uint64) error {
	if err := e.guardMutate(); err != nil {
		return err
	}
	if err := e.requireAuthorized(caller, owner); err != nil {
		return err
	}
	if err := e.requireNotBlocked(caller, owner); err != nil {
		return err
	}
	if len(items) == 0 {
		return reverts.Configuration("empty batch")
	}
	poolIDs := make([]uint64, len(items))
	for i := range items {
		poolIDs[i] = items[i].PoolID
	}
	unlock, err := e.lockPositions(owner, poolIDs)
	if err != nil {
		return err
	}
	defer unlock()

	err = e.atomically(func() error {
		var intents []assetTotal
		for _, item := range items {
			asset, err := e.stakeOne(owner, item.PoolID, item.Amount, now)
			if err != nil {
				return errors.Wrapf(err, "pool %d", item.PoolID)
			}
			intents = addIntent(intents, asset, item.Amount)
		}
		for _, in := range intents {
			if err := e.vault.TransferIn(in.asset, owner, in.total); err != nil {
				return reverts.TransferFailure(err.Error())
			}
		}
		return nil
	})
	if err != nil {
		logger.Debug("batch stake failed", "owner", owner, "items", len(items), "error", err)
		return err
	}

	for _, item := range items {
		e.record(&Record{Time: now, Op: OpStake, PoolID: item.PoolID, Owner: owner, Amount: item.Amount})
	}
	logger.Info("batch staked", "owner", owner, "items", len(items))
	return nil
}

// BatchClaimRewards claims from all named pools or none. Payouts are
// aggregated into one vault transfer per reward asset.
func (e *Engine) BatchClaimRewards(caller, owner common.Address, poolIDs []uint64, now uint64) ([]*ClaimResult, error) {
	if err := e.guardMutate(); err != nil {
		return nil, err
	}
	if err := e.requireAuthorized(caller, owner); err != nil {
		return nil, err
	}
	if err := e.requireNotBlocked(caller, owner); err != nil {
		return nil, err
	}
	if len(poolIDs) == 0 {
		return nil, reverts.Configuration("empty batch")
	}
	unlock, err := e.lockPositions(owner, poolIDs)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var results []*ClaimResult
	err = e.atomically(func() error {
		var intents []assetTotal
		for _, id := range poolIDs {
			amount, asset, err := e.claimOne(owner, id, now)
			if err != nil {
				return errors.Wrapf(err, "pool %d", id)
			}
			results = append(results, &ClaimResult{PoolID: id, Asset: asset, Amount: amount})
			intents = addIntent(intents, asset, amount)
		}
		for _, in := range intents {
			if err := e.vault.TransferOut(in.asset, owner, in.total); err != nil {
				return reverts.TransferFailure(err.Error())
			}
		}
		return nil
	})
	if err != nil {
		logger.Debug("batch claim failed", "owner", owner, "pools", len(poolIDs), "error", err)
		return nil, err
	}

	for _, res := range results {
		e.record(&Record{Time: now, Op: OpClaim, PoolID: res.PoolID, Owner: owner, Amount: res.Amount})
	}
	logger.Info("batch claimed", "owner", owner, "pools", len(poolIDs))
	return results, nil
}

// touchedPools lists the pools the owner has a non-empty position in.
func (e *Engine) touchedPools(owner common.Address) ([]uint64, error) {
	e.opMu.RLock()
	defer e.opMu.RUnlock()

	all, err := e.pools.All()
	if err != nil {
		return nil, err
	}
	poolIDs := make([]uint64, 0, len(all))
	for _, p := range all {
		pos, err := e.positions.Get(p.ID, owner)
		if err != nil {
			return nil, err
		}
		if !pos.IsEmpty() {
			poolIDs = append(poolIDs, p.ID)
		}
	}
	return poolIDs, nil
}

// ClaimAll sweeps claimable rewards across every pool the owner has a
// position in. Pools that cannot pay out right now are skipped rather
// than failing the sweep; only a vault failure aborts everything.
func (e *Engine) ClaimAll(caller, owner common.Address, now uint64) ([]*ClaimResult, error) {
	if err := e.guardMutate(); err != nil {
		return nil, err
	}
	if err := e.requireAuthorized(caller, owner); err != nil {
		return nil, err
	}
	if err := e.requireNotBlocked(caller, owner); err != nil {
		return nil, err
	}

	poolIDs, err := e.touchedPools(owner)
	if err != nil {
		return nil, err
	}
	unlock, err := e.lockPositions(owner, poolIDs)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var results []*ClaimResult
	err = e.atomically(func() error {
		var intents []assetTotal
		for _, id := range poolIDs {
			cp := e.state.NewCheckpoint()
			amount, asset, err := e.claimOne(owner, id, now)
			if err != nil {
				e.state.RevertTo(cp)
				logger.Debug("claim-all skipped pool", "pool", id, "owner", owner, "error", err)
				continue
			}
			results = append(results, &ClaimResult{PoolID: id, Asset: asset, Amount: amount})
			intents = addIntent(intents, asset, amount)
		}
		for _, in := range intents {
			if err := e.vault.TransferOut(in.asset, owner, in.total); err != nil {
				return reverts.TransferFailure(err.Error())
			}
		}
		return nil
	})
	if err != nil {
		logger.Debug("claim-all failed", "owner", owner, "error", err)
		return nil, err
	}

	for _, res := range results {
		e.record(&Record{Time: now, Op: OpClaim, PoolID: res.PoolID, Owner: owner, Amount: res.Amount})
	}
	logger.Info("claimed all", "owner", owner, "pools", len(results))
	return results, nil
}

//
// Liquidity staking
//

// StakeLiquidity deposits a liquidity position into a liquidity pool.
// The token's liquidity amount becomes stake balance.
func (e *Engine) StakeLiquidity(caller, owner common.Address, poolID, tokenID, now uint64) error {
	if err := e.guardMutate(); err != nil {
		return err
	}
	if err := e.requireAuthorized(caller, owner); err != nil {
		return err
	}
	if err := e.requireNotBlocked(caller, owner); err != nil {
		return err
	}
	if e.liquidity == nil {
		return reverts.Configuration("no liquidity provider configured")
	}
	ref := positionRef{pool: poolID, owner: owner}
	if err := e.lockPosition(ref); err != nil {
		return err
	}
	defer e.unlockPosition(ref)

	var staked *big.Int
	err := e.atomically(func() error {
		p, err := e.pools.GetExisting(poolID)
		if err != nil {
			return err
		}
		if p.Kind != pool.KindLiquidity {
			return reverts.Configuration("pool does not stake liquidity positions")
		}
		if !p.Active {
			return reverts.Lifecycle("pool is not active")
		}
		if !p.Started() {
			return reverts.Lifecycle("pool has not started")
		}
		if p.Ended(now) {
			return reverts.Lifecycle("pool emission has ended")
		}

		// queue entries use token id zero for fungible amounts
		if tokenID == 0 {
			return reverts.Configuration("liquidity token id must be positive")
		}

		tokOwner, err := e.liquidity.OwnerOf(tokenID)
		if err != nil {
			return errors.Wrap(err, "owner of liquidity token")
		}
		if tokOwner != owner {
			operator, err := e.liquidity.OperatorOf(tokenID)
			if err != nil {
				return errors.Wrap(err, "operator of liquidity token")
			}
			if operator != owner {
				return reverts.Authorization("owner neither holds nor operates liquidity token")
			}
		}
		info, err := e.liquidity.PositionInfo(tokenID)
		if err != nil {
			return errors.Wrap(err, "liquidity position info")
		}
		if info.FeeTier != p.FeeTier || !pairMatches(info, p) {
			return reverts.Configuration("liquidity position does not match pool criteria")
		}
		if info.Liquidity == nil || info.Liquidity.Sign() <= 0 {
			return reverts.InsufficientBalance("liquidity position is empty")
		}
		if info.Liquidity.Cmp(p.MinDeposit) < 0 {
			return reverts.InsufficientBalance("liquidity below pool minimum deposit")
		}

		pos, err := e.positions.Get(poolID, owner)
		if err != nil {
			return err
		}
		if pos.Token(tokenID) != nil {
			return reverts.Configuration("liquidity token already staked")
		}

		p.Settle(now)
		pos.Settle(p.AccRewardPerShare)

		pos.Tokens = append(pos.Tokens, position.LiquidityToken{
			ID:        tokenID,
			Liquidity: new(big.Int).Set(info.Liquidity),
		})
		pos.Balance = new(big.Int).Add(pos.Balance, info.Liquidity)
		if pos.StakedAt == 0 {
			pos.StakedAt = now
		}
		p.TotalStaked = new(big.Int).Add(p.TotalStaked, info.Liquidity)

		if err := e.pools.Set(p); err != nil {
			return err
		}
		if err := e.positions.Set(poolID, owner, pos); err != nil {
			return err
		}
		if err := e.liquidity.TransferIn(tokenID, tokOwner); err != nil {
			return reverts.TransferFailure(err.Error())
		}
		staked = info.Liquidity
		return nil
	})
	if err != nil {
		logger.Debug("stake liquidity failed", "pool", poolID, "owner", owner, "token", tokenID, "error", err)
		return err
	}

	e.record(&Record{Time: now, Op: OpStakeLiquidity, PoolID: poolID, Owner: owner, Amount: staked, TokenID: tokenID})
	logger.Info("staked liquidity", "pool", poolID, "owner", owner, "token", tokenID, "liquidity", staked)
	return nil
}

func pairMatches(info *LiquidityInfo, p *pool.Pool) bool {
	if info.AssetA == p.PairAssetA && info.AssetB == p.PairAssetB {
		return true
	}
	return info.AssetA == p.PairAssetB && info.AssetB == p.PairAssetA
}

// RequestUnstakeLiquidity queues the withdrawal of a staked liquidity
// token. The token keeps earning until the request is executed.
func (e *Engine) RequestUnstakeLiquidity(caller, owner common.Address, poolID, tokenID, now uint64) error {
	if err := e.guardMutate(); err != nil {
		return err
	}
	if err := e.requireAuthorized(caller, owner); err != nil {
		return err
	}
	ref := positionRef{pool: poolID, owner: owner}
	if err := e.lockPosition(ref); err != nil {
		return err
	}
	defer e.unlockPosition(ref)

	var amount *big.Int
	err := e.atomically(func() error {
		p, err := e.pools.GetExisting(poolID)
		if err != nil {
			return err
		}
		if p.Kind != pool.KindLiquidity {
			return reverts.Configuration("pool does not stake liquidity positions")
		}
		pos, err := e.positions.Get(poolID, owner)
		if err != nil {
			return err
		}
		tok := pos.Token(tokenID)
		if tok == nil {
			return reverts.InsufficientBalance("liquidity token not staked")
		}
		q, err := e.queues.Get(poolID, owner)
		if err != nil {
			return err
		}
		if q.HasToken(tokenID) {
			return reverts.Cooldown("unstake already requested for liquidity token")
		}
		q.Push(tok.Liquidity, now+p.CooldownPeriod, tokenID)
		amount = tok.Liquidity
		return e.queues.Set(poolID, owner, q)
	})
	if err != nil {
		logger.Debug("request unstake liquidity failed", "pool", poolID, "owner", owner, "token", tokenID, "error", err)
		return err
	}

	e.record(&Record{Time: now, Op: OpRequestUnstake, PoolID: poolID, Owner: owner, Amount: amount, TokenID: tokenID})
	logger.Info("requested liquidity unstake", "pool", poolID, "owner", owner, "token", tokenID)
	return nil
}

// UnstakeLiquidity returns a liquidity token whose cooldown has elapsed
// to the owner and removes its liquidity from the position balance.
func (e *Engine) UnstakeLiquidity(caller, owner common.Address, poolID, tokenID, now uint64) error {
	if err := e.guardMutate(); err != nil {
		return err
	}
	if err := e.requireAuthorized(caller, owner); err != nil {
		return err
	}
	if e.liquidity == nil {
		return reverts.Configuration("no liquidity provider configured")
	}
	ref := positionRef{pool: poolID, owner: owner}
	if err := e.lockPosition(ref); err != nil {
		return err
	}
	defer e.unlockPosition(ref)

	var amount *big.Int
	err := e.atomically(func() error {
		p, err := e.pools.GetExisting(poolID)
		if err != nil {
			return err
		}
		pos, err := e.positions.Get(poolID, owner)
		if err != nil {
			return err
		}
		q, err := e.queues.Get(poolID, owner)
		if err != nil {
			return err
		}

		p.Settle(now)
		pos.Settle(p.AccRewardPerShare)

		amount, err = q.ConsumeToken(tokenID, now)
		if err != nil {
			return err
		}
		if pos.Token(tokenID) == nil {
			return reverts.InsufficientBalance("liquidity token not staked")
		}

		pos.Balance = new(big.Int).Sub(pos.Balance, amount)
		pos.RemoveToken(tokenID)
		pos.LastUnstakeAt = now
		p.TotalStaked = new(big.Int).Sub(p.TotalStaked, amount)

		if err := e.pools.Set(p); err != nil {
			return err
		}
		if err := e.positions.Set(poolID, owner, pos); err != nil {
			return err
		}
		if err := e.queues.Set(poolID, owner, q); err != nil {
			return err
		}
		if err := e.liquidity.TransferOut(tokenID, owner); err != nil {
			return reverts.TransferFailure(err.Error())
		}
		return nil
	})
	if err != nil {
		logger.Debug("unstake liquidity failed", "pool", poolID, "owner", owner, "token", tokenID, "error", err)
		return err
	}

	e.record(&Record{Time: now, Op: OpUnstakeLiquidity, PoolID: poolID, Owner: owner, Amount: amount, TokenID: tokenID})
	logger.Info("unstaked liquidity", "pool", poolID, "owner", owner, "token", tokenID)
	return nil
}
