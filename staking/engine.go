// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/nextswap/staking-engine/log"
	"github.com/nextswap/staking-engine/metrics"
	"github.com/nextswap/staking-engine/staking/cooldown"
	"github.com/nextswap/staking-engine/staking/pool"
	"github.com/nextswap/staking-engine/staking/position"
	"github.com/nextswap/staking-engine/staking/reverts"
	"github.com/nextswap/staking-engine/staking/schedule"
	"github.com/nextswap/staking-engine/state"
)

var logger = log.WithContext("pkg", "staking")

var (
	metricOps   = metrics.LazyLoadCounterVec("operations_total", []string{"op"})
	metricPools = metrics.LazyLoadGauge("pools_total")
)

// Engine is the staking and reward-distribution accounting engine.
// Mutating operations are serialized internally and either fully
// commit or leave no trace, so hosts may call from concurrent
// goroutines.
type Engine struct {
	state     *state.State
	pools     *pool.Service
	positions *position.Service
	queues    *cooldown.Service
	issuer    *schedule.Service

	vault     Vault
	liquidity LiquidityProvider
	auth      Authorizer
	denylist  Denylist
	system    SystemState
	recorder  Recorder

	mu      sync.Mutex
	entered map[positionRef]struct{}

	// opMu serializes mutations against the shared journal; views take
	// the read side so hosts may call from concurrent goroutines.
	opMu sync.RWMutex
}

type positionRef struct {
	pool  uint64
	owner common.Address
}

// Options wires the external collaborators. Vault is mandatory; the
// rest default to permissive no-op implementations.
type Options struct {
	Vault     Vault
	Liquidity LiquidityProvider
	Auth      Authorizer
	Denylist  Denylist
	System    SystemState
	Recorder  Recorder
}

// New creates an engine over the given state.
func New(st *state.State, opts Options) *Engine {
	if opts.Vault == nil {
		panic("staking: vault is required")
	}
	if opts.Auth == nil {
		opts.Auth = openAuthorizer{}
	}
	if opts.Denylist == nil {
		opts.Denylist = nopDenylist{}
	}
	if opts.System == nil {
		opts.System = runningSystem{}
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	return &Engine{
		state:     st,
		pools:     pool.New(st),
		positions: position.New(st),
		queues:    cooldown.New(st),
		issuer:    schedule.New(st),
		vault:     opts.Vault,
		liquidity: opts.Liquidity,
		auth:      opts.Auth,
		denylist:  opts.Denylist,
		system:    opts.System,
		recorder:  opts.Recorder,
		entered:   make(map[positionRef]struct{}),
	}
}

//
// Guards
//

func (e *Engine) guardMutate() error {
	if e.system.IsPaused() {
		return reverts.Lifecycle("system is paused")
	}
	return nil
}

func (e *Engine) requireAdmin(caller common.Address) error {
	if !e.auth.IsAdmin(caller) {
		return reverts.Authorization("caller is not admin")
	}
	return nil
}

func (e *Engine) requireAuthorized(caller, owner common.Address) error {
	if !e.auth.IsAuthorized(caller, owner) {
		return reverts.Authorization("caller is not owner or operator")
	}
	return nil
}

func (e *Engine) requireNotBlocked(addrs ...common.Address) error {
	for _, addr := range addrs {
		if e.denylist.IsBlocked(addr) {
			return reverts.Authorization("address is blocked")
		}
	}
	return nil
}

// lockPosition rejects nested re-entry into the same position's
// mutating operations while an external transfer is outstanding.
func (e *Engine) lockPosition(ref positionRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, held := e.entered[ref]; held {
		return reverts.Authorization("reentrant call into position")
	}
	e.entered[ref] = struct{}{}
	return nil
}

func (e *Engine) unlockPosition(ref positionRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.entered, ref)
}

// atomically runs fn inside a state checkpoint: any error reverts
// every write fn made, success commits them in one batch. Operations
// are serialized here, so the per-position lock only ever trips on
// reentrant calls from within an outstanding external transfer.
func (e *Engine) atomically(fn func() error) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	cp := e.state.NewCheckpoint()
	if err := fn(); err != nil {
		e.state.RevertTo(cp)
		return err
	}
	if err := e.state.Commit(); err != nil {
		// a failed flush must not leave the writes journaled, or the
		// next operation's commit would carry them through
		e.state.RevertTo(cp)
		return errors.Wrap(err, "commit")
	}
	return nil
}

func (e *Engine) record(rec *Record) {
	if err := e.recorder.Record(rec); err != nil {
		logger.Warn("failed to record action", "op", rec.Op, "error", err)
	}
	metricOps().AddWithLabel(1, map[string]string{"op": rec.Op})
}

//
// Admin operations
//

// CreateSchedule registers the release schedule for a reward asset.
func (e *Engine) CreateSchedule(
	caller common.Address,
	asset common.Address,
	totalAllocation *big.Int,
	startTime, endTime, claimDeadline uint64,
	sink common.Address,
) error {
	if err := e.guardMutate(); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	err := e.atomically(func() error {
		return e.issuer.Create(asset, totalAllocation, startTime, endTime, claimDeadline, sink)
	})
	if err != nil {
		logger.Info("create schedule failed", "asset", asset, "error", err)
		return err
	}
	logger.Info("created schedule", "asset", asset, "allocation", totalAllocation)
	return nil
}

// CreatePool registers a new pool and returns its id.
func (e *Engine) CreatePool(caller common.Address, params *pool.CreateParams) (uint64, error) {
	if err := e.guardMutate(); err != nil {
		return 0, err
	}
	if err := e.requireAdmin(caller); err != nil {
		return 0, err
	}

	var id, count uint64
	err := e.atomically(func() error {
		var err error
		if id, err = e.pools.Create(params); err != nil {
			return err
		}
		count, err = e.pools.Count()
		return err
	})
	if err != nil {
		logger.Info("create pool failed", "name", params.Name, "error", err)
		return 0, err
	}

	metricPools().Set(int64(count))
	logger.Info("created pool", "id", id, "name", params.Name)
	return id, nil
}

// StartPool opens the pool's emission window at the given time. The
// pool's total rewards are assigned out of its reward asset's release
// schedule; without a covering schedule the start is rejected.
func (e *Engine) StartPool(caller common.Address, poolID, duration, now uint64) error {
	if err := e.guardMutate(); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	err := e.atomically(func() error {
		p, err := e.pools.Start(poolID, duration, now)
		if err != nil {
			return err
		}
		return e.issuer.Assign(p.RewardAsset, p.TotalRewards, p.StartTime, p.EndTime)
	})
	if err != nil {
		logger.Info("start pool failed", "id", poolID, "error", err)
		return err
	}
	logger.Info("started pool", "id", poolID, "duration", duration)
	return nil
}

// SetPoolActive toggles staking eligibility of the pool.
func (e *Engine) SetPoolActive(caller common.Address, poolID uint64, active bool) error {
	if err := e.guardMutate(); err != nil {
		return err
	}
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	err := e.atomically(func() error {
		return e.pools.SetActive(poolID, active)
	})
	if err != nil {
		logger.Info("set pool active failed", "id", poolID, "error", err)
		return err
	}
	logger.Info("set pool active", "id", poolID, "active", active)
	return nil
}

// Finalize closes a reward asset's schedule after its claim deadline
// and sweeps the undistributed remainder to the schedule's sink.
func (e *Engine) Finalize(caller, asset common.Address, now uint64) (*big.Int, error) {
	if err := e.guardMutate(); err != nil {
		return nil, err
	}
	if err := e.requireAdmin(caller); err != nil {
		return nil, err
	}

	var (
		remainder *big.Int
		sink      common.Address
	)
	err := e.atomically(func() error {
		var err error
		remainder, sink, err = e.issuer.Finalize(asset, now)
		if err != nil {
			return err
		}
		if remainder.Sign() == 0 {
			return nil
		}
		if err := e.vault.TransferOut(asset, sink, remainder); err != nil {
			return reverts.TransferFailure(err.Error())
		}
		return nil
	})
	if err != nil {
		logger.Info("finalize failed", "asset", asset, "error", err)
		return nil, err
	}

	e.record(&Record{Time: now, Op: OpFinalize, Owner: sink, Amount: remainder})
	logger.Info("finalized schedule", "asset", asset, "swept", remainder)
	return remainder, nil
}
