// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/nextswap/staking-engine/staking/reverts"
	"github.com/nextswap/staking-engine/state"
)

var (
	prefixPool   = []byte("pool/")
	prefixConfig = []byte("pool-config/")
	keyPoolCount = []byte("pool-count")
)

// Service is the pool registry. Pool ids are assigned sequentially
// starting at 1.
type Service struct {
	state *state.State
}

func New(st *state.State) *Service {
	return &Service{state: st}
}

// CreateParams carries the configuration of a new pool.
type CreateParams struct {
	Name           string
	Kind           Kind
	StakeAsset     common.Address
	RewardAsset    common.Address
	PairAssetA     common.Address
	PairAssetB     common.Address
	FeeTier        uint32
	TotalRewards   *big.Int
	MinDeposit     *big.Int
	CooldownPeriod uint64
}

func poolKey(id uint64) []byte {
	key := make([]byte, 0, len(prefixPool)+8)
	key = append(key, prefixPool...)
	return binary.BigEndian.AppendUint64(key, id)
}

// configKey identifies a pool's asset configuration for uniqueness.
func configKey(p *CreateParams) []byte {
	key := append([]byte{}, prefixConfig...)
	if p.Kind == KindLiquidity {
		key = append(key, p.PairAssetA.Bytes()...)
		key = append(key, p.PairAssetB.Bytes()...)
		key = binary.BigEndian.AppendUint32(key, p.FeeTier)
	} else {
		key = append(key, p.StakeAsset.Bytes()...)
	}
	return append(key, p.RewardAsset.Bytes()...)
}

// Count returns the number of pools created so far.
func (s *Service) Count() (uint64, error) {
	var count uint64
	found, err := s.state.Decode(keyPoolCount, &count)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get pool count")
	}
	if !found {
		return 0, nil
	}
	return count, nil
}

// Get returns the pool with the given id, or an empty pool.
func (s *Service) Get(id uint64) (*Pool, error) {
	var p Pool
	found, err := s.state.Decode(poolKey(id), &p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	if !found {
		return &Pool{}, nil
	}
	return &p, nil
}

// GetExisting returns the pool or a configuration revert when the id
// is unknown.
func (s *Service) GetExisting(id uint64) (*Pool, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, reverts.Newf(reverts.KindConfiguration, "pool %d not found", id)
	}
	return p, nil
}

// Set persists the pool.
func (s *Service) Set(p *Pool) error {
	if err := s.state.Encode(poolKey(p.ID), p); err != nil {
		return errors.Wrap(err, "failed to set pool")
	}
	return nil
}

// All returns every created pool in id order.
func (s *Service) All() ([]*Pool, error) {
	count, err := s.Count()
	if err != nil {
		return nil, err
	}
	pools := make([]*Pool, 0, count)
	for id := uint64(1); id <= count; id++ {
		p, err := s.GetExisting(id)
		if err != nil {
			return nil, err
		}
		pools = append(pools, p)
	}
	return pools, nil
}

// Create validates the configuration and registers a new inactive-emission
// pool. The pool accepts no stake until started.
func (s *Service) Create(params *CreateParams) (uint64, error) {
	if err := s.validateCreate(params); err != nil {
		return 0, err
	}

	count, err := s.Count()
	if err != nil {
		return 0, err
	}
	if count >= MaxPools {
		return 0, reverts.Configuration("pool limit reached")
	}

	cfgKey := configKey(params)
	taken, err := s.state.Get(cfgKey)
	if err != nil {
		return 0, err
	}
	if taken != nil {
		return 0, reverts.Configuration("pool with same asset configuration exists")
	}

	id := count + 1
	p := &Pool{
		ID:                id,
		Name:              params.Name,
		Kind:              params.Kind,
		StakeAsset:        params.StakeAsset,
		RewardAsset:       params.RewardAsset,
		PairAssetA:        params.PairAssetA,
		PairAssetB:        params.PairAssetB,
		FeeTier:           params.FeeTier,
		TotalRewards:      new(big.Int).Set(params.TotalRewards),
		RewardRate:        big.NewInt(0),
		TotalStaked:       big.NewInt(0),
		AccRewardPerShare: big.NewInt(0),
		MinDeposit:        big.NewInt(0),
		CooldownPeriod:    params.CooldownPeriod,
		Active:            true,
	}
	if params.MinDeposit != nil {
		p.MinDeposit = new(big.Int).Set(params.MinDeposit)
	}

	if err := s.Set(p); err != nil {
		return 0, err
	}
	s.state.Put(cfgKey, binary.BigEndian.AppendUint64(nil, id))
	if err := s.state.Encode(keyPoolCount, id); err != nil {
		return 0, errors.Wrap(err, "failed to set pool count")
	}
	return id, nil
}

func (s *Service) validateCreate(params *CreateParams) error {
	if params.Name == "" {
		return reverts.Configuration("pool name is empty")
	}
	if params.TotalRewards == nil || params.TotalRewards.Sign() <= 0 {
		return reverts.Configuration("total rewards must be positive")
	}
	if params.RewardAsset == (common.Address{}) {
		return reverts.Configuration("reward asset is zero")
	}
	switch params.Kind {
	case KindToken:
		if params.StakeAsset == (common.Address{}) {
			return reverts.Configuration("stake asset is zero")
		}
		if params.StakeAsset == params.RewardAsset {
			return reverts.Configuration("stake and reward assets must differ")
		}
	case KindLiquidity:
		if params.PairAssetA == (common.Address{}) || params.PairAssetB == (common.Address{}) {
			return reverts.Configuration("liquidity pair asset is zero")
		}
		if params.PairAssetA == params.PairAssetB {
			return reverts.Configuration("liquidity pair assets must differ")
		}
	default:
		return reverts.Configuration("unknown pool kind")
	}
	return nil
}

// Start begins emission exactly once: it fixes the reward rate as
// totalRewards/duration (truncating; the division remainder is never
// emitted and is recovered only by schedule finalization) and opens
// the emission window at the given time.
func (s *Service) Start(id uint64, duration uint64, now uint64) (*Pool, error) {
	p, err := s.GetExisting(id)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, reverts.Lifecycle("pool is not active")
	}
	if p.Started() {
		return nil, reverts.Lifecycle("pool already started")
	}
	if duration == 0 {
		return nil, reverts.Configuration("duration must be positive")
	}
	// zero is the sentinel for "not started"
	if now == 0 {
		return nil, reverts.Configuration("start time must be positive")
	}

	p.StartTime = now
	p.EndTime = now + duration
	p.RewardRate = new(big.Int).Div(p.TotalRewards, new(big.Int).SetUint64(duration))
	p.LastUpdateTime = now

	if err := s.Set(p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetActive toggles staking eligibility. Accrued rewards and pending
// unstake requests are unaffected.
func (s *Service) SetActive(id uint64, active bool) error {
	p, err := s.GetExisting(id)
	if err != nil {
		return err
	}
	if p.Active == active {
		return nil
	}
	p.Active = active
	return s.Set(p)
}
