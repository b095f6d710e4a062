// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schedule

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/nextswap/staking-engine/staking/reverts"
	"github.com/nextswap/staking-engine/state"
)

var prefixSchedule = []byte("sched/")

// Service is the reward issuer. It owns one release schedule per
// reward asset and gates every reward payout against it.
type Service struct {
	state *state.State
}

func New(st *state.State) *Service {
	return &Service{state: st}
}

func scheduleKey(asset common.Address) []byte {
	return append(append([]byte{}, prefixSchedule...), asset.Bytes()...)
}

// Get returns the schedule for the asset, or an empty one.
func (s *Service) Get(asset common.Address) (*Schedule, error) {
	var sched Schedule
	found, err := s.state.Decode(scheduleKey(asset), &sched)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get schedule")
	}
	if !found {
		return &Schedule{}, nil
	}
	return &sched, nil
}

// GetExisting returns the schedule for the asset or a configuration
// revert when none exists.
func (s *Service) GetExisting(asset common.Address) (*Schedule, error) {
	sched, err := s.Get(asset)
	if err != nil {
		return nil, err
	}
	if sched.IsEmpty() {
		return nil, reverts.Configuration("no release schedule for reward asset")
	}
	return sched, nil
}

func (s *Service) set(asset common.Address, sched *Schedule) error {
	if err := s.state.Encode(scheduleKey(asset), sched); err != nil {
		return errors.Wrap(err, "failed to set schedule")
	}
	return nil
}

// Create registers the release schedule for a reward asset. One
// schedule per asset, created before any pool draws from it.
func (s *Service) Create(
	asset common.Address,
	totalAllocation *big.Int,
	startTime uint64,
	endTime uint64,
	claimDeadline uint64,
	sink common.Address,
) error {
	if asset == (common.Address{}) {
		return reverts.Configuration("reward asset is zero")
	}
	if totalAllocation == nil || totalAllocation.Sign() <= 0 {
		return reverts.Configuration("total allocation must be positive")
	}
	if endTime <= startTime {
		return reverts.Configuration("schedule end must be after start")
	}
	if claimDeadline <= endTime {
		return reverts.Configuration("claim deadline must be after schedule end")
	}
	if sink == (common.Address{}) {
		return reverts.Configuration("sweep sink is zero")
	}

	existing, err := s.Get(asset)
	if err != nil {
		return err
	}
	if !existing.IsEmpty() {
		return reverts.Configuration("schedule already exists for reward asset")
	}

	return s.set(asset, &Schedule{
		Asset:            asset,
		StartTime:        startTime,
		EndTime:          endTime,
		ClaimDeadline:    claimDeadline,
		TotalAllocation:  new(big.Int).Set(totalAllocation),
		TotalAssigned:    big.NewInt(0),
		TotalDistributed: big.NewInt(0),
		Sink:             sink,
	})
}

// Assign reserves a slice of the allocation for a pool whose emission
// window is [start, end]. Called once per pool at start time.
func (s *Service) Assign(asset common.Address, amount *big.Int, start, end uint64) error {
	sched, err := s.GetExisting(asset)
	if err != nil {
		return err
	}
	if !sched.Covers(start, end) {
		return reverts.Configuration("pool emission window outside release schedule")
	}
	if sched.Unassigned().Cmp(amount) < 0 {
		return reverts.Configuration("allocation exhausted for reward asset")
	}
	sched.TotalAssigned = new(big.Int).Add(sched.TotalAssigned, amount)
	return s.set(asset, sched)
}

// Authorize admits a reward payout of the given amount, or rejects it
// when it would exceed what the schedule has released so far. This is
// the single gate every reward transfer goes through.
func (s *Service) Authorize(asset common.Address, amount *big.Int, now uint64) error {
	sched, err := s.GetExisting(asset)
	if err != nil {
		return err
	}
	spent := new(big.Int).Add(sched.TotalDistributed, amount)
	if spent.Cmp(sched.Released(now)) > 0 {
		return reverts.IssuanceCap("insufficient released tokens")
	}
	sched.TotalDistributed = spent
	return s.set(asset, sched)
}

// Finalize closes out the schedule after its claim deadline and
// returns the undistributed remainder to sweep to the sink, which may
// be zero. Idempotent: a second call returns zero.
func (s *Service) Finalize(asset common.Address, now uint64) (*big.Int, common.Address, error) {
	sched, err := s.GetExisting(asset)
	if err != nil {
		return nil, common.Address{}, err
	}
	if now <= sched.ClaimDeadline {
		return nil, common.Address{}, reverts.Lifecycle("claim deadline not reached")
	}
	remainder := sched.Remainder()
	if remainder.Sign() == 0 {
		return big.NewInt(0), sched.Sink, nil
	}
	sched.TotalDistributed = new(big.Int).Set(sched.TotalAllocation)
	if err := s.set(asset, sched); err != nil {
		return nil, common.Address{}, err
	}
	return remainder, sched.Sink, nil
}
