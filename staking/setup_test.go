// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextswap/staking-engine/kv"
	"github.com/nextswap/staking-engine/staking/pool"
	"github.com/nextswap/staking-engine/state"
	"github.com/nextswap/staking-engine/test/datagen"
)

func M(a ...any) []any {
	return a
}

var (
	admin       = common.BytesToAddress([]byte("admin"))
	treasury    = common.BytesToAddress([]byte("treasury"))
	stakeToken  = common.BytesToAddress([]byte("stake-token"))
	rewardToken = common.BytesToAddress([]byte("reward-token"))
	pairTokenA  = common.BytesToAddress([]byte("pair-a"))
	pairTokenB  = common.BytesToAddress([]byte("pair-b"))
)

//
// Fakes
//

// memVault keeps per-asset balances for holders plus the engine's own
// custody. Transfers can be forced to fail to exercise rollback.
type memVault struct {
	balances map[common.Address]map[common.Address]*big.Int
	custody  map[common.Address]*big.Int
	failNext bool

	// onTransferOut, when set, runs before the transfer applies. Used
	// to simulate a reentrant callback.
	onTransferOut func()
}

func newMemVault() *memVault {
	return &memVault{
		balances: make(map[common.Address]map[common.Address]*big.Int),
		custody:  make(map[common.Address]*big.Int),
	}
}

func (v *memVault) fund(asset, holder common.Address, amount *big.Int) {
	if v.balances[asset] == nil {
		v.balances[asset] = make(map[common.Address]*big.Int)
	}
	v.balances[asset][holder] = new(big.Int).Set(amount)
}

func (v *memVault) fundCustody(asset common.Address, amount *big.Int) {
	v.custody[asset] = new(big.Int).Set(amount)
}

func (v *memVault) balance(asset, holder common.Address) *big.Int {
	if b := v.balances[asset][holder]; b != nil {
		return new(big.Int).Set(b)
	}
	return big.NewInt(0)
}

func (v *memVault) custodyOf(asset common.Address) *big.Int {
	if b := v.custody[asset]; b != nil {
		return new(big.Int).Set(b)
	}
	return big.NewInt(0)
}

func (v *memVault) TransferIn(asset, from common.Address, amount *big.Int) error {
	if v.failNext {
		v.failNext = false
		return errors.New("vault: transfer rejected")
	}
	bal := v.balances[asset][from]
	if bal == nil || bal.Cmp(amount) < 0 {
		return errors.New("vault: insufficient holder balance")
	}
	bal.Sub(bal, amount)
	if v.custody[asset] == nil {
		v.custody[asset] = big.NewInt(0)
	}
	v.custody[asset].Add(v.custody[asset], amount)
	return nil
}

func (v *memVault) TransferOut(asset, to common.Address, amount *big.Int) error {
	if v.onTransferOut != nil {
		v.onTransferOut()
	}
	if v.failNext {
		v.failNext = false
		return errors.New("vault: transfer rejected")
	}
	cust := v.custody[asset]
	if cust == nil || cust.Cmp(amount) < 0 {
		return errors.New("vault: insufficient custody")
	}
	cust.Sub(cust, amount)
	if v.balances[asset] == nil {
		v.balances[asset] = make(map[common.Address]*big.Int)
	}
	if v.balances[asset][to] == nil {
		v.balances[asset][to] = big.NewInt(0)
	}
	v.balances[asset][to].Add(v.balances[asset][to], amount)
	return nil
}

func (v *memVault) BalanceOf(asset, holder common.Address) (*big.Int, error) {
	return v.balance(asset, holder), nil
}

type liquidityToken struct {
	owner    common.Address
	operator common.Address
	info     LiquidityInfo
	escrowed bool
}

type memLiquidity struct {
	tokens map[uint64]*liquidityToken
}

func newMemLiquidity() *memLiquidity {
	return &memLiquidity{tokens: make(map[uint64]*liquidityToken)}
}

func (l *memLiquidity) mint(tokenID uint64, owner common.Address, info LiquidityInfo) {
	l.tokens[tokenID] = &liquidityToken{owner: owner, info: info}
}

func (l *memLiquidity) approve(tokenID uint64, operator common.Address) {
	l.tokens[tokenID].operator = operator
}

func (l *memLiquidity) get(tokenID uint64) (*liquidityToken, error) {
	tok, ok := l.tokens[tokenID]
	if !ok {
		return nil, errors.Errorf("unknown liquidity token %d", tokenID)
	}
	return tok, nil
}

func (l *memLiquidity) OwnerOf(tokenID uint64) (common.Address, error) {
	tok, err := l.get(tokenID)
	if err != nil {
		return common.Address{}, err
	}
	return tok.owner, nil
}

func (l *memLiquidity) OperatorOf(tokenID uint64) (common.Address, error) {
	tok, err := l.get(tokenID)
	if err != nil {
		return common.Address{}, err
	}
	return tok.operator, nil
}

func (l *memLiquidity) PositionInfo(tokenID uint64) (*LiquidityInfo, error) {
	tok, err := l.get(tokenID)
	if err != nil {
		return nil, err
	}
	info := tok.info
	info.Liquidity = new(big.Int).Set(tok.info.Liquidity)
	return &info, nil
}

func (l *memLiquidity) TransferIn(tokenID uint64, from common.Address) error {
	tok, err := l.get(tokenID)
	if err != nil {
		return err
	}
	if tok.owner != from || tok.escrowed {
		return errors.New("liquidity: not held by from")
	}
	tok.escrowed = true
	return nil
}

func (l *memLiquidity) TransferOut(tokenID uint64, to common.Address) error {
	tok, err := l.get(tokenID)
	if err != nil {
		return err
	}
	if !tok.escrowed {
		return errors.New("liquidity: not escrowed")
	}
	tok.escrowed = false
	tok.owner = to
	return nil
}

// rolesAuthorizer recognizes one admin and explicit operator grants.
type rolesAuthorizer struct {
	admin     common.Address
	operators map[common.Address]common.Address // operator -> owner
}

func (a *rolesAuthorizer) IsAuthorized(caller, owner common.Address) bool {
	if caller == owner {
		return true
	}
	return a.operators[caller] == owner
}

func (a *rolesAuthorizer) IsAdmin(caller common.Address) bool {
	return caller == a.admin
}

type toggleSystem struct{ paused bool }

func (s *toggleSystem) IsPaused() bool { return s.paused }

type toggleDenylist struct{ blocked map[common.Address]bool }

func (d *toggleDenylist) IsBlocked(addr common.Address) bool { return d.blocked[addr] }

type memRecorder struct {
	mu   sync.Mutex
	recs []*Record
}

func (r *memRecorder) Record(rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs = append(r.recs, rec)
	return nil
}

func (r *memRecorder) count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.recs {
		if rec.Op == op {
			n++
		}
	}
	return n
}

//
// Fixture
//

type testEnv struct {
	engine    *Engine
	vault     *memVault
	liquidity *memLiquidity
	auth      *rolesAuthorizer
	system    *toggleSystem
	denylist  *toggleDenylist
	recorder  *memRecorder
}

func newEnv(t *testing.T) *testEnv {
	st := state.New(kv.OpenMemDB())
	env := &testEnv{
		vault:     newMemVault(),
		liquidity: newMemLiquidity(),
		auth:      &rolesAuthorizer{admin: admin, operators: make(map[common.Address]common.Address)},
		system:    &toggleSystem{},
		denylist:  &toggleDenylist{blocked: make(map[common.Address]bool)},
		recorder:  &memRecorder{},
	}
	env.engine = New(st, Options{
		Vault:     env.vault,
		Liquidity: env.liquidity,
		Auth:      env.auth,
		Denylist:  env.denylist,
		System:    env.system,
		Recorder:  env.recorder,
	})
	require.NotNil(t, env.engine)
	return env
}

// newTokenPool creates and starts a fungible pool backed by a covering
// release schedule. Returns the pool id.
func (env *testEnv) newTokenPool(t *testing.T, totalRewards *big.Int, duration, cooldown, start uint64) uint64 {
	require.NoError(t, env.engine.CreateSchedule(
		admin, rewardToken, totalRewards, start, start+duration, start+2*duration, treasury))
	env.vault.fundCustody(rewardToken, totalRewards)

	id, err := env.engine.CreatePool(admin, &pool.CreateParams{
		Name:           "stake/reward",
		Kind:           pool.KindToken,
		StakeAsset:     stakeToken,
		RewardAsset:    rewardToken,
		TotalRewards:   totalRewards,
		CooldownPeriod: cooldown,
	})
	require.NoError(t, err)
	require.NoError(t, env.engine.StartPool(admin, id, duration, start))
	return id
}

func (env *testEnv) newLiquidityPool(t *testing.T, totalRewards *big.Int, duration, cooldown, start uint64) uint64 {
	sched, err := env.engine.GetSchedule(rewardToken)
	if err != nil || sched == nil {
		require.NoError(t, env.engine.CreateSchedule(
			admin, rewardToken, totalRewards, start, start+duration, start+2*duration, treasury))
		env.vault.fundCustody(rewardToken, totalRewards)
	}

	id, err := env.engine.CreatePool(admin, &pool.CreateParams{
		Name:           "pair-a/pair-b lp",
		Kind:           pool.KindLiquidity,
		RewardAsset:    rewardToken,
		PairAssetA:     pairTokenA,
		PairAssetB:     pairTokenB,
		FeeTier:        3000,
		TotalRewards:   totalRewards,
		CooldownPeriod: cooldown,
	})
	require.NoError(t, err)
	require.NoError(t, env.engine.StartPool(admin, id, duration, start))
	return id
}

// fundedStaker creates an address holding amount of the stake token.
func (env *testEnv) fundedStaker(amount *big.Int) common.Address {
	addr := datagen.RandAddress()
	env.vault.fund(stakeToken, addr, amount)
	return addr
}

func altStakeAsset(b byte) common.Address {
	return common.BytesToAddress([]byte{0xee, b})
}

func poolParams(name string, stakeAsset common.Address, totalRewards *big.Int, cooldown uint64) *pool.CreateParams {
	return &pool.CreateParams{
		Name:           name,
		Kind:           pool.KindToken,
		StakeAsset:     stakeAsset,
		RewardAsset:    rewardToken,
		TotalRewards:   totalRewards,
		CooldownPeriod: cooldown,
	}
}

//
// Sequence builder
//

type TestFunc func(t *testing.T)

type TestSequence struct {
	env *testEnv

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(env *testEnv) *TestSequence {
	return &TestSequence{env: env, funcs: make([]TestFunc, 0)}
}

func (ts *TestSequence) AddFunc(f TestFunc) *TestSequence {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.funcs = append(ts.funcs, f)
	return ts
}

func (ts *TestSequence) Stake(owner common.Address, poolID uint64, amount *big.Int, now uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		if err := ts.env.engine.Stake(owner, owner, poolID, amount, now); err != nil {
			t.Fatalf("failed to stake %s for %s: %v", amount, owner, err)
		}
		t.Logf("staked %s for %s at %d", amount, owner, now)
	})
}

func (ts *TestSequence) RequestUnstake(owner common.Address, poolID uint64, amount *big.Int, now uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		if err := ts.env.engine.RequestUnstake(owner, owner, poolID, amount, now); err != nil {
			t.Fatalf("failed to request unstake for %s: %v", owner, err)
		}
		t.Logf("requested unstake of %s for %s at %d", amount, owner, now)
	})
}

func (ts *TestSequence) Unstake(owner common.Address, poolID uint64, amount *big.Int, now uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		if err := ts.env.engine.Unstake(owner, owner, poolID, amount, now); err != nil {
			t.Fatalf("failed to unstake for %s: %v", owner, err)
		}
		t.Logf("unstaked %s for %s at %d", amount, owner, now)
	})
}

func (ts *TestSequence) Claim(owner common.Address, poolID uint64, now uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		amount, err := ts.env.engine.ClaimRewards(owner, owner, poolID, now)
		if err != nil {
			t.Fatalf("failed to claim for %s: %v", owner, err)
		}
		t.Logf("claimed %s for %s at %d", amount, owner, now)
	})
}

func (ts *TestSequence) Run(t *testing.T) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for _, f := range ts.funcs {
		f(t)
	}
}

//
// Assertions
//

type PositionAssertions struct {
	env    *testEnv
	poolID uint64
	owner  common.Address

	balance *big.Int
	pending *big.Int
	claimed *big.Int
	at      *uint64
}

func AssertPosition(env *testEnv, poolID uint64, owner common.Address) *PositionAssertions {
	return &PositionAssertions{env: env, poolID: poolID, owner: owner}
}

func (pa *PositionAssertions) Balance(expected *big.Int) *PositionAssertions {
	pa.balance = expected
	return pa
}

func (pa *PositionAssertions) PendingAt(now uint64, expected *big.Int) *PositionAssertions {
	pa.at = &now
	pa.pending = expected
	return pa
}

func (pa *PositionAssertions) Claimed(expected *big.Int) *PositionAssertions {
	pa.claimed = expected
	return pa
}

func (pa *PositionAssertions) Assert(t *testing.T) {
	pos, err := pa.env.engine.GetPosition(pa.poolID, pa.owner)
	assert.NoError(t, err, "failed to get position %s/%d", pa.owner, pa.poolID)

	if pa.balance != nil {
		assert.Equal(t, pa.balance, pos.Balance, "position %s balance mismatch", pa.owner)
	}
	if pa.pending != nil {
		pending, err := pa.env.engine.PendingRewards(pa.poolID, pa.owner, *pa.at)
		assert.NoError(t, err)
		assert.Equal(t, pa.pending, pending, "position %s pending mismatch", pa.owner)
	}
	if pa.claimed != nil {
		assert.Equal(t, pa.claimed, pos.TotalClaimed, "position %s claimed mismatch", pa.owner)
	}
}
