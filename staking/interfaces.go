// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Vault moves fungible assets between the engine and owners. A failed
// transfer aborts the whole operation; the engine never commits a
// partial state change around one.
type Vault interface {
	TransferIn(asset, from common.Address, amount *big.Int) error
	TransferOut(asset, to common.Address, amount *big.Int) error
	BalanceOf(asset, holder common.Address) (*big.Int, error)
}

// LiquidityInfo describes an external liquidity position.
type LiquidityInfo struct {
	AssetA    common.Address
	AssetB    common.Address
	FeeTier   uint32
	Liquidity *big.Int
}

// LiquidityProvider exposes ownership and liquidity of non-fungible
// positions, and custody transfers of them.
type LiquidityProvider interface {
	OwnerOf(tokenID uint64) (common.Address, error)
	OperatorOf(tokenID uint64) (common.Address, error)
	PositionInfo(tokenID uint64) (*LiquidityInfo, error)
	TransferIn(tokenID uint64, from common.Address) error
	TransferOut(tokenID uint64, to common.Address) error
}

// Authorizer answers access questions. Implemented outside the core.
type Authorizer interface {
	IsAuthorized(caller, owner common.Address) bool
	IsAdmin(caller common.Address) bool
}

// Denylist is consulted before stake and claim.
type Denylist interface {
	IsBlocked(addr common.Address) bool
}

// SystemState is the global pause switch, checked at the top of every
// mutating entry point.
type SystemState interface {
	IsPaused() bool
}

// Record is one committed mutation, handed to the Recorder.
type Record struct {
	Time    uint64
	Op      string
	PoolID  uint64
	Owner   common.Address
	Amount  *big.Int
	TokenID uint64
}

// Operation names used in records.
const (
	OpStake            = "stake"
	OpRequestUnstake   = "request_unstake"
	OpUnstake          = "unstake"
	OpClaim            = "claim"
	OpStakeLiquidity   = "stake_liquidity"
	OpUnstakeLiquidity = "unstake_liquidity"
	OpFinalize         = "finalize"
)

// Recorder receives one record per committed mutation. Emission is
// best-effort: a recorder failure never rolls the mutation back.
type Recorder interface {
	Record(rec *Record) error
}

type nopRecorder struct{}

func (nopRecorder) Record(*Record) error { return nil }

type nopDenylist struct{}

func (nopDenylist) IsBlocked(common.Address) bool { return false }

type runningSystem struct{}

func (runningSystem) IsPaused() bool { return false }

// openAuthorizer lets owners act for themselves and anyone administer.
// It is the default for hosts that do their own access control in
// front of the engine.
type openAuthorizer struct{}

func (openAuthorizer) IsAuthorized(caller, owner common.Address) bool { return caller == owner }

func (openAuthorizer) IsAdmin(common.Address) bool { return true }
