// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package actions

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/nextswap/staking-engine/api/restutil"
	"github.com/nextswap/staking-engine/staking"
	"github.com/nextswap/staking-engine/staking/reverts"
)

// Clock supplies the logical time stamped onto mutations. The engine
// itself never reads a clock.
type Clock func() uint64

// Actions exposes the engine's mutating operations over HTTP. The
// caller field is trusted as-is: authentication belongs to whatever
// stands in front of this API.
type Actions struct {
	engine *staking.Engine
	now    Clock
}

func New(engine *staking.Engine, now Clock) *Actions {
	return &Actions{engine, now}
}

// Request is the JSON body shared by all action endpoints. Amounts are
// decimal strings.
type Request struct {
	Caller  common.Address `json:"caller"`
	Owner   common.Address `json:"owner"`
	PoolID  uint64         `json:"poolID"`
	Amount  string         `json:"amount"`
	TokenID uint64         `json:"tokenID"`
}

func (r *Request) amount() (*big.Int, error) {
	if r.Amount == "" {
		return nil, restutil.BadRequest(errors.New("amount: missing"))
	}
	amount, ok := new(big.Int).SetString(r.Amount, 10)
	if !ok {
		return nil, restutil.BadRequest(errors.New("amount: not a decimal number"))
	}
	return amount, nil
}

func parseRequest(req *http.Request) (*Request, error) {
	var r Request
	if err := restutil.ParseJSON(req.Body, &r); err != nil {
		return nil, restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	return &r, nil
}

// convertRevert maps engine reverts onto http statuses.
func convertRevert(err error) error {
	switch reverts.KindOf(err) {
	case reverts.KindAuthorization:
		return restutil.Forbidden(err)
	case reverts.KindConfiguration,
		reverts.KindLifecycle,
		reverts.KindInsufficientBalance,
		reverts.KindCooldown,
		reverts.KindIssuanceCap:
		return restutil.BadRequest(err)
	default:
		return err
	}
}

func (a *Actions) handleStake(w http.ResponseWriter, req *http.Request) error {
	r, err := parseRequest(req)
	if err != nil {
		return err
	}
	now := a.now()
	if r.TokenID != 0 {
		if err := a.engine.StakeLiquidity(r.Caller, r.Owner, r.PoolID, r.TokenID, now); err != nil {
			return convertRevert(err)
		}
		return restutil.WriteJSON(w, restutil.M{"time": now})
	}
	amount, err := r.amount()
	if err != nil {
		return err
	}
	if err := a.engine.Stake(r.Caller, r.Owner, r.PoolID, amount, now); err != nil {
		return convertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"time": now})
}

func (a *Actions) handleRequestUnstake(w http.ResponseWriter, req *http.Request) error {
	r, err := parseRequest(req)
	if err != nil {
		return err
	}
	now := a.now()
	if r.TokenID != 0 {
		if err := a.engine.RequestUnstakeLiquidity(r.Caller, r.Owner, r.PoolID, r.TokenID, now); err != nil {
			return convertRevert(err)
		}
		return restutil.WriteJSON(w, restutil.M{"time": now})
	}
	amount, err := r.amount()
	if err != nil {
		return err
	}
	if err := a.engine.RequestUnstake(r.Caller, r.Owner, r.PoolID, amount, now); err != nil {
		return convertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"time": now})
}

func (a *Actions) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	r, err := parseRequest(req)
	if err != nil {
		return err
	}
	now := a.now()
	if r.TokenID != 0 {
		if err := a.engine.UnstakeLiquidity(r.Caller, r.Owner, r.PoolID, r.TokenID, now); err != nil {
			return convertRevert(err)
		}
		return restutil.WriteJSON(w, restutil.M{"time": now})
	}
	amount, err := r.amount()
	if err != nil {
		return err
	}
	if err := a.engine.Unstake(r.Caller, r.Owner, r.PoolID, amount, now); err != nil {
		return convertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"time": now})
}

func (a *Actions) handleClaim(w http.ResponseWriter, req *http.Request) error {
	r, err := parseRequest(req)
	if err != nil {
		return err
	}
	now := a.now()
	claimed, err := a.engine.ClaimRewards(r.Caller, r.Owner, r.PoolID, now)
	if err != nil {
		return convertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"time": now, "claimed": claimed.String()})
}

func (a *Actions) handleClaimAll(w http.ResponseWriter, req *http.Request) error {
	r, err := parseRequest(req)
	if err != nil {
		return err
	}
	now := a.now()
	results, err := a.engine.ClaimAll(r.Caller, r.Owner, now)
	if err != nil {
		return convertRevert(err)
	}
	claims := make([]restutil.M, 0, len(results))
	for _, res := range results {
		claims = append(claims, restutil.M{
			"poolID": res.PoolID,
			"asset":  res.Asset,
			"amount": res.Amount.String(),
		})
	}
	return restutil.WriteJSON(w, restutil.M{"time": now, "claims": claims})
}

func (a *Actions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/stake").
		Methods(http.MethodPost).
		Name("POST /actions/stake").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleStake))
	sub.Path("/request-unstake").
		Methods(http.MethodPost).
		Name("POST /actions/request-unstake").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleRequestUnstake))
	sub.Path("/unstake").
		Methods(http.MethodPost).
		Name("POST /actions/unstake").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleUnstake))
	sub.Path("/claim").
		Methods(http.MethodPost).
		Name("POST /actions/claim").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleClaim))
	sub.Path("/claim-all").
		Methods(http.MethodPost).
		Name("POST /actions/claim-all").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleClaimAll))
}
