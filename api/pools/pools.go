// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/nextswap/staking-engine/api/restutil"
	"github.com/nextswap/staking-engine/staking"
	"github.com/nextswap/staking-engine/staking/reverts"
)

type Pools struct {
	engine *staking.Engine
}

func New(engine *staking.Engine) *Pools {
	return &Pools{engine}
}

func (p *Pools) handleGetPools(w http.ResponseWriter, _ *http.Request) error {
	all, err := p.engine.Pools()
	if err != nil {
		return err
	}
	res := make([]*Pool, 0, len(all))
	for _, pl := range all {
		res = append(res, convertPool(pl))
	}
	return restutil.WriteJSON(w, res)
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	id, err := parsePoolID(req)
	if err != nil {
		return err
	}
	pl, err := p.engine.GetPool(id)
	if err != nil {
		return convertRevert(err)
	}
	return restutil.WriteJSON(w, convertPool(pl))
}

func (p *Pools) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	id, err := parsePoolID(req)
	if err != nil {
		return err
	}
	owner, err := parseOwner(req)
	if err != nil {
		return err
	}
	pos, err := p.engine.GetPosition(id, owner)
	if err != nil {
		return convertRevert(err)
	}
	return restutil.WriteJSON(w, convertPosition(pos))
}

func (p *Pools) handleGetPending(w http.ResponseWriter, req *http.Request) error {
	id, err := parsePoolID(req)
	if err != nil {
		return err
	}
	owner, err := parseOwner(req)
	if err != nil {
		return err
	}
	at, err := strconv.ParseUint(req.URL.Query().Get("at"), 10, 64)
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "at"))
	}
	pending, err := p.engine.PendingRewards(id, owner, at)
	if err != nil {
		return convertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"pending": pending.String()})
}

func (p *Pools) handleGetRequests(w http.ResponseWriter, req *http.Request) error {
	id, err := parsePoolID(req)
	if err != nil {
		return err
	}
	owner, err := parseOwner(req)
	if err != nil {
		return err
	}
	reqs, err := p.engine.UnstakeRequests(id, owner)
	if err != nil {
		return convertRevert(err)
	}
	return restutil.WriteJSON(w, convertRequests(reqs))
}

func parsePoolID(req *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		return 0, restutil.BadRequest(errors.WithMessage(err, "id"))
	}
	return id, nil
}

func parseOwner(req *http.Request) (common.Address, error) {
	addr := mux.Vars(req)["owner"]
	if !common.IsHexAddress(addr) {
		return common.Address{}, restutil.BadRequest(errors.New("owner: invalid address"))
	}
	return common.HexToAddress(addr), nil
}

// convertRevert maps a missing-entity revert to 404.
func convertRevert(err error) error {
	if reverts.KindOf(err) == reverts.KindConfiguration {
		return restutil.NotFound(err)
	}
	return err
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pools").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetPools))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("GET /pools/{id}").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{id}/positions/{owner}").
		Methods(http.MethodGet).
		Name("GET /pools/{id}/positions/{owner}").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetPosition))
	sub.Path("/{id}/positions/{owner}/pending").
		Methods(http.MethodGet).
		Name("GET /pools/{id}/positions/{owner}/pending").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetPending))
	sub.Path("/{id}/positions/{owner}/requests").
		Methods(http.MethodGet).
		Name("GET /pools/{id}/positions/{owner}/requests").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetRequests))
}
