// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schedules

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/nextswap/staking-engine/api/restutil"
	"github.com/nextswap/staking-engine/staking"
	"github.com/nextswap/staking-engine/staking/reverts"
	"github.com/nextswap/staking-engine/staking/schedule"
)

// Schedule is the JSON shape of one release schedule.
type Schedule struct {
	Asset            common.Address `json:"asset"`
	StartTime        uint64         `json:"startTime"`
	EndTime          uint64         `json:"endTime"`
	ClaimDeadline    uint64         `json:"claimDeadline"`
	TotalAllocation  string         `json:"totalAllocation"`
	TotalAssigned    string         `json:"totalAssigned"`
	TotalDistributed string         `json:"totalDistributed"`
	Sink             common.Address `json:"sink"`
}

func convertSchedule(s *schedule.Schedule) *Schedule {
	return &Schedule{
		Asset:            s.Asset,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		ClaimDeadline:    s.ClaimDeadline,
		TotalAllocation:  s.TotalAllocation.String(),
		TotalAssigned:    s.TotalAssigned.String(),
		TotalDistributed: s.TotalDistributed.String(),
		Sink:             s.Sink,
	}
}

type Schedules struct {
	engine *staking.Engine
}

func New(engine *staking.Engine) *Schedules {
	return &Schedules{engine}
}

func (s *Schedules) handleGetSchedule(w http.ResponseWriter, req *http.Request) error {
	asset := mux.Vars(req)["asset"]
	if !common.IsHexAddress(asset) {
		return restutil.BadRequest(errors.New("asset: invalid address"))
	}
	sched, err := s.engine.GetSchedule(common.HexToAddress(asset))
	if err != nil {
		if reverts.KindOf(err) == reverts.KindConfiguration {
			return restutil.NotFound(err)
		}
		return err
	}
	return restutil.WriteJSON(w, convertSchedule(sched))
}

func (s *Schedules) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/{asset}").
		Methods(http.MethodGet).
		Name("GET /schedules/{asset}").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetSchedule))
}
