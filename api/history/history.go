// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package history

import (
	"fmt"
	"math"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/nextswap/staking-engine/api/restutil"
	"github.com/nextswap/staking-engine/historydb"
)

// Filter is the JSON shape of a history query.
type Filter struct {
	Range   *historydb.Range   `json:"range"`
	PoolID  *uint64            `json:"poolID"`
	Owner   *common.Address    `json:"owner"`
	Op      string             `json:"op"`
	Order   historydb.Order    `json:"order"`
	Options *historydb.Options `json:"options"`
}

// Action is the JSON shape of one recorded mutation.
type Action struct {
	Time    uint64         `json:"time"`
	Op      string         `json:"op"`
	PoolID  uint64         `json:"poolID"`
	Owner   common.Address `json:"owner"`
	Amount  string         `json:"amount"`
	TokenID uint64         `json:"tokenID,omitempty"`
}

type History struct {
	db    *historydb.HistoryDB
	limit uint64
}

func New(db *historydb.HistoryDB, limit uint64) *History {
	return &History{db, limit}
}

func (h *History) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter Filter
	if err := restutil.ParseJSON(req.Body, &filter); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if filter.Options != nil && filter.Options.Limit > h.limit {
		return restutil.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", h.limit))
	}
	if filter.Options != nil && filter.Options.Offset > math.MaxInt64 {
		return restutil.BadRequest(fmt.Errorf("options.offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	if filter.Range != nil && filter.Range.From > filter.Range.To {
		return restutil.BadRequest(errors.New("range.to must be greater than or equal to range.from"))
	}
	if filter.Options == nil {
		filter.Options = &historydb.Options{Offset: 0, Limit: h.limit}
	}

	actions, err := h.db.Filter(req.Context(), &historydb.Filter{
		Range:   filter.Range,
		PoolID:  filter.PoolID,
		Owner:   filter.Owner,
		Op:      filter.Op,
		Order:   filter.Order,
		Options: filter.Options,
	})
	if err != nil {
		return err
	}

	res := make([]*Action, 0, len(actions))
	for _, act := range actions {
		res = append(res, &Action{
			Time:    act.Time,
			Op:      act.Op,
			PoolID:  act.PoolID,
			Owner:   act.Owner,
			Amount:  act.Amount.String(),
			TokenID: act.TokenID,
		})
	}
	return restutil.WriteJSON(w, res)
}

func (h *History) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /history").
		HandlerFunc(restutil.WrapHandlerFunc(h.handleFilter))
}
