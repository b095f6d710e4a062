// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/nextswap/staking-engine/api/actions"
	"github.com/nextswap/staking-engine/api/history"
	"github.com/nextswap/staking-engine/api/pools"
	"github.com/nextswap/staking-engine/api/restutil"
	"github.com/nextswap/staking-engine/api/schedules"
	"github.com/nextswap/staking-engine/historydb"
	"github.com/nextswap/staking-engine/log"
	"github.com/nextswap/staking-engine/metrics"
	"github.com/nextswap/staking-engine/staking"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	HistoryLimit    uint64
	EnableReqLogger bool
	EnableMetrics   bool

	// Clock stamps mutations with logical time. Defaults to unix
	// seconds.
	Clock actions.Clock
}

// New returns the api handler over the engine's read surface.
func New(engine *staking.Engine, historyDB *historydb.HistoryDB, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	clock := opts.Clock
	if clock == nil {
		clock = func() uint64 { return uint64(time.Now().Unix()) }
	}

	router := mux.NewRouter()

	pools.New(engine).
		Mount(router, "/pools")
	schedules.New(engine).
		Mount(router, "/schedules")
	actions.New(engine, clock).
		Mount(router, "/actions")
	if historyDB != nil {
		history.New(historyDB, opts.HistoryLimit).
			Mount(router, "/history")
	}

	router.Path("/healthz").
		Methods(http.MethodGet).
		HandlerFunc(restutil.WrapHandlerFunc(handleHealth))

	if opts.EnableMetrics {
		router.Path("/metrics").Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP
}

func handleHealth(w http.ResponseWriter, _ *http.Request) error {
	return restutil.WriteJSON(w, restutil.M{"healthy": true})
}
