// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"no error", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("bad amount")), http.StatusBadRequest, "bad amount"},
		{"forbidden", Forbidden(errors.New("not yours")), http.StatusForbidden, "not yours"},
		{"not found", NotFound(errors.New("no such pool")), http.StatusNotFound, "no such pool"},
		{"custom status", HTTPError(errors.New("boom"), http.StatusTeapot), http.StatusTeapot, "boom"},
		{"plain error", errors.New("oops"), http.StatusInternalServerError, "oops"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		Amount string `json:"amount"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"amount":"10"}`), &v))
	assert.Equal(t, "10", v.Amount)

	assert.Error(t, ParseJSON(strings.NewReader(`{"amount":"10","extra":1}`), &v))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, M{"ok": true}))
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}
