// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cooldown

import (
	"math/big"

	"github.com/nextswap/staking-engine/staking/reverts"
)

// Request is one pending withdrawal. The amount stays on the position
// balance (and keeps earning) until the request is executed; it is
// only reserved against further requests.
type Request struct {
	Amount     *big.Int
	UnlockTime uint64
	TokenID    uint64 // liquidity token id, 0 for fungible stake
}

// Queue is the ordered list of pending withdrawals for one position.
// Entries are appended with monotonically non-decreasing unlock times
// and consumed oldest first.
type Queue struct {
	Requests []Request
}

// IsEmpty returns whether the queue has no pending requests.
func (q *Queue) IsEmpty() bool {
	return len(q.Requests) == 0
}

// Reserved returns the total amount held by pending requests.
func (q *Queue) Reserved() *big.Int {
	total := big.NewInt(0)
	for i := range q.Requests {
		total.Add(total, q.Requests[i].Amount)
	}
	return total
}

// Unlockable returns the total fungible amount whose cooldown has
// elapsed at the given time.
func (q *Queue) Unlockable(now uint64) *big.Int {
	total := big.NewInt(0)
	for i := range q.Requests {
		if q.Requests[i].UnlockTime > now {
			break
		}
		if q.Requests[i].TokenID != 0 {
			continue
		}
		total.Add(total, q.Requests[i].Amount)
	}
	return total
}

// Push appends a request.
func (q *Queue) Push(amount *big.Int, unlockTime uint64, tokenID uint64) {
	q.Requests = append(q.Requests, Request{
		Amount:     new(big.Int).Set(amount),
		UnlockTime: unlockTime,
		TokenID:    tokenID,
	})
}

// Consume removes the requested fungible amount from the queue, oldest
// entries first, splitting the oldest remaining entry when it exceeds
// what is left to consume. It fails without mutating the queue when
// the unlockable total is short of the requested amount; the amount is
// never silently clamped.
func (q *Queue) Consume(amount *big.Int, now uint64) error {
	if amount == nil || amount.Sign() <= 0 {
		return reverts.InsufficientBalance("unstake amount must be positive")
	}
	if q.Unlockable(now).Cmp(amount) < 0 {
		return reverts.Cooldown("unlockable amount exceeds matured requests")
	}

	remaining := new(big.Int).Set(amount)
	kept := q.Requests[:0]
	for i := range q.Requests {
		req := q.Requests[i]
		if remaining.Sign() == 0 || req.TokenID != 0 || req.UnlockTime > now {
			kept = append(kept, req)
			continue
		}
		if req.Amount.Cmp(remaining) <= 0 {
			remaining.Sub(remaining, req.Amount)
			continue
		}
		req.Amount = new(big.Int).Sub(req.Amount, remaining)
		remaining.SetInt64(0)
		kept = append(kept, req)
	}
	q.Requests = kept
	return nil
}

// ConsumeToken removes the request for a specific liquidity token and
// returns its amount. It fails when no matching request exists or its
// cooldown has not elapsed.
func (q *Queue) ConsumeToken(tokenID uint64, now uint64) (*big.Int, error) {
	for i := range q.Requests {
		if q.Requests[i].TokenID != tokenID {
			continue
		}
		if q.Requests[i].UnlockTime > now {
			return nil, reverts.Cooldown("cooldown not elapsed for liquidity token")
		}
		amount := q.Requests[i].Amount
		q.Requests = append(q.Requests[:i], q.Requests[i+1:]...)
		return amount, nil
	}
	return nil, reverts.Cooldown("no unstake request for liquidity token")
}

// HasToken reports whether a request for the token is already queued.
func (q *Queue) HasToken(tokenID uint64) bool {
	for i := range q.Requests {
		if q.Requests[i].TokenID == tokenID {
			return true
		}
	}
	return false
}
