// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cooldown

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/nextswap/staking-engine/state"
)

var prefixQueue = []byte("cooldown/")

// Service persists unstake request queues keyed by (pool, owner).
type Service struct {
	state *state.State
}

func New(st *state.State) *Service {
	return &Service{state: st}
}

func queueKey(poolID uint64, owner common.Address) []byte {
	key := make([]byte, 0, len(prefixQueue)+8+common.AddressLength)
	key = append(key, prefixQueue...)
	key = binary.BigEndian.AppendUint64(key, poolID)
	return append(key, owner.Bytes()...)
}

// Get returns the queue for the position, empty when none exists.
func (s *Service) Get(poolID uint64, owner common.Address) (*Queue, error) {
	var q Queue
	found, err := s.state.Decode(queueKey(poolID, owner), &q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get unstake queue")
	}
	if !found {
		return &Queue{}, nil
	}
	return &q, nil
}

// Set persists the queue, deleting the record once it is empty.
func (s *Service) Set(poolID uint64, owner common.Address, q *Queue) error {
	key := queueKey(poolID, owner)
	if q.IsEmpty() {
		s.state.Delete(key)
		return nil
	}
	if err := s.state.Encode(key, q); err != nil {
		return errors.Wrap(err, "failed to set unstake queue")
	}
	return nil
}
