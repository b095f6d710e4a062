// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/nextswap/staking-engine/state"
)

var prefixPosition = []byte("position/")

// Service persists stake positions keyed by (pool, owner). A position
// record is kept (zeroed) after full exit so claim history survives.
type Service struct {
	state *state.State
}

func New(st *state.State) *Service {
	return &Service{state: st}
}

func positionKey(poolID uint64, owner common.Address) []byte {
	key := make([]byte, 0, len(prefixPosition)+8+common.AddressLength)
	key = append(key, prefixPosition...)
	key = binary.BigEndian.AppendUint64(key, poolID)
	return append(key, owner.Bytes()...)
}

// Get returns the position for (pool, owner), zeroed when none exists.
func (s *Service) Get(poolID uint64, owner common.Address) (*Position, error) {
	var p Position
	found, err := s.state.Decode(positionKey(poolID, owner), &p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	if !found {
		return NewPosition(), nil
	}
	return &p, nil
}

// Set persists the position.
func (s *Service) Set(poolID uint64, owner common.Address, p *Position) error {
	if err := s.state.Encode(positionKey(poolID, owner), p); err != nil {
		return errors.Wrap(err, "failed to set position")
	}
	return nil
}
