// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/nextswap/staking-engine/kv"
)

// State is a journaled key/value state layer. Reads fall through the
// journal to the backing store; writes stay in the journal until Commit
// flushes them in a single batch. Checkpoints allow reverting every
// write made after a given point, which is how a failed operation is
// rolled back without touching the store.
type State struct {
	store   kv.Store
	journal *journal
}

// New creates a state over the given store.
func New(store kv.Store) *State {
	return &State{
		store:   store,
		journal: newJournal(),
	}
}

// NewCheckpoint opens a checkpoint to revert to.
func (s *State) NewCheckpoint() int {
	return s.journal.Push()
}

// RevertTo discards every write made since the checkpoint.
func (s *State) RevertTo(checkpoint int) {
	s.journal.PopTo(checkpoint)
}

// Get returns the value for key, or nil when the key is absent.
func (s *State) Get(key []byte) ([]byte, error) {
	if val, ok := s.journal.Get(string(key)); ok {
		return val, nil
	}
	val, err := s.store.Get(key)
	if err != nil {
		if s.store.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "state get")
	}
	return val, nil
}

// Put records a write in the journal.
func (s *State) Put(key, val []byte) {
	s.journal.Put(string(key), val)
}

// Delete records a deletion in the journal.
func (s *State) Delete(key []byte) {
	s.journal.Put(string(key), nil)
}

// Commit flushes all journaled writes to the store in one batch and
// resets the journal. Open checkpoints are invalidated.
func (s *State) Commit() error {
	bulk := s.store.Bulk()
	s.journal.Walk(func(key string, val []byte) {
		if val == nil {
			_ = bulk.Delete([]byte(key))
		} else {
			_ = bulk.Put([]byte(key), val)
		}
	})
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "state commit")
	}
	s.journal.Reset()
	return nil
}

// Decode loads the value at key and RLP-decodes it into val.
// It returns false when the key is absent.
func (s *State) Decode(key []byte, val any) (bool, error) {
	data, err := s.Get(key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := rlp.DecodeBytes(data, val); err != nil {
		return false, errors.Wrap(err, "state decode")
	}
	return true, nil
}

// Encode RLP-encodes val and records it at key.
func (s *State) Encode(key []byte, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return errors.Wrap(err, "state encode")
	}
	s.Put(key, data)
	return nil
}
