// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// journal maintains write levels in a stack. Each level inherits the
// key/values of levels below it, giving save/restore semantics: Push
// opens a new level, PopTo discards levels above a checkpoint together
// with every write recorded in them.
type journal struct {
	levels []map[string][]byte
	revs   map[string][]int // key -> stack of level indexes holding a write
}

func newJournal() *journal {
	return &journal{
		levels: []map[string][]byte{make(map[string][]byte)},
		revs:   make(map[string][]int),
	}
}

// Push opens a new level and returns the checkpoint to restore to.
func (j *journal) Push() int {
	j.levels = append(j.levels, make(map[string][]byte))
	return len(j.levels) - 1
}

// PopTo discards all levels at or above the given checkpoint.
func (j *journal) PopTo(checkpoint int) {
	for len(j.levels) > checkpoint {
		top := j.levels[len(j.levels)-1]
		for key := range top {
			revs := j.revs[key]
			revs = revs[:len(revs)-1]
			if len(revs) == 0 {
				delete(j.revs, key)
			} else {
				j.revs[key] = revs
			}
		}
		j.levels = j.levels[:len(j.levels)-1]
	}
}

// Get returns the latest value written for key. The second return
// value reports whether the journal holds a write for it at all.
// A nil value with ok set means the key was deleted.
func (j *journal) Get(key string) ([]byte, bool) {
	revs, ok := j.revs[key]
	if !ok {
		return nil, false
	}
	return j.levels[revs[len(revs)-1]][key], true
}

// Put records a write at the top level. A nil value acts as deletion.
func (j *journal) Put(key string, val []byte) {
	top := j.levels[len(j.levels)-1]
	if _, exists := top[key]; !exists {
		j.revs[key] = append(j.revs[key], len(j.levels)-1)
	}
	top[key] = val
}

// Walk visits the latest value of every written key.
func (j *journal) Walk(fn func(key string, val []byte)) {
	for key := range j.revs {
		val, _ := j.Get(key)
		fn(key, val)
	}
}

// Reset drops all levels and writes.
func (j *journal) Reset() {
	j.levels = j.levels[:0]
	j.levels = append(j.levels, make(map[string][]byte))
	j.revs = make(map[string][]int)
}
