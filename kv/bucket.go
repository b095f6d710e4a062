// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Bucket provides a logical bucket over a kv store by key prefixing.
type Bucket string

type bucketStore struct {
	Store
	prefix []byte
}

// NewStore creates a store which prefixes all keys with the bucket.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{src, []byte(b)}
}

func (s *bucketStore) key(key []byte) []byte {
	return append(append(make([]byte, 0, len(s.prefix)+len(key)), s.prefix...), key...)
}

func (s *bucketStore) Get(key []byte) ([]byte, error) {
	return s.Store.Get(s.key(key))
}

func (s *bucketStore) Has(key []byte) (bool, error) {
	return s.Store.Has(s.key(key))
}

func (s *bucketStore) Put(key, val []byte) error {
	return s.Store.Put(s.key(key), val)
}

func (s *bucketStore) Delete(key []byte) error {
	return s.Store.Delete(s.key(key))
}

func (s *bucketStore) Bulk() Bulk {
	return &bucketBulk{s.Store.Bulk(), s.prefix}
}

func (s *bucketStore) Iterate(r Range) Iterator {
	if len(r.Start) == 0 && len(r.Limit) == 0 {
		pr := util.BytesPrefix(s.prefix)
		return &bucketIterator{s.Store.Iterate(Range{pr.Start, pr.Limit}), len(s.prefix)}
	}
	return &bucketIterator{s.Store.Iterate(Range{s.key(r.Start), s.key(r.Limit)}), len(s.prefix)}
}

type bucketBulk struct {
	Bulk
	prefix []byte
}

func (b *bucketBulk) Put(key, val []byte) error {
	return b.Bulk.Put(append(append(make([]byte, 0, len(b.prefix)+len(key)), b.prefix...), key...), val)
}

func (b *bucketBulk) Delete(key []byte) error {
	return b.Bulk.Delete(append(append(make([]byte, 0, len(b.prefix)+len(key)), b.prefix...), key...))
}

type bucketIterator struct {
	Iterator
	prefixLen int
}

func (i *bucketIterator) Key() []byte {
	return i.Iterator.Key()[i.prefixLen:]
}
