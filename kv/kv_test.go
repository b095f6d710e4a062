// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDBRoundTrip(t *testing.T) {
	db := OpenMemDB()
	defer db.Close()

	assert.NoError(t, db.Put([]byte("k1"), []byte("v1")))

	val, err := db.Get([]byte("k1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), val)

	has, err := db.Has([]byte("k1"))
	assert.NoError(t, err)
	assert.True(t, has)

	_, err = db.Get([]byte("missing"))
	assert.True(t, db.IsNotFound(err))

	assert.NoError(t, db.Delete([]byte("k1")))
	has, err = db.Has([]byte("k1"))
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestLevelDBBulk(t *testing.T) {
	db := OpenMemDB()
	defer db.Close()

	bulk := db.Bulk()
	assert.NoError(t, bulk.Put([]byte("a"), []byte("1")))
	assert.NoError(t, bulk.Put([]byte("b"), []byte("2")))
	assert.Equal(t, 2, bulk.Len())

	// nothing visible before Write
	has, err := db.Has([]byte("a"))
	assert.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, bulk.Write())

	val, err := db.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
}

func TestBucketIsolation(t *testing.T) {
	db := OpenMemDB()
	defer db.Close()

	b1 := Bucket("b1/").NewStore(db)
	b2 := Bucket("b2/").NewStore(db)

	assert.NoError(t, b1.Put([]byte("k"), []byte("one")))
	assert.NoError(t, b2.Put([]byte("k"), []byte("two")))

	v1, err := b1.Get([]byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("one"), v1)

	v2, err := b2.Get([]byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("two"), v2)

	iter := b1.Iterate(Range{})
	defer iter.Release()
	count := 0
	for iter.Next() {
		assert.Equal(t, []byte("k"), iter.Key())
		count++
	}
	assert.NoError(t, iter.Error())
	assert.Equal(t, 1, count)
}
