package state

import (
	"context"
	"testing"

	"github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	cbor "github.com/ipfs/go-ipld-cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

type testRecord struct {
	Name  string
	Value uint64
}

func init() {
	cbor.RegisterCborType(testRecord{})
}

func newTestTree() *Tree {
	return NewTree(dssync.MutexWrap(datastore.NewMapDatastore()))
}

func TestTransactionCommits(t *testing.T) {
	ctx := context.Background()
	tree := newTestTree()
	k := datastore.NewKey("/test/a")

	err := tree.Transaction(ctx, func(tx *Tx) error {
		return tx.Put(k, &testRecord{Name: "a", Value: 1})
	})
	require.NoError(t, err)

	var got testRecord
	require.NoError(t, tree.View(ctx, func(tx *Tx) error {
		return tx.Get(k, &got)
	}))
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, uint64(1), got.Value)
}

func TestTransactionDiscardsOnError(t *testing.T) {
	ctx := context.Background()
	tree := newTestTree()
	k1 := datastore.NewKey("/test/a")
	k2 := datastore.NewKey("/test/b")

	require.NoError(t, tree.Transaction(ctx, func(tx *Tx) error {
		return tx.Put(k1, &testRecord{Name: "a", Value: 1})
	}))

	boom := xerrors.New("boom")
	err := tree.Transaction(ctx, func(tx *Tx) error {
		if err := tx.Put(k1, &testRecord{Name: "a", Value: 99}); err != nil {
			return err
		}
		if err := tx.Put(k2, &testRecord{Name: "b", Value: 2}); err != nil {
			return err
		}
		tx.Delete(k1)
		return boom
	})
	require.ErrorIs(t, err, boom)

	// nothing from the failed transaction is visible
	require.NoError(t, tree.View(ctx, func(tx *Tx) error {
		var got testRecord
		if err := tx.Get(k1, &got); err != nil {
			return err
		}
		assert.Equal(t, uint64(1), got.Value)

		has, err := tx.Has(k2)
		require.NoError(t, err)
		assert.False(t, has)
		return nil
	}))
}

func TestTxReadsBufferedWrites(t *testing.T) {
	ctx := context.Background()
	tree := newTestTree()
	k := datastore.NewKey("/test/a")

	require.NoError(t, tree.Transaction(ctx, func(tx *Tx) error {
		if err := tx.Put(k, &testRecord{Name: "a", Value: 7}); err != nil {
			return err
		}
		var got testRecord
		if err := tx.Get(k, &got); err != nil {
			return err
		}
		assert.Equal(t, uint64(7), got.Value)

		tx.Delete(k)
		has, err := tx.Has(k)
		if err != nil {
			return err
		}
		assert.False(t, has)
		return nil
	}))

	// the delete won: the record never reached the store
	require.NoError(t, tree.View(ctx, func(tx *Tx) error {
		has, err := tx.Has(k)
		require.NoError(t, err)
		assert.False(t, has)
		return nil
	}))
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	tree := newTestTree()

	err := tree.View(ctx, func(tx *Tx) error {
		var got testRecord
		return tx.Get(datastore.NewKey("/test/missing"), &got)
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetCorruptRecord(t *testing.T) {
	ctx := context.Background()
	ds := dssync.MutexWrap(datastore.NewMapDatastore())
	tree := NewTree(ds)
	k := datastore.NewKey("/test/corrupt")

	// bytes that are not CBOR
	require.NoError(t, ds.Put(ctx, k, []byte{0xff, 0x00, 0x01}))

	err := tree.View(ctx, func(tx *Tx) error {
		var got testRecord
		return tx.Get(k, &got)
	})
	require.ErrorIs(t, err, ErrSerialization)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDeleteCommits(t *testing.T) {
	ctx := context.Background()
	tree := newTestTree()
	k := datastore.NewKey("/test/a")

	require.NoError(t, tree.Transaction(ctx, func(tx *Tx) error {
		return tx.Put(k, &testRecord{Name: "a", Value: 1})
	}))
	require.NoError(t, tree.Transaction(ctx, func(tx *Tx) error {
		tx.Delete(k)
		return nil
	}))

	require.NoError(t, tree.View(ctx, func(tx *Tx) error {
		has, err := tx.Has(k)
		require.NoError(t, err)
		assert.False(t, has)
		return nil
	}))
}
