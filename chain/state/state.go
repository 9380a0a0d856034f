// Package state provides the transactional store the settlement program
// runs against. On the original ledger, conflicting writes are serialized
// by the host chain; off-chain we get the same guarantee from a single
// commit lock and all-or-nothing batch commits. An instruction either
// applies every write it buffered or none of them.
package state

import (
	"context"
	"sync"

	"github.com/ipfs/go-datastore"
	cbor "github.com/ipfs/go-ipld-cbor"
	"golang.org/x/xerrors"
)

// ErrNotFound is returned by Tx.Get for absent records.
var ErrNotFound = xerrors.New("record not found")

// ErrSerialization wraps CBOR failures in Tx.Get so callers can map a
// record that will not decode to a distinct exit code from storage
// faults.
var ErrSerialization = xerrors.New("record serialization failed")

type Tree struct {
	lk sync.Mutex
	ds datastore.Batching
}

func NewTree(ds datastore.Batching) *Tree {
	return &Tree{ds: ds}
}

// Transaction runs fn against a buffered view of the tree. If fn returns
// nil every buffered write and delete is committed atomically; any error
// discards the buffer untouched.
func (t *Tree) Transaction(ctx context.Context, fn func(tx *Tx) error) error {
	t.lk.Lock()
	defer t.lk.Unlock()

	tx := &Tx{
		ctx:     ctx,
		ds:      t.ds,
		writes:  make(map[datastore.Key][]byte),
		deletes: make(map[datastore.Key]struct{}),
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

// View runs fn read-only; writes made through the Tx are discarded.
func (t *Tree) View(ctx context.Context, fn func(tx *Tx) error) error {
	t.lk.Lock()
	defer t.lk.Unlock()

	tx := &Tx{
		ctx:     ctx,
		ds:      t.ds,
		writes:  make(map[datastore.Key][]byte),
		deletes: make(map[datastore.Key]struct{}),
	}
	return fn(tx)
}

// Tx is a single-transaction view over the tree: reads see buffered
// writes, and nothing reaches the datastore until commit.
type Tx struct {
	ctx     context.Context
	ds      datastore.Batching
	writes  map[datastore.Key][]byte
	deletes map[datastore.Key]struct{}
}

func (tx *Tx) raw(k datastore.Key) ([]byte, error) {
	if _, ok := tx.deletes[k]; ok {
		return nil, ErrNotFound
	}
	if b, ok := tx.writes[k]; ok {
		return b, nil
	}
	b, err := tx.ds.Get(tx.ctx, k)
	if err == datastore.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, xerrors.Errorf("datastore get: %w", err)
	}
	return b, nil
}

func (tx *Tx) Get(k datastore.Key, out interface{}) error {
	b, err := tx.raw(k)
	if err != nil {
		return err
	}
	if err := cbor.DecodeInto(b, out); err != nil {
		return xerrors.Errorf("decoding record %s: %s: %w", k, err, ErrSerialization)
	}
	return nil
}

func (tx *Tx) Has(k datastore.Key) (bool, error) {
	_, err := tx.raw(k)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (tx *Tx) Put(k datastore.Key, v interface{}) error {
	b, err := cbor.DumpObject(v)
	if err != nil {
		return xerrors.Errorf("encoding record %s: %w", k, err)
	}
	delete(tx.deletes, k)
	tx.writes[k] = b
	return nil
}

func (tx *Tx) Delete(k datastore.Key) {
	delete(tx.writes, k)
	tx.deletes[k] = struct{}{}
}

func (tx *Tx) commit() error {
	if len(tx.writes) == 0 && len(tx.deletes) == 0 {
		return nil
	}
	b, err := tx.ds.Batch(tx.ctx)
	if err != nil {
		return xerrors.Errorf("creating batch: %w", err)
	}
	for k, v := range tx.writes {
		if err := b.Put(tx.ctx, k, v); err != nil {
			return xerrors.Errorf("batch put: %w", err)
		}
	}
	for k := range tx.deletes {
		if err := b.Delete(tx.ctx, k); err != nil {
			return xerrors.Errorf("batch delete: %w", err)
		}
	}
	if err := b.Commit(tx.ctx); err != nil {
		return xerrors.Errorf("committing batch: %w", err)
	}
	return nil
}
