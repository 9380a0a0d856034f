// Package market implements the marketplace settlement program: charters
// taxing sales into a communal reserve, listings sold as uniquely minted
// tokens, trial purchases held in escrow, and staked cashier
// intermediaries earning a split of the charter's cut.
//
// Every instruction applies as one atomic transaction against the state
// tree: any failure leaves no partial effects.
package market

import (
	"context"

	"github.com/ipfs/go-datastore"
	logging "github.com/ipfs/go-log/v2"
	"github.com/raulk/clock"

	"github.com/emporium-foundation/emporium/build"
	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/aerrors"
	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/state"
	"github.com/emporium-foundation/emporium/metrics"
)

var log = logging.Logger("market")

// ProgramKey is the program's identity: the key all derived addresses
// are bound to.
var ProgramKey = address.NewFromSeed([]byte("emporium/settlement-program/v1"))

type Program struct {
	tree *state.Tree
	clk  clock.Clock
}

type Option func(*Program)

// WithClock substitutes the program clock; cooldown tests use a mock.
func WithClock(c clock.Clock) Option {
	return func(p *Program) {
		p.clk = c
	}
}

func NewProgram(tree *state.Tree, opts ...Option) *Program {
	p := &Program{
		tree: tree,
		clk:  build.Clock,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Apply executes one instruction signed by caller. On success all state
// changes commit together; on any error nothing is written and the
// returned error carries the exit code for the caller.
func (p *Program) Apply(ctx context.Context, caller address.Address, inst Instruction) aerrors.ActorError {
	if !caller.Defined() {
		return aerrors.New(exitcode.SysErrInvalidParameters, "caller is undefined")
	}

	var aerr aerrors.ActorError
	err := p.tree.Transaction(ctx, func(tx *state.Tx) error {
		rt := &Runtime{
			tx:      tx,
			caller:  caller,
			signers: make(map[address.Address]struct{}),
			now:     uint64(p.clk.Now().Unix()),
		}
		if aerr = inst.invoke(rt); aerr != nil {
			return aerr
		}
		return nil
	})
	if err != nil && aerr == nil {
		aerr = aerrors.Escalate(err, "committing instruction")
	}

	metrics.RecordApply(ctx, inst.Kind(), aerrors.RetCode(aerr))
	if aerrors.IsFatal(aerr) {
		log.Errorw("instruction failed fatally", "kind", inst.Kind(), "caller", caller, "err", aerr)
	} else if aerr != nil {
		log.Debugw("instruction rejected", "kind", inst.Kind(), "caller", caller, "code", aerr.RetCode(), "err", aerr)
	}
	return aerr
}

// View runs fn against a read-only transaction, for state queries.
func (p *Program) View(ctx context.Context, fn func(tx *state.Tx) error) error {
	return p.tree.View(ctx, fn)
}

// Instruction is the sealed sum type over all state transitions. The
// with/without-cashier settlement paths are distinct variants, never a
// nullable field.
type Instruction interface {
	Kind() string
	invoke(rt *Runtime) aerrors.ActorError
}

// Runtime is the per-instruction execution context: the transaction, who
// signed, and derived addresses the program has proven control of.
type Runtime struct {
	tx      *state.Tx
	caller  address.Address
	signers map[address.Address]struct{}
	now     uint64
}

func (rt *Runtime) Caller() address.Address {
	return rt.caller
}

// Now is the transaction timestamp in unix seconds.
func (rt *Runtime) Now() uint64 {
	return rt.now
}

// Signed reports whether a is the caller or a derived address the
// program has re-derived during this instruction.
func (rt *Runtime) Signed(a address.Address) bool {
	if a == rt.caller {
		return true
	}
	_, ok := rt.signers[a]
	return ok
}

// signAs re-derives a program address and registers it as a signer,
// proving the program controls it.
func (rt *Runtime) signAs(ns []byte, keys ...address.Address) (address.Address, aerrors.ActorError) {
	a, _, err := address.Derive(ProgramKey, ns, keys...)
	if err != nil {
		return address.Undef, aerrors.Escalate(err, "deriving signer address")
	}
	rt.signers[a] = struct{}{}
	return a, nil
}

// Record address derivations. Clients must produce byte-identical
// addresses; the program re-derives and compares on every use.

func CharterAddress(mint address.Address) (address.Address, uint8, error) {
	return address.Derive(ProgramKey, address.NSCharter, mint)
}

func CharterTreasuryAddress(charter, mint address.Address) (address.Address, uint8, error) {
	return address.Derive(ProgramKey, address.NSTreasury, charter, mint)
}

func ListingAddress(mint address.Address) (address.Address, uint8, error) {
	return address.Derive(ProgramKey, address.NSListing, mint)
}

func CashierAddress(charter, operator address.Address) (address.Address, uint8, error) {
	return address.Derive(ProgramKey, address.NSCashier, charter, operator)
}

func CashierTreasuryAddress(cashier, mint address.Address) (address.Address, uint8, error) {
	return address.Derive(ProgramKey, address.NSTreasury, cashier, mint)
}

func ReceiptAddress(nonce address.Address) (address.Address, uint8, error) {
	return address.Derive(ProgramKey, address.NSReceipt, nonce)
}

// MintAuthorityAddress is the permanent minting authority for a mint
// under program control.
func MintAuthorityAddress(mint address.Address) (address.Address, uint8, error) {
	return address.Derive(ProgramKey, address.NSMintAuthority, mint)
}

// TokenAuthorityAddress is the spending authority for program-held token
// accounts belonging to a record.
func TokenAuthorityAddress(record address.Address) (address.Address, uint8, error) {
	return address.Derive(ProgramKey, address.NSTokenAuthority, record)
}

// ProgramAccountAddress is a program-held token account for a record in
// a given mint (treasury deposits, escrows, stakes).
func ProgramAccountAddress(record, mint address.Address) (address.Address, uint8, error) {
	return address.Derive(ProgramKey, address.NSTreasury, record, mint)
}

// AssociatedAccountAddress is the canonical token account of an owner
// key for a mint (inventories, auto-created deposits).
func AssociatedAccountAddress(owner, mint address.Address) (address.Address, uint8, error) {
	return address.Derive(ProgramKey, address.NSTokenAuthority, owner, mint)
}

func mustDerive(a address.Address, _ uint8, err error) (address.Address, aerrors.ActorError) {
	if err != nil {
		return address.Undef, aerrors.Escalate(err, "address derivation failed")
	}
	return a, nil
}

// Record keys in the state tree.

func charterKey(a address.Address) datastore.Key {
	return datastore.NewKey("/charter/" + a.String())
}

func charterTreasuryKey(a address.Address) datastore.Key {
	return datastore.NewKey("/charter/treasury/" + a.String())
}

func listingKey(a address.Address) datastore.Key {
	return datastore.NewKey("/listing/" + a.String())
}

func cashierKey(a address.Address) datastore.Key {
	return datastore.NewKey("/cashier/" + a.String())
}

func cashierTreasuryKey(a address.Address) datastore.Key {
	return datastore.NewKey("/cashier/treasury/" + a.String())
}

func receiptKey(a address.Address) datastore.Key {
	return datastore.NewKey("/receipt/" + a.String())
}
