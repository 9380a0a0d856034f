package market

import (
	"golang.org/x/xerrors"

	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/aerrors"
	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/ledger"
	"github.com/emporium-foundation/emporium/chain/state"
	"github.com/emporium-foundation/emporium/chain/types"
)

// Typed record accessors. Loads of absent records map to exit codes the
// caller can act on; storage failures escalate.

// loadError maps a non-ErrNotFound failure from Tx.Get: a record that
// will not decode rejects with a serialization code, anything else is
// fatal.
func loadError(err error, what string) aerrors.ActorError {
	if xerrors.Is(err, state.ErrSerialization) {
		return aerrors.Absorb(err, exitcode.SysErrSerialization, "decoding "+what)
	}
	return aerrors.Escalate(err, "loading "+what)
}

func GetCharter(tx *state.Tx, addr address.Address) (*types.Charter, aerrors.ActorError) {
	var c types.Charter
	err := tx.Get(charterKey(addr), &c)
	if err == state.ErrNotFound {
		return nil, aerrors.Newf(exitcode.ErrAccountNotFound, "charter %s not found", addr)
	}
	if err != nil {
		return nil, loadError(err, "charter")
	}
	return &c, nil
}

func GetCharterTreasury(tx *state.Tx, addr address.Address) (*types.CharterTreasury, aerrors.ActorError) {
	var t types.CharterTreasury
	err := tx.Get(charterTreasuryKey(addr), &t)
	if err == state.ErrNotFound {
		return nil, aerrors.Newf(exitcode.ErrTreasuryNotFound, "charter treasury %s not found", addr)
	}
	if err != nil {
		return nil, loadError(err, "charter treasury")
	}
	return &t, nil
}

func GetListing(tx *state.Tx, addr address.Address) (*types.Listing, aerrors.ActorError) {
	var l types.Listing
	err := tx.Get(listingKey(addr), &l)
	if err == state.ErrNotFound {
		return nil, aerrors.Newf(exitcode.ErrAccountNotFound, "listing %s not found", addr)
	}
	if err != nil {
		return nil, loadError(err, "listing")
	}
	return &l, nil
}

func GetCashier(tx *state.Tx, addr address.Address) (*types.Cashier, aerrors.ActorError) {
	var c types.Cashier
	err := tx.Get(cashierKey(addr), &c)
	if err == state.ErrNotFound {
		return nil, aerrors.Newf(exitcode.ErrAccountNotFound, "cashier %s not found", addr)
	}
	if err != nil {
		return nil, loadError(err, "cashier")
	}
	return &c, nil
}

func GetCashierTreasury(tx *state.Tx, addr address.Address) (*types.CashierTreasury, aerrors.ActorError) {
	var t types.CashierTreasury
	err := tx.Get(cashierTreasuryKey(addr), &t)
	if err == state.ErrNotFound {
		return nil, aerrors.Newf(exitcode.ErrTreasuryNotFound, "cashier treasury %s not found", addr)
	}
	if err != nil {
		return nil, loadError(err, "cashier treasury")
	}
	return &t, nil
}

func GetReceipt(tx *state.Tx, addr address.Address) (*types.Receipt, aerrors.ActorError) {
	var r types.Receipt
	err := tx.Get(receiptKey(addr), &r)
	if err == state.ErrNotFound {
		return nil, aerrors.Newf(exitcode.ErrAccountNotFound, "receipt %s not found", addr)
	}
	if err != nil {
		return nil, loadError(err, "receipt")
	}
	return &r, nil
}

func (rt *Runtime) putCharter(addr address.Address, c *types.Charter) aerrors.ActorError {
	if err := rt.tx.Put(charterKey(addr), c); err != nil {
		return aerrors.Escalate(err, "storing charter")
	}
	return nil
}

func (rt *Runtime) putCharterTreasury(addr address.Address, t *types.CharterTreasury) aerrors.ActorError {
	if err := rt.tx.Put(charterTreasuryKey(addr), t); err != nil {
		return aerrors.Escalate(err, "storing charter treasury")
	}
	return nil
}

func (rt *Runtime) putListing(addr address.Address, l *types.Listing) aerrors.ActorError {
	if err := rt.tx.Put(listingKey(addr), l); err != nil {
		return aerrors.Escalate(err, "storing listing")
	}
	return nil
}

func (rt *Runtime) putCashier(addr address.Address, c *types.Cashier) aerrors.ActorError {
	if err := rt.tx.Put(cashierKey(addr), c); err != nil {
		return aerrors.Escalate(err, "storing cashier")
	}
	return nil
}

func (rt *Runtime) putCashierTreasury(addr address.Address, t *types.CashierTreasury) aerrors.ActorError {
	if err := rt.tx.Put(cashierTreasuryKey(addr), t); err != nil {
		return aerrors.Escalate(err, "storing cashier treasury")
	}
	return nil
}

func (rt *Runtime) putReceipt(addr address.Address, r *types.Receipt) aerrors.ActorError {
	if err := rt.tx.Put(receiptKey(addr), r); err != nil {
		return aerrors.Escalate(err, "storing receipt")
	}
	return nil
}

// Ledger wrappers adding the authorization the ledger itself leaves to
// the program.

// transferFrom moves value out of an account whose authority must have
// signed (the caller or a derived signer).
func (rt *Runtime) transferFrom(from, to address.Address, amount types.TokenAmount) aerrors.ActorError {
	src, aerr := ledger.GetAccount(rt.tx, from)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(src.Authority) {
		return aerrors.Newf(exitcode.ErrUnauthorized, "transfer from %s not signed by its authority", from)
	}
	return ledger.Transfer(rt.tx, from, to, amount)
}

// mintTo issues tokens; the mint's recorded authority must have signed.
func (rt *Runtime) mintTo(mint, to address.Address, amount types.TokenAmount) aerrors.ActorError {
	m, aerr := ledger.GetMint(rt.tx, mint)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(m.Authority) {
		return aerrors.Newf(exitcode.ErrUnauthorized, "mint %s not signed by its authority", mint)
	}
	return ledger.MintTo(rt.tx, mint, to, amount)
}

// burnFrom destroys tokens out of an account whose authority must have
// signed.
func (rt *Runtime) burnFrom(from address.Address, amount types.TokenAmount) aerrors.ActorError {
	acct, aerr := ledger.GetAccount(rt.tx, from)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(acct.Authority) {
		return aerrors.Newf(exitcode.ErrUnauthorized, "burn from %s not signed by its authority", from)
	}
	return ledger.Burn(rt.tx, from, amount)
}

// expectAccount loads a token account and verifies its mint.
func (rt *Runtime) expectAccount(addr, mint address.Address) (*ledger.Account, aerrors.ActorError) {
	acct, aerr := ledger.GetAccount(rt.tx, addr)
	if aerr != nil {
		return nil, aerr
	}
	if acct.Mint != mint {
		return nil, aerrors.Newf(exitcode.ErrTokenAccountHasUnexpectedMint,
			"account %s holds %s, expected %s", addr, acct.Mint, mint)
	}
	return acct, nil
}

// ensureAssociated creates (if absent) the owner's canonical account for
// a mint and returns its address.
func (rt *Runtime) ensureAssociated(owner, mint address.Address) (address.Address, aerrors.ActorError) {
	addr, aerr := mustDerive(AssociatedAccountAddress(owner, mint))
	if aerr != nil {
		return address.Undef, aerr
	}
	if _, aerr := ledger.EnsureAccount(rt.tx, addr, mint, owner); aerr != nil {
		return address.Undef, aerr
	}
	return addr, nil
}
