// Package ledger is the token layer under the settlement program: mints
// and token accounts with uint64-bounded balances. It enforces value
// invariants (mint consistency, balance sufficiency, range) and leaves
// authorization to the caller, which knows who signed.
package ledger

import (
	"github.com/ipfs/go-datastore"
	cbor "github.com/ipfs/go-ipld-cbor"
	"golang.org/x/xerrors"

	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/aerrors"
	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/state"
	"github.com/emporium-foundation/emporium/chain/types"
)

func init() {
	cbor.RegisterCborType(Mint{})
	cbor.RegisterCborType(Account{})
}

// Mint is a currency. Supply tracks all tokens ever minted minus burns.
type Mint struct {
	Init      bool
	Authority address.Address
	Supply    types.TokenAmount
	Decimals  uint8
}

// Account holds a balance of one mint for one authority.
type Account struct {
	Init      bool
	Mint      address.Address
	Authority address.Address
	Balance   types.TokenAmount
}

func MintKey(a address.Address) datastore.Key {
	return datastore.NewKey("/token/mint/" + a.String())
}

func AccountKey(a address.Address) datastore.Key {
	return datastore.NewKey("/token/account/" + a.String())
}

// loadError maps a non-ErrNotFound failure from Tx.Get: a record that
// will not decode rejects with a serialization code, anything else is
// fatal.
func loadError(err error, what string) aerrors.ActorError {
	if xerrors.Is(err, state.ErrSerialization) {
		return aerrors.Absorb(err, exitcode.SysErrSerialization, "decoding "+what)
	}
	return aerrors.Escalate(err, "loading "+what)
}

func GetMint(tx *state.Tx, addr address.Address) (*Mint, aerrors.ActorError) {
	var m Mint
	err := tx.Get(MintKey(addr), &m)
	if err == state.ErrNotFound {
		return nil, aerrors.Newf(exitcode.ErrAccountNotFound, "mint %s not found", addr)
	}
	if err != nil {
		return nil, loadError(err, "mint")
	}
	return &m, nil
}

func GetAccount(tx *state.Tx, addr address.Address) (*Account, aerrors.ActorError) {
	var a Account
	err := tx.Get(AccountKey(addr), &a)
	if err == state.ErrNotFound {
		return nil, aerrors.Newf(exitcode.ErrAccountNotFound, "token account %s not found", addr)
	}
	if err != nil {
		return nil, loadError(err, "token account")
	}
	return &a, nil
}

func putMint(tx *state.Tx, addr address.Address, m *Mint) aerrors.ActorError {
	if err := tx.Put(MintKey(addr), m); err != nil {
		return aerrors.Escalate(err, "storing mint")
	}
	return nil
}

func putAccount(tx *state.Tx, addr address.Address, a *Account) aerrors.ActorError {
	if err := tx.Put(AccountKey(addr), a); err != nil {
		return aerrors.Escalate(err, "storing token account")
	}
	return nil
}

func CreateMint(tx *state.Tx, addr, authority address.Address, decimals uint8) aerrors.ActorError {
	has, err := tx.Has(MintKey(addr))
	if err != nil {
		return aerrors.Escalate(err, "checking mint existence")
	}
	if has {
		return aerrors.Newf(exitcode.ErrAccountExists, "mint %s already exists", addr)
	}
	return putMint(tx, addr, &Mint{
		Init:      true,
		Authority: authority,
		Supply:    types.NewAmount(0),
		Decimals:  decimals,
	})
}

// SetMintAuthority reassigns who may mint. Used once per governance and
// listing mint to bind minting permanently to a derived authority.
func SetMintAuthority(tx *state.Tx, addr, authority address.Address) aerrors.ActorError {
	m, aerr := GetMint(tx, addr)
	if aerr != nil {
		return aerr
	}
	m.Authority = authority
	return putMint(tx, addr, m)
}

func CreateAccount(tx *state.Tx, addr, mint, authority address.Address) aerrors.ActorError {
	has, err := tx.Has(AccountKey(addr))
	if err != nil {
		return aerrors.Escalate(err, "checking token account existence")
	}
	if has {
		return aerrors.Newf(exitcode.ErrAccountExists, "token account %s already exists", addr)
	}
	if _, aerr := GetMint(tx, mint); aerr != nil {
		return aerrors.Wrapf(aerr, "creating account %s", addr)
	}
	return putAccount(tx, addr, &Account{
		Init:      true,
		Mint:      mint,
		Authority: authority,
		Balance:   types.NewAmount(0),
	})
}

// EnsureAccount creates the account if absent and verifies its mint if
// present.
func EnsureAccount(tx *state.Tx, addr, mint, authority address.Address) (*Account, aerrors.ActorError) {
	acct, aerr := GetAccount(tx, addr)
	if aerr == nil {
		if acct.Mint != mint {
			return nil, aerrors.Newf(exitcode.ErrTokenAccountHasUnexpectedMint,
				"account %s holds %s, expected %s", addr, acct.Mint, mint)
		}
		return acct, nil
	}
	if aerr.RetCode() != exitcode.ErrAccountNotFound {
		return nil, aerr
	}
	if aerr := CreateAccount(tx, addr, mint, authority); aerr != nil {
		return nil, aerr
	}
	return GetAccount(tx, addr)
}

func checkAmount(amt types.TokenAmount) aerrors.ActorError {
	if amt.Nil() || amt.Sign() < 0 {
		return aerrors.New(exitcode.SysErrInvalidParameters, "amount is nil or negative")
	}
	if !amt.FitsLedger() {
		return aerrors.Newf(exitcode.ErrArithmeticOverflow, "amount %s exceeds ledger range", amt)
	}
	return nil
}

// MintTo issues amount of mint into the destination account.
func MintTo(tx *state.Tx, mint, to address.Address, amount types.TokenAmount) aerrors.ActorError {
	if aerr := checkAmount(amount); aerr != nil {
		return aerr
	}
	m, aerr := GetMint(tx, mint)
	if aerr != nil {
		return aerr
	}
	acct, aerr := GetAccount(tx, to)
	if aerr != nil {
		return aerr
	}
	if acct.Mint != mint {
		return aerrors.Newf(exitcode.ErrTokenAccountHasUnexpectedMint,
			"account %s holds %s, cannot mint %s", to, acct.Mint, mint)
	}
	supply := types.BigAdd(m.Supply, amount)
	balance := types.BigAdd(acct.Balance, amount)
	if !supply.FitsLedger() || !balance.FitsLedger() {
		return aerrors.Newf(exitcode.ErrArithmeticOverflow, "minting %s overflows", amount)
	}
	m.Supply = supply
	acct.Balance = balance
	if aerr := putMint(tx, mint, m); aerr != nil {
		return aerr
	}
	return putAccount(tx, to, acct)
}

// Transfer moves amount between two accounts of the same mint.
func Transfer(tx *state.Tx, from, to address.Address, amount types.TokenAmount) aerrors.ActorError {
	if aerr := checkAmount(amount); aerr != nil {
		return aerr
	}
	src, aerr := GetAccount(tx, from)
	if aerr != nil {
		return aerr
	}
	if from == to {
		// self-transfer is a no-op, but still requires sufficient funds
		if types.BigCmp(src.Balance, amount) < 0 {
			return aerrors.Newf(exitcode.ErrInsufficientBalance,
				"account %s has %s, needs %s", from, src.Balance, amount)
		}
		return nil
	}
	dst, aerr := GetAccount(tx, to)
	if aerr != nil {
		return aerr
	}
	if src.Mint != dst.Mint {
		return aerrors.Newf(exitcode.ErrTokenAccountHasUnexpectedMint,
			"transfer between mints %s and %s", src.Mint, dst.Mint)
	}
	if types.BigCmp(src.Balance, amount) < 0 {
		return aerrors.Newf(exitcode.ErrInsufficientBalance,
			"account %s has %s, needs %s", from, src.Balance, amount)
	}
	balance := types.BigAdd(dst.Balance, amount)
	if !balance.FitsLedger() {
		return aerrors.Newf(exitcode.ErrArithmeticOverflow, "transfer of %s overflows destination", amount)
	}
	src.Balance = types.BigSub(src.Balance, amount)
	dst.Balance = balance
	if aerr := putAccount(tx, from, src); aerr != nil {
		return aerr
	}
	return putAccount(tx, to, dst)
}

// Burn destroys amount from the account, reducing the mint's supply.
func Burn(tx *state.Tx, from address.Address, amount types.TokenAmount) aerrors.ActorError {
	if aerr := checkAmount(amount); aerr != nil {
		return aerr
	}
	acct, aerr := GetAccount(tx, from)
	if aerr != nil {
		return aerr
	}
	if types.BigCmp(acct.Balance, amount) < 0 {
		return aerrors.Newf(exitcode.ErrInsufficientBalance,
			"account %s has %s, cannot burn %s", from, acct.Balance, amount)
	}
	m, aerr := GetMint(tx, acct.Mint)
	if aerr != nil {
		return aerr
	}
	acct.Balance = types.BigSub(acct.Balance, amount)
	m.Supply = types.BigSub(m.Supply, amount)
	if aerr := putAccount(tx, from, acct); aerr != nil {
		return aerr
	}
	return putMint(tx, acct.Mint, m)
}

// Close deletes an account. The balance must be zero; closing is how
// escrow accounts are retired on terminal receipt transitions.
func Close(tx *state.Tx, addr address.Address) aerrors.ActorError {
	acct, aerr := GetAccount(tx, addr)
	if aerr != nil {
		return aerr
	}
	if acct.Balance.Sign() != 0 {
		return aerrors.Newf(exitcode.ErrInsufficientBalance,
			"closing account %s with non-zero balance %s", addr, acct.Balance)
	}
	tx.Delete(AccountKey(addr))
	return nil
}
