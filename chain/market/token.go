package market

import (
	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/aerrors"
	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/ledger"
	"github.com/emporium-foundation/emporium/chain/types"
)

// Generic token instructions. Payment currencies and governance mints
// have to come from somewhere; these are the plain token-layer
// operations for everything the settlement instructions don't cover.
// Settlement-controlled mints (listing tokens, charter governance after
// InitCharter) have derived authorities, so MintTokens against them
// fails authorization here.

// CreateMint creates a currency with the caller as mint authority.
type CreateMint struct {
	Mint     address.Address
	Decimals uint8
}

func (p *CreateMint) Kind() string { return "CreateMint" }

func (p *CreateMint) invoke(rt *Runtime) aerrors.ActorError {
	if !p.Mint.Defined() {
		return aerrors.New(exitcode.SysErrInvalidParameters, "mint is undefined")
	}
	return ledger.CreateMint(rt.tx, p.Mint, rt.Caller(), p.Decimals)
}

// CreateTokenAccount creates the caller's associated account for a mint.
type CreateTokenAccount struct {
	Mint address.Address
}

func (p *CreateTokenAccount) Kind() string { return "CreateTokenAccount" }

func (p *CreateTokenAccount) invoke(rt *Runtime) aerrors.ActorError {
	_, aerr := rt.ensureAssociated(rt.Caller(), p.Mint)
	return aerr
}

type MintTokens struct {
	Mint   address.Address
	To     address.Address
	Amount types.TokenAmount
}

func (p *MintTokens) Kind() string { return "MintTokens" }

func (p *MintTokens) invoke(rt *Runtime) aerrors.ActorError {
	return rt.mintTo(p.Mint, p.To, p.Amount)
}

type TransferTokens struct {
	From   address.Address
	To     address.Address
	Amount types.TokenAmount
}

func (p *TransferTokens) Kind() string { return "TransferTokens" }

func (p *TransferTokens) invoke(rt *Runtime) aerrors.ActorError {
	return rt.transferFrom(p.From, p.To, p.Amount)
}

type BurnTokens struct {
	From   address.Address
	Amount types.TokenAmount
}

func (p *BurnTokens) Kind() string { return "BurnTokens" }

func (p *BurnTokens) invoke(rt *Runtime) aerrors.ActorError {
	return rt.burnFrom(p.From, p.Amount)
}
