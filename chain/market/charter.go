package market

import (
	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/aerrors"
	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/ledger"
	"github.com/emporium-foundation/emporium/chain/types"
)

// InitCharter creates the governance root for a mint. The caller must be
// the mint's current authority; minting is then bound permanently to the
// program's derived mint authority so expansion can only happen through
// settlement. One charter per mint, enforced by address derivation.
type InitCharter struct {
	Mint address.Address

	// Reserve is the token account collecting vote contributions. Undef
	// allocates a program-held reserve.
	Reserve address.Address

	ExpansionRate       types.Rate
	PaymentContribution types.Rate
	VoteContribution    types.Rate

	WithdrawPeriod      uint64
	StakeWithdrawAmount types.TokenAmount

	URI string
}

func (p *InitCharter) Kind() string { return "InitCharter" }

func (p *InitCharter) invoke(rt *Runtime) aerrors.ActorError {
	if !p.PaymentContribution.ValidFraction() || !p.VoteContribution.ValidFraction() {
		return aerrors.New(exitcode.ErrContributionIsInvalid, "contribution rates must be in [0, 1)")
	}
	if !p.ExpansionRate.Valid() {
		return aerrors.New(exitcode.ErrExpansionRateIsInvalid, "expansion rate must be non-negative")
	}
	if p.StakeWithdrawAmount.Nil() || !p.StakeWithdrawAmount.FitsLedger() {
		return aerrors.New(exitcode.SysErrInvalidParameters, "stake withdraw amount out of range")
	}

	charterAddr, aerr := mustDerive(CharterAddress(p.Mint))
	if aerr != nil {
		return aerr
	}
	if has, err := rt.tx.Has(charterKey(charterAddr)); err != nil {
		return aerrors.Escalate(err, "checking charter existence")
	} else if has {
		return aerrors.Newf(exitcode.ErrAccountExists, "charter for mint %s already exists", p.Mint)
	}

	m, aerr := ledger.GetMint(rt.tx, p.Mint)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(m.Authority) {
		return aerrors.Newf(exitcode.ErrUnauthorized, "caller does not control mint %s", p.Mint)
	}
	mintAuth, aerr := mustDerive(MintAuthorityAddress(p.Mint))
	if aerr != nil {
		return aerr
	}
	if aerr := ledger.SetMintAuthority(rt.tx, p.Mint, mintAuth); aerr != nil {
		return aerr
	}

	reserve := p.Reserve
	if !reserve.Defined() {
		reserve, aerr = mustDerive(ProgramAccountAddress(charterAddr, p.Mint))
		if aerr != nil {
			return aerr
		}
		tokenAuth, aerr := mustDerive(TokenAuthorityAddress(charterAddr))
		if aerr != nil {
			return aerr
		}
		if aerr := ledger.CreateAccount(rt.tx, reserve, p.Mint, tokenAuth); aerr != nil {
			return aerr
		}
	} else if _, aerr := rt.expectAccount(reserve, p.Mint); aerr != nil {
		return aerr
	}

	return rt.putCharter(charterAddr, &types.Charter{
		Init:                true,
		Authority:           rt.Caller(),
		Mint:                p.Mint,
		Reserve:             reserve,
		ExpansionRate:       p.ExpansionRate,
		PaymentContribution: p.PaymentContribution,
		VoteContribution:    p.VoteContribution,
		WithdrawPeriod:      p.WithdrawPeriod,
		StakeWithdrawAmount: p.StakeWithdrawAmount,
		URI:                 p.URI,
	})
}

// InitCharterTreasury registers a payment currency under a charter. A
// listing cannot use a currency until its treasury exists. One treasury
// per (charter, mint) pair.
type InitCharterTreasury struct {
	Charter address.Address
	Mint    address.Address

	// Deposit receives the charter's share of sales in this currency.
	// Undef allocates one owned by the charter authority.
	Deposit address.Address

	Scalar types.Rate
}

func (p *InitCharterTreasury) Kind() string { return "InitCharterTreasury" }

func (p *InitCharterTreasury) invoke(rt *Runtime) aerrors.ActorError {
	if !p.Scalar.Valid() {
		return aerrors.New(exitcode.ErrScalarIsInvalid, "scalar must be non-negative")
	}

	charter, aerr := GetCharter(rt.tx, p.Charter)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(charter.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "caller is not the charter authority")
	}
	if _, aerr := ledger.GetMint(rt.tx, p.Mint); aerr != nil {
		return aerr
	}

	treasuryAddr, aerr := mustDerive(CharterTreasuryAddress(p.Charter, p.Mint))
	if aerr != nil {
		return aerr
	}
	if has, err := rt.tx.Has(charterTreasuryKey(treasuryAddr)); err != nil {
		return aerrors.Escalate(err, "checking treasury existence")
	} else if has {
		return aerrors.Newf(exitcode.ErrAccountExists, "treasury for (%s, %s) already exists", p.Charter, p.Mint)
	}

	deposit := p.Deposit
	if !deposit.Defined() {
		deposit, aerr = mustDerive(ProgramAccountAddress(treasuryAddr, p.Mint))
		if aerr != nil {
			return aerr
		}
		if aerr := ledger.CreateAccount(rt.tx, deposit, p.Mint, charter.Authority); aerr != nil {
			return aerr
		}
	} else if _, aerr := rt.expectAccount(deposit, p.Mint); aerr != nil {
		return aerr
	}

	return rt.putCharterTreasury(treasuryAddr, &types.CharterTreasury{
		Init:    true,
		Charter: p.Charter,
		Mint:    p.Mint,
		Deposit: deposit,
		Scalar:  p.Scalar,
	})
}

// SetCharterExpansionRate updates the expansion rate; charter authority
// only.
type SetCharterExpansionRate struct {
	Charter       address.Address
	ExpansionRate types.Rate
}

func (p *SetCharterExpansionRate) Kind() string { return "SetCharterExpansionRate" }

func (p *SetCharterExpansionRate) invoke(rt *Runtime) aerrors.ActorError {
	if !p.ExpansionRate.Valid() {
		return aerrors.New(exitcode.ErrExpansionRateIsInvalid, "expansion rate must be non-negative")
	}
	charter, aerr := GetCharter(rt.tx, p.Charter)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(charter.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "caller is not the charter authority")
	}
	charter.ExpansionRate = p.ExpansionRate
	return rt.putCharter(p.Charter, charter)
}

// SetCharterContributionRate updates both contribution fractions.
type SetCharterContributionRate struct {
	Charter             address.Address
	PaymentContribution types.Rate
	VoteContribution    types.Rate
}

func (p *SetCharterContributionRate) Kind() string { return "SetCharterContributionRate" }

func (p *SetCharterContributionRate) invoke(rt *Runtime) aerrors.ActorError {
	if !p.PaymentContribution.ValidFraction() || !p.VoteContribution.ValidFraction() {
		return aerrors.New(exitcode.ErrContributionIsInvalid, "contribution rates must be in [0, 1)")
	}
	charter, aerr := GetCharter(rt.tx, p.Charter)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(charter.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "caller is not the charter authority")
	}
	charter.PaymentContribution = p.PaymentContribution
	charter.VoteContribution = p.VoteContribution
	return rt.putCharter(p.Charter, charter)
}

type SetCharterAuthority struct {
	Charter   address.Address
	Authority address.Address
}

func (p *SetCharterAuthority) Kind() string { return "SetCharterAuthority" }

func (p *SetCharterAuthority) invoke(rt *Runtime) aerrors.ActorError {
	if !p.Authority.Defined() {
		return aerrors.New(exitcode.SysErrInvalidParameters, "new authority is undefined")
	}
	charter, aerr := GetCharter(rt.tx, p.Charter)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(charter.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "caller is not the charter authority")
	}
	charter.Authority = p.Authority
	return rt.putCharter(p.Charter, charter)
}

type SetCharterReserve struct {
	Charter address.Address
	Reserve address.Address
}

func (p *SetCharterReserve) Kind() string { return "SetCharterReserve" }

func (p *SetCharterReserve) invoke(rt *Runtime) aerrors.ActorError {
	charter, aerr := GetCharter(rt.tx, p.Charter)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(charter.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "caller is not the charter authority")
	}
	if _, aerr := rt.expectAccount(p.Reserve, charter.Mint); aerr != nil {
		return aerr
	}
	charter.Reserve = p.Reserve
	return rt.putCharter(p.Charter, charter)
}

type SetCharterTreasuryScalar struct {
	Treasury address.Address
	Scalar   types.Rate
}

func (p *SetCharterTreasuryScalar) Kind() string { return "SetCharterTreasuryScalar" }

func (p *SetCharterTreasuryScalar) invoke(rt *Runtime) aerrors.ActorError {
	if !p.Scalar.Valid() {
		return aerrors.New(exitcode.ErrScalarIsInvalid, "scalar must be non-negative")
	}
	treasury, aerr := GetCharterTreasury(rt.tx, p.Treasury)
	if aerr != nil {
		return aerr
	}
	charter, aerr := GetCharter(rt.tx, treasury.Charter)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(charter.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "caller is not the charter authority")
	}
	treasury.Scalar = p.Scalar
	return rt.putCharterTreasury(p.Treasury, treasury)
}

type SetCharterTreasuryDeposit struct {
	Treasury address.Address
	Deposit  address.Address
}

func (p *SetCharterTreasuryDeposit) Kind() string { return "SetCharterTreasuryDeposit" }

func (p *SetCharterTreasuryDeposit) invoke(rt *Runtime) aerrors.ActorError {
	treasury, aerr := GetCharterTreasury(rt.tx, p.Treasury)
	if aerr != nil {
		return aerr
	}
	charter, aerr := GetCharter(rt.tx, treasury.Charter)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(charter.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "caller is not the charter authority")
	}
	if _, aerr := rt.expectAccount(p.Deposit, treasury.Mint); aerr != nil {
		return aerr
	}
	treasury.Deposit = p.Deposit
	return rt.putCharterTreasury(p.Treasury, treasury)
}
