package market

import (
	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/aerrors"
	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/ledger"
	"github.com/emporium-foundation/emporium/chain/types"
)

// InitCashier registers the caller as an intermediary under a charter,
// with a program-held stake account in the charter's governance
// currency. Stake is funded by ordinary transfers into the account;
// getting it back out goes through the cooldown-gated withdrawal below,
// and the charter authority can burn it as a penalty.
type InitCashier struct {
	Charter address.Address
	URI     string
}

func (p *InitCashier) Kind() string { return "InitCashier" }

func (p *InitCashier) invoke(rt *Runtime) aerrors.ActorError {
	charter, aerr := GetCharter(rt.tx, p.Charter)
	if aerr != nil {
		return aerr
	}

	cashierAddr, aerr := mustDerive(CashierAddress(p.Charter, rt.Caller()))
	if aerr != nil {
		return aerr
	}
	if has, err := rt.tx.Has(cashierKey(cashierAddr)); err != nil {
		return aerrors.Escalate(err, "checking cashier existence")
	} else if has {
		return aerrors.Newf(exitcode.ErrAccountExists, "cashier %s already exists", cashierAddr)
	}

	stakeAddr, aerr := mustDerive(ProgramAccountAddress(cashierAddr, charter.Mint))
	if aerr != nil {
		return aerr
	}
	stakeAuth, aerr := mustDerive(TokenAuthorityAddress(cashierAddr))
	if aerr != nil {
		return aerr
	}
	if aerr := ledger.CreateAccount(rt.tx, stakeAddr, charter.Mint, stakeAuth); aerr != nil {
		return aerr
	}

	return rt.putCashier(cashierAddr, &types.Cashier{
		Init:           true,
		Charter:        p.Charter,
		Authority:      rt.Caller(),
		Stake:          stakeAddr,
		LastWithdrawAt: 0,
		URI:            p.URI,
	})
}

// InitCashierTreasury opens the cashier's earnings accumulator for one
// currency. The currency must already be accepted by the charter.
type InitCashierTreasury struct {
	Cashier address.Address
	Mint    address.Address

	// Deposit is where withdrawals land. Undef allocates the cashier
	// authority's associated account.
	Deposit address.Address
}

func (p *InitCashierTreasury) Kind() string { return "InitCashierTreasury" }

func (p *InitCashierTreasury) invoke(rt *Runtime) aerrors.ActorError {
	cashier, aerr := GetCashier(rt.tx, p.Cashier)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(cashier.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "caller is not the cashier authority")
	}

	// the charter treasury for this mint must exist unless this is the
	// governance currency itself (vote shares always settle in it)
	if charter, aerr := GetCharter(rt.tx, cashier.Charter); aerr != nil {
		return aerr
	} else if p.Mint != charter.Mint {
		treasuryAddr, aerr := mustDerive(CharterTreasuryAddress(cashier.Charter, p.Mint))
		if aerr != nil {
			return aerr
		}
		if _, aerr := GetCharterTreasury(rt.tx, treasuryAddr); aerr != nil {
			return aerrors.Wrapf(aerr, "charter %s does not accept %s", cashier.Charter, p.Mint)
		}
	}

	ctAddr, aerr := mustDerive(CashierTreasuryAddress(p.Cashier, p.Mint))
	if aerr != nil {
		return aerr
	}
	if has, err := rt.tx.Has(cashierTreasuryKey(ctAddr)); err != nil {
		return aerrors.Escalate(err, "checking cashier treasury existence")
	} else if has {
		return aerrors.Newf(exitcode.ErrAccountExists, "cashier treasury for (%s, %s) already exists", p.Cashier, p.Mint)
	}

	escrowAddr, aerr := mustDerive(ProgramAccountAddress(ctAddr, p.Mint))
	if aerr != nil {
		return aerr
	}
	escrowAuth, aerr := mustDerive(TokenAuthorityAddress(ctAddr))
	if aerr != nil {
		return aerr
	}
	if aerr := ledger.CreateAccount(rt.tx, escrowAddr, p.Mint, escrowAuth); aerr != nil {
		return aerr
	}

	deposit := p.Deposit
	if !deposit.Defined() {
		deposit, aerr = rt.ensureAssociated(cashier.Authority, p.Mint)
		if aerr != nil {
			return aerr
		}
	} else if _, aerr := rt.expectAccount(deposit, p.Mint); aerr != nil {
		return aerr
	}

	return rt.putCashierTreasury(ctAddr, &types.CashierTreasury{
		Init:           true,
		Cashier:        p.Cashier,
		Mint:           p.Mint,
		Escrow:         escrowAddr,
		Deposit:        deposit,
		LastWithdrawAt: 0,
	})
}

// BurnCashierStake is the charter authority's penalty mechanism: it
// irreversibly destroys collateral. Not self-service.
type BurnCashierStake struct {
	Cashier address.Address
	Amount  types.TokenAmount
}

func (p *BurnCashierStake) Kind() string { return "BurnCashierStake" }

func (p *BurnCashierStake) invoke(rt *Runtime) aerrors.ActorError {
	cashier, aerr := GetCashier(rt.tx, p.Cashier)
	if aerr != nil {
		return aerr
	}
	charter, aerr := GetCharter(rt.tx, cashier.Charter)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(charter.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "burning stake requires the charter authority")
	}
	if _, aerr := rt.signAs(address.NSTokenAuthority, p.Cashier); aerr != nil {
		return aerr
	}
	return rt.burnFrom(cashier.Stake, p.Amount)
}

// cooldownElapsed enforces the charter's withdraw period against a
// record's last-withdraw timestamp.
func cooldownElapsed(rt *Runtime, charter *types.Charter, lastWithdrawAt uint64) aerrors.ActorError {
	if rt.Now() < lastWithdrawAt+charter.WithdrawPeriod {
		return aerrors.Newf(exitcode.ErrWithdrawCooldown,
			"withdraw period of %ds not elapsed (last withdrawal at %d, now %d)",
			charter.WithdrawPeriod, lastWithdrawAt, rt.Now())
	}
	return nil
}

// WithdrawCashierTreasury moves accrued earnings from a cashier
// treasury's escrow to its deposit, capped per call by the charter's
// withdraw amount and gated by the withdraw period.
type WithdrawCashierTreasury struct {
	Treasury address.Address
}

func (p *WithdrawCashierTreasury) Kind() string { return "WithdrawCashierTreasury" }

func (p *WithdrawCashierTreasury) invoke(rt *Runtime) aerrors.ActorError {
	ct, aerr := GetCashierTreasury(rt.tx, p.Treasury)
	if aerr != nil {
		return aerr
	}
	cashier, aerr := GetCashier(rt.tx, ct.Cashier)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(cashier.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "caller is not the cashier authority")
	}
	charter, aerr := GetCharter(rt.tx, cashier.Charter)
	if aerr != nil {
		return aerr
	}
	if aerr := cooldownElapsed(rt, charter, ct.LastWithdrawAt); aerr != nil {
		return aerr
	}

	escrow, aerr := ledger.GetAccount(rt.tx, ct.Escrow)
	if aerr != nil {
		return aerr
	}
	amount := types.BigMin(escrow.Balance, charter.StakeWithdrawAmount)

	if _, aerr := rt.signAs(address.NSTokenAuthority, p.Treasury); aerr != nil {
		return aerr
	}
	if aerr := rt.transferFrom(ct.Escrow, ct.Deposit, amount); aerr != nil {
		return aerr
	}

	ct.LastWithdrawAt = rt.Now()
	return rt.putCashierTreasury(p.Treasury, ct)
}

// WithdrawCashierStake returns un-burned collateral to the cashier
// authority under the same cooldown and cap policy.
type WithdrawCashierStake struct {
	Cashier address.Address

	// Deposit receives the stake. Undef uses the cashier authority's
	// associated account.
	Deposit address.Address
}

func (p *WithdrawCashierStake) Kind() string { return "WithdrawCashierStake" }

func (p *WithdrawCashierStake) invoke(rt *Runtime) aerrors.ActorError {
	cashier, aerr := GetCashier(rt.tx, p.Cashier)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(cashier.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "caller is not the cashier authority")
	}
	charter, aerr := GetCharter(rt.tx, cashier.Charter)
	if aerr != nil {
		return aerr
	}
	if aerr := cooldownElapsed(rt, charter, cashier.LastWithdrawAt); aerr != nil {
		return aerr
	}

	stake, aerr := ledger.GetAccount(rt.tx, cashier.Stake)
	if aerr != nil {
		return aerr
	}
	amount := types.BigMin(stake.Balance, charter.StakeWithdrawAmount)

	deposit := p.Deposit
	if !deposit.Defined() {
		deposit, aerr = rt.ensureAssociated(cashier.Authority, charter.Mint)
		if aerr != nil {
			return aerr
		}
	} else if _, aerr := rt.expectAccount(deposit, charter.Mint); aerr != nil {
		return aerr
	}

	if _, aerr := rt.signAs(address.NSTokenAuthority, p.Cashier); aerr != nil {
		return aerr
	}
	if aerr := rt.transferFrom(cashier.Stake, deposit, amount); aerr != nil {
		return aerr
	}

	cashier.LastWithdrawAt = rt.Now()
	return rt.putCashier(p.Cashier, cashier)
}
