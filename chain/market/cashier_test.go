package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/types"
)

func TestInitCashier(t *testing.T) {
	h := newHarness(t)
	c := h.setupCashier()

	assert.Equal(t, h.cfg.cashierFunds, h.balance(c.stake))
	assert.Equal(t, uint64(0), h.balance(h.cashierOpGov))

	// one cashier per (charter, operator)
	h.applyCode(h.cashierOp, &InitCashier{Charter: h.charter}, exitcode.ErrAccountExists)

	// treasuries make the same existence guarantee
	h.applyCode(h.cashierOp,
		&InitCashierTreasury{Cashier: c.cashier, Mint: h.payMint},
		exitcode.ErrAccountExists)
}

func TestInitCashierTreasuryRequiresCharterTreasury(t *testing.T) {
	h := newHarness(t)
	c := h.setupCashier()

	// a currency the charter does not accept cannot earn cashier shares
	unknownMint := address.NewFromSeed([]byte("test/unlisted-mint"))
	h.applyCode(h.cashierOp,
		&InitCashierTreasury{Cashier: c.cashier, Mint: unknownMint},
		exitcode.ErrTreasuryNotFound)

	// only the cashier authority can open treasuries
	h.applyCode(h.lister,
		&InitCashierTreasury{Cashier: c.cashier, Mint: h.payMint},
		exitcode.ErrUnauthorized)
}

func TestBurnCashierStake(t *testing.T) {
	h := newHarness(t)
	c := h.setupCashier()
	govSupply := h.supply(h.govMint)

	// penalties are the charter authority's call, not the cashier's
	h.applyCode(h.cashierOp,
		&BurnCashierStake{Cashier: c.cashier, Amount: types.NewAmount(300)},
		exitcode.ErrUnauthorized)

	h.apply(h.govAdmin, &BurnCashierStake{Cashier: c.cashier, Amount: types.NewAmount(300)})
	assert.Equal(t, h.cfg.cashierFunds-300, h.balance(c.stake))
	assert.Equal(t, govSupply-300, h.supply(h.govMint))
}

func TestWithdrawCashierStake(t *testing.T) {
	h := newHarness(t)
	c := h.setupCashier()

	h.applyCode(h.lister, &WithdrawCashierStake{Cashier: c.cashier}, exitcode.ErrUnauthorized)

	// capped by the charter's per-withdrawal amount
	h.apply(h.cashierOp, &WithdrawCashierStake{Cashier: c.cashier})
	assert.Equal(t, h.cfg.cashierFunds-500, h.balance(c.stake))
	assert.Equal(t, uint64(500), h.balance(h.cashierOpGov))

	// a second withdrawal inside the cooldown moves nothing
	h.applyCode(h.cashierOp, &WithdrawCashierStake{Cashier: c.cashier}, exitcode.ErrWithdrawCooldown)
	assert.Equal(t, h.cfg.cashierFunds-500, h.balance(c.stake))
	assert.Equal(t, uint64(500), h.balance(h.cashierOpGov))

	h.clk.Add(time.Duration(h.cfg.withdrawPeriod) * time.Second)
	h.apply(h.cashierOp, &WithdrawCashierStake{Cashier: c.cashier})
	assert.Equal(t, h.cfg.cashierFunds-1000, h.balance(c.stake))
	assert.Equal(t, uint64(1000), h.balance(h.cashierOpGov))
}

func TestWithdrawCashierTreasury(t *testing.T) {
	h := newHarness(t, withWithdrawPolicy(3600, 40))
	c := h.setupCashier()

	// accrue earnings: 10% of 2000 is 200, split in half with the charter
	h.apply(h.purchaser, &PurchaseWithCashier{
		Listing: h.listing, Payment: h.purchaserPay, Quantity: 2, Cashier: c.cashier,
	})
	assert.Equal(t, uint64(100), h.balance(c.payEscrow))

	h.applyCode(h.lister, &WithdrawCashierTreasury{Treasury: c.payTreasury}, exitcode.ErrUnauthorized)

	h.apply(h.cashierOp, &WithdrawCashierTreasury{Treasury: c.payTreasury})
	assert.Equal(t, uint64(60), h.balance(c.payEscrow))
	assert.Equal(t, uint64(40), h.balance(c.payDeposit))

	h.applyCode(h.cashierOp, &WithdrawCashierTreasury{Treasury: c.payTreasury}, exitcode.ErrWithdrawCooldown)
	assert.Equal(t, uint64(60), h.balance(c.payEscrow))

	// cooldowns on the payment treasury and the stake are independent
	h.apply(h.cashierOp, &WithdrawCashierStake{Cashier: c.cashier})

	h.clk.Add(time.Hour)
	h.apply(h.cashierOp, &WithdrawCashierTreasury{Treasury: c.payTreasury})
	assert.Equal(t, uint64(20), h.balance(c.payEscrow))
	assert.Equal(t, uint64(80), h.balance(c.payDeposit))
}
