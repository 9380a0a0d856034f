package market

import (
	"context"
	"testing"
	"time"

	"github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	"github.com/raulk/clock"
	"github.com/stretchr/testify/require"

	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/ledger"
	"github.com/emporium-foundation/emporium/chain/state"
	"github.com/emporium-foundation/emporium/chain/types"
)

// hcfg parameterizes the standard marketplace every settlement test runs
// against: one charter, one payment currency, one listing, a funded
// purchaser.
type hcfg struct {
	paymentContribution types.Rate
	voteContribution    types.Rate
	scalar              types.Rate
	cashierSplit        types.Rate

	price      uint64
	refundable bool
	consumable bool

	withdrawPeriod      uint64
	stakeWithdrawAmount uint64

	purchaserFunds uint64
	cashierFunds   uint64
}

type hopt func(*hcfg)

func withContributions(payment, vote types.Rate) hopt {
	return func(c *hcfg) {
		c.paymentContribution = payment
		c.voteContribution = vote
	}
}

func withScalar(s types.Rate) hopt {
	return func(c *hcfg) { c.scalar = s }
}

func withCashierSplit(s types.Rate) hopt {
	return func(c *hcfg) { c.cashierSplit = s }
}

func withPrice(p uint64) hopt {
	return func(c *hcfg) { c.price = p }
}

func notRefundable() hopt {
	return func(c *hcfg) { c.refundable = false }
}

func notConsumable() hopt {
	return func(c *hcfg) { c.consumable = false }
}

func withWithdrawPolicy(period, amount uint64) hopt {
	return func(c *hcfg) {
		c.withdrawPeriod = period
		c.stakeWithdrawAmount = amount
	}
}

type harness struct {
	t   *testing.T
	ctx context.Context
	clk *clock.Mock
	p   *Program
	cfg hcfg

	govAdmin  address.Address
	payAdmin  address.Address
	lister    address.Address
	purchaser address.Address
	cashierOp address.Address

	govMint     address.Address
	payMint     address.Address
	listingMint address.Address

	charter         address.Address
	reserve         address.Address
	charterTreasury address.Address
	charterDeposit  address.Address

	listing    address.Address
	listerPay  address.Address
	listerVote address.Address

	purchaserPay address.Address
	cashierOpGov address.Address
}

func (h *harness) must(a address.Address, _ uint8, err error) address.Address {
	h.t.Helper()
	require.NoError(h.t, err)
	return a
}

func newHarness(t *testing.T, opts ...hopt) *harness {
	cfg := hcfg{
		paymentContribution: 0.10,
		voteContribution:    0.05,
		scalar:              1.0,
		cashierSplit:        0.5,
		price:               1000,
		refundable:          true,
		consumable:          true,
		withdrawPeriod:      3600,
		stakeWithdrawAmount: 500,
		purchaserFunds:      10_000,
		cashierFunds:        2000,
	}
	for _, o := range opts {
		o(&cfg)
	}

	clk := clock.NewMock()
	clk.Set(time.Unix(1_000_000, 0))

	h := &harness{
		t:   t,
		ctx: context.Background(),
		clk: clk,
		p:   NewProgram(state.NewTree(dssync.MutexWrap(datastore.NewMapDatastore())), WithClock(clk)),
		cfg: cfg,

		govAdmin:  address.NewFromSeed([]byte("test/gov-admin")),
		payAdmin:  address.NewFromSeed([]byte("test/pay-admin")),
		lister:    address.NewFromSeed([]byte("test/lister")),
		purchaser: address.NewFromSeed([]byte("test/purchaser")),
		cashierOp: address.NewFromSeed([]byte("test/cashier-op")),

		govMint:     address.NewFromSeed([]byte("test/gov-mint")),
		payMint:     address.NewFromSeed([]byte("test/pay-mint")),
		listingMint: address.NewFromSeed([]byte("test/listing-mint")),
	}

	h.apply(h.govAdmin, &CreateMint{Mint: h.govMint, Decimals: 6})
	h.apply(h.payAdmin, &CreateMint{Mint: h.payMint, Decimals: 6})

	// governance tokens for staking have to be issued before the charter
	// rebinds the mint authority to the program
	h.apply(h.cashierOp, &CreateTokenAccount{Mint: h.govMint})
	h.cashierOpGov = h.must(AssociatedAccountAddress(h.cashierOp, h.govMint))
	h.apply(h.govAdmin, &MintTokens{Mint: h.govMint, To: h.cashierOpGov, Amount: types.NewAmount(cfg.cashierFunds)})

	h.apply(h.govAdmin, &InitCharter{
		Mint:                h.govMint,
		ExpansionRate:       0.05,
		PaymentContribution: cfg.paymentContribution,
		VoteContribution:    cfg.voteContribution,
		WithdrawPeriod:      cfg.withdrawPeriod,
		StakeWithdrawAmount: types.NewAmount(cfg.stakeWithdrawAmount),
		URI:                 "https://example.com/charter.json",
	})
	h.charter = h.must(CharterAddress(h.govMint))
	h.reserve = h.must(ProgramAccountAddress(h.charter, h.govMint))

	h.apply(h.govAdmin, &InitCharterTreasury{
		Charter: h.charter,
		Mint:    h.payMint,
		Scalar:  cfg.scalar,
	})
	h.charterTreasury = h.must(CharterTreasuryAddress(h.charter, h.payMint))
	h.charterDeposit = h.must(ProgramAccountAddress(h.charterTreasury, h.payMint))

	h.apply(h.lister, &InitListing{
		Charter:      h.charter,
		Mint:         h.listingMint,
		Decimals:     0,
		PaymentMint:  h.payMint,
		Price:        types.NewAmount(cfg.price),
		Available:    true,
		Refundable:   cfg.refundable,
		Consumable:   cfg.consumable,
		CashierSplit: cfg.cashierSplit,
		URI:          "https://example.com/listing.json",
	})
	h.listing = h.must(ListingAddress(h.listingMint))
	h.listerPay = h.must(AssociatedAccountAddress(h.lister, h.payMint))
	h.listerVote = h.must(AssociatedAccountAddress(h.lister, h.govMint))

	h.apply(h.purchaser, &CreateTokenAccount{Mint: h.payMint})
	h.purchaserPay = h.must(AssociatedAccountAddress(h.purchaser, h.payMint))
	h.apply(h.payAdmin, &MintTokens{Mint: h.payMint, To: h.purchaserPay, Amount: types.NewAmount(cfg.purchaserFunds)})

	return h
}

// cashierHarness extends the standard marketplace with a staked cashier
// holding treasuries for both currencies.
type cashierHarness struct {
	cashier address.Address
	stake   address.Address

	payTreasury address.Address
	payEscrow   address.Address
	payDeposit  address.Address

	voteTreasury address.Address
	voteEscrow   address.Address
}

func (h *harness) setupCashier() *cashierHarness {
	h.t.Helper()

	c := &cashierHarness{}
	h.apply(h.cashierOp, &InitCashier{Charter: h.charter, URI: "https://example.com/cashier.json"})
	c.cashier = h.must(CashierAddress(h.charter, h.cashierOp))
	c.stake = h.must(ProgramAccountAddress(c.cashier, h.govMint))

	h.apply(h.cashierOp, &InitCashierTreasury{Cashier: c.cashier, Mint: h.payMint})
	c.payTreasury = h.must(CashierTreasuryAddress(c.cashier, h.payMint))
	c.payEscrow = h.must(ProgramAccountAddress(c.payTreasury, h.payMint))
	c.payDeposit = h.must(AssociatedAccountAddress(h.cashierOp, h.payMint))

	h.apply(h.cashierOp, &InitCashierTreasury{Cashier: c.cashier, Mint: h.govMint})
	c.voteTreasury = h.must(CashierTreasuryAddress(c.cashier, h.govMint))
	c.voteEscrow = h.must(ProgramAccountAddress(c.voteTreasury, h.govMint))

	// collateralize
	h.apply(h.cashierOp, &TransferTokens{From: h.cashierOpGov, To: c.stake, Amount: types.NewAmount(h.cfg.cashierFunds)})

	return c
}

func (h *harness) apply(caller address.Address, inst Instruction) {
	h.t.Helper()
	require.NoError(h.t, h.p.Apply(h.ctx, caller, inst))
}

func (h *harness) applyCode(caller address.Address, inst Instruction, code exitcode.ExitCode) {
	h.t.Helper()
	aerr := h.p.Apply(h.ctx, caller, inst)
	require.Error(h.t, aerr)
	require.Equal(h.t, code, aerr.RetCode(), "want %s, got %s: %s", code, aerr.RetCode(), aerr)
}

func (h *harness) balance(addr address.Address) uint64 {
	h.t.Helper()
	var out uint64
	require.NoError(h.t, h.p.View(h.ctx, func(tx *state.Tx) error {
		acct, aerr := ledger.GetAccount(tx, addr)
		if aerr != nil {
			return aerr
		}
		out = acct.Balance.Uint64()
		return nil
	}))
	return out
}

func (h *harness) supply(mint address.Address) uint64 {
	h.t.Helper()
	var out uint64
	require.NoError(h.t, h.p.View(h.ctx, func(tx *state.Tx) error {
		m, aerr := ledger.GetMint(tx, mint)
		if aerr != nil {
			return aerr
		}
		out = m.Supply.Uint64()
		return nil
	}))
	return out
}

func (h *harness) accountGone(addr address.Address) bool {
	h.t.Helper()
	gone := false
	require.NoError(h.t, h.p.View(h.ctx, func(tx *state.Tx) error {
		_, aerr := ledger.GetAccount(tx, addr)
		if aerr != nil && aerr.RetCode() == exitcode.ErrAccountNotFound {
			gone = true
			return nil
		}
		return aerr
	}))
	return gone
}

func (h *harness) receiptGone(addr address.Address) bool {
	h.t.Helper()
	gone := false
	require.NoError(h.t, h.p.View(h.ctx, func(tx *state.Tx) error {
		_, aerr := GetReceipt(tx, addr)
		if aerr != nil && aerr.RetCode() == exitcode.ErrAccountNotFound {
			gone = true
			return nil
		}
		return aerr
	}))
	return gone
}

func (h *harness) getListing() *types.Listing {
	h.t.Helper()
	var out *types.Listing
	require.NoError(h.t, h.p.View(h.ctx, func(tx *state.Tx) error {
		l, aerr := GetListing(tx, h.listing)
		if aerr != nil {
			return aerr
		}
		out = l
		return nil
	}))
	return out
}
