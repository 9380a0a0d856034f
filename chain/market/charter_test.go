package market

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/state"
	"github.com/emporium-foundation/emporium/chain/types"
)

func (h *harness) getCharter() *types.Charter {
	h.t.Helper()
	var out *types.Charter
	if err := h.p.View(h.ctx, func(tx *state.Tx) error {
		c, aerr := GetCharter(tx, h.charter)
		if aerr != nil {
			return aerr
		}
		out = c
		return nil
	}); err != nil {
		h.t.Fatal(err)
	}
	return out
}

func TestInitCharterValidation(t *testing.T) {
	h := newHarness(t)

	mint := address.NewFromSeed([]byte("test/second-gov-mint"))
	h.apply(h.payAdmin, &CreateMint{Mint: mint, Decimals: 6})

	// contribution rates must stay below 100%
	h.applyCode(h.payAdmin, &InitCharter{
		Mint:                mint,
		PaymentContribution: 1.0,
		VoteContribution:    0.05,
		StakeWithdrawAmount: types.NewAmount(1),
	}, exitcode.ErrContributionIsInvalid)

	// only the mint's authority can charter it
	h.applyCode(h.govAdmin, &InitCharter{
		Mint:                mint,
		PaymentContribution: 0.1,
		VoteContribution:    0.05,
		StakeWithdrawAmount: types.NewAmount(1),
	}, exitcode.ErrUnauthorized)

	// one charter per mint
	h.applyCode(h.govAdmin, &InitCharter{
		Mint:                h.govMint,
		PaymentContribution: 0.1,
		VoteContribution:    0.05,
		StakeWithdrawAmount: types.NewAmount(1),
	}, exitcode.ErrAccountExists)
}

func TestCharterBindsGovernanceMint(t *testing.T) {
	h := newHarness(t)

	// after chartering, even the former mint authority cannot expand the
	// governance supply by hand
	h.applyCode(h.govAdmin,
		&MintTokens{Mint: h.govMint, To: h.cashierOpGov, Amount: types.NewAmount(1)},
		exitcode.ErrUnauthorized)
}

func TestSetCharterRates(t *testing.T) {
	h := newHarness(t)

	h.applyCode(h.lister,
		&SetCharterContributionRate{Charter: h.charter, PaymentContribution: 0.2, VoteContribution: 0.1},
		exitcode.ErrUnauthorized)

	h.apply(h.govAdmin, &SetCharterContributionRate{Charter: h.charter, PaymentContribution: 0.2, VoteContribution: 0.1})
	h.apply(h.govAdmin, &SetCharterExpansionRate{Charter: h.charter, ExpansionRate: 0.25})

	c := h.getCharter()
	assert.Equal(t, types.Rate(0.2), c.PaymentContribution)
	assert.Equal(t, types.Rate(0.1), c.VoteContribution)
	assert.Equal(t, types.Rate(0.25), c.ExpansionRate)

	h.applyCode(h.govAdmin,
		&SetCharterContributionRate{Charter: h.charter, PaymentContribution: 1.0, VoteContribution: 0.1},
		exitcode.ErrContributionIsInvalid)
	h.applyCode(h.govAdmin,
		&SetCharterExpansionRate{Charter: h.charter, ExpansionRate: -1},
		exitcode.ErrExpansionRateIsInvalid)
}

func TestSetCharterAuthority(t *testing.T) {
	h := newHarness(t)
	next := address.NewFromSeed([]byte("test/next-admin"))

	h.apply(h.govAdmin, &SetCharterAuthority{Charter: h.charter, Authority: next})

	// the old authority is out
	h.applyCode(h.govAdmin,
		&SetCharterExpansionRate{Charter: h.charter, ExpansionRate: 0.1},
		exitcode.ErrUnauthorized)
	h.apply(next, &SetCharterExpansionRate{Charter: h.charter, ExpansionRate: 0.1})
}

func TestSetCharterTreasuryScalar(t *testing.T) {
	h := newHarness(t, withContributions(0.1, 0.05), withScalar(1.0))

	// doubling the scalar doubles the vote reward on the next sale
	h.apply(h.govAdmin, &SetCharterTreasuryScalar{Treasury: h.charterTreasury, Scalar: 2.0})
	h.apply(h.purchaser, &Purchase{Listing: h.listing, Payment: h.purchaserPay, Quantity: 2})
	assert.Equal(t, uint64(200), h.balance(h.listerVote))

	h.applyCode(h.lister,
		&SetCharterTreasuryScalar{Treasury: h.charterTreasury, Scalar: 1.0},
		exitcode.ErrUnauthorized)
}

func TestSetCharterTreasuryDeposit(t *testing.T) {
	h := newHarness(t)

	// the replacement must hold the treasury's currency
	h.applyCode(h.govAdmin,
		&SetCharterTreasuryDeposit{Treasury: h.charterTreasury, Deposit: h.cashierOpGov},
		exitcode.ErrTokenAccountHasUnexpectedMint)

	h.apply(h.govAdmin, &SetCharterTreasuryDeposit{Treasury: h.charterTreasury, Deposit: h.purchaserPay})
	h.apply(h.purchaser, &Purchase{Listing: h.listing, Payment: h.purchaserPay, Quantity: 1})

	// the charter cut now routes to the new deposit
	assert.Equal(t, uint64(0), h.balance(h.charterDeposit))
	assert.Equal(t, h.cfg.purchaserFunds-1000+100, h.balance(h.purchaserPay))
}
