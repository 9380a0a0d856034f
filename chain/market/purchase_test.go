package market

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/types"
)

func TestPurchase(t *testing.T) {
	h := newHarness(t)
	govSupply := h.supply(h.govMint)

	h.apply(h.purchaser, &Purchase{Listing: h.listing, Payment: h.purchaserPay, Quantity: 2})

	// 2000 total: 10% to the charter treasury, the rest to the lister
	assert.Equal(t, uint64(8000), h.balance(h.purchaserPay))
	assert.Equal(t, uint64(1800), h.balance(h.listerPay))
	assert.Equal(t, uint64(200), h.balance(h.charterDeposit))

	// 5% of total freshly minted as the lister's vote reward
	assert.Equal(t, uint64(100), h.balance(h.listerVote))
	assert.Equal(t, govSupply+100, h.supply(h.govMint))

	// goods delivered
	inventory := h.must(AssociatedAccountAddress(h.purchaser, h.listingMint))
	assert.Equal(t, uint64(2), h.balance(inventory))
	assert.Equal(t, uint64(2), h.supply(h.listingMint))
}

func TestPurchaseWithCashier(t *testing.T) {
	h := newHarness(t)
	c := h.setupCashier()
	govSupply := h.supply(h.govMint)

	h.apply(h.purchaser, &PurchaseWithCashier{
		Listing:  h.listing,
		Payment:  h.purchaserPay,
		Quantity: 2,
		Cashier:  c.cashier,
	})

	// the lister's share is untouched by the cashier
	assert.Equal(t, uint64(8000), h.balance(h.purchaserPay))
	assert.Equal(t, uint64(1800), h.balance(h.listerPay))

	// the 200 charter cut splits 50/50 with the cashier
	assert.Equal(t, uint64(100), h.balance(c.payEscrow))
	assert.Equal(t, uint64(100), h.balance(h.charterDeposit))

	// the 100 vote reward splits between cashier escrow and the reserve;
	// the lister gets none of it on a brokered sale
	assert.Equal(t, uint64(50), h.balance(c.voteEscrow))
	assert.Equal(t, uint64(50), h.balance(h.reserve))
	assert.Equal(t, uint64(0), h.balance(h.listerVote))
	assert.Equal(t, govSupply+100, h.supply(h.govMint))
}

func TestPurchaseSplitsConserve(t *testing.T) {
	// awkward rates and price: every token of the total must land
	// somewhere, nothing minted beyond the vote reward
	h := newHarness(t,
		withContributions(1.0/3.0, 0.07),
		withCashierSplit(0.31),
		withPrice(997),
	)
	c := h.setupCashier()

	h.apply(h.purchaser, &PurchaseWithCashier{
		Listing:  h.listing,
		Payment:  h.purchaserPay,
		Quantity: 7,
		Cashier:  c.cashier,
	})

	total := uint64(997 * 7)
	spent := h.cfg.purchaserFunds - h.balance(h.purchaserPay)
	assert.Equal(t, total, spent)
	assert.Equal(t, total,
		h.balance(h.listerPay)+h.balance(c.payEscrow)+h.balance(h.charterDeposit))
}

func TestPurchaseUnavailable(t *testing.T) {
	h := newHarness(t)
	h.apply(h.lister, &SetListingAvailability{Listing: h.listing, Available: false})

	h.applyCode(h.purchaser,
		&Purchase{Listing: h.listing, Payment: h.purchaserPay, Quantity: 1},
		exitcode.ErrListingIsUnavailable)

	h.apply(h.lister, &SetListingAvailability{Listing: h.listing, Available: true})
	h.apply(h.purchaser, &Purchase{Listing: h.listing, Payment: h.purchaserPay, Quantity: 1})
}

func TestPurchaseSuspended(t *testing.T) {
	h := newHarness(t)

	// only the charter authority may suspend
	h.applyCode(h.lister,
		&SetListingSuspension{Listing: h.listing, Suspended: true},
		exitcode.ErrUnauthorized)
	h.apply(h.govAdmin, &SetListingSuspension{Listing: h.listing, Suspended: true})

	// suspension wins over availability
	h.apply(h.lister, &SetListingAvailability{Listing: h.listing, Available: false})
	h.applyCode(h.purchaser,
		&Purchase{Listing: h.listing, Payment: h.purchaserPay, Quantity: 1},
		exitcode.ErrListingIsSuspended)
}

func TestPurchaseUnauthorizedPayment(t *testing.T) {
	h := newHarness(t)

	// spending someone else's account fails and moves nothing
	h.applyCode(h.lister,
		&Purchase{Listing: h.listing, Payment: h.purchaserPay, Quantity: 1},
		exitcode.ErrUnauthorized)
	assert.Equal(t, h.cfg.purchaserFunds, h.balance(h.purchaserPay))
	assert.Equal(t, uint64(0), h.balance(h.listerPay))
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	h := newHarness(t)

	// 11 * 1000 exceeds the purchaser's 10000; the rejected instruction
	// leaves every balance untouched
	h.applyCode(h.purchaser,
		&Purchase{Listing: h.listing, Payment: h.purchaserPay, Quantity: 11},
		exitcode.ErrInsufficientBalance)

	assert.Equal(t, h.cfg.purchaserFunds, h.balance(h.purchaserPay))
	assert.Equal(t, uint64(0), h.balance(h.listerPay))
	assert.Equal(t, uint64(0), h.balance(h.charterDeposit))
	assert.Equal(t, uint64(0), h.supply(h.listingMint))
}

func TestPurchaseQuantityZero(t *testing.T) {
	h := newHarness(t)
	h.applyCode(h.purchaser,
		&Purchase{Listing: h.listing, Payment: h.purchaserPay, Quantity: 0},
		exitcode.ErrQuantityIsInvalid)
}

func TestPurchaseTotalOverflow(t *testing.T) {
	h := newHarness(t)
	h.apply(h.lister, &SetListingPrice{Listing: h.listing, Price: types.NewAmount(math.MaxUint64)})

	h.applyCode(h.purchaser,
		&Purchase{Listing: h.listing, Payment: h.purchaserPay, Quantity: 2},
		exitcode.ErrArithmeticOverflow)
	assert.Equal(t, h.cfg.purchaserFunds, h.balance(h.purchaserPay))
}

func TestPurchaseWithCashierRequiresCashier(t *testing.T) {
	h := newHarness(t)

	h.applyCode(h.purchaser,
		&PurchaseWithCashier{Listing: h.listing, Payment: h.purchaserPay, Quantity: 1},
		exitcode.SysErrInvalidParameters)

	// an unregistered cashier address is rejected
	bogus := h.must(CashierAddress(h.charter, h.purchaser))
	h.applyCode(h.purchaser,
		&PurchaseWithCashier{Listing: h.listing, Payment: h.purchaserPay, Quantity: 1, Cashier: bogus},
		exitcode.ErrAccountNotFound)
}
