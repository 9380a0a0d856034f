package market

import (
	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/aerrors"
	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/ledger"
	"github.com/emporium-foundation/emporium/chain/types"
)

// settlement bundles the accounts every value split touches, validated
// against each other before any mutation.
type settlement struct {
	listingAddr  address.Address
	listing      *types.Listing
	charterAddr  address.Address
	charter      *types.Charter
	treasuryAddr address.Address
	treasury     *types.CharterTreasury
	paymentMint  address.Address
}

// loadSettlement resolves the listing's charter and the charter treasury
// for the listing's payment currency. Every supplied reference is
// untrusted: stored back-references are checked explicitly even though
// the treasury address is re-derived, guarding against a
// plausible-but-wrong account.
func loadSettlement(rt *Runtime, listingAddr address.Address) (*settlement, aerrors.ActorError) {
	listing, aerr := GetListing(rt.tx, listingAddr)
	if aerr != nil {
		return nil, aerr
	}
	charter, aerr := GetCharter(rt.tx, listing.Charter)
	if aerr != nil {
		return nil, aerr
	}
	paymentAcct, aerr := ledger.GetAccount(rt.tx, listing.PaymentDeposit)
	if aerr != nil {
		return nil, aerr
	}
	paymentMint := paymentAcct.Mint

	treasuryAddr, aerr := mustDerive(CharterTreasuryAddress(listing.Charter, paymentMint))
	if aerr != nil {
		return nil, aerr
	}
	treasury, aerr := GetCharterTreasury(rt.tx, treasuryAddr)
	if aerr != nil {
		return nil, aerr
	}
	if treasury.Charter != listing.Charter {
		return nil, aerrors.Newf(exitcode.ErrCharterTreasuryHasUnexpectedCharter,
			"treasury %s belongs to %s, not %s", treasuryAddr, treasury.Charter, listing.Charter)
	}
	if treasury.Mint != paymentMint {
		return nil, aerrors.Newf(exitcode.ErrCharterTreasuryHasUnexpectedMint,
			"treasury %s accepts %s, not %s", treasuryAddr, treasury.Mint, paymentMint)
	}

	return &settlement{
		listingAddr:  listingAddr,
		listing:      listing,
		charterAddr:  listing.Charter,
		charter:      charter,
		treasuryAddr: treasuryAddr,
		treasury:     treasury,
		paymentMint:  paymentMint,
	}, nil
}

// checkPurchasable enforces the listing's gating flags for new sales.
func (s *settlement) checkPurchasable() aerrors.ActorError {
	if s.listing.Suspended {
		return aerrors.New(exitcode.ErrListingIsSuspended, "listing is suspended")
	}
	if !s.listing.Available {
		return aerrors.New(exitcode.ErrListingIsUnavailable, "listing is unavailable")
	}
	return nil
}

// saleTotal computes price*quantity, rejecting quantity zero and any
// product outside the ledger range.
func saleTotal(price types.TokenAmount, quantity uint64) (types.TokenAmount, aerrors.ActorError) {
	if quantity == 0 {
		return types.EmptyAmount, aerrors.New(exitcode.ErrQuantityIsInvalid, "quantity must be at least 1")
	}
	total := types.BigMul(price, types.NewAmount(quantity))
	if !total.FitsLedger() {
		return types.EmptyAmount, aerrors.Newf(exitcode.ErrArithmeticOverflow,
			"total %s x %d exceeds ledger range", price, quantity)
	}
	return total, nil
}

// loadCashierTreasuries resolves and integrity-checks the cashier plus
// its per-currency treasuries for the payment and vote currencies.
func (s *settlement) loadCashierTreasuries(rt *Runtime, cashierAddr address.Address) (*types.CashierTreasury, *types.CashierTreasury, aerrors.ActorError) {
	cashier, aerr := GetCashier(rt.tx, cashierAddr)
	if aerr != nil {
		return nil, nil, aerr
	}
	if cashier.Charter != s.charterAddr {
		return nil, nil, aerrors.Newf(exitcode.ErrCashierHasUnexpectedCharter,
			"cashier %s serves %s, not %s", cashierAddr, cashier.Charter, s.charterAddr)
	}

	load := func(mint address.Address) (*types.CashierTreasury, aerrors.ActorError) {
		addr, aerr := mustDerive(CashierTreasuryAddress(cashierAddr, mint))
		if aerr != nil {
			return nil, aerr
		}
		ct, aerr := GetCashierTreasury(rt.tx, addr)
		if aerr != nil {
			return nil, aerr
		}
		if ct.Cashier != cashierAddr {
			return nil, aerrors.Newf(exitcode.ErrCashierTreasuryHasUnexpectedCashier,
				"cashier treasury %s belongs to %s, not %s", addr, ct.Cashier, cashierAddr)
		}
		if ct.Mint != mint {
			return nil, aerrors.Newf(exitcode.ErrCashierTreasuryHasUnexpectedMint,
				"cashier treasury %s accepts %s, not %s", addr, ct.Mint, mint)
		}
		return ct, nil
	}

	payCT, aerr := load(s.paymentMint)
	if aerr != nil {
		return nil, nil, aerr
	}
	voteCT, aerr := load(s.charter.Mint)
	if aerr != nil {
		return nil, nil, aerr
	}
	return payCT, voteCT, nil
}

// settle applies the value split to `total` sitting in `source`, whose
// authority must already be a registered signer. With no cashier the
// charter's payment cut lands in its treasury deposit and the freshly
// minted vote reward goes to the lister's vote deposit; with a cashier,
// both the payment cut and the vote reward are split by the listing's
// cashier split, the cashier shares accruing to the cashier treasury
// escrows and the charter's vote share minting into the reserve.
//
// Floor then remainder, in the same order for both currencies:
// every distributed share sums back to the input exactly.
func (s *settlement) settle(rt *Runtime, source address.Address, total types.TokenAmount, cashierAddr address.Address) aerrors.ActorError {
	paymentCut, listerPayment := s.charter.PaymentContribution.Split(total)
	voteReward := s.charter.VoteContribution.CutScaled(total, s.treasury.Scalar)

	if aerr := rt.transferFrom(source, s.listing.PaymentDeposit, listerPayment); aerr != nil {
		return aerr
	}

	// expansion happens under the program's derived mint authority
	if _, aerr := rt.signAs(address.NSMintAuthority, s.charter.Mint); aerr != nil {
		return aerr
	}

	if !cashierAddr.Defined() {
		if aerr := rt.transferFrom(source, s.treasury.Deposit, paymentCut); aerr != nil {
			return aerr
		}
		if voteReward.Sign() > 0 {
			if aerr := rt.mintTo(s.charter.Mint, s.listing.VoteDeposit, voteReward); aerr != nil {
				return aerr
			}
		}
		return nil
	}

	payCT, voteCT, aerr := s.loadCashierTreasuries(rt, cashierAddr)
	if aerr != nil {
		return aerr
	}

	cashierPayment, charterPayment := s.listing.CashierSplit.Split(paymentCut)
	if aerr := rt.transferFrom(source, payCT.Escrow, cashierPayment); aerr != nil {
		return aerr
	}
	if aerr := rt.transferFrom(source, s.treasury.Deposit, charterPayment); aerr != nil {
		return aerr
	}

	cashierVote, charterVote := s.listing.CashierSplit.Split(voteReward)
	if cashierVote.Sign() > 0 {
		if aerr := rt.mintTo(s.charter.Mint, voteCT.Escrow, cashierVote); aerr != nil {
			return aerr
		}
	}
	if charterVote.Sign() > 0 {
		if aerr := rt.mintTo(s.charter.Mint, s.charter.Reserve, charterVote); aerr != nil {
			return aerr
		}
	}
	return nil
}

// deliver mints quantity listing tokens into the purchaser's inventory,
// creating the inventory account if absent.
func (s *settlement) deliver(rt *Runtime, purchaser address.Address, quantity uint64) (address.Address, aerrors.ActorError) {
	inventory, aerr := rt.ensureAssociated(purchaser, s.listing.Mint)
	if aerr != nil {
		return address.Undef, aerr
	}
	if _, aerr := rt.signAs(address.NSMintAuthority, s.listing.Mint); aerr != nil {
		return address.Undef, aerr
	}
	if aerr := rt.mintTo(s.listing.Mint, inventory, types.NewAmount(quantity)); aerr != nil {
		return address.Undef, aerr
	}
	return inventory, nil
}

// Purchase is the direct settlement path: payment splits immediately
// between lister and charter, and the goods mint into the purchaser's
// inventory.
type Purchase struct {
	Listing address.Address

	// Payment is the purchaser's token account funding the sale.
	Payment address.Address

	Quantity uint64
}

func (p *Purchase) Kind() string { return "Purchase" }

func (p *Purchase) invoke(rt *Runtime) aerrors.ActorError {
	return purchase(rt, p.Listing, p.Payment, p.Quantity, address.Undef)
}

// PurchaseWithCashier is the brokered settlement path: the charter's cut
// is shared with the cashier per the listing's split.
type PurchaseWithCashier struct {
	Listing  address.Address
	Payment  address.Address
	Quantity uint64
	Cashier  address.Address
}

func (p *PurchaseWithCashier) Kind() string { return "PurchaseWithCashier" }

func (p *PurchaseWithCashier) invoke(rt *Runtime) aerrors.ActorError {
	if !p.Cashier.Defined() {
		return aerrors.New(exitcode.SysErrInvalidParameters, "cashier is undefined")
	}
	return purchase(rt, p.Listing, p.Payment, p.Quantity, p.Cashier)
}

func purchase(rt *Runtime, listingAddr, payment address.Address, quantity uint64, cashierAddr address.Address) aerrors.ActorError {
	s, aerr := loadSettlement(rt, listingAddr)
	if aerr != nil {
		return aerr
	}
	if aerr := s.checkPurchasable(); aerr != nil {
		return aerr
	}
	total, aerr := saleTotal(s.listing.Price, quantity)
	if aerr != nil {
		return aerr
	}

	src, aerr := rt.expectAccount(payment, s.paymentMint)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(src.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "payment account not signed by its authority")
	}

	if aerr := s.settle(rt, payment, total, cashierAddr); aerr != nil {
		return aerr
	}
	_, aerr = s.deliver(rt, rt.Caller(), quantity)
	return aerr
}
