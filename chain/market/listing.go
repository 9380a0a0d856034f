package market

import (
	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/aerrors"
	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/ledger"
	"github.com/emporium-foundation/emporium/chain/types"
)

// InitListing creates a sellable item under a charter. Mint is a fresh
// key supplied by the lister; the listing's own address derives from it,
// and the mint's authority is bound permanently to the program so no
// human can ever issue listing tokens.
type InitListing struct {
	Charter address.Address

	// Mint is the listing's unique token.
	Mint     address.Address
	Decimals uint8

	// PaymentMint is the accepted payment currency; a charter treasury
	// for it must already exist.
	PaymentMint address.Address
	Price       types.TokenAmount

	Available  bool
	Refundable bool
	Consumable bool

	CashierSplit types.Rate

	// Deposit accounts for the lister's share. Undef allocates the
	// caller's associated accounts.
	PaymentDeposit address.Address
	VoteDeposit    address.Address

	URI string
}

func (p *InitListing) Kind() string { return "InitListing" }

func (p *InitListing) invoke(rt *Runtime) aerrors.ActorError {
	if !p.CashierSplit.ValidSplit() {
		return aerrors.New(exitcode.ErrCashierSplitIsInvalid, "cashier split must be in [0, 1]")
	}
	if p.Price.Nil() || !p.Price.FitsLedger() {
		return aerrors.New(exitcode.SysErrInvalidParameters, "price out of range")
	}

	charter, aerr := GetCharter(rt.tx, p.Charter)
	if aerr != nil {
		return aerr
	}

	treasuryAddr, aerr := mustDerive(CharterTreasuryAddress(p.Charter, p.PaymentMint))
	if aerr != nil {
		return aerr
	}
	if _, aerr := GetCharterTreasury(rt.tx, treasuryAddr); aerr != nil {
		return aerrors.Wrapf(aerr, "charter %s does not accept %s", p.Charter, p.PaymentMint)
	}

	mintAuth, aerr := mustDerive(MintAuthorityAddress(p.Mint))
	if aerr != nil {
		return aerr
	}
	if aerr := ledger.CreateMint(rt.tx, p.Mint, mintAuth, p.Decimals); aerr != nil {
		return aerr
	}

	listingAddr, aerr := mustDerive(ListingAddress(p.Mint))
	if aerr != nil {
		return aerr
	}
	if has, err := rt.tx.Has(listingKey(listingAddr)); err != nil {
		return aerrors.Escalate(err, "checking listing existence")
	} else if has {
		return aerrors.Newf(exitcode.ErrAccountExists, "listing for mint %s already exists", p.Mint)
	}

	paymentDeposit := p.PaymentDeposit
	if !paymentDeposit.Defined() {
		paymentDeposit, aerr = rt.ensureAssociated(rt.Caller(), p.PaymentMint)
		if aerr != nil {
			return aerr
		}
	} else if _, aerr := rt.expectAccount(paymentDeposit, p.PaymentMint); aerr != nil {
		return aerr
	}

	voteDeposit := p.VoteDeposit
	if !voteDeposit.Defined() {
		voteDeposit, aerr = rt.ensureAssociated(rt.Caller(), charter.Mint)
		if aerr != nil {
			return aerr
		}
	} else if _, aerr := rt.expectAccount(voteDeposit, charter.Mint); aerr != nil {
		return aerr
	}

	return rt.putListing(listingAddr, &types.Listing{
		Init:           true,
		Available:      p.Available,
		Refundable:     p.Refundable,
		Consumable:     p.Consumable,
		Charter:        p.Charter,
		Authority:      rt.Caller(),
		PaymentDeposit: paymentDeposit,
		VoteDeposit:    voteDeposit,
		Price:          p.Price,
		Mint:           p.Mint,
		CashierSplit:   p.CashierSplit,
		URI:            p.URI,
	})
}

// loadOwnListing loads a listing and requires the caller to be its
// authority.
func loadOwnListing(rt *Runtime, addr address.Address) (*types.Listing, aerrors.ActorError) {
	listing, aerr := GetListing(rt.tx, addr)
	if aerr != nil {
		return nil, aerr
	}
	if !rt.Signed(listing.Authority) {
		return nil, aerrors.New(exitcode.ErrUnauthorized, "caller is not the listing authority")
	}
	return listing, nil
}

type SetListingURI struct {
	Listing address.Address
	URI     string
}

func (p *SetListingURI) Kind() string { return "SetListingURI" }

func (p *SetListingURI) invoke(rt *Runtime) aerrors.ActorError {
	listing, aerr := loadOwnListing(rt, p.Listing)
	if aerr != nil {
		return aerr
	}
	listing.URI = p.URI
	return rt.putListing(p.Listing, listing)
}

type SetListingPrice struct {
	Listing address.Address
	Price   types.TokenAmount
}

func (p *SetListingPrice) Kind() string { return "SetListingPrice" }

func (p *SetListingPrice) invoke(rt *Runtime) aerrors.ActorError {
	if p.Price.Nil() || !p.Price.FitsLedger() {
		return aerrors.New(exitcode.SysErrInvalidParameters, "price out of range")
	}
	listing, aerr := loadOwnListing(rt, p.Listing)
	if aerr != nil {
		return aerr
	}
	listing.Price = p.Price
	return rt.putListing(p.Listing, listing)
}

type SetListingAvailability struct {
	Listing   address.Address
	Available bool
}

func (p *SetListingAvailability) Kind() string { return "SetListingAvailability" }

func (p *SetListingAvailability) invoke(rt *Runtime) aerrors.ActorError {
	listing, aerr := loadOwnListing(rt, p.Listing)
	if aerr != nil {
		return aerr
	}
	listing.Available = p.Available
	return rt.putListing(p.Listing, listing)
}

type SetListingAuthority struct {
	Listing   address.Address
	Authority address.Address
}

func (p *SetListingAuthority) Kind() string { return "SetListingAuthority" }

func (p *SetListingAuthority) invoke(rt *Runtime) aerrors.ActorError {
	if !p.Authority.Defined() {
		return aerrors.New(exitcode.SysErrInvalidParameters, "new authority is undefined")
	}
	listing, aerr := loadOwnListing(rt, p.Listing)
	if aerr != nil {
		return aerr
	}
	listing.Authority = p.Authority
	return rt.putListing(p.Listing, listing)
}

type SetListingDeposits struct {
	Listing        address.Address
	PaymentDeposit address.Address
	VoteDeposit    address.Address
}

func (p *SetListingDeposits) Kind() string { return "SetListingDeposits" }

func (p *SetListingDeposits) invoke(rt *Runtime) aerrors.ActorError {
	listing, aerr := loadOwnListing(rt, p.Listing)
	if aerr != nil {
		return aerr
	}
	charter, aerr := GetCharter(rt.tx, listing.Charter)
	if aerr != nil {
		return aerr
	}
	current, aerr := ledger.GetAccount(rt.tx, listing.PaymentDeposit)
	if aerr != nil {
		return aerr
	}
	if _, aerr := rt.expectAccount(p.PaymentDeposit, current.Mint); aerr != nil {
		return aerr
	}
	if _, aerr := rt.expectAccount(p.VoteDeposit, charter.Mint); aerr != nil {
		return aerr
	}
	listing.PaymentDeposit = p.PaymentDeposit
	listing.VoteDeposit = p.VoteDeposit
	return rt.putListing(p.Listing, listing)
}

// SetListingCharter moves a listing under another charter. The new
// charter must already have a treasury for the listing's payment
// currency, and the vote deposit is re-targeted to the new governance
// mint.
type SetListingCharter struct {
	Listing address.Address
	Charter address.Address

	// VoteDeposit in the new charter's mint. Undef allocates the
	// authority's associated account.
	VoteDeposit address.Address
}

func (p *SetListingCharter) Kind() string { return "SetListingCharter" }

func (p *SetListingCharter) invoke(rt *Runtime) aerrors.ActorError {
	listing, aerr := loadOwnListing(rt, p.Listing)
	if aerr != nil {
		return aerr
	}
	charter, aerr := GetCharter(rt.tx, p.Charter)
	if aerr != nil {
		return aerr
	}
	paymentAcct, aerr := ledger.GetAccount(rt.tx, listing.PaymentDeposit)
	if aerr != nil {
		return aerr
	}

	treasuryAddr, aerr := mustDerive(CharterTreasuryAddress(p.Charter, paymentAcct.Mint))
	if aerr != nil {
		return aerr
	}
	if _, aerr := GetCharterTreasury(rt.tx, treasuryAddr); aerr != nil {
		return aerrors.Wrapf(aerr, "charter %s does not accept %s", p.Charter, paymentAcct.Mint)
	}

	voteDeposit := p.VoteDeposit
	if !voteDeposit.Defined() {
		voteDeposit, aerr = rt.ensureAssociated(listing.Authority, charter.Mint)
		if aerr != nil {
			return aerr
		}
	} else if _, aerr := rt.expectAccount(voteDeposit, charter.Mint); aerr != nil {
		return aerr
	}

	listing.Charter = p.Charter
	listing.VoteDeposit = voteDeposit
	return rt.putListing(p.Listing, listing)
}

// SetListingSuspension is the charter authority's override for dispute
// and abuse handling; the listing authority cannot clear it.
type SetListingSuspension struct {
	Listing   address.Address
	Suspended bool
}

func (p *SetListingSuspension) Kind() string { return "SetListingSuspension" }

func (p *SetListingSuspension) invoke(rt *Runtime) aerrors.ActorError {
	listing, aerr := GetListing(rt.tx, p.Listing)
	if aerr != nil {
		return aerr
	}
	charter, aerr := GetCharter(rt.tx, listing.Charter)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(charter.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "suspension requires the charter authority")
	}
	listing.Suspended = p.Suspended
	return rt.putListing(p.Listing, listing)
}

// Consume destroys delivered listing tokens out of a purchaser's
// inventory. Only the listing authority may consume, and only if the
// listing was created consumable; this is how single-use goods are
// redeemed.
type Consume struct {
	Listing   address.Address
	Inventory address.Address
	Quantity  uint64
}

func (p *Consume) Kind() string { return "Consume" }

func (p *Consume) invoke(rt *Runtime) aerrors.ActorError {
	if p.Quantity == 0 {
		return aerrors.New(exitcode.ErrQuantityIsInvalid, "quantity must be at least 1")
	}
	listing, aerr := loadOwnListing(rt, p.Listing)
	if aerr != nil {
		return aerr
	}
	if !listing.Consumable {
		return aerrors.New(exitcode.ErrListingIsNotConsumable, "listing is not consumable")
	}
	if _, aerr := rt.expectAccount(p.Inventory, listing.Mint); aerr != nil {
		return aerr
	}
	// consumption is program-privileged: the holder's signature is not
	// required, the consumable flag is the holder's consent
	return ledger.Burn(rt.tx, p.Inventory, types.NewAmount(p.Quantity))
}
