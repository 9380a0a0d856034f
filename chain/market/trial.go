package market

import (
	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/aerrors"
	"github.com/emporium-foundation/emporium/chain/exitcode"
	"github.com/emporium-foundation/emporium/chain/ledger"
	"github.com/emporium-foundation/emporium/chain/types"
)

// StartTrial is the escrowed settlement path: the goods mint to the
// purchaser immediately, but payment sits in a program-held escrow until
// the trial resolves with exactly one of FinishTrial or RefundTrial.
// Nonce is a fresh key the purchaser generates; the receipt's address
// derives from it.
type StartTrial struct {
	Listing  address.Address
	Payment  address.Address
	Quantity uint64
	Nonce    address.Address
}

func (p *StartTrial) Kind() string { return "StartTrial" }

func (p *StartTrial) invoke(rt *Runtime) aerrors.ActorError {
	return startTrial(rt, p.Listing, p.Payment, p.Quantity, p.Nonce, address.Undef)
}

type StartTrialWithCashier struct {
	Listing  address.Address
	Payment  address.Address
	Quantity uint64
	Nonce    address.Address
	Cashier  address.Address
}

func (p *StartTrialWithCashier) Kind() string { return "StartTrialWithCashier" }

func (p *StartTrialWithCashier) invoke(rt *Runtime) aerrors.ActorError {
	if !p.Cashier.Defined() {
		return aerrors.New(exitcode.SysErrInvalidParameters, "cashier is undefined")
	}
	return startTrial(rt, p.Listing, p.Payment, p.Quantity, p.Nonce, p.Cashier)
}

func startTrial(rt *Runtime, listingAddr, payment address.Address, quantity uint64, nonce, cashierAddr address.Address) aerrors.ActorError {
	if !nonce.Defined() {
		return aerrors.New(exitcode.SysErrInvalidParameters, "nonce is undefined")
	}

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

	if cashierAddr.Defined() {
		// fail at start rather than leaving a receipt that can never
		// finish
		if _, _, aerr := s.loadCashierTreasuries(rt, cashierAddr); aerr != nil {
			return aerr
		}
	}

	receiptAddr, aerr := mustDerive(ReceiptAddress(nonce))
	if aerr != nil {
		return aerr
	}
	if has, err := rt.tx.Has(receiptKey(receiptAddr)); err != nil {
		return aerrors.Escalate(err, "checking receipt existence")
	} else if has {
		return aerrors.Newf(exitcode.ErrAccountExists, "receipt %s already exists", receiptAddr)
	}

	src, aerr := rt.expectAccount(payment, s.paymentMint)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(src.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "payment account not signed by its authority")
	}

	// escrow is owned by the receipt's derived token authority: neither
	// purchaser nor lister can touch it directly
	escrowAddr, aerr := mustDerive(ProgramAccountAddress(receiptAddr, s.paymentMint))
	if aerr != nil {
		return aerr
	}
	escrowAuth, aerr := mustDerive(TokenAuthorityAddress(receiptAddr))
	if aerr != nil {
		return aerr
	}
	if aerr := ledger.CreateAccount(rt.tx, escrowAddr, s.paymentMint, escrowAuth); aerr != nil {
		return aerr
	}
	if aerr := rt.transferFrom(payment, escrowAddr, total); aerr != nil {
		return aerr
	}

	inventory, aerr := s.deliver(rt, rt.Caller(), quantity)
	if aerr != nil {
		return aerr
	}

	return rt.putReceipt(receiptAddr, &types.Receipt{
		Init:      true,
		Listing:   listingAddr,
		Inventory: inventory,
		Purchaser: rt.Caller(),
		Cashier:   cashierAddr,
		Escrow:    escrowAddr,
		Quantity:  quantity,
		// snapshot: later price changes must not affect this trial
		Price: s.listing.Price,
	})
}

// FinishTrial releases an open trial's escrow to the lister and charter,
// applying the identical split as a direct purchase against the
// receipt's snapshotted total. Only the listing authority may finish a
// cashierless trial. The receipt and its emptied escrow are deleted.
type FinishTrial struct {
	Receipt address.Address

	// Listing must match the receipt's stored listing.
	Listing address.Address
}

func (p *FinishTrial) Kind() string { return "FinishTrial" }

func (p *FinishTrial) invoke(rt *Runtime) aerrors.ActorError {
	receipt, aerr := GetReceipt(rt.tx, p.Receipt)
	if aerr != nil {
		return aerr
	}
	if aerr := checkReceiptListing(p.Receipt, receipt, p.Listing); aerr != nil {
		return aerr
	}
	if receipt.HasCashier() {
		return aerrors.New(exitcode.ErrReceiptHasCashier, "receipt was opened with a cashier")
	}
	s, aerr := loadSettlement(rt, receipt.Listing)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(s.listing.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "caller is not the listing authority")
	}
	return finishTrial(rt, p.Receipt, receipt, s)
}

// FinishTrialWithCashier is the brokered finish: the cashier that opened
// the trial must sign, and the escrow splits through the cashier path.
type FinishTrialWithCashier struct {
	Receipt address.Address
	Listing address.Address
}

func (p *FinishTrialWithCashier) Kind() string { return "FinishTrialWithCashier" }

func (p *FinishTrialWithCashier) invoke(rt *Runtime) aerrors.ActorError {
	receipt, aerr := GetReceipt(rt.tx, p.Receipt)
	if aerr != nil {
		return aerr
	}
	if aerr := checkReceiptListing(p.Receipt, receipt, p.Listing); aerr != nil {
		return aerr
	}
	if !receipt.HasCashier() {
		return aerrors.New(exitcode.ErrReceiptHasNoCashier, "receipt was opened without a cashier")
	}
	s, aerr := loadSettlement(rt, receipt.Listing)
	if aerr != nil {
		return aerr
	}
	cashier, aerr := GetCashier(rt.tx, receipt.Cashier)
	if aerr != nil {
		return aerr
	}
	if !rt.Signed(cashier.Authority) {
		return aerrors.New(exitcode.ErrUnauthorized, "caller is not the cashier authority")
	}
	return finishTrial(rt, p.Receipt, receipt, s)
}

// checkReceiptListing cross-checks a supplied listing reference against
// the receipt's stored back-pointer.
func checkReceiptListing(receiptAddr address.Address, receipt *types.Receipt, listing address.Address) aerrors.ActorError {
	if listing != receipt.Listing {
		return aerrors.Newf(exitcode.ErrReceiptHasUnexpectedListing,
			"receipt %s settles listing %s, not %s", receiptAddr, receipt.Listing, listing)
	}
	return nil
}

// checkReceiptEscrow re-derives the receipt's program escrow address and
// rejects a stored pointer that is not the derivation.
func checkReceiptEscrow(receiptAddr address.Address, receipt *types.Receipt, mint address.Address) aerrors.ActorError {
	escrowAddr, aerr := mustDerive(ProgramAccountAddress(receiptAddr, mint))
	if aerr != nil {
		return aerr
	}
	if receipt.Escrow != escrowAddr {
		return aerrors.Newf(exitcode.ErrDerivedAddressMismatch,
			"receipt %s escrow is %s, derivation is %s", receiptAddr, receipt.Escrow, escrowAddr)
	}
	return nil
}

func finishTrial(rt *Runtime, receiptAddr address.Address, receipt *types.Receipt, s *settlement) aerrors.ActorError {
	total, aerr := saleTotal(receipt.Price, receipt.Quantity)
	if aerr != nil {
		return aerr
	}

	if aerr := checkReceiptEscrow(receiptAddr, receipt, s.paymentMint); aerr != nil {
		return aerr
	}
	escrow, aerr := rt.expectAccount(receipt.Escrow, s.paymentMint)
	if aerr != nil {
		return aerr
	}
	if types.BigCmp(escrow.Balance, total) < 0 {
		// only the program's derived authority can debit the escrow, so
		// less than the snapshot total is corrupted state
		return aerrors.Escalate(
			aerrors.Newf(exitcode.SysErrInternal, "escrow %s holds %s, receipt total is %s",
				receipt.Escrow, escrow.Balance, total),
			"escrow balance invariant violated")
	}
	// anyone can credit the escrow address while the trial is open;
	// settlement still splits the snapshot total
	surplus := types.BigSub(escrow.Balance, total)

	if _, aerr := rt.signAs(address.NSTokenAuthority, receiptAddr); aerr != nil {
		return aerr
	}
	if aerr := s.settle(rt, receipt.Escrow, total, receipt.Cashier); aerr != nil {
		return aerr
	}
	if surplus.Sign() > 0 {
		if aerr := rt.transferFrom(receipt.Escrow, s.treasury.Deposit, surplus); aerr != nil {
			return aerr
		}
	}

	return closeReceipt(rt, receiptAddr, receipt)
}

// RefundTrial returns an open trial's escrow to the purchaser, undoing
// delivery by burning the listing tokens back out of the inventory.
// Purchaser-only, and only for refundable listings.
type RefundTrial struct {
	Receipt address.Address
	Listing address.Address

	// Refund is the destination for the returned payment. Undef uses
	// the purchaser's associated account.
	Refund address.Address
}

func (p *RefundTrial) Kind() string { return "RefundTrial" }

func (p *RefundTrial) invoke(rt *Runtime) aerrors.ActorError {
	receipt, aerr := GetReceipt(rt.tx, p.Receipt)
	if aerr != nil {
		return aerr
	}
	if aerr := checkReceiptListing(p.Receipt, receipt, p.Listing); aerr != nil {
		return aerr
	}
	if rt.Caller() != receipt.Purchaser {
		return aerrors.New(exitcode.ErrUnauthorized, "only the purchaser can refund a trial")
	}
	listing, aerr := GetListing(rt.tx, receipt.Listing)
	if aerr != nil {
		return aerr
	}
	if !listing.Refundable {
		return aerrors.New(exitcode.ErrListingIsNotRefundable, "listing is not refundable")
	}

	total, aerr := saleTotal(receipt.Price, receipt.Quantity)
	if aerr != nil {
		return aerr
	}
	escrow, aerr := ledger.GetAccount(rt.tx, receipt.Escrow)
	if aerr != nil {
		return aerr
	}
	if aerr := checkReceiptEscrow(p.Receipt, receipt, escrow.Mint); aerr != nil {
		return aerr
	}
	if types.BigCmp(escrow.Balance, total) < 0 {
		return aerrors.Escalate(
			aerrors.Newf(exitcode.SysErrInternal, "escrow %s holds %s, receipt total is %s",
				receipt.Escrow, escrow.Balance, total),
			"escrow balance invariant violated")
	}

	// undo delivery before returning funds
	if aerr := rt.burnFrom(receipt.Inventory, types.NewAmount(receipt.Quantity)); aerr != nil {
		return aerr
	}

	refund := p.Refund
	if !refund.Defined() {
		refund, aerr = rt.ensureAssociated(receipt.Purchaser, escrow.Mint)
		if aerr != nil {
			return aerr
		}
	} else if _, aerr := rt.expectAccount(refund, escrow.Mint); aerr != nil {
		return aerr
	}

	if _, aerr := rt.signAs(address.NSTokenAuthority, p.Receipt); aerr != nil {
		return aerr
	}
	// the whole escrow goes back, donations included
	if aerr := rt.transferFrom(receipt.Escrow, refund, escrow.Balance); aerr != nil {
		return aerr
	}

	return closeReceipt(rt, p.Receipt, receipt)
}

// closeReceipt retires a resolved trial: the escrow must be empty, and
// both the escrow account and the receipt are deleted. No dangling
// partially-drained escrows.
func closeReceipt(rt *Runtime, receiptAddr address.Address, receipt *types.Receipt) aerrors.ActorError {
	if aerr := ledger.Close(rt.tx, receipt.Escrow); aerr != nil {
		return aerr
	}
	rt.tx.Delete(receiptKey(receiptAddr))
	return nil
}
