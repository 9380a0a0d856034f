package types

import (
	cbor "github.com/ipfs/go-ipld-cbor"

	"github.com/emporium-foundation/emporium/chain/address"
)

func init() {
	cbor.RegisterCborType(Charter{})
	cbor.RegisterCborType(CharterTreasury{})
	cbor.RegisterCborType(Listing{})
	cbor.RegisterCborType(Cashier{})
	cbor.RegisterCborType(CashierTreasury{})
	cbor.RegisterCborType(Receipt{})
}

// Charter is the governance root of a marketplace instance. Exactly one
// charter exists per governance mint; the charter's address is derived
// from the mint, which enforces the uniqueness.
type Charter struct {
	Init      bool
	Authority address.Address

	// Mint is the governance currency; Reserve is the token account
	// collecting vote-currency contributions.
	Mint    address.Address
	Reserve address.Address

	ExpansionRate       Rate
	PaymentContribution Rate
	VoteContribution    Rate

	// WithdrawPeriod is the minimum seconds between cashier withdrawals;
	// StakeWithdrawAmount caps each withdrawal.
	WithdrawPeriod      uint64
	StakeWithdrawAmount TokenAmount

	URI string
}

// CharterTreasury is the per-currency configuration under a charter: the
// deposit collecting that currency's contributions and the scalar applied
// to vote rewards for sales in that currency. At most one exists per
// (charter, mint) pair, enforced by address derivation.
type CharterTreasury struct {
	Init    bool
	Charter address.Address
	Mint    address.Address
	Deposit address.Address
	Scalar  Rate
}

// Listing is a sellable item. Its mint is unique to the listing and only
// the program's derived mint authority can issue or burn its tokens.
type Listing struct {
	Init bool

	Available  bool
	Suspended  bool
	Refundable bool
	Consumable bool

	Charter   address.Address
	Authority address.Address

	PaymentDeposit address.Address
	VoteDeposit    address.Address

	// Price in the smallest unit of the payment currency (the mint of
	// PaymentDeposit).
	Price TokenAmount

	Mint         address.Address
	CashierSplit Rate
	URI          string
}

// Cashier is a staked marketplace intermediary under a charter.
type Cashier struct {
	Init      bool
	Charter   address.Address
	Authority address.Address

	// Stake holds collateral in the charter's governance currency.
	Stake          address.Address
	LastWithdrawAt uint64

	URI string
}

// CashierTreasury accumulates a cashier's pending earnings in one
// currency. Escrow collects shares at settlement time; Withdraw moves
// them to Deposit subject to the charter's cooldown.
type CashierTreasury struct {
	Init    bool
	Cashier address.Address
	Mint    address.Address

	Escrow  address.Address
	Deposit address.Address

	LastWithdrawAt uint64
}

// Receipt records an open trial purchase. Price is a snapshot taken when
// the trial started, so later listing price changes cannot affect an
// in-flight trial. The receipt is deleted on either terminal transition.
type Receipt struct {
	Init bool

	Listing   address.Address
	Inventory address.Address
	Purchaser address.Address

	// Cashier is Undef for trials started without one.
	Cashier address.Address

	Escrow   address.Address
	Quantity uint64
	Price    TokenAmount
}

func (r *Receipt) HasCashier() bool {
	return r.Cashier.Defined()
}
