package api

import (
	"context"

	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/ledger"
	"github.com/emporium-foundation/emporium/chain/market"
	"github.com/emporium-foundation/emporium/chain/types"
)

type Version struct {
	Version string
}

// Emporium is the node's rpc surface: thin, one method per instruction.
// The caller address is trusted as submitted; production deployments
// front this with an external signing-challenge authorization service.
type Emporium interface {
	Version(ctx context.Context) (Version, error)

	// Token layer.
	CreateMint(ctx context.Context, caller address.Address, p market.CreateMint) error
	CreateTokenAccount(ctx context.Context, caller address.Address, p market.CreateTokenAccount) error
	MintTokens(ctx context.Context, caller address.Address, p market.MintTokens) error
	TransferTokens(ctx context.Context, caller address.Address, p market.TransferTokens) error
	BurnTokens(ctx context.Context, caller address.Address, p market.BurnTokens) error

	// Charter and treasury management.
	InitCharter(ctx context.Context, caller address.Address, p market.InitCharter) error
	InitCharterTreasury(ctx context.Context, caller address.Address, p market.InitCharterTreasury) error
	SetCharterExpansionRate(ctx context.Context, caller address.Address, p market.SetCharterExpansionRate) error
	SetCharterContributionRate(ctx context.Context, caller address.Address, p market.SetCharterContributionRate) error
	SetCharterAuthority(ctx context.Context, caller address.Address, p market.SetCharterAuthority) error
	SetCharterReserve(ctx context.Context, caller address.Address, p market.SetCharterReserve) error
	SetCharterTreasuryScalar(ctx context.Context, caller address.Address, p market.SetCharterTreasuryScalar) error
	SetCharterTreasuryDeposit(ctx context.Context, caller address.Address, p market.SetCharterTreasuryDeposit) error

	// Listing lifecycle.
	InitListing(ctx context.Context, caller address.Address, p market.InitListing) error
	SetListingURI(ctx context.Context, caller address.Address, p market.SetListingURI) error
	SetListingPrice(ctx context.Context, caller address.Address, p market.SetListingPrice) error
	SetListingAvailability(ctx context.Context, caller address.Address, p market.SetListingAvailability) error
	SetListingAuthority(ctx context.Context, caller address.Address, p market.SetListingAuthority) error
	SetListingDeposits(ctx context.Context, caller address.Address, p market.SetListingDeposits) error
	SetListingCharter(ctx context.Context, caller address.Address, p market.SetListingCharter) error
	SetListingSuspension(ctx context.Context, caller address.Address, p market.SetListingSuspension) error
	Consume(ctx context.Context, caller address.Address, p market.Consume) error

	// Settlement.
	Purchase(ctx context.Context, caller address.Address, p market.Purchase) error
	PurchaseWithCashier(ctx context.Context, caller address.Address, p market.PurchaseWithCashier) error

	// Trials.
	StartTrial(ctx context.Context, caller address.Address, p market.StartTrial) error
	StartTrialWithCashier(ctx context.Context, caller address.Address, p market.StartTrialWithCashier) error
	FinishTrial(ctx context.Context, caller address.Address, p market.FinishTrial) error
	FinishTrialWithCashier(ctx context.Context, caller address.Address, p market.FinishTrialWithCashier) error
	RefundTrial(ctx context.Context, caller address.Address, p market.RefundTrial) error

	// Cashier staking.
	InitCashier(ctx context.Context, caller address.Address, p market.InitCashier) error
	InitCashierTreasury(ctx context.Context, caller address.Address, p market.InitCashierTreasury) error
	BurnCashierStake(ctx context.Context, caller address.Address, p market.BurnCashierStake) error
	WithdrawCashierTreasury(ctx context.Context, caller address.Address, p market.WithdrawCashierTreasury) error
	WithdrawCashierStake(ctx context.Context, caller address.Address, p market.WithdrawCashierStake) error

	// State queries.
	StateCharter(ctx context.Context, addr address.Address) (*types.Charter, error)
	StateCharterTreasury(ctx context.Context, addr address.Address) (*types.CharterTreasury, error)
	StateListing(ctx context.Context, addr address.Address) (*types.Listing, error)
	StateCashier(ctx context.Context, addr address.Address) (*types.Cashier, error)
	StateCashierTreasury(ctx context.Context, addr address.Address) (*types.CashierTreasury, error)
	StateReceipt(ctx context.Context, addr address.Address) (*types.Receipt, error)
	StateMint(ctx context.Context, addr address.Address) (*ledger.Mint, error)
	StateTokenAccount(ctx context.Context, addr address.Address) (*ledger.Account, error)
}
