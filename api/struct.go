package api

import (
	"context"

	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/ledger"
	"github.com/emporium-foundation/emporium/chain/market"
	"github.com/emporium-foundation/emporium/chain/types"
)

// EmporiumStruct is the rpc proxy struct for the Emporium interface,
// in the usual func-field shape the jsonrpc client populates.
type EmporiumStruct struct {
	Internal struct {
		Version func(context.Context) (Version, error)

		CreateMint         func(context.Context, address.Address, market.CreateMint) error
		CreateTokenAccount func(context.Context, address.Address, market.CreateTokenAccount) error
		MintTokens         func(context.Context, address.Address, market.MintTokens) error
		TransferTokens     func(context.Context, address.Address, market.TransferTokens) error
		BurnTokens         func(context.Context, address.Address, market.BurnTokens) error

		InitCharter                func(context.Context, address.Address, market.InitCharter) error
		InitCharterTreasury        func(context.Context, address.Address, market.InitCharterTreasury) error
		SetCharterExpansionRate    func(context.Context, address.Address, market.SetCharterExpansionRate) error
		SetCharterContributionRate func(context.Context, address.Address, market.SetCharterContributionRate) error
		SetCharterAuthority        func(context.Context, address.Address, market.SetCharterAuthority) error
		SetCharterReserve          func(context.Context, address.Address, market.SetCharterReserve) error
		SetCharterTreasuryScalar   func(context.Context, address.Address, market.SetCharterTreasuryScalar) error
		SetCharterTreasuryDeposit  func(context.Context, address.Address, market.SetCharterTreasuryDeposit) error

		InitListing            func(context.Context, address.Address, market.InitListing) error
		SetListingURI          func(context.Context, address.Address, market.SetListingURI) error
		SetListingPrice        func(context.Context, address.Address, market.SetListingPrice) error
		SetListingAvailability func(context.Context, address.Address, market.SetListingAvailability) error
		SetListingAuthority    func(context.Context, address.Address, market.SetListingAuthority) error
		SetListingDeposits     func(context.Context, address.Address, market.SetListingDeposits) error
		SetListingCharter      func(context.Context, address.Address, market.SetListingCharter) error
		SetListingSuspension   func(context.Context, address.Address, market.SetListingSuspension) error
		Consume                func(context.Context, address.Address, market.Consume) error

		Purchase            func(context.Context, address.Address, market.Purchase) error
		PurchaseWithCashier func(context.Context, address.Address, market.PurchaseWithCashier) error

		StartTrial             func(context.Context, address.Address, market.StartTrial) error
		StartTrialWithCashier  func(context.Context, address.Address, market.StartTrialWithCashier) error
		FinishTrial            func(context.Context, address.Address, market.FinishTrial) error
		FinishTrialWithCashier func(context.Context, address.Address, market.FinishTrialWithCashier) error
		RefundTrial            func(context.Context, address.Address, market.RefundTrial) error

		InitCashier             func(context.Context, address.Address, market.InitCashier) error
		InitCashierTreasury     func(context.Context, address.Address, market.InitCashierTreasury) error
		BurnCashierStake        func(context.Context, address.Address, market.BurnCashierStake) error
		WithdrawCashierTreasury func(context.Context, address.Address, market.WithdrawCashierTreasury) error
		WithdrawCashierStake    func(context.Context, address.Address, market.WithdrawCashierStake) error

		StateCharter         func(context.Context, address.Address) (*types.Charter, error)
		StateCharterTreasury func(context.Context, address.Address) (*types.CharterTreasury, error)
		StateListing         func(context.Context, address.Address) (*types.Listing, error)
		StateCashier         func(context.Context, address.Address) (*types.Cashier, error)
		StateCashierTreasury func(context.Context, address.Address) (*types.CashierTreasury, error)
		StateReceipt         func(context.Context, address.Address) (*types.Receipt, error)
		StateMint            func(context.Context, address.Address) (*ledger.Mint, error)
		StateTokenAccount    func(context.Context, address.Address) (*ledger.Account, error)
	}
}

func (s *EmporiumStruct) Version(ctx context.Context) (Version, error) {
	return s.Internal.Version(ctx)
}

func (s *EmporiumStruct) CreateMint(ctx context.Context, caller address.Address, p market.CreateMint) error {
	return s.Internal.CreateMint(ctx, caller, p)
}

func (s *EmporiumStruct) CreateTokenAccount(ctx context.Context, caller address.Address, p market.CreateTokenAccount) error {
	return s.Internal.CreateTokenAccount(ctx, caller, p)
}

func (s *EmporiumStruct) MintTokens(ctx context.Context, caller address.Address, p market.MintTokens) error {
	return s.Internal.MintTokens(ctx, caller, p)
}

func (s *EmporiumStruct) TransferTokens(ctx context.Context, caller address.Address, p market.TransferTokens) error {
	return s.Internal.TransferTokens(ctx, caller, p)
}

func (s *EmporiumStruct) BurnTokens(ctx context.Context, caller address.Address, p market.BurnTokens) error {
	return s.Internal.BurnTokens(ctx, caller, p)
}

func (s *EmporiumStruct) InitCharter(ctx context.Context, caller address.Address, p market.InitCharter) error {
	return s.Internal.InitCharter(ctx, caller, p)
}

func (s *EmporiumStruct) InitCharterTreasury(ctx context.Context, caller address.Address, p market.InitCharterTreasury) error {
	return s.Internal.InitCharterTreasury(ctx, caller, p)
}

func (s *EmporiumStruct) SetCharterExpansionRate(ctx context.Context, caller address.Address, p market.SetCharterExpansionRate) error {
	return s.Internal.SetCharterExpansionRate(ctx, caller, p)
}

func (s *EmporiumStruct) SetCharterContributionRate(ctx context.Context, caller address.Address, p market.SetCharterContributionRate) error {
	return s.Internal.SetCharterContributionRate(ctx, caller, p)
}

func (s *EmporiumStruct) SetCharterAuthority(ctx context.Context, caller address.Address, p market.SetCharterAuthority) error {
	return s.Internal.SetCharterAuthority(ctx, caller, p)
}

func (s *EmporiumStruct) SetCharterReserve(ctx context.Context, caller address.Address, p market.SetCharterReserve) error {
	return s.Internal.SetCharterReserve(ctx, caller, p)
}

func (s *EmporiumStruct) SetCharterTreasuryScalar(ctx context.Context, caller address.Address, p market.SetCharterTreasuryScalar) error {
	return s.Internal.SetCharterTreasuryScalar(ctx, caller, p)
}

func (s *EmporiumStruct) SetCharterTreasuryDeposit(ctx context.Context, caller address.Address, p market.SetCharterTreasuryDeposit) error {
	return s.Internal.SetCharterTreasuryDeposit(ctx, caller, p)
}

func (s *EmporiumStruct) InitListing(ctx context.Context, caller address.Address, p market.InitListing) error {
	return s.Internal.InitListing(ctx, caller, p)
}

func (s *EmporiumStruct) SetListingURI(ctx context.Context, caller address.Address, p market.SetListingURI) error {
	return s.Internal.SetListingURI(ctx, caller, p)
}

func (s *EmporiumStruct) SetListingPrice(ctx context.Context, caller address.Address, p market.SetListingPrice) error {
	return s.Internal.SetListingPrice(ctx, caller, p)
}

func (s *EmporiumStruct) SetListingAvailability(ctx context.Context, caller address.Address, p market.SetListingAvailability) error {
	return s.Internal.SetListingAvailability(ctx, caller, p)
}

func (s *EmporiumStruct) SetListingAuthority(ctx context.Context, caller address.Address, p market.SetListingAuthority) error {
	return s.Internal.SetListingAuthority(ctx, caller, p)
}

func (s *EmporiumStruct) SetListingDeposits(ctx context.Context, caller address.Address, p market.SetListingDeposits) error {
	return s.Internal.SetListingDeposits(ctx, caller, p)
}

func (s *EmporiumStruct) SetListingCharter(ctx context.Context, caller address.Address, p market.SetListingCharter) error {
	return s.Internal.SetListingCharter(ctx, caller, p)
}

func (s *EmporiumStruct) SetListingSuspension(ctx context.Context, caller address.Address, p market.SetListingSuspension) error {
	return s.Internal.SetListingSuspension(ctx, caller, p)
}

func (s *EmporiumStruct) Consume(ctx context.Context, caller address.Address, p market.Consume) error {
	return s.Internal.Consume(ctx, caller, p)
}

func (s *EmporiumStruct) Purchase(ctx context.Context, caller address.Address, p market.Purchase) error {
	return s.Internal.Purchase(ctx, caller, p)
}

func (s *EmporiumStruct) PurchaseWithCashier(ctx context.Context, caller address.Address, p market.PurchaseWithCashier) error {
	return s.Internal.PurchaseWithCashier(ctx, caller, p)
}

func (s *EmporiumStruct) StartTrial(ctx context.Context, caller address.Address, p market.StartTrial) error {
	return s.Internal.StartTrial(ctx, caller, p)
}

func (s *EmporiumStruct) StartTrialWithCashier(ctx context.Context, caller address.Address, p market.StartTrialWithCashier) error {
	return s.Internal.StartTrialWithCashier(ctx, caller, p)
}

func (s *EmporiumStruct) FinishTrial(ctx context.Context, caller address.Address, p market.FinishTrial) error {
	return s.Internal.FinishTrial(ctx, caller, p)
}

func (s *EmporiumStruct) FinishTrialWithCashier(ctx context.Context, caller address.Address, p market.FinishTrialWithCashier) error {
	return s.Internal.FinishTrialWithCashier(ctx, caller, p)
}

func (s *EmporiumStruct) RefundTrial(ctx context.Context, caller address.Address, p market.RefundTrial) error {
	return s.Internal.RefundTrial(ctx, caller, p)
}

func (s *EmporiumStruct) InitCashier(ctx context.Context, caller address.Address, p market.InitCashier) error {
	return s.Internal.InitCashier(ctx, caller, p)
}

func (s *EmporiumStruct) InitCashierTreasury(ctx context.Context, caller address.Address, p market.InitCashierTreasury) error {
	return s.Internal.InitCashierTreasury(ctx, caller, p)
}

func (s *EmporiumStruct) BurnCashierStake(ctx context.Context, caller address.Address, p market.BurnCashierStake) error {
	return s.Internal.BurnCashierStake(ctx, caller, p)
}

func (s *EmporiumStruct) WithdrawCashierTreasury(ctx context.Context, caller address.Address, p market.WithdrawCashierTreasury) error {
	return s.Internal.WithdrawCashierTreasury(ctx, caller, p)
}

func (s *EmporiumStruct) WithdrawCashierStake(ctx context.Context, caller address.Address, p market.WithdrawCashierStake) error {
	return s.Internal.WithdrawCashierStake(ctx, caller, p)
}

func (s *EmporiumStruct) StateCharter(ctx context.Context, addr address.Address) (*types.Charter, error) {
	return s.Internal.StateCharter(ctx, addr)
}

func (s *EmporiumStruct) StateCharterTreasury(ctx context.Context, addr address.Address) (*types.CharterTreasury, error) {
	return s.Internal.StateCharterTreasury(ctx, addr)
}

func (s *EmporiumStruct) StateListing(ctx context.Context, addr address.Address) (*types.Listing, error) {
	return s.Internal.StateListing(ctx, addr)
}

func (s *EmporiumStruct) StateCashier(ctx context.Context, addr address.Address) (*types.Cashier, error) {
	return s.Internal.StateCashier(ctx, addr)
}

func (s *EmporiumStruct) StateCashierTreasury(ctx context.Context, addr address.Address) (*types.CashierTreasury, error) {
	return s.Internal.StateCashierTreasury(ctx, addr)
}

func (s *EmporiumStruct) StateReceipt(ctx context.Context, addr address.Address) (*types.Receipt, error) {
	return s.Internal.StateReceipt(ctx, addr)
}

func (s *EmporiumStruct) StateMint(ctx context.Context, addr address.Address) (*ledger.Mint, error) {
	return s.Internal.StateMint(ctx, addr)
}

func (s *EmporiumStruct) StateTokenAccount(ctx context.Context, addr address.Address) (*ledger.Account, error) {
	return s.Internal.StateTokenAccount(ctx, addr)
}

var _ Emporium = &EmporiumStruct{}
