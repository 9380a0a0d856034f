package node

import (
	"context"

	"github.com/emporium-foundation/emporium/api"
	"github.com/emporium-foundation/emporium/build"
	"github.com/emporium-foundation/emporium/chain/address"
	"github.com/emporium-foundation/emporium/chain/ledger"
	"github.com/emporium-foundation/emporium/chain/market"
	"github.com/emporium-foundation/emporium/chain/state"
	"github.com/emporium-foundation/emporium/chain/types"
)

// EmporiumAPI implements api.Emporium over an in-process program.
type EmporiumAPI struct {
	Program *market.Program
}

var _ api.Emporium = &EmporiumAPI{}

func (a *EmporiumAPI) Version(ctx context.Context) (api.Version, error) {
	return api.Version{Version: build.UserVersion()}, nil
}

func (a *EmporiumAPI) apply(ctx context.Context, caller address.Address, inst market.Instruction) error {
	if aerr := a.Program.Apply(ctx, caller, inst); aerr != nil {
		return aerr
	}
	return nil
}

func (a *EmporiumAPI) CreateMint(ctx context.Context, caller address.Address, p market.CreateMint) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) CreateTokenAccount(ctx context.Context, caller address.Address, p market.CreateTokenAccount) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) MintTokens(ctx context.Context, caller address.Address, p market.MintTokens) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) TransferTokens(ctx context.Context, caller address.Address, p market.TransferTokens) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) BurnTokens(ctx context.Context, caller address.Address, p market.BurnTokens) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) InitCharter(ctx context.Context, caller address.Address, p market.InitCharter) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) InitCharterTreasury(ctx context.Context, caller address.Address, p market.InitCharterTreasury) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetCharterExpansionRate(ctx context.Context, caller address.Address, p market.SetCharterExpansionRate) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetCharterContributionRate(ctx context.Context, caller address.Address, p market.SetCharterContributionRate) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetCharterAuthority(ctx context.Context, caller address.Address, p market.SetCharterAuthority) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetCharterReserve(ctx context.Context, caller address.Address, p market.SetCharterReserve) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetCharterTreasuryScalar(ctx context.Context, caller address.Address, p market.SetCharterTreasuryScalar) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetCharterTreasuryDeposit(ctx context.Context, caller address.Address, p market.SetCharterTreasuryDeposit) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) InitListing(ctx context.Context, caller address.Address, p market.InitListing) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetListingURI(ctx context.Context, caller address.Address, p market.SetListingURI) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetListingPrice(ctx context.Context, caller address.Address, p market.SetListingPrice) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetListingAvailability(ctx context.Context, caller address.Address, p market.SetListingAvailability) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetListingAuthority(ctx context.Context, caller address.Address, p market.SetListingAuthority) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetListingDeposits(ctx context.Context, caller address.Address, p market.SetListingDeposits) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetListingCharter(ctx context.Context, caller address.Address, p market.SetListingCharter) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) SetListingSuspension(ctx context.Context, caller address.Address, p market.SetListingSuspension) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) Consume(ctx context.Context, caller address.Address, p market.Consume) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) Purchase(ctx context.Context, caller address.Address, p market.Purchase) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) PurchaseWithCashier(ctx context.Context, caller address.Address, p market.PurchaseWithCashier) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) StartTrial(ctx context.Context, caller address.Address, p market.StartTrial) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) StartTrialWithCashier(ctx context.Context, caller address.Address, p market.StartTrialWithCashier) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) FinishTrial(ctx context.Context, caller address.Address, p market.FinishTrial) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) FinishTrialWithCashier(ctx context.Context, caller address.Address, p market.FinishTrialWithCashier) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) RefundTrial(ctx context.Context, caller address.Address, p market.RefundTrial) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) InitCashier(ctx context.Context, caller address.Address, p market.InitCashier) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) InitCashierTreasury(ctx context.Context, caller address.Address, p market.InitCashierTreasury) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) BurnCashierStake(ctx context.Context, caller address.Address, p market.BurnCashierStake) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) WithdrawCashierTreasury(ctx context.Context, caller address.Address, p market.WithdrawCashierTreasury) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) WithdrawCashierStake(ctx context.Context, caller address.Address, p market.WithdrawCashierStake) error {
	return a.apply(ctx, caller, &p)
}

func (a *EmporiumAPI) StateCharter(ctx context.Context, addr address.Address) (*types.Charter, error) {
	var out *types.Charter
	err := a.Program.View(ctx, func(tx *state.Tx) error {
		c, aerr := market.GetCharter(tx, addr)
		if aerr != nil {
			return aerr
		}
		out = c
		return nil
	})
	return out, err
}

func (a *EmporiumAPI) StateCharterTreasury(ctx context.Context, addr address.Address) (*types.CharterTreasury, error) {
	var out *types.CharterTreasury
	err := a.Program.View(ctx, func(tx *state.Tx) error {
		t, aerr := market.GetCharterTreasury(tx, addr)
		if aerr != nil {
			return aerr
		}
		out = t
		return nil
	})
	return out, err
}

func (a *EmporiumAPI) StateListing(ctx context.Context, addr address.Address) (*types.Listing, error) {
	var out *types.Listing
	err := a.Program.View(ctx, func(tx *state.Tx) error {
		l, aerr := market.GetListing(tx, addr)
		if aerr != nil {
			return aerr
		}
		out = l
		return nil
	})
	return out, err
}

func (a *EmporiumAPI) StateCashier(ctx context.Context, addr address.Address) (*types.Cashier, error) {
	var out *types.Cashier
	err := a.Program.View(ctx, func(tx *state.Tx) error {
		c, aerr := market.GetCashier(tx, addr)
		if aerr != nil {
			return aerr
		}
		out = c
		return nil
	})
	return out, err
}

func (a *EmporiumAPI) StateCashierTreasury(ctx context.Context, addr address.Address) (*types.CashierTreasury, error) {
	var out *types.CashierTreasury
	err := a.Program.View(ctx, func(tx *state.Tx) error {
		t, aerr := market.GetCashierTreasury(tx, addr)
		if aerr != nil {
			return aerr
		}
		out = t
		return nil
	})
	return out, err
}

func (a *EmporiumAPI) StateReceipt(ctx context.Context, addr address.Address) (*types.Receipt, error) {
	var out *types.Receipt
	err := a.Program.View(ctx, func(tx *state.Tx) error {
		r, aerr := market.GetReceipt(tx, addr)
		if aerr != nil {
			return aerr
		}
		out = r
		return nil
	})
	return out, err
}

func (a *EmporiumAPI) StateMint(ctx context.Context, addr address.Address) (*ledger.Mint, error) {
	var out *ledger.Mint
	err := a.Program.View(ctx, func(tx *state.Tx) error {
		m, aerr := ledger.GetMint(tx, addr)
		if aerr != nil {
			return aerr
		}
		out = m
		return nil
	})
	return out, err
}

func (a *EmporiumAPI) StateTokenAccount(ctx context.Context, addr address.Address) (*ledger.Account, error) {
	var out *ledger.Account
	err := a.Program.View(ctx, func(tx *state.Tx) error {
		acct, aerr := ledger.GetAccount(tx, addr)
		if aerr != nil {
			return aerr
		}
		out = acct
		return nil
	})
	return out, err
}
