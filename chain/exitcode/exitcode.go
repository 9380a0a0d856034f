package exitcode

import "fmt"

// ExitCode is the stable numeric result of applying an instruction.
// Zero means success; anything else aborts the enclosing transaction
// with no partial effects. Codes are part of the wire contract with
// clients and must not be renumbered.
type ExitCode uint8

const (
	Ok ExitCode = 0

	// System-level failures.
	SysErrSerialization     ExitCode = 1
	SysErrInvalidParameters ExitCode = 2
	SysErrInternal          ExitCode = 3

	// Authorization: the required authority did not sign.
	ErrUnauthorized ExitCode = 16

	// Account existence.
	ErrAccountExists    ExitCode = 17
	ErrAccountNotFound  ExitCode = 18
	ErrTreasuryNotFound ExitCode = 19

	// Referential integrity: a supplied account's stored back-reference
	// does not match the expected parent.
	ErrCharterTreasuryHasUnexpectedMint    ExitCode = 32
	ErrCharterTreasuryHasUnexpectedCharter ExitCode = 33
	ErrCashierTreasuryHasUnexpectedMint    ExitCode = 34
	ErrCashierTreasuryHasUnexpectedCashier ExitCode = 35
	ErrCashierHasUnexpectedCharter         ExitCode = 36
	ErrReceiptHasUnexpectedListing         ExitCode = 37
	ErrTokenAccountHasUnexpectedMint       ExitCode = 38
	ErrDerivedAddressMismatch              ExitCode = 39

	// State preconditions.
	ErrListingIsUnavailable   ExitCode = 48
	ErrListingIsSuspended     ExitCode = 49
	ErrListingIsNotRefundable ExitCode = 50
	ErrListingIsNotConsumable ExitCode = 51
	ErrReceiptHasCashier      ExitCode = 52
	ErrReceiptHasNoCashier    ExitCode = 53

	// Arithmetic.
	ErrArithmeticOverflow  ExitCode = 64
	ErrInsufficientBalance ExitCode = 65

	// Validation of configuration values.
	ErrCashierSplitIsInvalid  ExitCode = 80
	ErrContributionIsInvalid  ExitCode = 81
	ErrExpansionRateIsInvalid ExitCode = 82
	ErrScalarIsInvalid        ExitCode = 83
	ErrQuantityIsInvalid      ExitCode = 84

	// Cooldown / rate limiting.
	ErrWithdrawCooldown ExitCode = 96
)

var names = map[ExitCode]string{
	Ok:                                     "Ok",
	SysErrSerialization:                    "SysErrSerialization",
	SysErrInvalidParameters:                "SysErrInvalidParameters",
	SysErrInternal:                         "SysErrInternal",
	ErrUnauthorized:                        "ErrUnauthorized",
	ErrAccountExists:                       "ErrAccountExists",
	ErrAccountNotFound:                     "ErrAccountNotFound",
	ErrTreasuryNotFound:                    "ErrTreasuryNotFound",
	ErrCharterTreasuryHasUnexpectedMint:    "ErrCharterTreasuryHasUnexpectedMint",
	ErrCharterTreasuryHasUnexpectedCharter: "ErrCharterTreasuryHasUnexpectedCharter",
	ErrCashierTreasuryHasUnexpectedMint:    "ErrCashierTreasuryHasUnexpectedMint",
	ErrCashierTreasuryHasUnexpectedCashier: "ErrCashierTreasuryHasUnexpectedCashier",
	ErrCashierHasUnexpectedCharter:         "ErrCashierHasUnexpectedCharter",
	ErrReceiptHasUnexpectedListing:         "ErrReceiptHasUnexpectedListing",
	ErrTokenAccountHasUnexpectedMint:       "ErrTokenAccountHasUnexpectedMint",
	ErrDerivedAddressMismatch:              "ErrDerivedAddressMismatch",
	ErrListingIsUnavailable:                "ErrListingIsUnavailable",
	ErrListingIsSuspended:                  "ErrListingIsSuspended",
	ErrListingIsNotRefundable:              "ErrListingIsNotRefundable",
	ErrListingIsNotConsumable:              "ErrListingIsNotConsumable",
	ErrReceiptHasCashier:                   "ErrReceiptHasCashier",
	ErrReceiptHasNoCashier:                 "ErrReceiptHasNoCashier",
	ErrArithmeticOverflow:                  "ErrArithmeticOverflow",
	ErrInsufficientBalance:                 "ErrInsufficientBalance",
	ErrCashierSplitIsInvalid:               "ErrCashierSplitIsInvalid",
	ErrContributionIsInvalid:               "ErrContributionIsInvalid",
	ErrExpansionRateIsInvalid:              "ErrExpansionRateIsInvalid",
	ErrScalarIsInvalid:                     "ErrScalarIsInvalid",
	ErrQuantityIsInvalid:                   "ErrQuantityIsInvalid",
	ErrWithdrawCooldown:                    "ErrWithdrawCooldown",
}

func (e ExitCode) String() string {
	if n, ok := names[e]; ok {
		return n
	}
	return fmt.Sprintf("ExitCode(%d)", uint8(e))
}

func (e ExitCode) IsSuccess() bool {
	return e == Ok
}
