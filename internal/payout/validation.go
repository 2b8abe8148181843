package payout

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/shareboost/rewards-engine/internal/domain"
)

var validate = validator.New()

// ValidationResult is the outcome of the fail-fast validation chain. A failed
// check carries the sentinel error and a distinct decision code.
type ValidationResult struct {
	OK   bool
	Code string
	Err  error
}

func pass() ValidationResult {
	return ValidationResult{OK: true}
}

func fail(code string, err error) ValidationResult {
	return ValidationResult{Code: code, Err: err}
}

// ValidateRequest runs the validation chain in order and stops at the first
// failure. Daily and weekly caps count in-flight payouts; the profile's
// aggregates already include them.
func ValidateRequest(profile *domain.PayoutProfile, amount int, method domain.PayoutMethod, details domain.PayoutDetails) ValidationResult {
	if !profile.IsActive {
		return fail(CodeUserInactive, domain.ErrUserInactive)
	}
	if !profile.KYCVerified {
		return fail(CodeKYCNotVerified, domain.ErrKYCNotVerified)
	}
	if amount > profile.PointsBalance {
		return fail(CodeInsufficientBalance, domain.ErrInsufficientBalance)
	}

	min, ok := methodMinimums[method]
	if !ok {
		return fail(CodeMissingDetails, domain.ErrInvalidInput)
	}
	if amount < min {
		return fail(CodeAmountBelowMinimum, domain.ErrAmountOutOfRange)
	}
	if amount > MaxAmountForLevel(profile.Level) {
		return fail(CodeAmountAboveMaximum, domain.ErrAmountOutOfRange)
	}

	if profile.DailyTotal+amount > DailyCapPoints {
		return fail(CodeDailyCapExceeded, domain.ErrLimitExceeded)
	}
	if profile.WeeklyTotal+amount > WeeklyCapPoints {
		return fail(CodeWeeklyCapExceeded, domain.ErrLimitExceeded)
	}

	if err := ValidateDetails(method, details); err != nil {
		return fail(CodeMissingDetails, err)
	}

	if profile.PendingCount >= MaxPendingPayouts {
		return fail(CodeTooManyPending, domain.ErrTooManyPending)
	}

	return pass()
}

// MaxAmountForLevel scales the maximum payout with user level and caps it at
// the absolute ceiling
func MaxAmountForLevel(level int) int {
	max := BaseMaxPoints * level / 10
	if max > AbsoluteMaxPoints {
		return AbsoluteMaxPoints
	}
	return max
}

// ValidateDetails checks the method-specific required delivery fields
func ValidateDetails(method domain.PayoutMethod, details domain.PayoutDetails) error {
	if err := validate.Struct(details); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMissingDetails, err)
	}

	switch method {
	case domain.MethodPayPal:
		if details.PayPalEmail == "" {
			return domain.ErrMissingDetails
		}
	case domain.MethodBankTransfer:
		if details.AccountNumber == "" || details.RoutingNumber == "" || details.AccountHolder == "" {
			return domain.ErrMissingDetails
		}
	case domain.MethodCrypto:
		if details.WalletAddress == "" || details.CryptoNetwork == "" {
			return domain.ErrMissingDetails
		}
	case domain.MethodGiftCard:
		if details.GiftCardBrand == "" {
			return domain.ErrMissingDetails
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}
