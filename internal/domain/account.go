package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// AccountType represents the kind of financial account being tracked
type AccountType string

const (
	AccountTypeCurrentAccount           AccountType = "CURRENT_ACCOUNT"
	AccountTypeSavingsAccount           AccountType = "SAVINGS_ACCOUNT"
	AccountTypeCashISA                  AccountType = "CASH_ISA"
	AccountTypeStocksAndSharesISA       AccountType = "STOCKS_AND_SHARES_ISA"
	AccountTypeLifetimeISA              AccountType = "LIFETIME_ISA"
	AccountTypeGeneralInvestmentAccount AccountType = "GENERAL_INVESTMENT_ACCOUNT"
	AccountTypePension                  AccountType = "PENSION"
	AccountTypeJuniorISA                AccountType = "JUNIOR_ISA"
	AccountTypeJuniorSIPP               AccountType = "JUNIOR_SIPP"
	AccountTypeMortgage                 AccountType = "MORTGAGE"
	AccountTypeLoan                     AccountType = "LOAN"
	AccountTypeCreditCard               AccountType = "CREDIT_CARD"
	AccountTypeCrypto                   AccountType = "CRYPTO"
	AccountTypeForeignCurrency          AccountType = "FOREIGN_CURRENCY"
	AccountTypeCash                     AccountType = "CASH"
)

// AccountTypes lists every valid account type
var AccountTypes = []AccountType{
	AccountTypeCurrentAccount,
	AccountTypeSavingsAccount,
	AccountTypeCashISA,
	AccountTypeStocksAndSharesISA,
	AccountTypeLifetimeISA,
	AccountTypeGeneralInvestmentAccount,
	AccountTypePension,
	AccountTypeJuniorISA,
	AccountTypeJuniorSIPP,
	AccountTypeMortgage,
	AccountTypeLoan,
	AccountTypeCreditCard,
	AccountTypeCrypto,
	AccountTypeForeignCurrency,
	AccountTypeCash,
}

// IsValid reports whether t is one of the known account types
func (t AccountType) IsValid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsDebt reports whether balances of this account type represent money owed.
// Debt balances are stored as negative amounts.
func (t AccountType) IsDebt() bool {
	switch t {
	case AccountTypeMortgage, AccountTypeLoan, AccountTypeCreditCard:
		return true
	default:
		return false
	}
}

// IsRetirement reports whether this account type is a pension-like wrapper
// that users may want to exclude from their day-to-day net worth.
func (t AccountType) IsRetirement() bool {
	switch t {
	case AccountTypePension, AccountTypeJuniorSIPP:
		return true
	default:
		return false
	}
}

// IncludedAsAsset reports whether this account type counts toward total assets
// under the given policy. Debt types never count as assets; retirement types
// count only when the policy includes pensions.
func (t AccountType) IncludedAsAsset(policy InclusionPolicy) bool {
	if t.IsDebt() {
		return false
	}
	if t.IsRetirement() {
		return policy.IncludePensions
	}
	return true
}

// IncludedAsDebt reports whether this account type counts toward total debt
// under the given policy. Only the mortgage toggle can exclude a debt type.
func (t AccountType) IncludedAsDebt(policy InclusionPolicy) bool {
	return t.IsDebt() && (t != AccountTypeMortgage || policy.IncludeMortgage)
}

// IncludedInNetWorth reports whether this account type participates in the
// net-worth aggregate under the given policy, on either side of the ledger.
func (t AccountType) IncludedInNetWorth(policy InclusionPolicy) bool {
	return t.IncludedAsAsset(policy) || t.IncludedAsDebt(policy)
}

// Account represents a financial account in the domain layer.
// An account exclusively owns its observations: deleting the account deletes
// its entire balance history. After creation an account always has at least
// one observation; the deletion coordinator enforces that it is never drained.
type Account struct {
	ID       uuid.UUID
	Type     AccountType
	Provider string
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
func (a *Account) Validate() error {
	if a.Provider == "" {
		return errors.New("account provider cannot be empty")
	}
	if !a.Type.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidAccountType, a.Type)
	}
	return nil
}
