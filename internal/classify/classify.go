// Package classify maps raw provider metadata onto the internal
// (type, subtype, usage) triple. Every function is total: any input,
// including nil and empty strings, has a defined output.
package classify

import (
	"strings"

	"github.com/gofrs/uuid/v5"
)

// providerTypeTable maps machine-readable provider account types onto
// closed kinds. Codes absent from the table pass through unchanged.
var providerTypeTable = map[string]Kind{
	"checking": KindChecking,
	"card":     KindChecking,

	"savings": KindSavings,
	"livret":  KindSavings,
	"ldds":    KindSavings,
	"cel":     KindSavings,
	"pel":     KindSavings,
	"pee":     KindSavings,
	"perco":   KindSavings,

	"loan":      KindLoan,
	"mortgage":  KindLoan,
	"revolving": KindLoan,

	"market":         KindInvestment,
	"lifeinsurance":  KindInvestment,
	"pea":            KindInvestment,
	"per":            KindInvestment,
	"capitalisation": KindInvestment,
	"crypto":         KindInvestment,
}

// Keyword lists for the name fallback, French first since that is what
// most connected banks report.
var (
	savingsKeywords    = []string{"livret", "epargne", "épargne", "ldd", "codevi", "savings"}
	investmentKeywords = []string{"assurance", "vie", "pea", "bourse", "invest", "titres", "capitalisation"}
	loanKeywords       = []string{"credit", "crédit", "pret", "prêt", "emprunt", "loan", "mortgage"}

	stockKeywords = []string{"pea", "bourse", "stock", "trading", "action", "titres", "etf"}
	goldKeywords  = []string{"gold", "lingot", "metaux", "métaux", "silver"}
)

// cryptoProviders are custodians whose investment accounts are always
// crypto holdings, whatever the account is named.
var cryptoProviders = map[string]struct{}{
	"binance":    {},
	"coinbase":   {},
	"kraken":     {},
	"bitpanda":   {},
	"crypto.com": {},
	"ledger":     {},
}

// ClassifyType resolves an account type from the provider-reported type
// when present, falling back to keyword matching on the account name.
// Unknown provider codes are preserved as passthrough types rather than
// discarded. Defaults to checking when nothing matches.
func ClassifyType(providerType *string, accountName string) Type {
	if providerType != nil && *providerType != "" {
		code := strings.ToLower(strings.TrimSpace(*providerType))
		if kind, ok := providerTypeTable[code]; ok {
			return Type{kind: kind}
		}
		return Passthrough(code)
	}

	name := strings.ToLower(accountName)
	switch {
	case containsAny(name, savingsKeywords):
		return TypeSavings
	case containsAny(name, investmentKeywords):
		return TypeInvestment
	case containsAny(name, loanKeywords):
		return TypeLoan
	default:
		return TypeChecking
	}
}

// ClassifySubtype refines investment accounts. Crypto custodians force
// the crypto subtype regardless of the account name; otherwise the name
// decides between stocks, gold and other. Non-investment types have no
// subtype.
func ClassifySubtype(t Type, provider *string, accountName string) Subtype {
	if t.Kind() != KindInvestment {
		return SubtypeNone
	}

	if provider != nil {
		if _, ok := cryptoProviders[strings.ToLower(strings.TrimSpace(*provider))]; ok {
			return SubtypeCrypto
		}
	}

	name := strings.ToLower(accountName)
	switch {
	case containsAny(name, stockKeywords):
		return SubtypeStocks
	case containsAny(name, goldKeywords):
		return SubtypeGold
	default:
		return SubtypeOther
	}
}

// ClassifyUsage resolves personal vs professional. An explicit
// provider-reported usage wins; otherwise a company association implies
// professional.
func ClassifyUsage(providerUsage *string, companyID *uuid.UUID) Usage {
	if providerUsage != nil {
		switch strings.ToLower(strings.TrimSpace(*providerUsage)) {
		case "organization", "professional", "pro":
			return UsageProfessional
		case "private", "personal", "perso":
			return UsagePersonal
		}
	}
	if companyID != nil {
		return UsageProfessional
	}
	return UsagePersonal
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
