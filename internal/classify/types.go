package classify

// Kind is the closed set of account types the aggregation engine knows
// how to bucket. Provider codes outside the mapping tables keep their
// raw code in the passthrough variant of Type instead of being collapsed
// into one of these.
type Kind int8

const (
	KindChecking Kind = iota
	KindSavings
	KindInvestment
	KindLoan
	KindOther
)

// Type is an account type: either one of the closed kinds, or a
// passthrough carrying the raw provider code (Kind() == KindOther).
type Type struct {
	kind Kind
	raw  string
}

var (
	TypeChecking   = Type{kind: KindChecking}
	TypeSavings    = Type{kind: KindSavings}
	TypeInvestment = Type{kind: KindInvestment}
	TypeLoan       = Type{kind: KindLoan}
	TypeOther      = Type{kind: KindOther}
)

// Passthrough builds a Type preserving an unmapped provider code.
func Passthrough(raw string) Type {
	return Type{kind: KindOther, raw: raw}
}

func (t Type) Kind() Kind { return t.kind }

// Raw returns the preserved provider code. Empty unless the type is a
// passthrough.
func (t Type) Raw() string {
	if t.kind != KindOther {
		return ""
	}
	return t.raw
}

func (t Type) String() string {
	switch t.kind {
	case KindChecking:
		return "checking"
	case KindSavings:
		return "savings"
	case KindInvestment:
		return "investment"
	case KindLoan:
		return "loan"
	default:
		if t.raw != "" {
			return t.raw
		}
		return "other"
	}
}

// ParseType rebuilds a Type from its stored string form. Unknown strings
// become passthrough types, mirroring how they were stored.
func ParseType(s string) Type {
	switch s {
	case "checking":
		return TypeChecking
	case "savings":
		return TypeSavings
	case "investment":
		return TypeInvestment
	case "loan":
		return TypeLoan
	case "other", "":
		return TypeOther
	default:
		return Passthrough(s)
	}
}

// Subtype refines the investment type. Empty for every other type.
type Subtype string

const (
	SubtypeNone   Subtype = ""
	SubtypeCrypto Subtype = "crypto"
	SubtypeStocks Subtype = "stocks"
	SubtypeGold   Subtype = "gold"
	SubtypeOther  Subtype = "other"
)

// Usage marks an account or asset as part of the user's private finances
// or of a business entity.
type Usage string

const (
	UsagePersonal     Usage = "personal"
	UsageProfessional Usage = "professional"
)
