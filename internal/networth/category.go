package networth

import (
	"github.com/carson-networks/networth-server/internal/classify"
	"github.com/carson-networks/networth-server/internal/storage/asset"
)

// Snapshot categories. Category values are stored as-is in snapshot
// rows; CategoryTotal is the synthetic sum of all buckets.
const (
	CategoryChecking   = "checking"
	CategorySavings    = "savings"
	CategoryInvestment = "investment"
	CategoryLoan       = "loan"
	CategoryRealEstate = "real_estate"
	CategoryVehicle    = "vehicle"
	CategoryValuable   = "valuable"
	CategoryOther      = "other"
	CategoryTotal      = "total"
)

var categories = map[string]struct{}{
	CategoryChecking:   {},
	CategorySavings:    {},
	CategoryInvestment: {},
	CategoryLoan:       {},
	CategoryRealEstate: {},
	CategoryVehicle:    {},
	CategoryValuable:   {},
	CategoryOther:      {},
	CategoryTotal:      {},
}

// ValidCategory reports whether name is a known snapshot category.
func ValidCategory(name string) bool {
	_, ok := categories[name]
	return ok
}

// CategoryForType buckets an account type. Passthrough provider types
// land in the other bucket while keeping their raw code on the account.
func CategoryForType(t classify.Type) string {
	switch t.Kind() {
	case classify.KindChecking:
		return CategoryChecking
	case classify.KindSavings:
		return CategorySavings
	case classify.KindInvestment:
		return CategoryInvestment
	case classify.KindLoan:
		return CategoryLoan
	default:
		return CategoryOther
	}
}

func CategoryForAsset(t asset.Type) string {
	switch t {
	case asset.TypeRealEstate:
		return CategoryRealEstate
	case asset.TypeVehicle:
		return CategoryVehicle
	case asset.TypeValuable:
		return CategoryValuable
	default:
		return CategoryOther
	}
}
