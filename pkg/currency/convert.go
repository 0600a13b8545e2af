package currency

import "github.com/shopspring/decimal"

// ConvertFunc turns an amount in a currency's smallest indivisible unit into
// its display representation. The cart ledger is agnostic to what "display"
// means; it just stores whatever this function returns.
type ConvertFunc func(unitAmount int64, code string) decimal.Decimal

// exponents maps a currency code to the number of decimal places between its
// smallest stored unit and its major display unit. Crypto amounts are stored
// in gwei/satoshi-style base units, fiat in cents.
var exponents = map[string]int32{
	"ETH": 9, // gwei
	"BTC": 8, // satoshi
	"BCH": 8,
	"LTC": 8,
	"XMR": 12, // piconero
	"USD": 2,
	"CAD": 2,
	"EUR": 2,
}

// Display is the default ConvertFunc. Unknown currency codes pass through
// unshifted so their stored amounts remain visible rather than silently wrong.
func Display(unitAmount int64, code string) decimal.Decimal {
	exp, ok := exponents[code]
	if !ok {
		exp = 0
	}
	return decimal.New(unitAmount, 0).Shift(-exp)
}
