// Package dto holds the request and response shapes of the HTTP API. JSON
// names follow what the web client sends and reads.
package dto

import "github.com/shopspring/decimal"

func init() {
	// The client does arithmetic on prices, so they travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
