// Package domain holds the portfolio data entities, the tagged transaction
// variant and the repository contracts any storage backend must satisfy.
// Entities reference each other by id only, never by object reference.
package domain

import "errors"

// Asset is a tradeable instrument: a stock, an ETF, a bond. WKN and ISIN
// are optional external identifiers; an empty string means absent.
type Asset struct {
	// ID is assigned by the store on insert; zero means not yet stored.
	ID   uint   `json:"id"`
	Name string `json:"name"`
	WKN  string `json:"wkn,omitempty"`
	ISIN string `json:"isin,omitempty"`
	Note string `json:"note,omitempty"`
}

// Validate checks the asset invariants before it is handed to a store.
func (a *Asset) Validate() error {
	if a.Name == "" {
		return errors.New("asset name is required")
	}
	return nil
}
