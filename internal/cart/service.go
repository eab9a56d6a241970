package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/pricing-api/internal/pricing"
)

// Entry is one cart line submitted for pricing. ID and Name are opaque
// caller references carried through to the result untouched.
type Entry struct {
	ID        string
	Name      string
	Product   pricing.Product
	Quantity  int
	OfferType pricing.OfferType
}

// PricedEntry pairs the original entry with its computed line result. The
// input entry itself is never mutated.
type PricedEntry struct {
	Entry
	Pricing pricing.Result
}

// Result aggregates line results across a whole cart. The totals are the
// running sums of the corresponding per-item fields, in input order.
type Result struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	Items    []PricedEntry
}

// Price prices every entry and folds the line totals into cart totals. An
// empty cart yields zero totals and no items. An entry with an invalid
// quantity fails the whole call with the entry index attached. An entry
// without an offer type defaults to regular pricing.
func Price(entries []Entry) (Result, error) {
	res := Result{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Total:    decimal.Zero,
		Items:    make([]PricedEntry, 0, len(entries)),
	}
	for i, e := range entries {
		offerType := e.OfferType
		if offerType == "" {
			offerType = pricing.OfferTypeRegular
		}
		line, err := pricing.PriceLine(e.Product, e.Quantity, offerType)
		if err != nil {
			return Result{}, fmt.Errorf("cart entry %d: %w", i, err)
		}
		res.Subtotal = res.Subtotal.Add(line.Subtotal)
		res.Discount = res.Discount.Add(line.Discount)
		res.Total = res.Total.Add(line.Total)
		res.Items = append(res.Items, PricedEntry{Entry: e, Pricing: line})
	}
	return res, nil
}
