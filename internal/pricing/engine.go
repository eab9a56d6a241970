package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// OfferType selects whether an attached batch offer may apply to a line.
type OfferType string

const (
	// OfferTypeRegular bills every unit at the product's regular price.
	OfferTypeRegular OfferType = "regular"
	// OfferTypeBulk lets a batch offer price the fully-filled batches.
	OfferTypeBulk OfferType = "bulk"
)

// ErrInvalidQuantity is returned when a caller asks to price a negative
// quantity.
var ErrInvalidQuantity = errors.New("quantity must not be negative")

// Offer describes a buy-in-batches special price: Quantity units sold
// together for Price. Price covers the whole batch; the per-unit rate is
// derived, never stored.
type Offer struct {
	Quantity int
	Price    decimal.Decimal
}

// PerUnit returns the rate for a single unit inside a full batch, zero when
// the batch size is not positive. Display only; totals are computed
// batch-wise so they stay exact.
func (o Offer) PerUnit() decimal.Decimal {
	if o.Quantity <= 0 {
		return decimal.Zero
	}
	return o.Price.Div(decimal.NewFromInt(int64(o.Quantity)))
}

// Product carries the pricing inputs for one SKU. Offer is optional; a nil
// offer means only regular pricing applies.
type Product struct {
	Price decimal.Decimal
	Offer *Offer
}

// SegmentKind labels one breakdown segment.
type SegmentKind string

const (
	SegmentOffer   SegmentKind = "offer"
	SegmentRegular SegmentKind = "regular"
)

// Segment is one priced slice of a line: the batched units at the offer
// rate, or the remainder at the regular price.
type Segment struct {
	Kind         SegmentKind
	Qty          int
	PricePerUnit decimal.Decimal
	Total        decimal.Decimal
}

// Result is the priced breakdown of a single line.
//
// ItemsAtOfferPrice plus ItemsAtRegularPrice always equals the requested
// quantity, and Discount always equals Subtotal minus Total.
// EffectivePricePerUnit is Total divided by the requested quantity, zero
// when the quantity is zero; it is a display metric and never feeds back
// into a calculation.
type Result struct {
	Subtotal              decimal.Decimal
	Discount              decimal.Decimal
	Total                 decimal.Decimal
	ItemsAtOfferPrice     int
	ItemsAtRegularPrice   int
	EffectivePricePerUnit decimal.Decimal
	Breakdown             []Segment
}

// Eligible reports whether batch pricing applies: an offer must be present
// with a positive batch size and batch price, and the caller must have asked
// for bulk pricing. Anything else falls back to flat regular pricing, which
// is a normal outcome rather than an error.
func Eligible(p Product, offerType OfferType) bool {
	return p.Offer != nil &&
		p.Offer.Quantity > 0 &&
		p.Offer.Price.IsPositive() &&
		offerType == OfferTypeBulk
}

// PriceLine computes the priced breakdown for qty units of p.
//
// In flat mode the whole quantity bills at the regular price with an empty
// breakdown. In batch mode the quantity splits into full batches at the
// offer price and a remainder at the regular price; a batch size larger
// than qty simply yields zero full batches. A batch price above the regular
// rate produces a negative discount, which is allowed.
func PriceLine(p Product, qty int, offerType OfferType) (Result, error) {
	if qty < 0 {
		return Result{}, ErrInvalidQuantity
	}

	subtotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
	if !Eligible(p, offerType) {
		return Result{
			Subtotal:              subtotal,
			Discount:              decimal.Zero,
			Total:                 subtotal,
			ItemsAtRegularPrice:   qty,
			EffectivePricePerUnit: perUnit(subtotal, qty),
		}, nil
	}

	batch := p.Offer.Quantity
	fullBatches := qty / batch
	remainder := qty % batch
	offerQty := fullBatches * batch

	offerTotal := p.Offer.Price.Mul(decimal.NewFromInt(int64(fullBatches)))
	regularTotal := p.Price.Mul(decimal.NewFromInt(int64(remainder)))
	total := offerTotal.Add(regularTotal)

	res := Result{
		Subtotal:              subtotal,
		Discount:              subtotal.Sub(total),
		Total:                 total,
		ItemsAtOfferPrice:     offerQty,
		ItemsAtRegularPrice:   remainder,
		EffectivePricePerUnit: perUnit(total, qty),
	}
	if offerQty > 0 {
		res.Breakdown = append(res.Breakdown, Segment{
			Kind:         SegmentOffer,
			Qty:          offerQty,
			PricePerUnit: p.Offer.PerUnit(),
			Total:        offerTotal,
		})
	}
	if remainder > 0 {
		res.Breakdown = append(res.Breakdown, Segment{
			Kind:         SegmentRegular,
			Qty:          remainder,
			PricePerUnit: p.Price,
			Total:        regularTotal,
		})
	}
	return res, nil
}

func perUnit(total decimal.Decimal, qty int) decimal.Decimal {
	if qty == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(qty)))
}
