package pricing

import "github.com/noah-isme/pricing-api/internal/common"

// OfferInput is the wire shape of a batch offer. Both fields tolerate
// numeric strings, null, and malformed values, coercing to zero; a zeroed
// field simply disqualifies the offer.
type OfferInput struct {
	Quantity common.FlexInt     `json:"quantity"`
	Price    common.FlexDecimal `json:"price"`
}

// ProductInput is the wire shape of a product accepted by the quote
// endpoints. It is structural, not bound to any catalog: any caller may
// construct one.
type ProductInput struct {
	Price        common.FlexDecimal `json:"price"`
	SpecialOffer *OfferInput        `json:"specialOffer"`
}

// Product converts the wire shape into engine inputs.
func (in ProductInput) Product() Product {
	p := Product{Price: in.Price.Value}
	if in.SpecialOffer != nil {
		p.Offer = &Offer{
			Quantity: in.SpecialOffer.Quantity.Value,
			Price:    in.SpecialOffer.Price.Value,
		}
	}
	return p
}

// Coerced reports whether any numeric field was present but unparsable and
// fell back to zero. Handlers log these instead of rejecting the request;
// the zero fallback is the documented default.
func (in ProductInput) Coerced() bool {
	if in.Price.Coerced() {
		return true
	}
	if in.SpecialOffer != nil {
		return in.SpecialOffer.Quantity.Coerced() || in.SpecialOffer.Price.Coerced()
	}
	return false
}
