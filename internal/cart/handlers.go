package cart

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/pricing-api/internal/app"
	"github.com/noah-isme/pricing-api/internal/common"
	"github.com/noah-isme/pricing-api/internal/obs"
	"github.com/noah-isme/pricing-api/internal/pricing"
)

// Handler wires the cart quote endpoint to HTTP.
type Handler struct {
	Validate         *validator.Validate
	DefaultOfferType pricing.OfferType
	Label            pricing.LabelFormatter
	Logger           zerolog.Logger
}

// ItemRequest is one cart line on the wire.
type ItemRequest struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Product   pricing.ProductInput `json:"product"`
	Quantity  int                  `json:"quantity" validate:"gte=0"`
	OfferType string               `json:"offerType" validate:"omitempty,oneof=regular bulk"`
}

// PriceRequest is the cart quote payload.
type PriceRequest struct {
	Items []ItemRequest `json:"items" validate:"dive"`
}

// Entries converts the wire payload into aggregator inputs, filling in the
// default offer type and generating ids for anonymous lines.
func (r PriceRequest) Entries(defaultOfferType pricing.OfferType) []Entry {
	entries := make([]Entry, 0, len(r.Items))
	for _, it := range r.Items {
		offerType := pricing.OfferType(it.OfferType)
		if offerType == "" {
			offerType = defaultOfferType
		}
		id := it.ID
		if id == "" {
			id = uuid.NewString()
		}
		entries = append(entries, Entry{
			ID:        id,
			Name:      it.Name,
			Product:   it.Product.Product(),
			Quantity:  it.Quantity,
			OfferType: offerType,
		})
	}
	return entries
}

// PriceCart prices every submitted line and returns aggregated totals with
// per-item detail. An empty item list is a valid cart, not an error.
func (h *Handler) PriceCart(w http.ResponseWriter, r *http.Request) {
	var payload PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			obs.IncCartQuote("rejected")
			appErr := common.NewAppError("VALIDATION", "invalid cart", http.StatusBadRequest, err)
			appErr.Details = err.Error()
			pricing.WriteError(w, appErr)
			return
		}
	}
	for _, it := range payload.Items {
		if it.Product.Coerced() {
			h.Logger.Debug().Str("item", it.ID).Msg("cart item price coerced to zero")
		}
	}

	_, span := app.Tracer("cart").Start(r.Context(), "cart.price")
	span.SetAttributes(attribute.Int("cart.items", len(payload.Items)))
	res, err := Price(payload.Entries(h.defaultOfferType()))
	span.End()
	if err != nil {
		obs.IncCartQuote("rejected")
		pricing.WriteError(w, err)
		return
	}
	obs.IncCartQuote("ok")
	obs.ObserveCartItems(len(res.Items))

	items := make([]map[string]any, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, map[string]any{
			"id":        it.ID,
			"name":      it.Name,
			"quantity":  it.Quantity,
			"offerType": it.OfferType,
			"pricing":   pricing.ResponseBody(it.Pricing, h.label()),
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"subtotal":      res.Subtotal,
			"discount":      res.Discount,
			"total":         res.Total,
			"discountLabel": h.label().FormatDiscount(res.Discount),
			"items":         items,
		},
	})
}

func (h *Handler) defaultOfferType() pricing.OfferType {
	if h.DefaultOfferType != "" {
		return h.DefaultOfferType
	}
	return pricing.OfferTypeRegular
}

func (h *Handler) label() pricing.LabelFormatter {
	if h.Label == (pricing.LabelFormatter{}) {
		return pricing.DefaultLabel
	}
	return h.Label
}
