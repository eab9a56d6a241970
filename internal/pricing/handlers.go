package pricing

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/pricing-api/internal/common"
	"github.com/noah-isme/pricing-api/internal/obs"
)

// Handler wires the line quote endpoint to HTTP.
type Handler struct {
	Validate         *validator.Validate
	DefaultOfferType OfferType
	Label            LabelFormatter
	Logger           zerolog.Logger
}

// LineRequest is the payload for quoting a single product line.
type LineRequest struct {
	Product   ProductInput `json:"product"`
	Quantity  int          `json:"quantity" validate:"gte=0"`
	OfferType string       `json:"offerType" validate:"omitempty,oneof=regular bulk"`
}

// QuoteLine prices one product at one requested quantity.
func (h *Handler) QuoteLine(w http.ResponseWriter, r *http.Request) {
	var payload LineRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			obs.IncLineQuote(h.metricOfferType(payload.OfferType), "rejected")
			appErr := common.NewAppError("VALIDATION", "invalid quote request", http.StatusBadRequest, err)
			appErr.Details = err.Error()
			WriteError(w, appErr)
			return
		}
	}

	offerType := OfferType(payload.OfferType)
	if offerType == "" {
		offerType = h.defaultOfferType()
	}
	if payload.Product.Coerced() {
		h.Logger.Debug().Msg("quote input coerced to zero")
	}

	res, err := PriceLine(payload.Product.Product(), payload.Quantity, offerType)
	if err != nil {
		obs.IncLineQuote(string(offerType), "rejected")
		WriteError(w, err)
		return
	}
	obs.IncLineQuote(string(offerType), "ok")
	common.JSON(w, http.StatusOK, map[string]any{"data": ResponseBody(res, h.label())})
}

// metricOfferType clamps a request-supplied offer type to the known label
// values so callers cannot mint unbounded metric series.
func (h *Handler) metricOfferType(v string) string {
	switch OfferType(v) {
	case OfferTypeRegular, OfferTypeBulk:
		return v
	}
	if v == "" {
		return string(h.defaultOfferType())
	}
	return "invalid"
}

func (h *Handler) defaultOfferType() OfferType {
	if h.DefaultOfferType != "" {
		return h.DefaultOfferType
	}
	return OfferTypeRegular
}

func (h *Handler) label() LabelFormatter {
	if h.Label == (LabelFormatter{}) {
		return DefaultLabel
	}
	return h.Label
}

// ResponseBody flattens a line result for the JSON envelope, attaching the
// rendered discount label.
func ResponseBody(res Result, label LabelFormatter) map[string]any {
	segments := make([]map[string]any, 0, len(res.Breakdown))
	for _, s := range res.Breakdown {
		segments = append(segments, map[string]any{
			"type":         s.Kind,
			"quantity":     s.Qty,
			"pricePerUnit": s.PricePerUnit,
			"total":        s.Total,
		})
	}
	return map[string]any{
		"subtotal":              res.Subtotal,
		"discount":              res.Discount,
		"total":                 res.Total,
		"itemsAtOfferPrice":     res.ItemsAtOfferPrice,
		"itemsAtRegularPrice":   res.ItemsAtRegularPrice,
		"effectivePricePerUnit": res.EffectivePricePerUnit,
		"breakdown":             segments,
		"discountLabel":         label.FormatDiscount(res.Discount),
	}
}

// WriteError maps engine and application errors onto the canonical error
// envelope.
func WriteError(w http.ResponseWriter, err error) {
	if err == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unknown error", nil)
		return
	}
	var appErr *common.AppError
	switch {
	case errors.As(err, &appErr):
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		code := appErr.Code
		if code == "" {
			code = "BAD_REQUEST"
		}
		common.JSONError(w, status, code, appErr.Message, appErr.Details)
	case errors.Is(err, ErrInvalidQuantity):
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_QUANTITY", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	}
}
