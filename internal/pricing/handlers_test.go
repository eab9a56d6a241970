package pricing_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pricing-api/internal/obs"
	"github.com/noah-isme/pricing-api/internal/pricing"
)

type lineData struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	Discount              decimal.Decimal `json:"discount"`
	Total                 decimal.Decimal `json:"total"`
	ItemsAtOfferPrice     int             `json:"itemsAtOfferPrice"`
	ItemsAtRegularPrice   int             `json:"itemsAtRegularPrice"`
	EffectivePricePerUnit decimal.Decimal `json:"effectivePricePerUnit"`
	Breakdown             []struct {
		Type         string          `json:"type"`
		Quantity     int             `json:"quantity"`
		PricePerUnit decimal.Decimal `json:"pricePerUnit"`
		Total        decimal.Decimal `json:"total"`
	} `json:"breakdown"`
	DiscountLabel string `json:"discountLabel"`
}

type lineResponse struct {
	Data lineData `json:"data"`
}

func newLineHandler() *pricing.Handler {
	return &pricing.Handler{Validate: validator.New(validator.WithRequiredStructEnabled())}
}

func postLine(t *testing.T, h *pricing.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/line", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.QuoteLine(rec, req)
	return rec
}

func TestQuoteLineBatchOffer(t *testing.T) {
	rec := postLine(t, newLineHandler(), `{
		"product": {"price": 100, "specialOffer": {"quantity": 3, "price": 250}},
		"quantity": 7,
		"offerType": "bulk"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp lineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Data.Total.Equal(decimal.NewFromInt(600)), "total %s", resp.Data.Total)
	require.True(t, resp.Data.Discount.Equal(decimal.NewFromInt(100)), "discount %s", resp.Data.Discount)
	require.Equal(t, 6, resp.Data.ItemsAtOfferPrice)
	require.Equal(t, 1, resp.Data.ItemsAtRegularPrice)
	require.Len(t, resp.Data.Breakdown, 2)
	require.Equal(t, "offer", resp.Data.Breakdown[0].Type)
	require.Equal(t, "regular", resp.Data.Breakdown[1].Type)
	require.Contains(t, resp.Data.DiscountLabel, "100")
}

func TestQuoteLineStringPriceCoerces(t *testing.T) {
	rec := postLine(t, newLineHandler(), `{
		"product": {"price": "100"},
		"quantity": 3
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp lineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Data.Total.Equal(decimal.NewFromInt(300)))
	require.Empty(t, resp.Data.DiscountLabel)
}

func TestQuoteLineGarbagePriceBecomesZero(t *testing.T) {
	rec := postLine(t, newLineHandler(), `{
		"product": {"price": "so expensive"},
		"quantity": 4
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp lineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Data.Total.IsZero())
	require.Equal(t, 4, resp.Data.ItemsAtRegularPrice)
}

func TestQuoteLineRejectsNegativeQuantity(t *testing.T) {
	rec := postLine(t, newLineHandler(), `{
		"product": {"price": 100},
		"quantity": -2
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteLineRejectsUnknownOfferType(t *testing.T) {
	rec := postLine(t, newLineHandler(), `{
		"product": {"price": 100},
		"quantity": 2,
		"offerType": "flash-sale"
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "VALIDATION", resp.Error.Code)
}

func TestQuoteLineRejectionKeepsMetricSeriesBounded(t *testing.T) {
	obs.MustRegisterDomainMetrics("pricing", prometheus.NewRegistry())
	h := newLineHandler()

	before := testutil.CollectAndCount(obs.LineQuoteTotal)
	for i := 0; i < 50; i++ {
		rec := postLine(t, h, fmt.Sprintf(`{
			"product": {"price": 100},
			"quantity": 2,
			"offerType": "flash-sale-%d"
		}`, i))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
	after := testutil.CollectAndCount(obs.LineQuoteTotal)

	// request strings must not become label values
	require.LessOrEqual(t, after-before, 1)
}

func TestQuoteLineInvalidBody(t *testing.T) {
	rec := postLine(t, newLineHandler(), `{"product":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
