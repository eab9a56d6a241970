package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/noah-isme/pricing-api/internal/cart"
	"github.com/noah-isme/pricing-api/internal/config"
	"github.com/noah-isme/pricing-api/internal/pricing"
)

// quote prices a cart payload from a file or stdin and prints the
// per-line and aggregate totals. Handy for checking offer setups
// without a running server.
func main() {
	cfg := config.MustLoad()

	input := flag.String("input", "-", "path to cart JSON payload, - for stdin")
	offerType := flag.String("offer-type", cfg.DefaultOfferType, "default offer type for lines that omit one")
	flag.Parse()

	payload, err := readInput(*input)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	var req cart.PriceRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Fatalf("Failed to decode cart payload: %v", err)
	}

	entries := req.Entries(pricing.OfferType(*offerType))
	result, err := cart.Price(entries)
	if err != nil {
		log.Fatalf("Failed to price cart: %v", err)
	}

	label := pricing.NewLabel(cfg.CurrencySymbol, cfg.DiscountLabelSuffix, cfg.DiscountLabelLocale)

	for _, item := range result.Items {
		name := item.Name
		if name == "" {
			name = item.ID
		}
		fmt.Printf("%s: qty=%d subtotal=%s total=%s discount=%s\n",
			name,
			item.Quantity,
			item.Pricing.Subtotal.String(),
			item.Pricing.Total.String(),
			item.Pricing.Discount.String(),
		)
	}
	fmt.Printf("cart: subtotal=%s total=%s discount=%s\n",
		result.Subtotal.String(), result.Total.String(), result.Discount.String())
	if text := label.FormatDiscount(result.Discount); text != "" {
		fmt.Printf("label: %s\n", text)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" || path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
