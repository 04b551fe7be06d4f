package report

import (
	"math"
	"strings"

	"github.com/braincast-labs/braincast/internal/feed"
	"github.com/braincast-labs/braincast/internal/models"
)

// Candidate field names per report value, in resolution order.
var (
	entryPriceFields  = []string{"entryPrice", "technicalData.entryPrice"}
	targetPriceFields = []string{"targetPrice", "exitPrice"}
	stopPriceFields   = []string{"stopPrice", "stopLoss"}
	leverageFields    = []string{"leverage"}
)

// resolveNumber returns the first numeric value found under the candidate
// keys, or fallback when none is present. Keys may be dotted paths into
// nested objects ("technicalData.entryPrice").
func resolveNumber(p feed.Payload, keys []string, fallback float64) float64 {
	for _, key := range keys {
		if v, ok := lookup(p, key); ok {
			if n, ok := v.(float64); ok {
				return n
			}
		}
	}
	return fallback
}

// resolveString returns the first non-empty string found under the
// candidate keys, or "" when none is present.
func resolveString(p feed.Payload, keys ...string) string {
	for _, key := range keys {
		if v, ok := lookup(p, key); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func lookup(p feed.Payload, key string) (any, bool) {
	var current any = map[string]any(p)
	for _, part := range strings.Split(key, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = obj[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

// normalizePrice maps a price payload onto the fixed snapshot shape. A nil
// payload (failed fetch) or a non-numeric price field yields the full
// fallback snapshot; a missing change24h defaults to zero.
func normalizePrice(p feed.Payload) models.PriceSnapshot {
	if p == nil {
		return models.FallbackSnapshot()
	}
	v, ok := lookup(p, "price")
	if !ok {
		return models.FallbackSnapshot()
	}
	price, ok := v.(float64)
	if !ok {
		return models.FallbackSnapshot()
	}
	return models.PriceSnapshot{
		Price:     int(math.Round(price)),
		Change24h: resolveNumber(p, []string{"change24h"}, 0),
	}
}

// normalizeReport maps a signal payload onto the fixed report shape. The
// payload counts as present only when it carries a signal or direction
// field; otherwise the full fallback report is used. Each value resolves
// through its candidate fields before falling back to its constant.
func normalizeReport(p feed.Payload) models.TradeReport {
	if p == nil {
		return models.FallbackReport()
	}
	_, hasSignal := lookup(p, "signal")
	_, hasDirection := lookup(p, "direction")
	if !hasSignal && !hasDirection {
		return models.FallbackReport()
	}
	return models.TradeReport{
		Direction:   models.ParseDirection(resolveString(p, "signal", "direction")),
		EntryPrice:  resolveNumber(p, entryPriceFields, models.FallbackEntryPrice),
		TargetPrice: resolveNumber(p, targetPriceFields, models.FallbackTargetPrice),
		StopPrice:   resolveNumber(p, stopPriceFields, models.FallbackStopPrice),
		Leverage:    int(math.Round(resolveNumber(p, leverageFields, models.FallbackLeverage))),
	}
}
