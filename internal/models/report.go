// Package models defines the core domain entities: screen states, price
// snapshots, and trade reports.
package models

import (
	"errors"
	"strings"
)

// ScreenState is the three-valued mode controlling which view is active.
type ScreenState string

const (
	StateLanding ScreenState = "landing"
	StateLoading ScreenState = "loading"
	StateReport  ScreenState = "report"
)

// Direction is the side of a scalp signal.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
	None  Direction = "NONE"
)

// ParseDirection maps a raw signal string onto a Direction. Empty and
// unrecognized values resolve to Long, the report fallback direction.
func ParseDirection(raw string) Direction {
	switch Direction(strings.ToUpper(strings.TrimSpace(raw))) {
	case Short:
		return Short
	case None:
		return None
	default:
		return Long
	}
}

// Fallback constants substituted whenever live feed data is unavailable
// or malformed.
const (
	FallbackPrice     = 113279
	FallbackChange24h = -2.76

	FallbackEntryPrice  = 119500.0
	FallbackTargetPrice = 121500.0
	FallbackStopPrice   = 119200.0
	FallbackLeverage    = 30
)

// PriceSnapshot is the normalized BTC price view on the report screen.
// Always fully populated once produced.
type PriceSnapshot struct {
	Price     int     `json:"price"`
	Change24h float64 `json:"change_24h"`
}

// TradeReport is the normalized scalp signal on the report screen.
// Always fully populated once produced.
type TradeReport struct {
	Direction   Direction `json:"direction"`
	EntryPrice  float64   `json:"entry_price"`
	TargetPrice float64   `json:"target_price"`
	StopPrice   float64   `json:"stop_price"`
	Leverage    int       `json:"leverage"`
}

// FallbackSnapshot returns the snapshot shown when the price feed is down.
func FallbackSnapshot() PriceSnapshot {
	return PriceSnapshot{Price: FallbackPrice, Change24h: FallbackChange24h}
}

// FallbackReport returns the trade report shown when the signal feed is down.
func FallbackReport() TradeReport {
	return TradeReport{
		Direction:   Long,
		EntryPrice:  FallbackEntryPrice,
		TargetPrice: FallbackTargetPrice,
		StopPrice:   FallbackStopPrice,
		Leverage:    FallbackLeverage,
	}
}

// Validate checks snapshot field constraints.
func (s *PriceSnapshot) Validate() error {
	if s.Price <= 0 {
		return errors.New("price must be positive")
	}
	return nil
}

// Validate checks trade report field constraints.
func (r *TradeReport) Validate() error {
	switch r.Direction {
	case Long, Short, None:
	default:
		return errors.New("direction must be LONG, SHORT, or NONE")
	}
	if r.EntryPrice <= 0 {
		return errors.New("entry price must be positive")
	}
	if r.TargetPrice <= 0 {
		return errors.New("target price must be positive")
	}
	if r.StopPrice <= 0 {
		return errors.New("stop price must be positive")
	}
	if r.Leverage < 1 {
		return errors.New("leverage must be at least 1")
	}
	return nil
}
