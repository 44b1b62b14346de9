package types

import "time"

// PriceBar is one daily OHLCV observation for a symbol. Bars for a symbol
// form a chronological sequence; gaps are tolerated.
type PriceBar struct {
	Symbol string    `csv:"symbol"`
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}
