// README: Fuel price book loaded once from a state → city → fuel type JSON document.
package fuel

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// PriceBook is immutable after load and safe for concurrent reads.
type PriceBook struct {
	cities []cityPrices
}

type cityPrices struct {
	state    string
	city     string
	prices   map[string]float64
	location *orb.Point
}

func LoadPriceBook(r io.Reader) (*PriceBook, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParsePriceBook(body)
}

func LoadPriceBookFile(path string) (*PriceBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadPriceBook(f)
}

// ParsePriceBook reads {state: {city: {<fuel type>: price, "location": {...}}}}.
// Null or unparseable prices are dropped. Cities are ordered by state then city.
func ParsePriceBook(body []byte) (*PriceBook, error) {
	var doc map[string]map[string]map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse fuel prices: %w", err)
	}

	book := &PriceBook{}
	for state, cities := range doc {
		for city, fields := range cities {
			cp := cityPrices{state: state, city: city, prices: make(map[string]float64)}
			for key, raw := range fields {
				if key == "location" {
					cp.location = parseLocation(raw)
					continue
				}
				if price, ok := parsePrice(raw); ok {
					cp.prices[strings.ToLower(key)] = price
				}
			}
			book.cities = append(book.cities, cp)
		}
	}
	sort.Slice(book.cities, func(i, j int) bool {
		if book.cities[i].state != book.cities[j].state {
			return book.cities[i].state < book.cities[j].state
		}
		return book.cities[i].city < book.cities[j].city
	})
	return book, nil
}

// Entries lists the cities that price fuelType, in book order.
func (b *PriceBook) Entries(fuelType string) []PriceEntry {
	if b == nil {
		return nil
	}
	fuelType = strings.ToLower(strings.TrimSpace(fuelType))
	var out []PriceEntry
	for _, c := range b.cities {
		price, ok := c.prices[fuelType]
		if !ok {
			continue
		}
		out = append(out, PriceEntry{State: c.state, City: c.city, Price: price, Location: c.location})
	}
	return out
}

// parsePrice accepts a number or numeric string. Null, non-finite and
// non-positive prices are treated as missing.
func parsePrice(raw json.RawMessage) (float64, bool) {
	var f float64
	var num *float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if num == nil {
			return 0, false
		}
		f = *num
	} else {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if !(f > 0) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseLocation(raw json.RawMessage) *orb.Point {
	var loc struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
		Lon *float64 `json:"lon"`
	}
	if err := json.Unmarshal(raw, &loc); err != nil || loc.Lat == nil {
		return nil
	}
	switch {
	case loc.Lng != nil:
		return &orb.Point{*loc.Lng, *loc.Lat}
	case loc.Lon != nil:
		return &orb.Point{*loc.Lon, *loc.Lat}
	}
	return nil
}
