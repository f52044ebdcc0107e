// README: Default reference datasets compiled into the binary.
package data

import _ "embed"

// TollPlazas is the default NHAI toll plaza dataset.
//
//go:embed nhai_toll_data.json
var TollPlazas []byte

// FuelPrices is the default state → city → fuel type price table.
//
//go:embed fuel_prices.json
var FuelPrices []byte
