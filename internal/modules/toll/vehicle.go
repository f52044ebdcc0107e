package toll

import "strings"

// VehicleClass is the key toll fee tables are indexed by.
type VehicleClass string

const (
	ClassCar         VehicleClass = "car"
	ClassLCV         VehicleClass = "lcv"
	ClassBus         VehicleClass = "bus"
	ClassMultiAxle   VehicleClass = "multi_axle"
	Class4To6Axle    VehicleClass = "4to6_axle"
	Class7OrMoreAxle VehicleClass = "7_or_more_axle"
	ClassHCMEME      VehicleClass = "hcm_eme"
)

var vehicleClasses = map[string]VehicleClass{
	"car":            ClassCar,
	"van":            ClassCar,
	"jeep":           ClassCar,
	"lcv":            ClassLCV,
	"bus":            ClassBus,
	"truck":          ClassBus,
	"multi axle":     ClassMultiAxle,
	"multi_axle":     ClassMultiAxle,
	"4 to 6 axle":    Class4To6Axle,
	"4to6_axle":      Class4To6Axle,
	"7 or more axle": Class7OrMoreAxle,
	"7_or_more_axle": Class7OrMoreAxle,
	"hcm eme":        ClassHCMEME,
	"hcm_eme":        ClassHCMEME,
}

// NormalizeVehicleClass maps a free-text vehicle type to its fee key.
// Unrecognised types are charged as cars.
func NormalizeVehicleClass(vehicleType string) VehicleClass {
	if c, ok := vehicleClasses[strings.ToLower(strings.TrimSpace(vehicleType))]; ok {
		return c
	}
	return ClassCar
}
