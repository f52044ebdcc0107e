package toll

// feeStrategy reads a fee for class from a raw plaza record. ok is false
// when the strategy's shape is absent or unparseable.
type feeStrategy func(raw map[string]any, class VehicleClass) (fee float64, ok bool)

// feeStrategies is evaluated in order; the first parseable value wins.
var feeStrategies = []feeStrategy{
	nestedSingleFee,
	nestedFareKeyFee,
	directClassFee,
	topLevelClassFee,
}

// Fee returns the plaza's fee for class, or false when no strategy yields one.
func (p Plaza) Fee(class VehicleClass) (float64, bool) {
	for _, s := range feeStrategies {
		if fee, ok := s(p.raw, class); ok {
			return fee, true
		}
	}
	return 0, false
}

func classFees(raw map[string]any, class VehicleClass) (map[string]any, bool) {
	fees, ok := raw["fees"].(map[string]any)
	if !ok {
		return nil, false
	}
	veh, ok := fees[string(class)].(map[string]any)
	return veh, ok
}

// fees[class].single
func nestedSingleFee(raw map[string]any, class VehicleClass) (float64, bool) {
	veh, ok := classFees(raw, class)
	if !ok {
		return 0, false
	}
	return number(veh["single"])
}

// fees[class].{singleFare,fare,amount}
func nestedFareKeyFee(raw map[string]any, class VehicleClass) (float64, bool) {
	veh, ok := classFees(raw, class)
	if !ok {
		return 0, false
	}
	for _, k := range []string{"singleFare", "fare", "amount"} {
		if fee, ok := number(veh[k]); ok {
			return fee, true
		}
	}
	return 0, false
}

// fees[class] as a number
func directClassFee(raw map[string]any, class VehicleClass) (float64, bool) {
	fees, ok := raw["fees"].(map[string]any)
	if !ok {
		return 0, false
	}
	return number(fees[string(class)])
}

// [class] at the record's top level
func topLevelClassFee(raw map[string]any, class VehicleClass) (float64, bool) {
	return number(raw[string(class)])
}
