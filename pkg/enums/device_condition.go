package enums

import "fmt"

// DeviceCondition is the self-reported condition of a phone offered for
// exchange.
type DeviceCondition string

const (
	DeviceConditionLikeNew     DeviceCondition = "Like New"
	DeviceConditionGood        DeviceCondition = "Good"
	DeviceConditionFair        DeviceCondition = "Fair"
	DeviceConditionNeedsRepair DeviceCondition = "Needs Repair"
)

var validDeviceConditions = []DeviceCondition{
	DeviceConditionLikeNew,
	DeviceConditionGood,
	DeviceConditionFair,
	DeviceConditionNeedsRepair,
}

func (c DeviceCondition) String() string {
	return string(c)
}

func (c DeviceCondition) IsValid() bool {
	for _, candidate := range validDeviceConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

func ParseDeviceCondition(value string) (DeviceCondition, error) {
	for _, candidate := range validDeviceConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid device condition %q", value)
}
