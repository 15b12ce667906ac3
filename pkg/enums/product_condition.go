package enums

import "fmt"

// ProductCondition is the condition tag shown on a catalog listing.
type ProductCondition string

const (
	ProductConditionNew         ProductCondition = "New"
	ProductConditionUsedLikeNew ProductCondition = "Used - Like New"
	ProductConditionUsedGood    ProductCondition = "Used - Good"
	ProductConditionUsedFair    ProductCondition = "Used - Fair"
)

var validProductConditions = []ProductCondition{
	ProductConditionNew,
	ProductConditionUsedLikeNew,
	ProductConditionUsedGood,
	ProductConditionUsedFair,
}

// String implements fmt.Stringer.
func (c ProductCondition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCondition.
func (c ProductCondition) IsValid() bool {
	for _, candidate := range validProductConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCondition converts raw input into a ProductCondition.
func ParseProductCondition(value string) (ProductCondition, error) {
	for _, candidate := range validProductConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product condition %q", value)
}
