package enums

import "testing"

func TestParseProductCondition(t *testing.T) {
	got, err := ParseProductCondition("Used - Like New")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ProductConditionUsedLikeNew {
		t.Fatalf("unexpected condition %q", got)
	}
	if _, err := ParseProductCondition("Refurbished"); err == nil {
		t.Fatalf("expected unknown condition to fail")
	}
}

func TestDeviceConditionIsValid(t *testing.T) {
	for _, value := range []string{"Like New", "Good", "Fair", "Needs Repair"} {
		if !DeviceCondition(value).IsValid() {
			t.Fatalf("expected %q to be valid", value)
		}
	}
	if DeviceCondition("like new").IsValid() {
		t.Fatalf("conditions are case sensitive")
	}
}

func TestOrderStatus(t *testing.T) {
	if _, err := ParseOrderStatus("placed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if OrderStatus("shipped").IsValid() {
		t.Fatalf("shipped is not a storefront status")
	}
}
