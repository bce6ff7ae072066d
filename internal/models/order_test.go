package models

import "testing"

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		strict   bool
		want     bool
	}{
		{OrderStatusCooking, OrderStatusMeal, false, true},
		{OrderStatusCooking, OrderStatusCompletion, false, true},
		{OrderStatusMeal, OrderStatusCooking, false, true},
		{OrderStatusCooking, OrderStatusCooking, false, true},
		{OrderStatusCompletion, OrderStatusCompletion, false, false},
		{OrderStatusCompletion, OrderStatusMeal, false, false},
		{OrderStatusCooking, "SERVED", false, false},

		{OrderStatusCooking, OrderStatusMeal, true, true},
		{OrderStatusMeal, OrderStatusCompletion, true, true},
		{OrderStatusCooking, OrderStatusCompletion, true, false},
		{OrderStatusMeal, OrderStatusCooking, true, false},
		{OrderStatusCooking, OrderStatusCooking, true, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to, tt.strict); got != tt.want {
			t.Errorf("%s -> %s (strict=%v): expected %v, got %v", tt.from, tt.to, tt.strict, tt.want, got)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	got, err := ParseOrderStatus(" meal ")
	if err != nil {
		t.Fatalf("ParseOrderStatus failed: %v", err)
	}
	if got != OrderStatusMeal {
		t.Errorf("Expected MEAL, got %s", got)
	}

	if _, err := ParseOrderStatus("served"); err == nil {
		t.Error("Expected error for unknown status")
	}
}
