package entity

import "testing"

func TestPaymentMethodRoundTrip(t *testing.T) {
	for method := PaymentMethodMobileMoney; method <= PaymentMethodBank; method++ {
		if got := PaymentMethodFromString(method.String()); got != method {
			t.Fatalf("round trip failed for %d: got %d via %q", method, got, method.String())
		}
	}

	if got := PaymentMethodFromString("cheque"); got != PaymentMethodUnknown {
		t.Fatalf("expected unknown, got %d", got)
	}
}

func TestPaymentOffensePayable(t *testing.T) {
	tests := []struct {
		name   string
		status int16
		want   bool
	}{
		{"Pending", 1, false},
		{"Confirmed", OffenseStatusConfirmed, true},
		{"Paid", OffenseStatusPaid, false},
		{"Cancelled", 4, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := PaymentOffense{Status: tc.status}
			if got := o.Payable(); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
