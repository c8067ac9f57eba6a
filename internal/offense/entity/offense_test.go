package entity

import "testing"

func TestPenaltyFor(t *testing.T) {
	tests := []struct {
		name       string
		offense    OffenseType
		fineAmount int64
		points     int16
	}{
		{"Speeding", OffenseTypeSpeeding, 200, 6},
		{"RedLight", OffenseTypeRedLight, 150, 4},
		{"IllegalParking", OffenseTypeIllegalParking, 50, 2},
		{"DrunkDriving", OffenseTypeDrunkDriving, 500, 12},
		{"NoLicense", OffenseTypeNoLicense, 300, 8},
		{"PhoneUsage", OffenseTypePhoneUsage, 100, 3},
		{"RecklessDriving", OffenseTypeRecklessDriving, 400, 10},
		{"Other", OffenseTypeOther, 100, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := PenaltyFor(tc.offense)
			if !ok {
				t.Fatalf("expected a scheduled penalty for %s", tc.offense)
			}
			if p.FineAmount != tc.fineAmount || p.Points != tc.points {
				t.Fatalf("got fine=%d points=%d, want fine=%d points=%d",
					p.FineAmount, p.Points, tc.fineAmount, tc.points)
			}
		})
	}

	t.Run("UnknownType", func(t *testing.T) {
		if _, ok := PenaltyFor(OffenseTypeUnknown); ok {
			t.Fatal("expected no penalty for unknown type")
		}
	})
}

func TestOffenseTypeRoundTrip(t *testing.T) {
	for typ := OffenseTypeSpeeding; typ <= OffenseTypeOther; typ++ {
		if got := OffenseTypeFromString(typ.String()); got != typ {
			t.Fatalf("round trip failed for %d: got %d via %q", typ, got, typ.String())
		}
	}

	if got := OffenseTypeFromString("jaywalking"); got != OffenseTypeUnknown {
		t.Fatalf("expected unknown, got %d", got)
	}
}

func TestOffenseTransitions(t *testing.T) {
	tests := []struct {
		status     OffenseStatus
		appealable bool
		payable    bool
	}{
		{OffenseStatusPending, true, false},
		{OffenseStatusConfirmed, true, true},
		{OffenseStatusPaid, false, false},
		{OffenseStatusCancelled, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.status.String(), func(t *testing.T) {
			o := Offense{Status: tc.status}
			if got := o.Appealable(); got != tc.appealable {
				t.Fatalf("Appealable() = %v, want %v", got, tc.appealable)
			}
			if got := o.Payable(); got != tc.payable {
				t.Fatalf("Payable() = %v, want %v", got, tc.payable)
			}
		})
	}
}
