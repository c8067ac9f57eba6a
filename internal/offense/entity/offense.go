package entity

import "time"

// Penalty is the fine amount and license points attached to an offense type.
type Penalty struct {
	FineAmount int64
	Points     int16
}

// penaltySchedule is the national fixed-penalty schedule, amounts in GHS.
var penaltySchedule = map[OffenseType]Penalty{
	OffenseTypeSpeeding:        {FineAmount: 200, Points: 6},
	OffenseTypeRedLight:        {FineAmount: 150, Points: 4},
	OffenseTypeIllegalParking:  {FineAmount: 50, Points: 2},
	OffenseTypeDrunkDriving:    {FineAmount: 500, Points: 12},
	OffenseTypeNoLicense:       {FineAmount: 300, Points: 8},
	OffenseTypePhoneUsage:      {FineAmount: 100, Points: 3},
	OffenseTypeRecklessDriving: {FineAmount: 400, Points: 10},
	OffenseTypeOther:           {FineAmount: 100, Points: 3},
}

// PenaltyFor returns the scheduled penalty for an offense type.
func PenaltyFor(t OffenseType) (Penalty, bool) {
	p, ok := penaltySchedule[t]
	return p, ok
}

type Offense struct {
	ID           int64
	Number       string
	DriverID     int64
	OfficerID    int64
	Type         OffenseType
	Status       OffenseStatus
	FineAmount   int64
	Points       int16
	Location     string
	Description  string
	EvidenceKeys []string
	OccurredAt   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Appealable reports whether a driver may still contest the offense.
func (o Offense) Appealable() bool {
	return o.Status == OffenseStatusPending || o.Status == OffenseStatusConfirmed
}

// Payable reports whether the fine can be settled.
func (o Offense) Payable() bool {
	return o.Status == OffenseStatusConfirmed
}

type NewOffense struct {
	ID          int64
	DriverID    int64
	OfficerID   int64
	Type        OffenseType
	FineAmount  int64
	Points      int16
	Location    string
	Description string
	OccurredAt  time.Time
}

type OffenseListFilterData struct {
	IsFilterByDriver  bool
	IsFilterByOfficer bool
	IsFilterByStatus  bool
	IsFilterByType    bool
	DriverID          int64
	OfficerID         int64
	Statuses          []int16
	Types             []int16
	Limit             int32
	Offset            int32
}

// OfficerDashboard aggregates an officer's recording activity.
type OfficerDashboard struct {
	TodayCount     int64
	TodayFineTotal int64
	TotalCount     int64
	PendingCount   int64
	ConfirmedCount int64
}

// StatusCount is one row of a status breakdown.
type StatusCount struct {
	Status OffenseStatus
	Count  int64
}

// TypeCount is one row of a type breakdown.
type TypeCount struct {
	Type  OffenseType
	Count int64
}

// MonthlyTotal is one month of recorded fines.
type MonthlyTotal struct {
	Month     time.Time
	Count     int64
	FineTotal int64
}

// Statistics is the admin-facing offense aggregate view.
type Statistics struct {
	Total     int64
	ByStatus  []StatusCount
	ByType    []TypeCount
	Monthly   []MonthlyTotal
	FineTotal int64
}
