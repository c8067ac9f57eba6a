package entity

import "time"

// InitialDrivingScore is the score every new driver starts with.
const InitialDrivingScore int16 = 100

type User struct {
	ID              int64
	FullName        string
	Email           string
	Phone           string
	Role            Role
	Status          UserStatus
	Language        string
	LicenseNumber   string
	LicenseVerified bool
	Region          string
	DrivingScore    int16
	OnboardingDone  bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// Contact returns the user's primary contact (email wins over phone).
func (u User) Contact() string {
	if u.Email != "" {
		return u.Email
	}
	return u.Phone
}

type NewUser struct {
	ID       int64
	Email    string
	Phone    string
	Role     Role
	Status   UserStatus
	Language string
}

type PatchUser struct {
	ID            int64
	FullName      string
	LicenseNumber string
	Region        string
	Language      string
	Status        UserStatus
	UpdatedBy     int64
}

type Onboarding struct {
	UserID        int64
	FullName      string
	LicenseNumber string
	Region        string
}

type UserListFilterData struct {
	IsFilterBySearch bool
	IsFilterByStatus bool
	Search           string
	Statuses         []int16
	Limit            int32
	Offset           int32
}
