package entity

import "strings"

type Role int16

const (
	RoleUnknown Role = 0
	RoleDriver  Role = 1
	RoleOfficer Role = 2
	RoleAdmin   Role = 3
)

func RoleFromString(str string) Role {
	switch strings.ToLower(str) {
	case "driver":
		return RoleDriver
	case "officer":
		return RoleOfficer
	case "admin":
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleDriver:
		return "driver"
	case RoleOfficer:
		return "officer"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

type UserStatus int16

const (
	// UserStatusUnknown is mean status is not known / not set.
	UserStatusUnknown UserStatus = 0

	// UserStatusUnverified mean user exists but has not proven the contact yet.
	UserStatusUnverified UserStatus = 1

	// UserStatusActive mean user is verified and allowed to use the app.
	UserStatusActive UserStatus = 2

	// UserStatusSuspended mean the license is suspended and driving privileges revoked.
	UserStatusSuspended UserStatus = 3

	// UserStatusInactive mean user is not currently active (e.g., deactivated, closed).
	UserStatusInactive UserStatus = 4
)

func (us UserStatus) String() string {
	switch us {
	case UserStatusUnverified:
		return "Unverified"
	case UserStatusActive:
		return "Active"
	case UserStatusSuspended:
		return "Suspended"
	case UserStatusInactive:
		return "Inactive"
	default:
		return "Unknown"
	}
}

func (us UserStatus) IsUnknown() bool {
	switch us {
	case UserStatusUnverified, UserStatusActive, UserStatusSuspended, UserStatusInactive:
		return false
	default:
		return true
	}
}

// Channel identifies how a verification code is delivered.
type Channel int16

const (
	ChannelUnknown Channel = 0
	ChannelEmail   Channel = 1
	ChannelSMS     Channel = 2
)

func (c Channel) String() string {
	switch c {
	case ChannelEmail:
		return "email"
	case ChannelSMS:
		return "sms"
	default:
		return "unknown"
	}
}

// LicenseAction is an administrative action on a driver's license standing.
type LicenseAction int16

const (
	LicenseActionUnknown   LicenseAction = 0
	LicenseActionSuspend   LicenseAction = 1
	LicenseActionReinstate LicenseAction = 2
	LicenseActionVerify    LicenseAction = 3
	LicenseActionActivate  LicenseAction = 4
)

func LicenseActionFromString(str string) LicenseAction {
	switch strings.ToLower(str) {
	case "suspend":
		return LicenseActionSuspend
	case "reinstate":
		return LicenseActionReinstate
	case "verify":
		return LicenseActionVerify
	case "activate":
		return LicenseActionActivate
	default:
		return LicenseActionUnknown
	}
}

func (a LicenseAction) String() string {
	switch a {
	case LicenseActionSuspend:
		return "suspend"
	case LicenseActionReinstate:
		return "reinstate"
	case LicenseActionVerify:
		return "verify"
	case LicenseActionActivate:
		return "activate"
	default:
		return "unknown"
	}
}
