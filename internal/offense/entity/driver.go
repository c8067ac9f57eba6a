package entity

// Driver is the slice of a user record the offense flow needs.
type Driver struct {
	ID            int64
	FullName      string
	LicenseNumber string
	DrivingScore  int16
	Language      string
}
