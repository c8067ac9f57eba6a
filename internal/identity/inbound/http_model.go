package inbound

import (
	"net/http"
	"time"

	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/router"
)

// cookieSettings holds the deployment-dependent attributes of the auth
// cookie. Browser frontends served from another origin need
// SameSite=None, which browsers only accept together with Secure.
type cookieSettings struct {
	domain   string
	secure   bool
	sameSite http.SameSite
}

// newCookieSettings reads the cookie profile from config. The default is
// the cross-site profile (Secure, SameSite=None); app.env "dev" relaxes
// it to a Lax cookie that works over plain http on localhost.
func newCookieSettings(cfg config.Config) cookieSettings {
	cs := cookieSettings{
		domain:   cfg.GetString("app.server.cookie.domain"),
		secure:   true,
		sameSite: http.SameSiteNoneMode,
	}

	if cfg.GetString("app.env") == "dev" {
		cs.secure = false
		cs.sameSite = http.SameSiteLaxMode
	}

	return cs
}

func (cs cookieSettings) session(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     router.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   cs.domain,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   cs.secure,
		SameSite: cs.sameSite,
	}
}

func (cs cookieSettings) expired() *http.Cookie {
	return &http.Cookie{
		Name:     router.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   cs.domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cs.secure,
		SameSite: cs.sameSite,
	}
}

type SendOTPRequest struct {
	Contact string `json:"contact"`
}

type SendOTPResponse struct {
	Contact          string `json:"contact"`
	Channel          string `json:"channel"`
	ExpiresInSeconds int64  `json:"expires_in_seconds"`
}

func (SendOTPResponse) Message() string {
	return "Verification code sent."
}

type VerifyOTPRequest struct {
	Contact  string `json:"contact"`
	Code     string `json:"code"`
	Remember bool   `json:"remember"`
}

type VerifyOTPResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	UserID     int64     `json:"user_id,string"`
	Role       string    `json:"role"`
	Onboarding bool      `json:"onboarding"`

	cookies cookieSettings
}

func (r VerifyOTPResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{r.cookies.session(r.Token, r.ExpiresAt)}
}

type MeResponse struct {
	ID            int64  `json:"id,string"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	Status        string `json:"status"`
	LicenseNumber string `json:"license_number"`
	Region        string `json:"region"`
	DrivingScore  int16  `json:"driving_score"`
	Onboarding    bool   `json:"onboarding"`
}

type LogoutResponse struct {
	cookies cookieSettings
}

func (LogoutResponse) Message() string {
	return "Logged out."
}

func (r LogoutResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{r.cookies.expired()}
}

type OnboardingRequest struct {
	FullName      string `json:"full_name"`
	LicenseNumber string `json:"license_number"`
	Region        string `json:"region"`
}

type OnboardingResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`

	cookies cookieSettings
}

func (OnboardingResponse) Message() string {
	return "Onboarding completed."
}

func (r OnboardingResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{r.cookies.session(r.Token, r.ExpiresAt)}
}

type DriverResponse struct {
	ID              int64      `json:"id,string"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Status          string     `json:"status"`
	LicenseNumber   string     `json:"license_number"`
	LicenseVerified bool       `json:"license_verified"`
	Region          string     `json:"region"`
	DrivingScore    int16      `json:"driving_score"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

type DriversResponse struct {
	Drivers []DriverResponse `json:"drivers"`
	// meta
	total int64
	limit int32
	page  int32
}

func (r DriversResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"limit": r.limit,
		"page":  r.page,
	}
}

type DriverDetailResponse struct {
	Driver DriverResponse `json:"driver"`
}

type DriverUpdateRequest struct {
	FullName      string `json:"full_name,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
	Region        string `json:"region,omitempty"`
	Language      string `json:"language,omitempty"`
	Status        string `json:"status,omitempty"`
}

type LicenseActionRequest struct {
	Action string `json:"action"`
}
