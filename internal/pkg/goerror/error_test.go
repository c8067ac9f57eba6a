package goerror

import (
	"net/http"
	"testing"
)

func TestErrorStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "LockedMapsToForbidden", err: NewBusiness("locked", CodeLocked), want: http.StatusForbidden},
		{name: "DependencyFailedMapsToInternal", err: NewBusiness("delivery failed", CodeDependencyFailed), want: http.StatusInternalServerError},
		{name: "InvalidFormatMapsToBadRequest", err: NewBusiness("bad code", CodeInvalidFormat), want: http.StatusBadRequest},
		{name: "NotFoundMapsToNotFound", err: NewBusiness("missing", CodeNotFound), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got := tt.err.(*Error).StatusCode()

			// Assert
			if got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
