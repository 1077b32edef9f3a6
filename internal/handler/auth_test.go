package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestClaimUserID(t *testing.T) {
	tests := []struct {
		name   string
		claim  any
		want   uint64
		wantOK bool
	}{
		{"json-decoded float", float64(42), 42, true},
		{"native uint64", uint64(7), 7, true},
		{"negative float", float64(-1), 0, false},
		{"string claim", "42", 0, false},
		{"missing claim", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/logout-all", nil)
			c := echo.New().NewContext(req, httptest.NewRecorder())
			if tt.claim != nil {
				c.Set("user_id", tt.claim)
			}

			got, ok := claimUserID(c)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
