package failover

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityRecord_ContactAddress(t *testing.T) {
	tests := []struct {
		name   string
		attrs  map[string]string
		want   string
		wantOK bool
	}{
		{"present", map[string]string{"email": "a@example.com"}, "a@example.com", true},
		{"trimmed", map[string]string{"email": "  a@example.com "}, "a@example.com", true},
		{"missing", map[string]string{"phone_number": "+100"}, "", false},
		{"blank", map[string]string{"email": "   "}, "", false},
		{"nil attributes", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IdentityRecord{Username: "u", Attributes: tt.attrs}.ContactAddress()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunOutcome_Total(t *testing.T) {
	o := RunOutcome{Processed: 2, Skipped: 1, Failed: 3}
	assert.Equal(t, 6, o.Total())
}

func TestFixedEntries(t *testing.T) {
	entries := FixedEntries("photoblog", "", RegionEndpoints{
		AuthEndpoint:      "https://auth.dr",
		CallbackEndpoint:  "https://app.dr/callback",
		ClientID:          "client",
		ClientSecret:      "s3cr3t",
		WebsocketEndpoint: "wss://ws.dr",
	})

	want := []ParameterEntry{
		{Name: "/photoblog/auth_endpoint", Value: "https://auth.dr", Sensitivity: SensitivityPlain, Description: DefaultParameterDescription},
		{Name: "/photoblog/callback_endpoint", Value: "https://app.dr/callback", Sensitivity: SensitivityPlain, Description: DefaultParameterDescription},
		{Name: "/photoblog/client_id", Value: "client", Sensitivity: SensitivityPlain, Description: DefaultParameterDescription},
		{Name: "/photoblog/client_secret", Value: "s3cr3t", Sensitivity: SensitivitySecret, Description: DefaultParameterDescription},
		{Name: "/photoblog/websocket_endpoint", Value: "wss://ws.dr", Sensitivity: SensitivityPlain, Description: DefaultParameterDescription},
	}
	assert.Equal(t, want, entries)
	assert.NoError(t, ValidateEntries(entries))
}

func TestFixedEntries_PrefixNormalized(t *testing.T) {
	entries := FixedEntries("/app/", "custom", RegionEndpoints{ClientSecret: "x"})
	assert.Equal(t, "/app/client_secret", entries[3].Name)
	assert.Equal(t, "custom", entries[3].Description)
}
