package failover

import "path"

// DefaultParameterDescription is attached to every propagated parameter.
const DefaultParameterDescription = "Updated parameter in primary region"

// RegionEndpoints holds the values the newly active region publishes.
type RegionEndpoints struct {
	AuthEndpoint      string
	CallbackEndpoint  string
	ClientID          string
	ClientSecret      string
	WebsocketEndpoint string
}

// FixedEntries returns the five parameters written on every failover, named
// under prefix. Only the client secret is SECRET.
func FixedEntries(prefix, description string, e RegionEndpoints) []ParameterEntry {
	if description == "" {
		description = DefaultParameterDescription
	}
	entry := func(name, value string, s Sensitivity) ParameterEntry {
		return ParameterEntry{
			Name:        path.Join("/", prefix, name),
			Value:       value,
			Sensitivity: s,
			Description: description,
		}
	}
	return []ParameterEntry{
		entry("auth_endpoint", e.AuthEndpoint, SensitivityPlain),
		entry("callback_endpoint", e.CallbackEndpoint, SensitivityPlain),
		entry("client_id", e.ClientID, SensitivityPlain),
		entry("client_secret", e.ClientSecret, SensitivitySecret),
		entry("websocket_endpoint", e.WebsocketEndpoint, SensitivityPlain),
	}
}
