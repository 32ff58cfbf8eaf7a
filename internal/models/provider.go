package models

import "encoding/json"

// Provider resource types. A provider is either a remote HTTP JSON API or a
// local JSON document used for mock/offline operation.
const (
	ProviderResourceHTTP = "http"
	ProviderResourceJSON = "json"
)

// Provider holds the admin-managed configuration of one external rate source.
// The ingestion jobs read an enabled, priority-ordered snapshot of these at
// run time and never mutate them.
type Provider struct {
	Name              string          `json:"name"`     // unique
	Priority          int             `json:"priority"` // lower is tried first
	Enabled           bool            `json:"enabled"`
	Address           string          `json:"address"`      // base URL or file path
	ResourceType      string          `json:"resourceType"` // "http" or "json"
	Config            json.RawMessage `json:"config"`       // adapter-specific settings, see providers.AdapterConfig
	ForceBaseCurrency string          `json:"forceBaseCurrency"`
	AuditFields
}
