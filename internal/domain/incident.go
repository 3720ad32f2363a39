package domain

import "time"

// IncidentRecord is metadata only. The report body lives as an immutable
// JSON document in object storage; the relational store never duplicates it.
type IncidentRecord struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	StorageURL   string    `json:"gcs_url"`
	IncidentType string    `json:"incident_type"`
	Severity     string    `json:"severity"`
	Timestamp    string    `json:"timestamp"`
	CreatedAt    time.Time `json:"created_at"`
}

// IncidentPayload is the free-form report body submitted by the client.
// incident_type, severity and timestamp are pulled out for the metadata row;
// everything else is carried through to storage untouched.
type IncidentPayload map[string]interface{}

// Field returns the named payload entry as a string, or "" when absent or
// of another type.
func (p IncidentPayload) Field(name string) string {
	s, _ := p[name].(string)
	return s
}
