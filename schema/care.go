package schema

import (
	"encoding/json"
	"time"
)

// Provider is a connected healthcare provider integration.
type Provider struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Connected bool      `json:"connected"`
	LastSync  time.Time `json:"last_sync"`
}

// HealthRecord is one clinical measurement synced from a provider.
type HealthRecord struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"` // e.g. blood_pressure, glucose, weight
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
	Source     string    `json:"source"`
}

// Appointment is an upcoming visit with a provider.
type Appointment struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"provider_id"`
	Scheduled  time.Time `json:"scheduled"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"` // confirmed, pending, cancelled
}

// CareBundle is everything the healthcare integration screen renders.
type CareBundle struct {
	Providers    []Provider     `json:"providers"`
	Records      []HealthRecord `json:"records"`
	Appointments []Appointment  `json:"appointments"`
}

// DecodeProviders validates and decodes a raw provider payload.
func DecodeProviders(raw json.RawMessage) ([]Provider, error) {
	var providers []Provider
	if err := json.Unmarshal(raw, &providers); err != nil {
		return nil, &ValidationError{Domain: CareDomain, Reason: err.Error()}
	}
	for _, p := range providers {
		if p.ID == "" {
			return nil, &ValidationError{Domain: CareDomain, Field: "id", Reason: "must not be empty"}
		}
		if p.Name == "" {
			return nil, &ValidationError{Domain: CareDomain, Field: "name", Reason: "must not be empty"}
		}
	}
	return providers, nil
}

// DecodeHealthRecords validates and decodes a raw health record payload.
func DecodeHealthRecords(raw json.RawMessage) ([]HealthRecord, error) {
	var records []HealthRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &ValidationError{Domain: CareDomain, Reason: err.Error()}
	}
	for _, r := range records {
		if r.ID == "" {
			return nil, &ValidationError{Domain: CareDomain, Field: "id", Reason: "must not be empty"}
		}
		if r.Type == "" {
			return nil, &ValidationError{Domain: CareDomain, Field: "type", Reason: "must not be empty"}
		}
		if r.RecordedAt.IsZero() {
			return nil, &ValidationError{Domain: CareDomain, Field: "recorded_at", Reason: "must be set"}
		}
	}
	return records, nil
}

// DecodeAppointments validates and decodes a raw appointment payload.
func DecodeAppointments(raw json.RawMessage) ([]Appointment, error) {
	var appointments []Appointment
	if err := json.Unmarshal(raw, &appointments); err != nil {
		return nil, &ValidationError{Domain: CareDomain, Reason: err.Error()}
	}
	for _, a := range appointments {
		if a.ID == "" || a.ProviderID == "" {
			return nil, &ValidationError{Domain: CareDomain, Field: "id", Reason: "must reference an appointment and provider"}
		}
		if a.Scheduled.IsZero() {
			return nil, &ValidationError{Domain: CareDomain, Field: "scheduled", Reason: "must be set"}
		}
	}
	return appointments, nil
}
