package leads

import (
	"encoding/json"
	"strings"
	"time"
)

// Lead is the canonical record persisted for every ingested webhook,
// regardless of which payload shape it arrived in.
type Lead struct {
	ID int64 `json:"id"`

	// Webhook identity
	EventID        string    `json:"event_id"`
	TenantID       string    `json:"tenant_id"`
	Provider       string    `json:"provider"`
	EventType      string    `json:"event_type"`
	OccurredAt     time.Time `json:"occurred_at"`
	PayloadVersion int       `json:"payload_version"`

	// Source linkage. Source and SourceLeadID mirror provider and
	// source_ids.form_id so pre-envelope consumers keep working.
	SourceIDs     map[string]any `json:"source_ids,omitempty"`
	Source        *string        `json:"source,omitempty"`
	SourceLeadID  *string        `json:"source_lead_id,omitempty"`
	AdID          *string        `json:"ad_id,omitempty"`
	AppointmentID *string        `json:"appointment_id,omitempty"`

	// Person fields. First/last name stay nil for legacy payloads,
	// which only ever carry the derived full name.
	FirstName   *string   `json:"first_name,omitempty"`
	LastName    *string   `json:"last_name,omitempty"`
	FullName    string    `json:"full_name"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Message     *string   `json:"message,omitempty"`
	PageURL     *string   `json:"page_url,omitempty"`
	IPAddress   *string   `json:"ip_address,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`

	// Consent is tri-state: nil means the payload never answered.
	MarketingConsent *bool `json:"marketing_consent,omitempty"`
	TermsConsent     *bool `json:"terms_consent,omitempty"`

	// UTM attribution
	UTMSource   *string `json:"utm_source,omitempty"`
	UTMMedium   *string `json:"utm_medium,omitempty"`
	UTMCampaign *string `json:"utm_campaign,omitempty"`
	UTMTerm     *string `json:"utm_term,omitempty"`
	UTMContent  *string `json:"utm_content,omitempty"`

	// MetaData archives the original request body verbatim.
	MetaData json.RawMessage `json:"meta_data,omitempty"`

	// Stamped by the storage layer.
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Validate checks the invariants the normalizer is supposed to guarantee.
// A failure here is a defaulting bug upstream, not a valid input state.
func (l *Lead) Validate() error {
	if strings.TrimSpace(l.EventID) == "" {
		return ErrMissingEventID
	}
	if strings.TrimSpace(l.TenantID) == "" {
		return ErrMissingTenant
	}
	if strings.TrimSpace(l.Provider) == "" {
		return ErrMissingProvider
	}
	if strings.TrimSpace(l.EventType) == "" {
		return ErrMissingEventType
	}
	if l.OccurredAt.IsZero() || l.SubmittedAt.IsZero() {
		return ErrMissingTimestamp
	}
	return nil
}
