package leads

import "errors"

var (
	// ErrDuplicateEvent is returned when a lead with the same event_id already exists
	ErrDuplicateEvent = errors.New("lead with this event_id already exists")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrMissingEventID is returned when a record arrives without an event id
	ErrMissingEventID = errors.New("event_id is required")

	// ErrMissingTenant is returned when a record arrives without a tenant
	ErrMissingTenant = errors.New("tenant_id is required")

	// ErrMissingProvider is returned when a record arrives without a provider
	ErrMissingProvider = errors.New("provider is required")

	// ErrMissingEventType is returned when a record arrives without an event type
	ErrMissingEventType = errors.New("event_type is required")

	// ErrMissingTimestamp is returned when occurred_at or submitted_at is unset
	ErrMissingTimestamp = errors.New("occurred_at and submitted_at are required")
)
