package webhooks

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Adilkhan6644/webhook-service/internal/leads"
)

const defaultEventType = "lead.submitted"

// Layouts accepted for occurred_at/submitted_at. RFC3339 covers offsets
// and the trailing Z; the second form covers naive timestamps, read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// RouteContext carries the tenant and provider taken from the request path.
type RouteContext struct {
	Tenant   string
	Provider string
}

// Normalizer turns classified webhook bodies into canonical lead records.
// Both branch functions are total: missing optional fields default, they
// never fail. The clock and id generator are injectable so tests can pin
// them.
type Normalizer struct {
	Now   func() time.Time
	NewID func() string
}

// NewNormalizer returns a normalizer on the real clock and uuid generator.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
}

// Normalize classifies body and produces one canonical lead record.
// raw is the undecoded request body, archived verbatim as meta_data.
func (n *Normalizer) Normalize(body Object, raw []byte, route RouteContext) *leads.Lead {
	if Classify(body) == FormatStructured {
		return n.normalizeStructured(body, raw, route)
	}
	return n.normalizeLegacy(body, raw, route)
}

// normalizeStructured maps the enveloped shape. Envelope fields default
// independently; route values back-fill tenant and provider.
func (n *Normalizer) normalizeStructured(body Object, raw []byte, route RouteContext) *leads.Lead {
	lead := body.Object("payload").Object("lead")

	eventID, ok := body.String("event_id")
	if !ok || eventID == "" {
		eventID = n.NewID()
	}
	provider := body.StringOr("provider", route.Provider)

	// Malformed timestamps never abort the request: occurred_at falls
	// back to now, submitted_at chains onto the resolved occurred_at.
	occurredAt, ok := parseTimestamp(body.StringPtr("occurred_at"))
	if !ok {
		occurredAt = n.Now()
	}
	submittedAt, ok := parseTimestamp(lead.StringPtr("submitted_at"))
	if !ok {
		submittedAt = occurredAt
	}

	firstName, _ := lead.String("first_name")
	lastName, _ := lead.String("last_name")

	sourceIDs := body.Map("source_ids")
	if sourceIDs == nil {
		sourceIDs = map[string]any{}
	}

	var pageURL *string
	if u, ok := Object(sourceIDs).String("page_url"); ok && u != "" {
		pageURL = &u
	} else {
		pageURL = lead.StringPtr("page_url")
	}

	consent := lead.Object("consent")
	utm := lead.Object("utm")

	return &leads.Lead{
		EventID:        eventID,
		TenantID:       body.StringOr("tenant_id", route.Tenant),
		Provider:       provider,
		EventType:      body.StringOr("event_type", defaultEventType),
		OccurredAt:     occurredAt,
		PayloadVersion: body.IntOr("payload_v", 1),

		SourceIDs:    sourceIDs,
		Source:       &provider,
		SourceLeadID: Object(sourceIDs).StringPtr("form_id"),

		FirstName:   &firstName,
		LastName:    &lastName,
		FullName:    joinName(firstName, lastName),
		PhoneNumber: lead.StringPtr("phone"),
		Email:       lead.StringPtr("email"),
		Message:     lead.StringPtr("message"),
		PageURL:     pageURL,
		IPAddress:   lead.StringPtr("ip"),
		SubmittedAt: submittedAt,

		MarketingConsent: consent.BoolPtr("marketing"),
		TermsConsent:     consent.BoolPtr("terms"),

		UTMSource:   utm.StringPtr("source"),
		UTMMedium:   utm.StringPtr("medium"),
		UTMCampaign: utm.StringPtr("campaign"),
		UTMTerm:     utm.StringPtr("term"),
		UTMContent:  utm.StringPtr("content"),

		MetaData: append([]byte(nil), raw...),
	}
}

// normalizeLegacy maps the flat pre-envelope shape. Identity comes from
// the route and a fresh event id; body timestamps are never consulted.
// payload_version 0 marks the record as legacy-origin.
func (n *Normalizer) normalizeLegacy(body Object, raw []byte, route RouteContext) *leads.Lead {
	lead := body.Object("lead")
	if lead == nil {
		lead = body
	}

	now := n.Now()
	provider := route.Provider
	firstName, _ := lead.String("first_name")
	lastName, _ := lead.String("last_name")

	return &leads.Lead{
		EventID:        n.NewID(),
		TenantID:       route.Tenant,
		Provider:       provider,
		EventType:      defaultEventType,
		OccurredAt:     now,
		PayloadVersion: 0,

		Source:        &provider,
		SourceLeadID:  body.StringPtr("form_id"),
		AdID:          body.StringPtr("ad_id"),
		AppointmentID: body.StringPtr("appointment_id"),

		FullName:    joinName(firstName, lastName),
		PhoneNumber: lead.StringPtr("phone"),
		Email:       lead.StringPtr("email"),
		Message:     lead.StringPtr("message"),
		PageURL:     lead.StringPtr("page_url"),
		SubmittedAt: now,

		MetaData: append([]byte(nil), raw...),
	}
}

func parseTimestamp(s *string) (time.Time, bool) {
	if s == nil || *s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
