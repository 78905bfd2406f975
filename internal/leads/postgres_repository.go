package leads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// database is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type database interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	db database
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

func newPostgresRepositoryWithDB(db database) *PostgresRepository {
	if db == nil {
		panic("leads: database required")
	}
	return &PostgresRepository{db: db}
}

const insertLeadQuery = `
	INSERT INTO leads (
		event_id, tenant_id, provider, event_type, occurred_at, payload_version,
		source_ids, source, source_lead_id, ad_id, appointment_id,
		first_name, last_name, full_name, phone_number, email, message,
		page_url, ip_address, submitted_at,
		marketing_consent, terms_consent,
		utm_source, utm_medium, utm_campaign, utm_term, utm_content,
		meta_data
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
	RETURNING id, created_on, updated_on
`

// Insert writes one lead inside its own transaction. The session is
// released on every exit path; a unique violation on event_id surfaces
// as ErrDuplicateEvent.
func (r *PostgresRepository) Insert(ctx context.Context, lead *Lead) (*Lead, error) {
	if err := lead.Validate(); err != nil {
		return nil, err
	}

	sourceIDs, err := encodeJSONColumn(lead.SourceIDs)
	if err != nil {
		return nil, fmt.Errorf("leads: encode source_ids: %w", err)
	}
	var metaData []byte
	if len(lead.MetaData) > 0 {
		metaData = []byte(lead.MetaData)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("leads: begin tx: %w", err)
	}

	stored := *lead
	if err := tx.QueryRow(ctx, insertLeadQuery,
		lead.EventID,
		lead.TenantID,
		lead.Provider,
		lead.EventType,
		lead.OccurredAt,
		lead.PayloadVersion,
		sourceIDs,
		lead.Source,
		lead.SourceLeadID,
		lead.AdID,
		lead.AppointmentID,
		lead.FirstName,
		lead.LastName,
		lead.FullName,
		lead.PhoneNumber,
		lead.Email,
		lead.Message,
		lead.PageURL,
		lead.IPAddress,
		lead.SubmittedAt,
		lead.MarketingConsent,
		lead.TermsConsent,
		lead.UTMSource,
		lead.UTMMedium,
		lead.UTMCampaign,
		lead.UTMTerm,
		lead.UTMContent,
		metaData,
	).Scan(&stored.ID, &stored.CreatedOn, &stored.UpdatedOn); err != nil {
		_ = tx.Rollback(ctx)
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEvent
		}
		return nil, fmt.Errorf("leads: insert lead: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("leads: commit tx: %w", err)
	}
	return &stored, nil
}

// GetByEventID fetches a lead by its unique event id.
func (r *PostgresRepository) GetByEventID(ctx context.Context, eventID string) (*Lead, error) {
	query := `
		SELECT id, event_id, tenant_id, provider, event_type, occurred_at, payload_version,
			source_ids, source, source_lead_id, ad_id, appointment_id,
			first_name, last_name, full_name, phone_number, email, message,
			page_url, ip_address, submitted_at,
			marketing_consent, terms_consent,
			utm_source, utm_medium, utm_campaign, utm_term, utm_content,
			meta_data, created_on, updated_on
		FROM leads
		WHERE event_id = $1
	`
	var (
		lead      Lead
		sourceIDs []byte
		metaData  []byte
	)
	if err := r.db.QueryRow(ctx, query, eventID).Scan(
		&lead.ID,
		&lead.EventID,
		&lead.TenantID,
		&lead.Provider,
		&lead.EventType,
		&lead.OccurredAt,
		&lead.PayloadVersion,
		&sourceIDs,
		&lead.Source,
		&lead.SourceLeadID,
		&lead.AdID,
		&lead.AppointmentID,
		&lead.FirstName,
		&lead.LastName,
		&lead.FullName,
		&lead.PhoneNumber,
		&lead.Email,
		&lead.Message,
		&lead.PageURL,
		&lead.IPAddress,
		&lead.SubmittedAt,
		&lead.MarketingConsent,
		&lead.TermsConsent,
		&lead.UTMSource,
		&lead.UTMMedium,
		&lead.UTMCampaign,
		&lead.UTMTerm,
		&lead.UTMContent,
		&metaData,
		&lead.CreatedOn,
		&lead.UpdatedOn,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select lead: %w", err)
	}

	if len(sourceIDs) > 0 {
		if err := json.Unmarshal(sourceIDs, &lead.SourceIDs); err != nil {
			return nil, fmt.Errorf("leads: decode source_ids: %w", err)
		}
	}
	if len(metaData) > 0 {
		lead.MetaData = json.RawMessage(metaData)
	}
	return &lead, nil
}

func encodeJSONColumn(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
