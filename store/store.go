// Package store persists conversations and harvested leads in PostgreSQL.
//
// Persistence is best-effort: a nil *Manager no-ops every call, so the chat
// path works unchanged when no database is configured.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/maticstudio/chat-agent/agent/contract"
	leadx "github.com/maticstudio/chat-agent/agent/lead"
)

const sourceChatAgent = "chat_agent"

type Config struct {
	DSN     string        `envconfig:"DSN"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"5s"`
}

// Configured reports whether a database was provided.
func (c Config) Configured() bool {
	return c.DSN != ""
}

// Manager wraps the bun handle. The zero-value nil *Manager is a valid
// no-op store.
type Manager struct {
	db      *bun.DB
	timeout time.Duration
}

// NewManager connects to PostgreSQL. Returns (nil, nil) when the config
// carries no DSN so callers can keep a single code path.
func NewManager(cfg Config) (*Manager, error) {
	if !cfg.Configured() {
		return nil, nil
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())

	return &Manager{db: db, timeout: cfg.Timeout}, nil
}

// CreateSchema creates the tables if they do not exist.
func (m *Manager) CreateSchema(ctx context.Context) error {
	if m == nil {
		return nil
	}

	models := []any{(*Conversation)(nil), (*Lead)(nil)}
	for _, model := range models {
		if _, err := m.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	return m.db.Close()
}

// SaveConversation upserts the full message history for a session.
func (m *Manager) SaveConversation(ctx context.Context, sessionID string, turns []contractx.Turn, metadata map[string]any) {
	if m == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	now := time.Now().UTC()
	conv := &Conversation{
		SessionID: sessionID,
		Messages:  turns,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := m.db.NewInsert().
		Model(conv).
		On("CONFLICT (session_id) DO UPDATE").
		Set("messages = EXCLUDED.messages").
		Set("metadata = EXCLUDED.metadata").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("save conversation failed")
	}
}

// SaveLead records extracted contact details. An existing lead matching on
// email or phone gets its blank fields filled, its conversation count bumped
// and its last-contact timestamp refreshed.
func (m *Manager) SaveLead(ctx context.Context, ld *leadx.Lead) {
	if m == nil || ld == nil || (ld.Email == "" && ld.Phone == "") {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	now := time.Now().UTC()

	existing := new(Lead)
	q := m.db.NewSelect().Model(existing)
	switch {
	case ld.Email != "" && ld.Phone != "":
		q = q.Where("email = ?", ld.Email).WhereOr("phone = ?", ld.Phone)
	case ld.Email != "":
		q = q.Where("email = ?", ld.Email)
	default:
		q = q.Where("phone = ?", ld.Phone)
	}

	err := q.Limit(1).Scan(ctx)
	switch {
	case err == nil:
		merge(existing, ld)
		existing.ConversationCount++
		existing.LastContact = now
		existing.UpdatedAt = now
		if _, err := m.db.NewUpdate().Model(existing).WherePK().Exec(ctx); err != nil {
			log.Warn().Err(err).Str("email", ld.Email).Msg("update lead failed")
		}
	case errors.Is(err, sql.ErrNoRows):
		row := &Lead{
			Email:             ld.Email,
			Phone:             ld.Phone,
			Company:           ld.Company,
			Name:              ld.Name,
			Status:            "new",
			Source:            sourceChatAgent,
			ConversationCount: 1,
			CreatedAt:         now,
			UpdatedAt:         now,
			LastContact:       now,
		}
		if _, err := m.db.NewInsert().Model(row).Exec(ctx); err != nil {
			log.Warn().Err(err).Str("email", ld.Email).Msg("insert lead failed")
		}
	default:
		log.Warn().Err(err).Str("email", ld.Email).Msg("lookup lead failed")
	}
}

func merge(dst *Lead, src *leadx.Lead) {
	if dst.Email == "" {
		dst.Email = src.Email
	}
	if dst.Phone == "" {
		dst.Phone = src.Phone
	}
	if dst.Company == "" {
		dst.Company = src.Company
	}
	if dst.Name == "" {
		dst.Name = src.Name
	}
}

// GetLeads returns the newest leads first, capped at limit.
func (m *Manager) GetLeads(ctx context.Context, limit int) ([]Lead, error) {
	if m == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var leads []Lead
	err := m.db.NewSelect().
		Model(&leads).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// UpdateLeadStatus sets the workflow status of the lead matching the email.
// Returns false when no lead matched.
func (m *Manager) UpdateLeadStatus(ctx context.Context, email, status string) (bool, error) {
	if m == nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	res, err := m.db.NewUpdate().
		Model((*Lead)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("email = ?", email).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("update lead status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update lead status: %w", err)
	}
	return affected > 0, nil
}

// Analytics aggregates lead and conversation counts for the admin dashboard.
func (m *Manager) Analytics(ctx context.Context) (*Analytics, error) {
	if m == nil {
		return &Analytics{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	out := new(Analytics)

	total, err := m.db.NewSelect().Model((*Lead)(nil)).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}
	out.TotalLeads = int64(total)

	fresh, err := m.db.NewSelect().Model((*Lead)(nil)).Where("status = ?", "new").Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count new leads: %w", err)
	}
	out.NewLeads = int64(fresh)

	convs, err := m.db.NewSelect().Model((*Conversation)(nil)).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count conversations: %w", err)
	}
	out.TotalConversations = int64(convs)

	err = m.db.NewSelect().
		Model((*Lead)(nil)).
		ColumnExpr("company").
		ColumnExpr("count(*) AS count").
		Where("company <> ''").
		GroupExpr("company").
		OrderExpr("count DESC").
		Limit(5).
		Scan(ctx, &out.TopCompanies)
	if err != nil {
		return nil, fmt.Errorf("top companies: %w", err)
	}

	return out, nil
}
