package store

import (
	"time"

	"github.com/uptrace/bun"

	contractx "github.com/maticstudio/chat-agent/agent/contract"
)

// Conversation is one chat session's full message history, upserted by
// session id on every completed turn.
type Conversation struct {
	bun.BaseModel `bun:"table:conversations,alias:c"`

	ID        int64            `bun:"id,pk,autoincrement" json:"-"`
	SessionID string           `bun:"session_id,notnull,unique" json:"session_id"`
	Messages  []contractx.Turn `bun:"messages,type:jsonb" json:"messages"`
	Metadata  map[string]any   `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time        `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time        `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Lead is a prospective customer's contact record. Uniqueness is a match on
// email-or-phone, resolved in SaveLead rather than by constraint so partial
// records still upsert.
type Lead struct {
	bun.BaseModel `bun:"table:leads,alias:l"`

	ID                int64     `bun:"id,pk,autoincrement" json:"-"`
	Email             string    `bun:"email" json:"email,omitempty"`
	Phone             string    `bun:"phone" json:"phone,omitempty"`
	Company           string    `bun:"company" json:"company,omitempty"`
	Name              string    `bun:"name" json:"name,omitempty"`
	Status            string    `bun:"status,notnull,default:'new'" json:"status"`
	Source            string    `bun:"source" json:"source"`
	ConversationCount int       `bun:"conversation_count,notnull,default:1" json:"conversation_count"`
	CreatedAt         time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
	LastContact       time.Time `bun:"last_contact,nullzero" json:"last_contact,omitempty"`
}

// CompanyCount is one row of the top-companies analytics aggregate.
type CompanyCount struct {
	Company string `bun:"company" json:"company"`
	Count   int64  `bun:"count" json:"count"`
}

// Analytics is the admin dashboard summary.
type Analytics struct {
	TotalLeads         int64          `json:"total_leads"`
	NewLeads           int64          `json:"new_leads"`
	TotalConversations int64          `json:"total_conversations"`
	TopCompanies       []CompanyCount `json:"top_companies"`
}
