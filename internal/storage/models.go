package storage

import "time"

// Role values accepted for a principal.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Audit action tags recorded by the service.
const (
	ActionCreateLink      = "CREATE_LINK"
	ActionDeleteLink      = "DELETE_LINK"
	ActionAdminDeleteLink = "ADMIN_DELETE_LINK"
	ActionActivateLink    = "ACTIVATE_LINK"
	ActionDeactivateLink  = "DEACTIVATE_LINK"
	ActionActivateUser    = "ACTIVATE_USER"
	ActionDeactivateUser  = "DEACTIVATE_USER"
	ActionChangeRole      = "CHANGE_ROLE"
)

// LinkRecord is a short link row. ShortCode is unique across all links and
// never changes after creation.
type LinkRecord struct {
	ID             string     `json:"id"`
	ShortCode      string     `json:"short_code"`
	DestinationURL string     `json:"destination_url"`
	OwnerID        string     `json:"owner_id"`
	ClickCount     int64      `json:"click_count"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
	LastClickedAt  *time.Time `json:"last_clicked_at,omitempty"`
}

// ClickRecord is a single recorded visit. Rows are immutable and are removed
// only when the owning link is deleted.
type ClickRecord struct {
	ID             string    `json:"id"`
	LinkID         string    `json:"link_id"`
	Timestamp      time.Time `json:"timestamp"`
	ClientIP       string    `json:"client_ip"`
	UserAgentRaw   string    `json:"user_agent_raw"`
	BrowserFamily  string    `json:"browser_family"`
	PlatformFamily string    `json:"platform_family"`
	Referrer       string    `json:"referrer"`
}

// AuditRecord is an append-only trail entry. ActorEmail is a snapshot taken
// at write time, not a reference into the principal directory.
type AuditRecord struct {
	ID         string            `json:"id"`
	Action     string            `json:"action"`
	ActorID    string            `json:"actor_id"`
	ActorEmail string            `json:"actor_email"`
	Details    map[string]string `json:"details,omitempty"`
	ClientIP   string            `json:"client_ip"`
	UserAgent  string            `json:"user_agent"`
	Timestamp  time.Time         `json:"timestamp"`
}

// PrincipalRecord mirrors the attributes of an identity-provider account that
// the core needs locally: the role gate, the quota and the active flag.
// Credentials never live here.
type PrincipalRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	MaxLinks  int       `json:"max_links"`
	CreatedAt time.Time `json:"created_at"`
}

// BrowserCount is one bucket of the per-browser click aggregation.
type BrowserCount struct {
	Browser string `json:"browser"`
	Count   int64  `json:"count"`
}

// DayCount is one bucket of the daily click histogram. Day is formatted
// YYYY-MM-DD in UTC.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// Stats holds the service-wide totals shown on the admin dashboard.
type Stats struct {
	TotalLinks      int64 `json:"total_links"`
	TotalClicks     int64 `json:"total_clicks"`
	TotalPrincipals int64 `json:"total_principals"`
}
