// Package models defines the JSON request and response shapes of the HTTP
// surface. Success responses carry "success": true; failures carry a single
// "error" message.
package models

import (
	"github.com/atinyakov/go-link-service/internal/app/service"
	"github.com/atinyakov/go-link-service/internal/storage"
)

// CreateLinkRequest is the POST /api/links body.
type CreateLinkRequest struct {
	DestinationURL string `json:"destination_url"`
}

// ChangeRoleRequest is the PATCH /admin/users/{id}/role body.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges a mutation with no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CreateLinkResponse returns the stored link plus the two derived URLs.
type CreateLinkResponse struct {
	Success    bool               `json:"success"`
	Link       storage.LinkRecord `json:"link"`
	PreviewURL string             `json:"preview_url"`
	DirectURL  string             `json:"direct_url"`
}

// LinkResponse wraps a single link, used by the admin toggle.
type LinkResponse struct {
	Success bool               `json:"success"`
	Link    storage.LinkRecord `json:"link"`
}

// LinkPageResponse is a newest-first page of links.
type LinkPageResponse struct {
	Success bool                 `json:"success"`
	Links   []storage.LinkRecord `json:"links"`
	Page    int                  `json:"page"`
	Pages   int                  `json:"pages"`
	Total   int64                `json:"total"`
}

// AnalyticsResponse pairs a link with its click breakdown.
type AnalyticsResponse struct {
	Success   bool               `json:"success"`
	Link      storage.LinkRecord `json:"link"`
	Analytics service.Report     `json:"analytics"`
}

// InterstitialLink is the subset of a link the preview page needs.
type InterstitialLink struct {
	ShortCode      string `json:"short_code"`
	DestinationURL string `json:"destination_url"`
}

// InterstitialResponse is the GET /r/{code} payload: enough for a front end
// to render the confirmation page.
type InterstitialResponse struct {
	Success   bool             `json:"success"`
	Link      InterstitialLink `json:"link"`
	DirectURL string           `json:"direct_url"`
}

// PrincipalResponse wraps a single directory entry.
type PrincipalResponse struct {
	Success bool                    `json:"success"`
	User    storage.PrincipalRecord `json:"user"`
}

// PrincipalPageResponse is a newest-first page of directory entries.
type PrincipalPageResponse struct {
	Success bool                      `json:"success"`
	Users   []storage.PrincipalRecord `json:"users"`
	Page    int                       `json:"page"`
	Pages   int                       `json:"pages"`
	Total   int64                     `json:"total"`
}

// AuditPageResponse is a newest-first page of the audit trail.
type AuditPageResponse struct {
	Success bool                  `json:"success"`
	Logs    []storage.AuditRecord `json:"logs"`
	Page    int                   `json:"page"`
	Pages   int                   `json:"pages"`
	Total   int64                 `json:"total"`
}

// StatsResponse carries the service-wide totals.
type StatsResponse struct {
	Success bool          `json:"success"`
	Stats   storage.Stats `json:"stats"`
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Pages computes the page count for a total at the given page size.
func Pages(total int64, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}
