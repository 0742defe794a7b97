package model

import "time"

// Citation is a variant source located within the dialect dataset
type Citation struct {
	ConceptID string `json:"concept_id"`
	DialectID string `json:"dialect_id"`
	Source    Source `json:"source"`
}

// AuthorityTier represents the classification of citation authority
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Official dictionaries, academic lexicons
	TierSecondary AuthorityTier = 2 // Encyclopedias, cultural institutions
	TierTertiary  AuthorityTier = 3 // Code repositories, blogs, forums
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// LinkCheck contains the result of checking one citation URL
type LinkCheck struct {
	URL           string        `json:"url"`
	IsAccessible  bool          `json:"is_accessible"`
	StatusCode    int           `json:"status_code,omitempty"`
	LastModified  *time.Time    `json:"last_modified,omitempty"`
	Age           *int          `json:"age_days,omitempty"` // Days since last modified
	IsStale       bool          `json:"is_stale"`           // > 1 year old
	IsDead        bool          `json:"is_dead"`            // 404, 410, or unreachable
	RobotsBlocked bool          `json:"robots_blocked"`     // Disallowed by robots.txt, not fetched
	RedirectURL   string        `json:"redirect_url,omitempty"`
	PageTitle     string        `json:"page_title,omitempty"`
	TitleMatches  bool          `json:"title_matches"` // Page title contains the cited title
	Authority     AuthorityTier `json:"authority"`
	Error         string        `json:"error,omitempty"`
}
