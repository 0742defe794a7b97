package model

import "time"

// AuditReport is the trust audit of a dialect dataset
type AuditReport struct {
	DatasetVersion string         `json:"dataset_version,omitempty"`
	AuditedAt      time.Time      `json:"audited_at"`
	Concepts       int            `json:"concepts"`
	Dialects       []DialectAudit `json:"dialects"`
	Score          Score          `json:"score"`
	LinkChecks     []LinkCheck    `json:"link_checks,omitempty"`
}

// DialectAudit summarises one dialect's coverage and citation backing
type DialectAudit struct {
	DialectID     string             `json:"dialect_id"`
	Label         string             `json:"label"`
	Variants      int                `json:"variants"`       // Concepts with a variant for this dialect
	WithPreferred int                `json:"with_preferred"` // Variants carrying a preferred term
	SourceBacked  int                `json:"source_backed"`  // Variants with at least one citation
	Divergent     int                `json:"divergent"`      // Preferred term differs from the standard one
	Confidence    map[Confidence]int `json:"confidence"`
	Score         Score              `json:"score"`
}

// Score represents a transparent scoring breakdown
type Score struct {
	Index      int      `json:"index"`      // 0-100
	Confidence string   `json:"confidence"` // "low", "medium", "high"
	Signals    []Signal `json:"signals"`
}

// Signal represents a diagnostic signal with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"` // Formulas and inputs
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalCoverage              SignalType = "coverage"                // Concepts with a dialect variant
	SignalSourceBacking         SignalType = "source_backing"          // Variants carrying citations
	SignalConfidenceMix         SignalType = "confidence_distribution" // Declared confidence levels
	SignalAuthorityDistribution SignalType = "authority_distribution"  // Citation authority tiers
	SignalAccessibility         SignalType = "accessibility"           // Dead citation ratio
	SignalUnverifiedDivergence  SignalType = "unverified_divergence"   // Dialect-only terms without citations
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
