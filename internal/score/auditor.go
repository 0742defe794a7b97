// Package score audits how well a dialect dataset is covered and backed
// by citations. Every score carries the signals and formulas behind it.
package score

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/kkennyy/call-what-ah/internal/model"
	"github.com/kkennyy/call-what-ah/internal/validate"
)

// Auditor scores dialect datasets
type Auditor struct {
	authority *validate.AuthorityClassifier
	now       func() time.Time
}

// NewAuditor creates an auditor classifying citations with authority
func NewAuditor(authority *validate.AuthorityClassifier) *Auditor {
	if authority == nil {
		authority = validate.NewAuthorityClassifier(nil)
	}
	return &Auditor{authority: authority, now: time.Now}
}

// Audit scores data overall and per dialect. checks holds link check
// results; nil means links were not checked.
func (a *Auditor) Audit(data *model.DialectData, checks []model.LinkCheck) model.AuditReport {
	report := model.AuditReport{
		AuditedAt:  a.now().UTC(),
		Dialects:   []model.DialectAudit{},
		LinkChecks: checks,
	}
	if data == nil {
		report.Score = model.Score{Index: 0, Confidence: "low", Signals: []model.Signal{}}
		return report
	}
	report.DatasetVersion = data.Meta.Version
	report.Concepts = len(data.Concepts)

	ids := conceptIDs(data)
	for _, d := range data.Dialects {
		if d.ID == model.DialectCustom {
			continue
		}
		report.Dialects = append(report.Dialects, auditDialect(data, ids, d))
	}

	citations := validate.Citations(data)
	var signals []model.Signal

	// 1. Coverage across dialects (0-30 points)
	coverageScore, coverageSignal := overallCoverage(report.Dialects)
	signals = append(signals, coverageSignal)

	// 2. Source backing across dialects (0-20 points)
	backingScore, backingSignal := overallBacking(report.Dialects)
	signals = append(signals, backingSignal)

	// 3. Authority distribution of citations (0-30 points)
	authorityScore, authoritySignal := a.authorityDistribution(citations)
	signals = append(signals, authoritySignal)

	// 4. Accessibility of cited pages (0-20 points)
	accessScore, accessSignal := accessibility(checks)
	signals = append(signals, accessSignal)

	total := coverageScore + backingScore + authorityScore + accessScore
	report.Score = model.Score{
		Index:      total,
		Confidence: determineConfidence(total, len(citations), checks != nil),
		Signals:    signals,
	}
	return report
}

func conceptIDs(data *model.DialectData) []string {
	ids := make([]string, 0, len(data.Concepts))
	for id := range data.Concepts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// auditDialect scores one dialect: coverage 0-40, backing 0-30,
// confidence mix 0-30, minus up to 20 for unsourced divergent terms
func auditDialect(data *model.DialectData, ids []string, d model.Dialect) model.DialectAudit {
	audit := model.DialectAudit{
		DialectID:  d.ID,
		Label:      d.Label,
		Confidence: map[model.Confidence]int{},
	}

	unverified := 0
	for _, id := range ids {
		c := data.Concepts[id]
		v, ok := c.Variants[d.ID]
		if !ok {
			continue
		}
		audit.Variants++
		audit.Confidence[v.Confidence]++
		if v.Preferred != "" {
			audit.WithPreferred++
		}
		if len(v.Sources) > 0 {
			audit.SourceBacked++
		}
		std := c.Variants[model.DialectStandard].Preferred
		if d.ID != model.DialectStandard && v.Preferred != "" && std != "" && v.Preferred != std {
			audit.Divergent++
			if len(v.Sources) == 0 {
				unverified++
			}
		}
	}

	concepts := len(ids)
	var signals []model.Signal

	coverage := ratio(audit.WithPreferred, concepts)
	coverageScore := int(coverage * 40)
	signals = append(signals, model.Signal{
		Type:        model.SignalCoverage,
		Severity:    severityBelow(coverage, 0.5, 0.8),
		Description: fmt.Sprintf("%d/%d concepts have a preferred term", audit.WithPreferred, concepts),
		Data: map[string]interface{}{
			"with_preferred": audit.WithPreferred,
			"concepts":       concepts,
			"score":          coverageScore,
			"formula":        "with_preferred / concepts * 40",
		},
	})

	backing := ratio(audit.SourceBacked, audit.Variants)
	backingScore := int(backing * 30)
	signals = append(signals, model.Signal{
		Type:        model.SignalSourceBacking,
		Severity:    severityBelow(backing, 0.5, 0.9),
		Description: fmt.Sprintf("%d/%d variants cite a source", audit.SourceBacked, audit.Variants),
		Data: map[string]interface{}{
			"source_backed": audit.SourceBacked,
			"variants":      audit.Variants,
			"score":         backingScore,
			"formula":       "source_backed / variants * 30",
		},
	})

	high := audit.Confidence[model.ConfidenceHigh]
	medium := audit.Confidence[model.ConfidenceMedium]
	low := audit.Variants - high - medium
	confidenceScore := 0
	if audit.Variants > 0 {
		confidenceScore = int(float64(high*3+medium*2+low) / float64(audit.Variants*3) * 30)
	}
	signals = append(signals, model.Signal{
		Type:        model.SignalConfidenceMix,
		Severity:    model.SeverityInfo,
		Description: fmt.Sprintf("Declared confidence: %d high, %d medium, %d low", high, medium, low),
		Data: map[string]interface{}{
			"high":    high,
			"medium":  medium,
			"low":     low,
			"score":   confidenceScore,
			"formula": "(high*3 + medium*2 + low*1) / (variants*3) * 30",
		},
	})

	penalty := 0
	if unverified > 0 {
		penalty = int(math.Ceil(ratio(unverified, audit.Divergent) * 20))
		signals = append(signals, model.Signal{
			Type:        model.SignalUnverifiedDivergence,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("%d dialect-specific terms have no citation and will be demoted", unverified),
			Data: map[string]interface{}{
				"unverified": unverified,
				"divergent":  audit.Divergent,
				"penalty":    penalty,
				"formula":    "ceil(unverified / divergent * 20)",
			},
		})
	}

	total := coverageScore + backingScore + confidenceScore - penalty
	if total < 0 {
		total = 0
	}
	audit.Score = model.Score{
		Index:      total,
		Confidence: determineConfidence(total, audit.SourceBacked, true),
		Signals:    signals,
	}
	return audit
}

func overallCoverage(dialects []model.DialectAudit) (int, model.Signal) {
	if len(dialects) == 0 {
		return 0, model.Signal{
			Type:        model.SignalCoverage,
			Severity:    model.SeverityCritical,
			Description: "No dialects in dataset",
			Data:        map[string]interface{}{"dialects": 0},
		}
	}

	var sum float64
	for _, d := range dialects {
		sum += ratio(d.WithPreferred, d.Variants)
	}
	mean := sum / float64(len(dialects))
	score := int(mean * 30)

	return score, model.Signal{
		Type:        model.SignalCoverage,
		Severity:    severityBelow(mean, 0.5, 0.8),
		Description: fmt.Sprintf("Mean preferred-term coverage: %.0f%% over %d dialects", mean*100, len(dialects)),
		Data: map[string]interface{}{
			"dialects": len(dialects),
			"mean":     mean,
			"score":    score,
			"formula":  "mean(with_preferred / variants) * 30",
		},
	}
}

func overallBacking(dialects []model.DialectAudit) (int, model.Signal) {
	backed, variants := 0, 0
	for _, d := range dialects {
		backed += d.SourceBacked
		variants += d.Variants
	}
	r := ratio(backed, variants)
	score := int(r * 20)

	return score, model.Signal{
		Type:        model.SignalSourceBacking,
		Severity:    severityBelow(r, 0.5, 0.9),
		Description: fmt.Sprintf("%d/%d variants cite a source", backed, variants),
		Data: map[string]interface{}{
			"source_backed": backed,
			"variants":      variants,
			"score":         score,
			"formula":       "source_backed / variants * 20",
		},
	}
}

func (a *Auditor) authorityDistribution(citations []model.Citation) (int, model.Signal) {
	if len(citations) == 0 {
		return 0, model.Signal{
			Type:        model.SignalAuthorityDistribution,
			Severity:    model.SeverityWarning,
			Description: "No citations in dataset",
			Data:        map[string]interface{}{"citations": 0},
		}
	}

	primary, secondary, tertiary := 0, 0, 0
	for _, c := range citations {
		switch a.authority.Classify(c.Source.URL) {
		case model.TierPrimary:
			primary++
		case model.TierSecondary:
			secondary++
		default:
			tertiary++
		}
	}

	total := len(citations)
	score := int(float64(primary*3+secondary*2+tertiary) / float64(total*3) * 30)

	severity := model.SeverityInfo
	if primary == 0 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        model.SignalAuthorityDistribution,
		Severity:    severity,
		Description: fmt.Sprintf("Authority distribution: %d primary, %d secondary, %d tertiary", primary, secondary, tertiary),
		Data: map[string]interface{}{
			"primary":   primary,
			"secondary": secondary,
			"tertiary":  tertiary,
			"total":     total,
			"score":     score,
			"formula":   "(primary*3 + secondary*2 + tertiary*1) / (total*3) * 30",
		},
	}
}

// accessibility scores link checks; robots-blocked links are excluded
func accessibility(checks []model.LinkCheck) (int, model.Signal) {
	if checks == nil {
		return 10, model.Signal{
			Type:        model.SignalAccessibility,
			Severity:    model.SeverityInfo,
			Description: "Links not checked (assuming moderate)",
			Data:        map[string]interface{}{"checked": 0, "score": 10},
		}
	}

	checked, accessible, dead, blocked := 0, 0, 0, 0
	for _, c := range checks {
		if c.RobotsBlocked {
			blocked++
			continue
		}
		checked++
		if c.IsAccessible {
			accessible++
		}
		if c.IsDead {
			dead++
		}
	}
	if checked == 0 {
		return 10, model.Signal{
			Type:        model.SignalAccessibility,
			Severity:    model.SeverityInfo,
			Description: "No fetchable links (assuming moderate)",
			Data:        map[string]interface{}{"checked": 0, "robots_blocked": blocked, "score": 10},
		}
	}

	r := ratio(accessible, checked)
	score := int(r * 20)

	return score, model.Signal{
		Type:        model.SignalAccessibility,
		Severity:    severityBelow(r, 0.5, 0.8),
		Description: fmt.Sprintf("Accessibility: %d/%d (%.0f%%), %d dead", accessible, checked, r*100, dead),
		Data: map[string]interface{}{
			"accessible":     accessible,
			"dead":           dead,
			"robots_blocked": blocked,
			"checked":        checked,
			"ratio":          r,
			"score":          score,
			"formula":        "(accessible_count / checked) * 20",
		},
	}
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func severityBelow(r, critical, warning float64) model.SignalSeverity {
	switch {
	case r < critical:
		return model.SeverityCritical
	case r < warning:
		return model.SeverityWarning
	default:
		return model.SeverityInfo
	}
}

// determineConfidence determines the confidence level based on the score
func determineConfidence(score int, citations int, linksChecked bool) string {
	if citations < 3 {
		return "low"
	}

	switch {
	case score >= 80 && linksChecked:
		return "high"
	case score >= 60:
		return "medium"
	default:
		return "low"
	}
}
