// Package classify derives risk factors, priority tiers, and case
// categories from extracted entities and structured fields. Everything in
// this package is a pure function so classification stays deterministic.
package classify

import (
	"strings"

	"github.com/your-org/amber/internal/models"
	"github.com/your-org/amber/internal/ner"
)

// Risk factor labels.
const (
	RiskElderly80  = "elderly (80+)"
	RiskElderly65  = "elderly (65+)"
	RiskChild      = "child (≤10)"
	RiskMinor      = "minor (≤15)"
	RiskDementia   = "dementia-related condition"
	RiskMental     = "mental-health related"
	RiskMobility   = "mobility impairment"
	RiskMedication = "under medication"
	RiskLivesAlone = "lives alone"
	RiskWandering  = "wandering risk"
)

var (
	dementiaKeywords = []string{"치매", "알츠하이머"}
	mentalKeywords   = []string{"우울증", "조현병"}
	mobilityKeywords = []string{"휠체어", "보행기", "지팡이"}

	livesAloneKeywords = []string{"혼자", "독거", "홀로"}
	wanderingKeywords  = []string{"배회", "길잃음", "방향감각"}
)

// Classify derives the risk-factor set and priority tier for a case.
// Age 0 means unknown and contributes nothing. All rules apply
// independently; only the age bands are mutually exclusive.
func Classify(entities map[string][]string, age int) ([]string, models.Priority) {
	var factors []string

	if age > 0 {
		switch {
		case age >= 80:
			factors = append(factors, RiskElderly80)
		case age >= 65:
			factors = append(factors, RiskElderly65)
		case age <= 10:
			factors = append(factors, RiskChild)
		case age <= 15:
			factors = append(factors, RiskMinor)
		}
	}

	for _, disease := range entities[ner.CategoryDiseases] {
		if containsAny(disease, dementiaKeywords) {
			factors = append(factors, RiskDementia)
		} else if containsAny(disease, mentalKeywords) {
			factors = append(factors, RiskMental)
		}
	}

	for _, transport := range entities[ner.CategoryTransport] {
		if containsAny(transport, mobilityKeywords) {
			factors = append(factors, RiskMobility)
		}
	}

	if len(entities[ner.CategoryDrugs]) > 0 {
		factors = append(factors, RiskMedication)
	}

	factors = dedupe(factors)

	priority := models.PriorityMedium
	if (age > 0 && (age >= 80 || age <= 10)) ||
		contains(factors, RiskDementia) ||
		contains(factors, RiskMental) ||
		contains(factors, RiskMobility) {
		priority = models.PriorityHigh
	}

	return factors, priority
}

// TextRiskFactors extracts the risk factors that depend on the raw
// description rather than on typed entities.
func TextRiskFactors(description string) []string {
	var factors []string
	lower := strings.ToLower(description)
	if containsAny(lower, livesAloneKeywords) {
		factors = append(factors, RiskLivesAlone)
	}
	if containsAny(lower, wanderingKeywords) {
		factors = append(factors, RiskWandering)
	}
	return factors
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

func dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := list[:0]
	for _, v := range list {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
