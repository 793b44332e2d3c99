package domain

import (
	"errors"
)

// Feature identifica uma seção do dashboard restrita por plano
type Feature string

const (
	FeatureAISuggestionsFull   Feature = "ai-suggestions-full"
	FeatureAdvancedAnalytics   Feature = "advanced-analytics"
	FeatureTopTierBenchmarking Feature = "top-tier-benchmarking"
	FeatureCreatorPerformance  Feature = "creator-performance"
	FeatureShopPerformance     Feature = "shop-performance"
)

var ErrUnknownFeature = errors.New("unknown feature")

var allFeatures = []Feature{
	FeatureAISuggestionsFull,
	FeatureAdvancedAnalytics,
	FeatureTopTierBenchmarking,
	FeatureCreatorPerformance,
	FeatureShopPerformance,
}

// AllFeatures retorna uma cópia do conjunto fechado de funcionalidades
func AllFeatures() []Feature {
	out := make([]Feature, len(allFeatures))
	copy(out, allFeatures)
	return out
}

// ParseFeature rejeita qualquer identificador fora do conjunto conhecido
func ParseFeature(s string) (Feature, error) {
	f := Feature(s)
	if !f.IsValid() {
		return "", ErrUnknownFeature
	}
	return f, nil
}

func (f Feature) IsValid() bool {
	switch f {
	case FeatureAISuggestionsFull,
		FeatureAdvancedAnalytics,
		FeatureTopTierBenchmarking,
		FeatureCreatorPerformance,
		FeatureShopPerformance:
		return true
	}
	return false
}

func (f Feature) String() string {
	return string(f)
}

// CanAccess decide se a funcionalidade está liberada para os planos informados.
// Qualquer valor fora do conjunto retorna false.
func CanAccess(feature Feature, plans PartnerPlans) bool {
	switch feature {
	case FeatureAISuggestionsFull:
		return plans.Creator == PlanPaid
	case FeatureAdvancedAnalytics:
		return plans.Shop == PlanPaid
	case FeatureTopTierBenchmarking:
		return hasPlan(plans.Creator)
	case FeatureCreatorPerformance:
		return hasPlan(plans.Creator)
	case FeatureShopPerformance:
		return hasPlan(plans.Shop)
	default:
		return false
	}
}

// hasPlan aceita apenas free e paid, qualquer outro valor equivale a none
func hasPlan(p PlanType) bool {
	return p == PlanFree || p == PlanPaid
}

// FeatureAccess avalia todas as funcionalidades para os planos
func FeatureAccess(plans PartnerPlans) map[Feature]bool {
	access := make(map[Feature]bool, len(allFeatures))
	for _, f := range allFeatures {
		access[f] = CanAccess(f, plans)
	}
	return access
}
