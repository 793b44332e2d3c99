package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allPlanTypes = []PlanType{PlanNone, PlanFree, PlanPaid}

func TestCanAccess_UnknownFeatureIsDenied(t *testing.T) {
	unknown := []Feature{"", "ai-suggestions", "Shop-Performance", "advanced_analytics", "billing"}

	for _, f := range unknown {
		for _, shop := range allPlanTypes {
			for _, creator := range allPlanTypes {
				plans := PartnerPlans{Shop: shop, Creator: creator}
				assert.False(t, CanAccess(f, plans), "feature %q com %+v", f, plans)
			}
		}
	}
}

func TestCanAccess_Rules(t *testing.T) {
	tests := []struct {
		feature Feature
		rule    func(PartnerPlans) bool
	}{
		{FeatureAISuggestionsFull, func(p PartnerPlans) bool { return p.Creator == PlanPaid }},
		{FeatureAdvancedAnalytics, func(p PartnerPlans) bool { return p.Shop == PlanPaid }},
		{FeatureTopTierBenchmarking, func(p PartnerPlans) bool { return p.Creator != PlanNone }},
		{FeatureCreatorPerformance, func(p PartnerPlans) bool { return p.Creator != PlanNone }},
		{FeatureShopPerformance, func(p PartnerPlans) bool { return p.Shop != PlanNone }},
	}

	require.Len(t, tests, len(AllFeatures()), "toda funcionalidade precisa de uma regra testada")

	for _, tt := range tests {
		t.Run(string(tt.feature), func(t *testing.T) {
			for _, shop := range allPlanTypes {
				for _, creator := range allPlanTypes {
					plans := PartnerPlans{Shop: shop, Creator: creator}
					assert.Equal(t, tt.rule(plans), CanAccess(tt.feature, plans), "planos %+v", plans)
				}
			}
		})
	}
}

func TestCanAccess_EmptySlotCountsAsNone(t *testing.T) {
	plans := PartnerPlans{}

	assert.False(t, CanAccess(FeatureShopPerformance, plans))
	assert.False(t, CanAccess(FeatureCreatorPerformance, plans))
	assert.False(t, CanAccess(FeatureTopTierBenchmarking, plans))
}

func TestCanAccess_UnknownPlanCountsAsNone(t *testing.T) {
	plans := PartnerPlans{Shop: "gold", Creator: "PAID"}

	for _, f := range AllFeatures() {
		assert.False(t, CanAccess(f, plans), "feature %q com %+v", f, plans)
	}
}

func TestParseFeature(t *testing.T) {
	for _, f := range AllFeatures() {
		parsed, err := ParseFeature(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	_, err := ParseFeature("shop-perfomance")
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestFeatureAccess(t *testing.T) {
	access := FeatureAccess(PartnerPlans{Shop: PlanPaid, Creator: PlanFree})

	assert.Len(t, access, len(AllFeatures()))
	assert.True(t, access[FeatureAdvancedAnalytics])
	assert.True(t, access[FeatureShopPerformance])
	assert.True(t, access[FeatureCreatorPerformance])
	assert.True(t, access[FeatureTopTierBenchmarking])
	assert.False(t, access[FeatureAISuggestionsFull])
}

func TestParsePlanType(t *testing.T) {
	tests := map[string]PlanType{
		"":      PlanNone,
		"none":  PlanNone,
		"FREE":  PlanFree,
		" paid": PlanPaid,
	}
	for in, expected := range tests {
		got, err := ParsePlanType(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, got)
	}

	_, err := ParsePlanType("enterprise")
	assert.ErrorIs(t, err, ErrInvalidPlanType)
}
