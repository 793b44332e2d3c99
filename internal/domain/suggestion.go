package domain

type SuggestionImpact string

const (
	ImpactHigh   SuggestionImpact = "high"
	ImpactMedium SuggestionImpact = "medium"
	ImpactLow    SuggestionImpact = "low"
)

type AISuggestion struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Impact        SuggestionImpact `json:"impact"`
	VisibleInFree bool             `json:"visible_in_free"`
	PotentialGain string           `json:"potential_gain"`
}

// VisibleSuggestions aplica a regra do plano: tudo com ai-suggestions-full,
// caso contrário apenas as marcadas como visíveis no plano gratuito
func VisibleSuggestions(suggestions []*AISuggestion, plans PartnerPlans) []*AISuggestion {
	full := CanAccess(FeatureAISuggestionsFull, plans)

	out := make([]*AISuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if full || s.VisibleInFree {
			out = append(out, s)
		}
	}
	return out
}

type SuggestionListResponse struct {
	PartnerID   string          `json:"partner_id"`
	Suggestions []*AISuggestion `json:"suggestions"`
	HiddenCount int             `json:"hidden_count"`
	Locked      bool            `json:"locked"`
}
