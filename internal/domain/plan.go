package domain

import (
	"errors"
	"strings"
)

// PlanType representa o plano contratado em um dos slots do parceiro
type PlanType string

const (
	PlanNone PlanType = "none"
	PlanFree PlanType = "free"
	PlanPaid PlanType = "paid"
)

var ErrInvalidPlanType = errors.New("invalid plan type")

// ParsePlanType converte o valor vindo do banco ou da query, string vazia equivale a none
func ParsePlanType(s string) (PlanType, error) {
	switch PlanType(strings.ToLower(strings.TrimSpace(s))) {
	case PlanNone, "":
		return PlanNone, nil
	case PlanFree:
		return PlanFree, nil
	case PlanPaid:
		return PlanPaid, nil
	default:
		return PlanNone, ErrInvalidPlanType
	}
}

func (p PlanType) String() string {
	return string(p)
}

// PartnerPlans agrupa os dois slots de plano. Cada slot é independente.
type PartnerPlans struct {
	Shop    PlanType `json:"shop"`
	Creator PlanType `json:"creator"`
}

type Partner struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Plans PartnerPlans `json:"plans"`
}

// PartnerResponse é o parceiro acompanhado do mapa de funcionalidades liberadas
type PartnerResponse struct {
	Partner
	Features map[Feature]bool `json:"features"`
}
