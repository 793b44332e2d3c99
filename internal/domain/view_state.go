package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	labelLayout = "Jan 2"
)

// Section é a seção de navegação ativa
type Section string

const (
	SectionOverview  Section = "overview"
	SectionWebsite   Section = "website"
	SectionShop      Section = "shop"
	SectionCreator   Section = "creator"
	SectionCampaigns Section = "campaigns"
)

func (s Section) IsValid() bool {
	switch s {
	case SectionOverview, SectionWebsite, SectionShop, SectionCreator, SectionCampaigns:
		return true
	}
	return false
}

// Abas da visão de desempenho do parceiro, na ordem exibida
var PerformanceTabs = []string{"overview", "campaigns", "products", "ai-suggestions"}

// TimeRangePreset é o período selecionado
type TimeRangePreset string

const (
	TimeRange24h    TimeRangePreset = "24h"
	TimeRange7d     TimeRangePreset = "7d"
	TimeRange30d    TimeRangePreset = "30d"
	TimeRange90d    TimeRangePreset = "90d"
	TimeRangeCustom TimeRangePreset = "custom"
)

var presetLabels = map[TimeRangePreset]string{
	TimeRange24h: "Last 24 hours",
	TimeRange7d:  "Last 7 days",
	TimeRange30d: "Last 30 days",
	TimeRange90d: "Last 90 days",
}

var presetDays = map[TimeRangePreset]int{
	TimeRange24h: 1,
	TimeRange7d:  7,
	TimeRange30d: 30,
	TimeRange90d: 90,
}

func ParseTimeRangePreset(s string) (TimeRangePreset, error) {
	p := TimeRangePreset(strings.ToLower(strings.TrimSpace(s)))
	if p == TimeRangeCustom {
		return p, nil
	}
	if _, ok := presetDays[p]; ok {
		return p, nil
	}
	return "", ErrInvalidTimeRange
}

var (
	ErrInvalidSection        = errors.New("invalid section")
	ErrInvalidTab            = errors.New("invalid tab index")
	ErrInvalidTimeRange      = errors.New("invalid time range")
	ErrCustomRangeRequired   = errors.New("custom time range requires start and end dates")
	ErrCustomRangeIncomplete = errors.New("start date and end date are required")
	ErrCustomRangeInverted   = errors.New("start date must not be after end date")
	ErrInvalidDate           = errors.New("invalid date, expected YYYY-MM-DD")
)

// ViewState é o estado de seleção do dashboard. Todas as transições
// retornam um novo valor e, em caso de erro, o estado anterior intacto.
type ViewState struct {
	ID             string          `json:"id"`
	Section        Section         `json:"section"`
	ActiveTab      int             `json:"active_tab"`
	TimeRange      TimeRangePreset `json:"time_range"`
	CustomStart    *time.Time      `json:"custom_start,omitempty"`
	CustomEnd      *time.Time      `json:"custom_end,omitempty"`
	CampaignFilter CampaignFilter  `json:"campaign_filter"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DefaultViewState é o estado inicial de uma sessão
func DefaultViewState(id string) ViewState {
	return ViewState{
		ID:             id,
		Section:        SectionOverview,
		ActiveTab:      0,
		TimeRange:      TimeRange7d,
		CampaignFilter: CampaignFilterAll,
	}
}

func (v ViewState) IsCustomRange() bool {
	return v.TimeRange == TimeRangeCustom
}

func (v ViewState) WithSection(section Section) (ViewState, error) {
	if !section.IsValid() {
		return v, ErrInvalidSection
	}
	v.Section = section
	return v, nil
}

func (v ViewState) WithTab(index int) (ViewState, error) {
	if index < 0 || index >= len(PerformanceTabs) {
		return v, ErrInvalidTab
	}
	v.ActiveTab = index
	return v, nil
}

// WithTimeRange troca para um preset. Sair do custom descarta as datas.
func (v ViewState) WithTimeRange(preset TimeRangePreset) (ViewState, error) {
	if preset == TimeRangeCustom {
		return v, ErrCustomRangeRequired
	}
	if _, ok := presetDays[preset]; !ok {
		return v, ErrInvalidTimeRange
	}

	v.TimeRange = preset
	v.CustomStart = nil
	v.CustomEnd = nil
	return v, nil
}

// ApplyCustomRange valida e aplica o período personalizado (YYYY-MM-DD)
func (v ViewState) ApplyCustomRange(start, end string) (ViewState, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" || end == "" {
		return v, ErrCustomRangeIncomplete
	}

	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return v, ErrInvalidDate
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return v, ErrInvalidDate
	}

	if startDate.After(endDate) {
		return v, ErrCustomRangeInverted
	}

	v.TimeRange = TimeRangeCustom
	v.CustomStart = &startDate
	v.CustomEnd = &endDate
	return v, nil
}

func (v ViewState) WithCampaignFilter(filter CampaignFilter) (ViewState, error) {
	if _, err := ParseCampaignFilter(string(filter)); err != nil {
		return v, err
	}
	v.CampaignFilter = filter
	return v, nil
}

// Label é o texto exibido no seletor de período
func (v ViewState) Label() string {
	if v.IsCustomRange() && v.CustomStart != nil && v.CustomEnd != nil {
		return fmt.Sprintf("%s - %s", v.CustomStart.Format(labelLayout), v.CustomEnd.Format(labelLayout))
	}
	return presetLabels[v.TimeRange]
}

// Window retorna o intervalo de datas coberto pela seleção, terminando em asOf
// para os presets
func (v ViewState) Window(asOf time.Time) (time.Time, time.Time) {
	if v.IsCustomRange() && v.CustomStart != nil && v.CustomEnd != nil {
		return *v.CustomStart, *v.CustomEnd
	}

	days, ok := presetDays[v.TimeRange]
	if !ok {
		days = presetDays[TimeRange7d]
	}

	end := truncateToDate(asOf)
	start := end.AddDate(0, 0, -(days - 1))
	return start, end
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ViewStateResponse inclui os campos calculados usados pelo front
type ViewStateResponse struct {
	ViewState
	IsCustomRange bool   `json:"is_custom_range"`
	Label         string `json:"label"`
	ActiveTabName string `json:"active_tab_name"`
}

func (v ViewState) Response() ViewStateResponse {
	tab := ""
	if v.ActiveTab >= 0 && v.ActiveTab < len(PerformanceTabs) {
		tab = PerformanceTabs[v.ActiveTab]
	}

	return ViewStateResponse{
		ViewState:     v,
		IsCustomRange: v.IsCustomRange(),
		Label:         v.Label(),
		ActiveTabName: tab,
	}
}

// FormatDate formata datas no padrão usado pela API
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
