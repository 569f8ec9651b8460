package models

import (
	"fmt"

	ex "bondspread/data/extensions"
	dm "bondspread/data/models"
)

type SelectionRequest struct {
	Issuer      string   `json:"issuer" validate:"required"`
	StartDate   string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string   `json:"endDate" validate:"required,datetime=2006-01-02"`
	MinMaturity *float64 `json:"minMaturity" validate:"required"`
	MaxMaturity *float64 `json:"maxMaturity" validate:"required"`
	TopN        int      `json:"topN" validate:"omitempty,gte=1,lte=50"`
	FromStart   bool     `json:"fromStart"`
}

func MapSelectionRequestToCriteria(req SelectionRequest) (dm.SelectionCriteria, error) {
	start, err := ex.ParseShort(req.StartDate)
	if err != nil {
		return dm.SelectionCriteria{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := ex.ParseShort(req.EndDate)
	if err != nil {
		return dm.SelectionCriteria{}, fmt.Errorf("invalid end date: %w", err)
	}

	criteria := dm.SelectionCriteria{
		Issuer:    req.Issuer,
		StartDate: start,
		EndDate:   end,
		TopN:      req.TopN,
	}
	if req.MinMaturity != nil {
		criteria.MinMaturity = *req.MinMaturity
	}
	if req.MaxMaturity != nil {
		criteria.MaxMaturity = *req.MaxMaturity
	}

	return criteria, nil
}

type PeriodPayload struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// PeriodsRequest takes either seasons ("2024", "2024Q2") or explicit periods
type PeriodsRequest struct {
	Issuer      string          `json:"issuer" validate:"required"`
	MinMaturity *float64        `json:"minMaturity" validate:"required"`
	MaxMaturity *float64        `json:"maxMaturity" validate:"required"`
	Seasons     []string        `json:"seasons" validate:"required_without=Periods"`
	Periods     []PeriodPayload `json:"periods" validate:"required_without=Seasons,dive"`
}

func MapPeriodsRequest(req PeriodsRequest) ([]Period, error) {
	res := make([]Period, 0, len(req.Seasons)+len(req.Periods))
	for _, s := range req.Seasons {
		p, err := ParsePeriod(s)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}

	for _, pp := range req.Periods {
		start, err := ex.ParseShort(pp.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date for %s: %w", pp.Name, err)
		}
		end, err := ex.ParseShort(pp.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date for %s: %w", pp.Name, err)
		}
		res = append(res, Period{Name: pp.Name, Start: start, End: end})
	}

	return res, nil
}
