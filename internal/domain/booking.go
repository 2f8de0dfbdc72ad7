package domain

import "time"

// FundingSource - источник оплаты клиента во внешней системе бронирования
type FundingSource struct {
	Code            string   `json:"code"`
	Description     string   `json:"description,omitempty"`
	AllowedPurposes []string `json:"allowed_purposes"`
}

func (f FundingSource) Allows(purpose string) bool {
	return contains(f.AllowedPurposes, purpose)
}

// TripPurpose - цель поездки клиента с периодом действия
type TripPurpose struct {
	Code        string     `json:"code"`
	Description string     `json:"description,omitempty"`
	ValidFrom   *time.Time `json:"valid_from,omitempty"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
}

// ValidFundingCodes - коды источников, допускающих цель поездки
func ValidFundingCodes(sources []FundingSource, purpose string) []string {
	var codes []string
	for _, s := range sources {
		if s.Allows(purpose) {
			codes = append(codes, s.Code)
		}
	}
	return codes
}
