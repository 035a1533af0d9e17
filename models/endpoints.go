package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// HTTPMethod is the closed set of methods an outbound endpoint may use.
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPut    HTTPMethod = "PUT"
	MethodPatch  HTTPMethod = "PATCH"
	MethodDelete HTTPMethod = "DELETE"
)

// UnmarshalJSON normalizes free-form method strings ("post", " get ") to
// the canonical enum value and rejects anything else.
func (m *HTTPMethod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	normalized := HTTPMethod(strings.ToUpper(strings.TrimSpace(s)))
	switch normalized {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		*m = normalized
		return nil
	}
	return fmt.Errorf("invalid HTTP method: %q", s)
}

// Endpoint describes one outbound call to the sportsbook backend. Method
// is optional to keep legacy endpoint records decodable.
type Endpoint struct {
	Method   *HTTPMethod            `json:"method"`
	Endpoint string                 `json:"endpoint" validate:"required,http_url"`
	Params   map[string]interface{} `json:"params"`
	Payload  map[string]interface{} `json:"payload"`
	Headers  map[string]string      `json:"headers"`
}

// Validate enforces the endpoint URL shape.
func (e *Endpoint) Validate() error {
	return validate.Struct(e)
}

// AuthEndpoints groups the authentication endpoints.
type AuthEndpoints struct {
	ValidateUser  *Endpoint `json:"validate_user"`
	ValidateToken *Endpoint `json:"validate_token"`
	GenerateToken *Endpoint `json:"generate_token"`
	GenerateOTP   *Endpoint `json:"generate_otp"`
}

// UsersEndpoints groups the user-account endpoints.
type UsersEndpoints struct {
	GetUserBalance *Endpoint `json:"get_user_balance"`
}

// SportsEndpoints groups the sport-catalog endpoints.
type SportsEndpoints struct {
	GetAvailableSports *Endpoint `json:"get_available_sports"`
	ListSports         *Endpoint `json:"list_sports"`
}

// TournamentsEndpoints groups the tournament-catalog endpoints.
type TournamentsEndpoints struct {
	GetTournaments *Endpoint `json:"get_tournaments"`
}

// FixturesEndpoints groups the fixture-catalog endpoints.
type FixturesEndpoints struct {
	GetFixturesBySport      *Endpoint `json:"get_fixtures_by_sport"`
	GetFixturesByTournament *Endpoint `json:"get_fixtures_by_tournament"`
	GetSpecialBets          *Endpoint `json:"get_special_bets"`
	GetRecommendedBets      *Endpoint `json:"get_recommended_bets"`
}

// OddsEndpoints groups the odds endpoints.
type OddsEndpoints struct {
	GetFixtureOdds *Endpoint `json:"get_fixture_odds"`
	GetOddsCombo   *Endpoint `json:"get_odds_combo"`
}

// BetsEndpoints groups the single-bet endpoints.
type BetsEndpoints struct {
	PlaceBet *Endpoint `json:"place_bet"`
}

// CombosEndpoints groups the combo-bet endpoints.
type CombosEndpoints struct {
	PlaceCombo     *Endpoint `json:"place_combo"`
	GetComboProfit *Endpoint `json:"get_combo_profit"`
	DeleteBetCombo *Endpoint `json:"delete_bet_combo"`
	AddBetToCombo  *Endpoint `json:"add_bet_to_combo"`
	GetOddsCombo   *Endpoint `json:"get_odds_combo"`
}

// APIEndpoints is the unified outbound endpoint table for one tenant.
type APIEndpoints struct {
	Auth        *AuthEndpoints        `json:"auth"`
	Users       *UsersEndpoints       `json:"users"`
	Sports      *SportsEndpoints      `json:"sports"`
	Tournaments *TournamentsEndpoints `json:"tournaments"`
	Fixtures    *FixturesEndpoints    `json:"fixtures"`
	Odds        *OddsEndpoints        `json:"odds"`
	Bets        *BetsEndpoints        `json:"bets"`
	Combos      *CombosEndpoints      `json:"combos"`
}

// Validate checks every configured endpoint.
func (a *APIEndpoints) Validate() error {
	for name, ep := range a.endpointFields() {
		if ep == nil {
			continue
		}
		if err := ep.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (a *APIEndpoints) endpointFields() map[string]*Endpoint {
	fields := make(map[string]*Endpoint)
	if a.Auth != nil {
		fields["auth.validate_user"] = a.Auth.ValidateUser
		fields["auth.validate_token"] = a.Auth.ValidateToken
		fields["auth.generate_token"] = a.Auth.GenerateToken
		fields["auth.generate_otp"] = a.Auth.GenerateOTP
	}
	if a.Users != nil {
		fields["users.get_user_balance"] = a.Users.GetUserBalance
	}
	if a.Sports != nil {
		fields["sports.get_available_sports"] = a.Sports.GetAvailableSports
		fields["sports.list_sports"] = a.Sports.ListSports
	}
	if a.Tournaments != nil {
		fields["tournaments.get_tournaments"] = a.Tournaments.GetTournaments
	}
	if a.Fixtures != nil {
		fields["fixtures.get_fixtures_by_sport"] = a.Fixtures.GetFixturesBySport
		fields["fixtures.get_fixtures_by_tournament"] = a.Fixtures.GetFixturesByTournament
		fields["fixtures.get_special_bets"] = a.Fixtures.GetSpecialBets
		fields["fixtures.get_recommended_bets"] = a.Fixtures.GetRecommendedBets
	}
	if a.Odds != nil {
		fields["odds.get_fixture_odds"] = a.Odds.GetFixtureOdds
		fields["odds.get_odds_combo"] = a.Odds.GetOddsCombo
	}
	if a.Bets != nil {
		fields["bets.place_bet"] = a.Bets.PlaceBet
	}
	if a.Combos != nil {
		fields["combos.place_combo"] = a.Combos.PlaceCombo
		fields["combos.get_combo_profit"] = a.Combos.GetComboProfit
		fields["combos.delete_bet_combo"] = a.Combos.DeleteBetCombo
		fields["combos.add_bet_to_combo"] = a.Combos.AddBetToCombo
		fields["combos.get_odds_combo"] = a.Combos.GetOddsCombo
	}
	return fields
}

// SKPlatformEndpoints is the fixed sort key for endpoint records.
const SKPlatformEndpoints = "platform_endpoints"

// APIEndpointsDB is the persisted variant of APIEndpoints.
type APIEndpointsDB struct {
	APIEndpoints
	PK        string    `json:"PK"`
	SK        string    `json:"SK"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultAPIEndpointsDB builds a tenant's default endpoint table pointing
// at placeholder URLs; no leaf is left null.
func DefaultAPIEndpointsDB(companyID string) *APIEndpointsDB {
	const baseURL = "https://placeholder.com/api"
	ep := func(url string, method HTTPMethod) *Endpoint {
		return &Endpoint{
			Method:   &method,
			Endpoint: url,
			Params:   map[string]interface{}{},
			Payload:  map[string]interface{}{},
			Headers:  map[string]string{},
		}
	}

	now := time.Now().UTC()
	return &APIEndpointsDB{
		APIEndpoints: APIEndpoints{
			Auth: &AuthEndpoints{
				ValidateUser:  ep(baseURL+"/auth/validate-user", MethodPost),
				ValidateToken: ep(baseURL+"/auth/validate-token", MethodPost),
				GenerateToken: ep(baseURL+"/auth/generate-token", MethodPost),
			},
			Users: &UsersEndpoints{
				GetUserBalance: ep(baseURL+"/users/get-balance", MethodGet),
			},
			Sports: &SportsEndpoints{
				GetAvailableSports: ep(baseURL+"/sports/available", MethodGet),
				ListSports:         ep(baseURL+"/sports/list", MethodGet),
			},
			Tournaments: &TournamentsEndpoints{
				GetTournaments: ep(baseURL+"/tournaments", MethodGet),
			},
			Fixtures: &FixturesEndpoints{
				GetFixturesBySport:      ep(baseURL+"/fixtures/by-sport", MethodGet),
				GetFixturesByTournament: ep(baseURL+"/fixtures/by-tournament", MethodGet),
				GetSpecialBets:          ep(baseURL+"/fixtures/special-bets", MethodGet),
				GetRecommendedBets:      ep(baseURL+"/fixtures/recommended", MethodGet),
			},
			Odds: &OddsEndpoints{
				GetFixtureOdds: ep(baseURL+"/odds/fixture", MethodGet),
				GetOddsCombo:   ep(baseURL+"/odds/combo", MethodPost),
			},
			Bets: &BetsEndpoints{
				PlaceBet: ep(baseURL+"/bets/place", MethodPost),
			},
			Combos: &CombosEndpoints{
				PlaceCombo:     ep(baseURL+"/combos/place", MethodPost),
				GetComboProfit: ep(baseURL+"/combos/profit", MethodPost),
				DeleteBetCombo: ep(baseURL+"/combos/bet", MethodDelete),
				AddBetToCombo:  ep(baseURL+"/combos/bet", MethodPost),
				GetOddsCombo:   ep(baseURL+"/combos/odds", MethodPost),
			},
		},
		PK:        CompanyPK(companyID),
		SK:        SKPlatformEndpoints,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate requires both persistence keys, then validates the table.
func (a *APIEndpointsDB) Validate() error {
	if a.PK == "" || a.SK == "" {
		return fmt.Errorf("%w for APIEndpointsDB", ErrMissingPersistenceKey)
	}
	return a.APIEndpoints.Validate()
}

// Touch refreshes the updated timestamp.
func (a *APIEndpointsDB) Touch() {
	a.UpdatedAt = time.Now().UTC()
}

// ToDocument lowers the record to its document-store projection.
func (a *APIEndpointsDB) ToDocument(dropNulls bool) (Document, error) {
	return toDocument(a, dropNulls)
}

// APIEndpointsDBFromDocument reconstructs and validates a persisted
// endpoint table from its stored mapping.
func APIEndpointsDBFromDocument(doc Document) (*APIEndpointsDB, error) {
	var a APIEndpointsDB
	if err := fromDocument(doc, &a); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
