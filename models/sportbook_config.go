package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// defaultOrder pushes unordered catalog entries to the end of any sorted
// listing.
const defaultOrder = 999999

// Competition is one entry of the tournament catalog.
type Competition struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Order int    `json:"order"`
}

func (c *Competition) UnmarshalJSON(data []byte) error {
	type alias Competition
	a := alias{Order: defaultOrder}
	if err := decodeStrict(data, &a); err != nil {
		return err
	}
	*c = Competition(a)
	return nil
}

// Region groups competitions by geography.
type Region struct {
	ID           string        `json:"id" validate:"required"`
	Name         *string       `json:"name"`
	Competitions []Competition `json:"competitions"`
	Order        int           `json:"order"`
}

func (r *Region) UnmarshalJSON(data []byte) error {
	type alias Region
	a := alias{Order: defaultOrder}
	if err := decodeStrict(data, &a); err != nil {
		return err
	}
	*r = Region(a)
	return nil
}

// StakeType names one market the bot offers for a sport.
type StakeType struct {
	ID    string  `json:"id" validate:"required"`
	Key   *string `json:"key"`
	Name  string  `json:"name" validate:"required"`
	Order int     `json:"order"`
}

func (s *StakeType) UnmarshalJSON(data []byte) error {
	type alias StakeType
	a := alias{Order: defaultOrder}
	if err := decodeStrict(data, &a); err != nil {
		return err
	}
	*s = StakeType(a)
	return nil
}

// Tournament is the per-sport root of the catalog hierarchy.
type Tournament struct {
	SportID    string      `json:"sport_id" validate:"required"`
	SportName  string      `json:"sport_name" validate:"required"`
	MainMarket *string     `json:"main_market"`
	Regions    []Region    `json:"regions"`
	StakeTypes []StakeType `json:"stake_types"`
	Order      int         `json:"order"`
}

func (t *Tournament) UnmarshalJSON(data []byte) error {
	type alias Tournament
	a := alias{Order: defaultOrder}
	if err := decodeStrict(data, &a); err != nil {
		return err
	}
	*t = Tournament(a)
	if t.StakeTypes == nil {
		t.StakeTypes = DefaultStakeTypes()
	}
	return nil
}

// Sportbook provider discriminator values.
const (
	SportbookProviderBetsw3   = "betsw3"
	SportbookProviderDigitain = "digitain"
	SportbookProviderPhoenix  = "phoenix"
)

// SportbookProviderConfig is the provider-specific half of the sportbook
// configuration: exactly one of Betsw3Config, DigitainConfig or
// PhoenixConfig, discriminated by the provider field.
type SportbookProviderConfig interface {
	sportbookProvider() string
}

// Betsw3Config configures the Betsw3 provider. The camelCase keys match
// that provider's own API conventions.
type Betsw3Config struct {
	Provider    string `json:"provider"`
	UserID      string `json:"userId"`
	SiteID      string `json:"siteId"`
	PlatformID  string `json:"platformId"`
	Language    string `json:"language"`
	Source      string `json:"source"`
	Currency    string `json:"currency"`
	AccessToken string `json:"access_token"`
	URL         string `json:"url" validate:"required,http_url"`
}

func (Betsw3Config) sportbookProvider() string { return SportbookProviderBetsw3 }

// DigitainConfig configures the Digitain provider.
type DigitainConfig struct {
	Provider        string `json:"provider"`
	PartnerID       string `json:"partner_id"`
	ClientID        string `json:"client_id"`
	ClientSecret    string `json:"client_secret"`
	TokenURL        string `json:"token_url" validate:"required,http_url"`
	WebsocketURL    string `json:"websocket_url" validate:"required,ws_url"`
	ValidateUserURL string `json:"validate_user_url" validate:"required,http_url"`
	PlaceBetURL     string `json:"place_bet_url" validate:"required,http_url"`
}

func (DigitainConfig) sportbookProvider() string { return SportbookProviderDigitain }

// PhoenixBasicAuth carries the credentials for Phoenix's HTTP surface.
type PhoenixBasicAuth struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PhoenixConfig configures the Phoenix provider, whose feed arrives over a
// Kafka cluster.
type PhoenixConfig struct {
	Provider         string           `json:"provider"`
	ClusterAPIKey    string           `json:"cluster_api_key"`
	SecurityProtocol string           `json:"security_protocol"`
	BootstrapServers string           `json:"bootstrap_servers"`
	GroupID          string           `json:"group_id"`
	Mechanisms       string           `json:"mechanisms"`
	ClusterAPISecret string           `json:"cluster_api_secret"`
	OriginID         string           `json:"origin_id"`
	URL              string           `json:"url" validate:"required,http_url"`
	BasicAuth        PhoenixBasicAuth `json:"basic_auth"`
	LastStateEpoch   FlexString       `json:"last_state_epoch"`
	IntegrationState string           `json:"integration_state"`
}

func (PhoenixConfig) sportbookProvider() string { return SportbookProviderPhoenix }

// FlexString decodes from either a JSON string or a JSON number; legacy
// records stored epochs both ways.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func decodeSportbookProvider(data []byte) (SportbookProviderConfig, error) {
	var tag struct {
		Provider string `json:"provider"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}
	switch tag.Provider {
	case SportbookProviderBetsw3:
		var c Betsw3Config
		if err := decodeStrict(data, &c); err != nil {
			return nil, err
		}
		return &c, nil
	case SportbookProviderDigitain:
		var c DigitainConfig
		if err := decodeStrict(data, &c); err != nil {
			return nil, err
		}
		return &c, nil
	case SportbookProviderPhoenix:
		var c PhoenixConfig
		if err := decodeStrict(data, &c); err != nil {
			return nil, err
		}
		return &c, nil
	case "":
		return nil, fmt.Errorf("sportbook config: missing provider discriminator")
	default:
		return nil, fmt.Errorf("sportbook config: unknown provider %q", tag.Provider)
	}
}

// SportbookConfig binds a tenant to one sportsbook provider, its
// credentials and the tournament catalog exposed to members.
type SportbookConfig struct {
	Sportbook   string                  `json:"sportbook" validate:"required"`
	Config      SportbookProviderConfig `json:"config"`
	Tournaments []Tournament            `json:"tournaments"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func (s *SportbookConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		Sportbook   string          `json:"sportbook"`
		Config      json.RawMessage `json:"config"`
		Tournaments []Tournament    `json:"tournaments"`
		CreatedAt   time.Time       `json:"created_at"`
		UpdatedAt   time.Time       `json:"updated_at"`
	}
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	s.Sportbook = raw.Sportbook
	s.Tournaments = raw.Tournaments
	s.CreatedAt = raw.CreatedAt
	s.UpdatedAt = raw.UpdatedAt
	if s.Tournaments == nil {
		s.Tournaments = DefaultTournaments()
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
	if len(raw.Config) > 0 && string(raw.Config) != "null" {
		cfg, err := decodeSportbookProvider(raw.Config)
		if err != nil {
			return err
		}
		s.Config = cfg
	}
	return nil
}

// Validate checks the provider binding and catalog.
func (s *SportbookConfig) Validate() error {
	if s.Sportbook == "" {
		return fmt.Errorf("sportbook name is required")
	}
	if s.Config == nil {
		return fmt.Errorf("sportbook %q: provider config is required", s.Sportbook)
	}
	if err := validate.Struct(s.Config); err != nil {
		return fmt.Errorf("sportbook %q: %w", s.Sportbook, err)
	}
	for i := range s.Tournaments {
		if err := validate.Struct(&s.Tournaments[i]); err != nil {
			return fmt.Errorf("tournaments[%d]: %w", i, err)
		}
	}
	return nil
}

// Touch refreshes the updated timestamp.
func (s *SportbookConfig) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// ToDocument lowers the record to its document-store projection.
func (s *SportbookConfig) ToDocument(dropNulls bool) (Document, error) {
	return toDocument(s, dropNulls)
}

// DefaultPhoenixSportbookConfig builds a Phoenix binding with blank
// credentials and the default catalog, ready to be filled in.
func DefaultPhoenixSportbookConfig() *SportbookConfig {
	now := time.Now().UTC()
	return &SportbookConfig{
		Sportbook: "Phoenix",
		Config: &PhoenixConfig{
			Provider:  SportbookProviderPhoenix,
			URL:       "https://placeholder.com/",
			BasicAuth: PhoenixBasicAuth{},
		},
		Tournaments: DefaultTournaments(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DefaultBetsw3SportbookConfig builds a Betsw3 binding with blank
// credentials and the default catalog.
func DefaultBetsw3SportbookConfig() *SportbookConfig {
	now := time.Now().UTC()
	return &SportbookConfig{
		Sportbook: "Betsw3",
		Config: &Betsw3Config{
			Provider: SportbookProviderBetsw3,
			Language: "en",
			Source:   "web",
			Currency: "USD",
			URL:      "https://placeholder.com/",
		},
		Tournaments: DefaultTournaments(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DefaultDigitainSportbookConfig builds a Digitain binding for the given
// partner credentials, with placeholder URLs and the default catalog.
func DefaultDigitainSportbookConfig(partnerID, clientID, clientSecret string) *SportbookConfig {
	now := time.Now().UTC()
	return &SportbookConfig{
		Sportbook: "Digitain",
		Config: &DigitainConfig{
			Provider:        SportbookProviderDigitain,
			PartnerID:       partnerID,
			ClientID:        clientID,
			ClientSecret:    clientSecret,
			TokenURL:        "https://placeholder.com/token",
			WebsocketURL:    "wss://placeholder.com/ws",
			ValidateUserURL: "https://placeholder.com/validate-user",
			PlaceBetURL:     "https://placeholder.com/place-bet",
		},
		Tournaments: DefaultTournaments(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SKSportbookConfig is the fixed sort key for sportbook records.
const SKSportbookConfig = "sportbook_config"

// SportbookConfigDB is the persisted variant of SportbookConfig.
type SportbookConfigDB struct {
	SportbookConfig
	PK string `json:"PK"`
	SK string `json:"SK"`
}

func newSportbookConfigDB(base *SportbookConfig, companyID string) *SportbookConfigDB {
	return &SportbookConfigDB{
		SportbookConfig: *base,
		PK:              CompanyPK(companyID),
		SK:              SKSportbookConfig,
	}
}

// DefaultPhoenixSportbookConfigDB builds the persisted Phoenix default for
// a tenant.
func DefaultPhoenixSportbookConfigDB(companyID string) *SportbookConfigDB {
	return newSportbookConfigDB(DefaultPhoenixSportbookConfig(), companyID)
}

// DefaultBetsw3SportbookConfigDB builds the persisted Betsw3 default for a
// tenant.
func DefaultBetsw3SportbookConfigDB(companyID string) *SportbookConfigDB {
	return newSportbookConfigDB(DefaultBetsw3SportbookConfig(), companyID)
}

// DefaultDigitainSportbookConfigDB builds the persisted Digitain default
// for a tenant.
func DefaultDigitainSportbookConfigDB(companyID, partnerID, clientID, clientSecret string) *SportbookConfigDB {
	return newSportbookConfigDB(DefaultDigitainSportbookConfig(partnerID, clientID, clientSecret), companyID)
}

// UnmarshalJSON splits the persistence keys off the payload, then decodes
// the rest through SportbookConfig's own decoder.
func (s *SportbookConfigDB) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data)
	if err != nil {
		return err
	}
	pk, sk, err := popPersistenceKeys(raw)
	if err != nil {
		return err
	}
	var base SportbookConfig
	if err := json.Unmarshal(encodeRawObject(raw), &base); err != nil {
		return err
	}
	s.SportbookConfig = base
	s.PK = pk
	s.SK = sk
	return nil
}

// Validate requires both persistence keys, then validates the base record.
func (s *SportbookConfigDB) Validate() error {
	if s.PK == "" || s.SK == "" {
		return fmt.Errorf("%w for SportbookConfigDB", ErrMissingPersistenceKey)
	}
	return s.SportbookConfig.Validate()
}

// ToDocument lowers the persisted record, keys included.
func (s *SportbookConfigDB) ToDocument(dropNulls bool) (Document, error) {
	return toDocument(s, dropNulls)
}

// SportbookConfigDBFromDocument reconstructs and validates a persisted
// sportbook record from its stored mapping.
func SportbookConfigDBFromDocument(doc Document) (*SportbookConfigDB, error) {
	var s SportbookConfigDB
	if err := fromDocument(doc, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// DefaultTournaments returns the starting catalog new tenants are seeded
// with.
func DefaultTournaments() []Tournament {
	result := "result"
	europe := "Europe"
	return []Tournament{
		{
			SportID:    "soccer",
			SportName:  "soccer",
			MainMarket: &result,
			Regions: []Region{
				{
					ID:   "eu",
					Name: &europe,
					Competitions: []Competition{
						{ID: "1", Name: "UEFA Champions League", Order: defaultOrder},
						{ID: "2", Name: "Premier League", Order: defaultOrder},
					},
					Order: defaultOrder,
				},
			},
			StakeTypes: DefaultStakeTypes(),
			Order:      defaultOrder,
		},
	}
}

// DefaultStakeTypes returns the markets every catalog starts with.
func DefaultStakeTypes() []StakeType {
	return []StakeType{
		{ID: "1", Name: "Result", Order: defaultOrder},
		{ID: "2", Name: "Over/Under", Order: defaultOrder},
	}
}
