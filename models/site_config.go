package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OddType selects how odds are displayed to the member.
type OddType string

const (
	OddTypeAmerican OddType = "american"
	OddTypeDecimal  OddType = "decimal"
)

// ValidationMethod selects how new members are validated.
type ValidationMethod string

const (
	ValidationPhone ValidationMethod = "phone"
	ValidationEmail ValidationMethod = "email"
)

// ChatbetVersion selects the conversation engine generation.
type ChatbetVersion string

const (
	ChatbetV1 ChatbetVersion = "v1"
	ChatbetV2 ChatbetVersion = "v2"
)

// Amount is a monetary amount that decodes from either a JSON number or a
// numeric string.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %q", s)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid amount: %s", trimmed)
	}
	*a = Amount(f)
	return nil
}

// MoneyLimits bounds the stake a member may place.
type MoneyLimits struct {
	MinBetAmount Amount `json:"min_bet_amount" validate:"gte=0"`
	MaxBetAmount Amount `json:"max_bet_amount" validate:"gt=0,gtfield=MinBetAmount"`
}

// Validate enforces the bounds, including max > min.
func (m *MoneyLimits) Validate() error {
	return validate.Struct(m)
}

// TestConfig carries the credentials used by smoke tests against a live
// tenant.
type TestConfig struct {
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	OTP         *string `json:"otp"`
	UserKey     *string `json:"user_key"`
}

// TelegramConfig configures the Telegram integration.
type TelegramConfig struct {
	Token      string  `json:"token"`
	WebhookURL *string `json:"webhook_url"`
}

// TwilioConfig configures the Twilio Verify integration.
type TwilioConfig struct {
	Enabled          bool   `json:"enabled"`
	VerifyServiceSID string `json:"verify_service_sid"`
	AuthToken        string `json:"auth_token"`
	AccountSID       string `json:"account_sid"`
}

func (c *TwilioConfig) UnmarshalJSON(data []byte) error {
	type alias TwilioConfig
	a := alias{Enabled: true}
	if err := decodeStrict(data, &a); err != nil {
		return err
	}
	*c = TwilioConfig(a)
	return nil
}

// MeilisearchIndexPaths names the search indexes used by the bot.
type MeilisearchIndexPaths struct {
	Fixtures string `json:"fixtures" validate:"required"`
	Sports   string `json:"sports" validate:"required"`
}

// MeilisearchConfig configures the Meilisearch integration.
type MeilisearchConfig struct {
	URL   string                `json:"url" validate:"required,http_url"`
	Token string                `json:"token"`
	Index MeilisearchIndexPaths `json:"index"`
}

// WhatsApp provider discriminator values.
const (
	WhatsAppProviderWhapi = "whapi"
	WhatsAppProviderMeta  = "meta"
)

// WhatsAppProviderConfig is the provider-specific half of the WhatsApp
// integration: exactly one of WhapiConfig or MetaWhatsAppConfig,
// discriminated by the provider field.
type WhatsAppProviderConfig interface {
	whatsappProvider() string
}

// WhapiConfig configures the WHAPI provider.
type WhapiConfig struct {
	Provider string `json:"provider"`
	APIURL   string `json:"api_url" validate:"required,http_url"`
	Token    string `json:"token"`
}

func (WhapiConfig) whatsappProvider() string { return WhatsAppProviderWhapi }

// MetaWhatsAppConfig configures the official Meta/Cloud API provider.
type MetaWhatsAppConfig struct {
	Provider        string  `json:"provider"`
	PhoneID         string  `json:"phone_id"`
	AuthToken       string  `json:"auth_token"`
	ConnectionToken string  `json:"connection_token"`
	AppID           *string `json:"app_id"` // optional for backward compatibility
	WebhookURL      *string `json:"webhook_url"`
}

func (MetaWhatsAppConfig) whatsappProvider() string { return WhatsAppProviderMeta }

func decodeWhatsAppProvider(data []byte) (WhatsAppProviderConfig, error) {
	var tag struct {
		Provider string `json:"provider"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}
	switch tag.Provider {
	case WhatsAppProviderWhapi:
		var c WhapiConfig
		if err := decodeStrict(data, &c); err != nil {
			return nil, err
		}
		return &c, nil
	case WhatsAppProviderMeta:
		var c MetaWhatsAppConfig
		if err := decodeStrict(data, &c); err != nil {
			return nil, err
		}
		return &c, nil
	case "":
		return nil, fmt.Errorf("whatsapp config: missing provider discriminator")
	default:
		return nil, fmt.Errorf("whatsapp config: unknown provider %q", tag.Provider)
	}
}

// WhatsAppIntegration wraps the provider-specific configuration with an
// enable flag.
type WhatsAppIntegration struct {
	Enabled bool                   `json:"enabled"`
	Config  WhatsAppProviderConfig `json:"config"`
}

func (w *WhatsAppIntegration) UnmarshalJSON(data []byte) error {
	var raw struct {
		Enabled *bool           `json:"enabled"`
		Config  json.RawMessage `json:"config"`
	}
	if err := decodeStrict(data, &raw); err != nil {
		return err
	}
	w.Enabled = true
	if raw.Enabled != nil {
		w.Enabled = *raw.Enabled
	}
	if len(raw.Config) > 0 && string(raw.Config) != "null" {
		cfg, err := decodeWhatsAppProvider(raw.Config)
		if err != nil {
			return err
		}
		w.Config = cfg
	}
	return nil
}

// Integrations collects the tenant's third-party integrations.
type Integrations struct {
	Telegram    *TelegramConfig      `json:"telegram"`
	Twilio      *TwilioConfig        `json:"twilio"`
	Meilisearch *MeilisearchConfig   `json:"meilisearch"`
	WhatsApp    *WhatsAppIntegration `json:"whatsapp"`
}

// UnmarshalJSON remaps the legacy top-level "whapi" key onto "whatsapp",
// wrapping bare provider payloads as enabled integrations.
func (i *Integrations) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data)
	if err != nil {
		return err
	}
	if legacy, ok := raw["whapi"]; ok {
		if _, exists := raw["whatsapp"]; !exists {
			raw["whatsapp"] = wrapLegacyWhapi(legacy)
		}
		delete(raw, "whapi")
	}
	type alias Integrations
	var a alias
	if err := decodeStrict(encodeRawObject(raw), &a); err != nil {
		return err
	}
	*i = Integrations(a)
	return nil
}

func wrapLegacyWhapi(legacy json.RawMessage) json.RawMessage {
	if string(legacy) == "null" {
		return legacy
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(legacy, &members); err == nil {
		_, hasEnabled := members["enabled"]
		_, hasConfig := members["config"]
		if hasEnabled || hasConfig {
			// Already in wrapper form.
			return legacy
		}
	}
	wrapped, _ := json.Marshal(map[string]json.RawMessage{
		"enabled": json.RawMessage("true"),
		"config":  legacy,
	})
	return wrapped
}

// Validate checks the configured integrations.
func (i *Integrations) Validate() error {
	if i.Meilisearch != nil {
		if err := validate.Struct(i.Meilisearch); err != nil {
			return fmt.Errorf("meilisearch: %w", err)
		}
	}
	if i.WhatsApp != nil && i.WhatsApp.Config != nil {
		if err := validate.Struct(i.WhatsApp.Config); err != nil {
			return fmt.Errorf("whatsapp: %w", err)
		}
	}
	return nil
}

// Identity names the tenant.
type Identity struct {
	SiteName  string `json:"site_name" validate:"required"`
	CompanyID string `json:"company_id" validate:"required"`
	SiteURL   string `json:"site_url" validate:"required,http_url"`
}

// LocaleConfig carries the tenant's locale settings. Currency and country
// are normalized to upper case, language to lower case, on decode.
type LocaleConfig struct {
	Currency       string `json:"currency" validate:"required,len=3"`          // ISO-4217
	CurrencySymbol string `json:"currency_symbol" validate:"required,max=3"`
	Language       string `json:"language" validate:"required,min=2,max=5"`    // IETF BCP 47, e.g. "en", "es-mx"
	Country        string `json:"country" validate:"required,len=2"`           // ISO-3166-1 alpha-2
	CountryCode    string `json:"country_code" validate:"required,min=2,max=4"` // phone prefix, e.g. +52
	TimeZone       string `json:"time_zone" validate:"required"`
}

func (l *LocaleConfig) UnmarshalJSON(data []byte) error {
	type alias LocaleConfig
	var a alias
	if err := decodeStrict(data, &a); err != nil {
		return err
	}
	*l = LocaleConfig(a)
	l.normalize()
	return nil
}

func (l *LocaleConfig) normalize() {
	l.Currency = strings.ToUpper(l.Currency)
	l.Country = strings.ToUpper(l.Country)
	l.Language = strings.ToLower(l.Language)
}

// FeaturesConfig carries the tenant's feature flags.
type FeaturesConfig struct {
	OddType             OddType          `json:"odd_type" validate:"required,oneof=american decimal"`
	Validation          ValidationMethod `json:"validation" validate:"required,oneof=phone email"`
	Combos              bool             `json:"combos"`
	ChatbetVersion      ChatbetVersion   `json:"chatbet_version" validate:"required,oneof=v1 v2"`
	MultigamesResponse  *bool            `json:"multigames_response"`
}

// SiteConfig is the multi-tenant site configuration record. Sections a
// payload omits fall back to the defaults below.
type SiteConfig struct {
	Identity     Identity       `json:"identity"`
	Locale       LocaleConfig   `json:"locale"`
	Features     FeaturesConfig `json:"features"`
	Limits       MoneyLimits    `json:"limits"`
	Test         *TestConfig    `json:"test"`
	Integrations Integrations   `json:"integrations"`
}

func defaultLocale() LocaleConfig {
	return LocaleConfig{
		Currency:       "USD",
		CurrencySymbol: "$",
		Language:       "en",
		Country:        "US",
		CountryCode:    "+1",
		TimeZone:       "UTC",
	}
}

func defaultFeatures() FeaturesConfig {
	multigames := false
	return FeaturesConfig{
		OddType:            OddTypeDecimal,
		Validation:         ValidationEmail,
		Combos:             false,
		ChatbetVersion:     ChatbetV1,
		MultigamesResponse: &multigames,
	}
}

func defaultLimits() MoneyLimits {
	return MoneyLimits{MinBetAmount: 1, MaxBetAmount: 1000}
}

func defaultTestConfig() *TestConfig {
	return &TestConfig{
		PhoneNumber: strPtr(""),
		Email:       strPtr(""),
		OTP:         strPtr("123456"),
		UserKey:     strPtr("testuser"),
	}
}

func defaultIntegrations() Integrations {
	return Integrations{
		Telegram: &TelegramConfig{Token: ""},
		Twilio:   &TwilioConfig{Enabled: true},
		WhatsApp: &WhatsAppIntegration{
			Enabled: true,
			Config: &WhapiConfig{
				Provider: WhatsAppProviderWhapi,
				APIURL:   "https://placeholder.com",
				Token:    "",
			},
		},
		Meilisearch: &MeilisearchConfig{
			URL:   "https://placeholder.com",
			Token: "",
			Index: MeilisearchIndexPaths{
				Fixtures: "fixtures_index",
				Sports:   "sports_index",
			},
		},
	}
}

// DefaultSiteConfig builds a tenant's starting configuration.
func DefaultSiteConfig(siteName, companyID string) *SiteConfig {
	return &SiteConfig{
		Identity: Identity{
			SiteName:  siteName,
			CompanyID: companyID,
			SiteURL:   "https://default.url",
		},
		Locale:       defaultLocale(),
		Features:     defaultFeatures(),
		Limits:       defaultLimits(),
		Test:         defaultTestConfig(),
		Integrations: defaultIntegrations(),
	}
}

// UnmarshalJSON strictly decodes over the section defaults, so omitted
// sections keep their default values.
func (s *SiteConfig) UnmarshalJSON(data []byte) error {
	type alias SiteConfig
	a := alias{
		Locale:       defaultLocale(),
		Features:     defaultFeatures(),
		Limits:       defaultLimits(),
		Test:         defaultTestConfig(),
		Integrations: defaultIntegrations(),
	}
	if err := decodeStrict(data, &a); err != nil {
		return err
	}
	*s = SiteConfig(a)
	return nil
}

// Validate checks every section.
func (s *SiteConfig) Validate() error {
	if err := validate.Struct(&s.Identity); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if err := validate.Struct(&s.Locale); err != nil {
		return fmt.Errorf("locale: %w", err)
	}
	if err := validate.Struct(&s.Features); err != nil {
		return fmt.Errorf("features: %w", err)
	}
	if err := s.Limits.Validate(); err != nil {
		return fmt.Errorf("limits: %w", err)
	}
	if err := s.Integrations.Validate(); err != nil {
		return fmt.Errorf("integrations: %w", err)
	}
	return nil
}

// SKSiteConfig is the fixed sort key for site-config records.
const SKSiteConfig = "site_config"

// SiteConfigDB is the persisted variant of SiteConfig.
type SiteConfigDB struct {
	SiteConfig
	PK        string    `json:"PK"`
	SK        string    `json:"SK"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSiteConfigDB builds a tenant's default persisted configuration.
func DefaultSiteConfigDB(siteName, companyID string) *SiteConfigDB {
	now := time.Now().UTC()
	return &SiteConfigDB{
		SiteConfig: *DefaultSiteConfig(siteName, companyID),
		PK:         CompanyPK(companyID),
		SK:         SKSiteConfig,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// UnmarshalJSON splits the persistence keys and timestamps off the
// payload, then decodes the rest through SiteConfig's own decoder.
func (s *SiteConfigDB) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data)
	if err != nil {
		return err
	}
	pk, sk, err := popPersistenceKeys(raw)
	if err != nil {
		return err
	}
	createdAt, err := popTimestamp(raw, "created_at")
	if err != nil {
		return err
	}
	updatedAt, err := popTimestamp(raw, "updated_at")
	if err != nil {
		return err
	}
	var base SiteConfig
	if err := json.Unmarshal(encodeRawObject(raw), &base); err != nil {
		return err
	}
	s.SiteConfig = base
	s.PK = pk
	s.SK = sk
	s.CreatedAt = createdAt
	s.UpdatedAt = updatedAt
	return nil
}

// Validate requires both persistence keys, then validates the base record.
func (s *SiteConfigDB) Validate() error {
	if s.PK == "" || s.SK == "" {
		return fmt.Errorf("%w for SiteConfigDB", ErrMissingPersistenceKey)
	}
	return s.SiteConfig.Validate()
}

// Touch refreshes the updated timestamp.
func (s *SiteConfigDB) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// ToDocument lowers the record to its document-store projection.
func (s *SiteConfigDB) ToDocument(dropNulls bool) (Document, error) {
	return toDocument(s, dropNulls)
}

// SiteConfigDBFromDocument reconstructs and validates a persisted site
// configuration from its stored mapping.
func SiteConfigDBFromDocument(doc Document) (*SiteConfigDB, error) {
	var s SiteConfigDB
	if err := fromDocument(doc, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func popTimestamp(raw map[string]json.RawMessage, key string) (time.Time, error) {
	v, ok := raw[key]
	if !ok {
		return time.Time{}, nil
	}
	delete(raw, key)
	if string(v) == "null" {
		return time.Time{}, nil
	}
	var t time.Time
	if err := json.Unmarshal(v, &t); err != nil {
		return time.Time{}, fmt.Errorf("%s: %v", key, err)
	}
	return t, nil
}
