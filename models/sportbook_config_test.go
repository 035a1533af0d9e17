package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestCompetitionOrderDefaults(t *testing.T) {
	var c Competition
	if err := json.Unmarshal([]byte(`{"id": "1", "name": "Premier League"}`), &c); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if c.Order != defaultOrder {
		t.Fatalf("omitted order should default to %d, got %d", defaultOrder, c.Order)
	}
	if err := json.Unmarshal([]byte(`{"id": "1", "name": "x", "order": 3}`), &c); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if c.Order != 3 {
		t.Fatalf("explicit order should stick, got %d", c.Order)
	}
}

func TestTournamentStakeTypesDefault(t *testing.T) {
	payload := `{"sport_id": "soccer", "sport_name": "soccer", "regions": []}`
	var tr Tournament
	if err := json.Unmarshal([]byte(payload), &tr); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(tr.StakeTypes) != 2 {
		t.Fatalf("omitted stake_types should default, got %+v", tr.StakeTypes)
	}
	if tr.StakeTypes[0].Name != "Result" || tr.StakeTypes[1].Name != "Over/Under" {
		t.Fatalf("unexpected default stake types: %+v", tr.StakeTypes)
	}
}

func TestSportbookProviderDiscrimination(t *testing.T) {
	payload := `{
		"sportbook": "Betsw3",
		"config": {
			"provider": "betsw3",
			"userId": "u", "siteId": "s", "platformId": "p",
			"language": "en", "source": "web", "currency": "USD",
			"access_token": "tok", "url": "https://betsw3.example.com"
		}
	}`
	var cfg SportbookConfig
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	b, ok := cfg.Config.(*Betsw3Config)
	if !ok {
		t.Fatalf("expected Betsw3Config, got %T", cfg.Config)
	}
	if b.UserID != "u" || b.URL != "https://betsw3.example.com" {
		t.Fatalf("unexpected provider config: %+v", b)
	}
	if len(cfg.Tournaments) == 0 {
		t.Fatal("omitted tournaments should default to the starter catalog")
	}
}

func TestSportbookUnknownProviderRejected(t *testing.T) {
	payload := `{"sportbook": "X", "config": {"provider": "pinnacle"}}`
	var cfg SportbookConfig
	err := json.Unmarshal([]byte(payload), &cfg)
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Fatalf("unknown provider should be rejected, got %v", err)
	}
}

func TestPhoenixLastStateEpochFlexible(t *testing.T) {
	var f FlexString
	if err := json.Unmarshal([]byte(`1700000000`), &f); err != nil {
		t.Fatalf("number decode failed: %v", err)
	}
	if f != "1700000000" {
		t.Fatalf("expected \"1700000000\", got %q", f)
	}
	if err := json.Unmarshal([]byte(`"epoch-42"`), &f); err != nil {
		t.Fatalf("string decode failed: %v", err)
	}
	if f != "epoch-42" {
		t.Fatalf("expected \"epoch-42\", got %q", f)
	}
}

func TestDigitainWebsocketURLValidation(t *testing.T) {
	cfg := DefaultDigitainSportbookConfig("p1", "c1", "secret")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default digitain config must validate: %v", err)
	}
	d := cfg.Config.(*DigitainConfig)
	d.WebsocketURL = "https://not-a-websocket.example.com"
	if err := cfg.Validate(); err == nil {
		t.Fatal("non-ws websocket_url should be rejected")
	}
}

func TestDefaultSportbookConfigDBs(t *testing.T) {
	cases := []*SportbookConfigDB{
		DefaultPhoenixSportbookConfigDB("acme"),
		DefaultBetsw3SportbookConfigDB("acme"),
		DefaultDigitainSportbookConfigDB("acme", "p1", "c1", "secret"),
	}
	for _, rec := range cases {
		if rec.PK != "company#acme" || rec.SK != SKSportbookConfig {
			t.Fatalf("%s: unexpected keys PK=%q SK=%q", rec.Sportbook, rec.PK, rec.SK)
		}
		if err := rec.Validate(); err != nil {
			t.Fatalf("%s: default record must validate: %v", rec.Sportbook, err)
		}
	}
}

func TestSportbookConfigDBRequiresKeys(t *testing.T) {
	rec := &SportbookConfigDB{SportbookConfig: *DefaultBetsw3SportbookConfig()}
	if err := rec.Validate(); !errors.Is(err, ErrMissingPersistenceKey) {
		t.Fatalf("expected ErrMissingPersistenceKey, got %v", err)
	}
}

func TestSportbookConfigDBRoundTrip(t *testing.T) {
	orig := DefaultPhoenixSportbookConfigDB("acme")
	p := orig.Config.(*PhoenixConfig)
	p.LastStateEpoch = "1700000000"
	p.BasicAuth = PhoenixBasicAuth{Username: "svc", Password: "pw"}

	doc, err := orig.ToDocument(true)
	if err != nil {
		t.Fatalf("ToDocument failed: %v", err)
	}
	back, err := SportbookConfigDBFromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument failed: %v", err)
	}
	if back.Sportbook != "Phoenix" {
		t.Fatalf("sportbook name lost: %q", back.Sportbook)
	}
	bp, ok := back.Config.(*PhoenixConfig)
	if !ok {
		t.Fatalf("provider config lost its concrete type: %T", back.Config)
	}
	if bp.LastStateEpoch != "1700000000" || bp.BasicAuth.Username != "svc" {
		t.Fatalf("provider config changed in round trip: %+v", bp)
	}
	if len(back.Tournaments) != 1 || back.Tournaments[0].SportID != "soccer" {
		t.Fatalf("catalog changed in round trip: %+v", back.Tournaments)
	}
}
