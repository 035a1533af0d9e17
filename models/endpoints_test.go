package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestHTTPMethodNormalization(t *testing.T) {
	var m HTTPMethod
	if err := json.Unmarshal([]byte(`" post "`), &m); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if m != MethodPost {
		t.Fatalf("expected POST, got %q", m)
	}
}

func TestHTTPMethodRejectsUnknown(t *testing.T) {
	var m HTTPMethod
	if err := json.Unmarshal([]byte(`"FETCH"`), &m); err == nil {
		t.Fatal("unknown method should be rejected")
	}
}

func TestEndpointValidateRequiresURL(t *testing.T) {
	e := Endpoint{Endpoint: "not a url"}
	if err := e.Validate(); err == nil {
		t.Fatal("malformed endpoint URL should be rejected")
	}
	e = Endpoint{Endpoint: "https://example.com/api"}
	if err := e.Validate(); err != nil {
		t.Fatalf("well-formed URL should pass: %v", err)
	}
}

func TestDefaultAPIEndpointsDBValidate(t *testing.T) {
	rec := DefaultAPIEndpointsDB("acme")
	if rec.PK != "company#acme" || rec.SK != SKPlatformEndpoints {
		t.Fatalf("unexpected keys: PK=%q SK=%q", rec.PK, rec.SK)
	}
	if err := rec.Validate(); err != nil {
		t.Fatalf("default endpoint table must validate: %v", err)
	}
}

func TestAPIEndpointsValidateLocatesBrokenEndpoint(t *testing.T) {
	rec := DefaultAPIEndpointsDB("acme")
	rec.Bets.PlaceBet.Endpoint = "nope"
	err := rec.Validate()
	if err == nil {
		t.Fatal("broken endpoint should be rejected")
	}
}

func TestAPIEndpointsDBRequiresKeys(t *testing.T) {
	rec := &APIEndpointsDB{}
	if err := rec.Validate(); !errors.Is(err, ErrMissingPersistenceKey) {
		t.Fatalf("expected ErrMissingPersistenceKey, got %v", err)
	}
}

func TestAPIEndpointsDBRoundTrip(t *testing.T) {
	orig := DefaultAPIEndpointsDB("acme")
	doc, err := orig.ToDocument(true)
	if err != nil {
		t.Fatalf("ToDocument failed: %v", err)
	}
	back, err := APIEndpointsDBFromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument failed: %v", err)
	}
	if back.Auth == nil || back.Auth.ValidateUser == nil {
		t.Fatal("auth endpoints lost in round trip")
	}
	if got := *back.Odds.GetOddsCombo.Method; got != MethodPost {
		t.Fatalf("method lost in round trip, got %q", got)
	}
}

func TestAPIEndpointsPartialDecode(t *testing.T) {
	payload := `{"bets": {"place_bet": {"method": "post", "endpoint": "https://api.example.com/bets"}}}`
	var a APIEndpoints
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if a.Bets == nil || a.Bets.PlaceBet == nil || *a.Bets.PlaceBet.Method != MethodPost {
		t.Fatalf("partial table decode failed: %+v", a.Bets)
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("partial table should validate: %v", err)
	}
}
