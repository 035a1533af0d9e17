package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDefaultMessageTemplatesValidate(t *testing.T) {
	if err := DefaultMessageTemplates().Validate(); err != nil {
		t.Fatalf("default record must validate: %v", err)
	}
}

func TestMessageTemplatesDecodeDefaultsLinks(t *testing.T) {
	var rec MessageTemplates
	if err := json.Unmarshal([]byte(`{}`), &rec); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(rec.Links) != len(requiredLinkTitles) {
		t.Fatalf("omitted links should default to the required set, got %d entries", len(rec.Links))
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Fatal("omitted timestamps should be defaulted")
	}
}

func TestMessageTemplatesTouch(t *testing.T) {
	rec := NewMessageTemplates()
	before := rec.UpdatedAt
	time.Sleep(2 * time.Millisecond)
	rec.Touch()
	if !rec.UpdatedAt.After(before) {
		t.Fatalf("Touch should advance updated_at: %v vs %v", before, rec.UpdatedAt)
	}
}

func assertNoNulls(t *testing.T, v interface{}, path string) {
	t.Helper()
	switch x := v.(type) {
	case map[string]interface{}:
		for k, val := range x {
			if val == nil {
				t.Errorf("null value at %s.%s", path, k)
				continue
			}
			assertNoNulls(t, val, path+"."+k)
		}
	case []interface{}:
		for _, val := range x {
			assertNoNulls(t, val, path)
		}
	}
}

func TestMessageTemplatesToDocumentDropsNulls(t *testing.T) {
	doc, err := DefaultMessageTemplates().ToDocument(true)
	if err != nil {
		t.Fatalf("ToDocument failed: %v", err)
	}
	assertNoNulls(t, doc, "doc")
	if _, ok := doc["created_at"].(string); !ok {
		t.Fatalf("created_at should lower to an ISO string, got %T", doc["created_at"])
	}
	if _, ok := doc["updated_at"].(string); !ok {
		t.Fatalf("updated_at should lower to an ISO string, got %T", doc["updated_at"])
	}
}

func TestMessageTemplatesToDocumentKeepsNullsWhenAsked(t *testing.T) {
	rec := NewMessageTemplates()
	doc, err := rec.ToDocument(false)
	if err != nil {
		t.Fatalf("ToDocument failed: %v", err)
	}
	if v, present := doc["onboarding"]; !present || v != nil {
		t.Fatalf("unset group should lower to an explicit null, got %v (present=%t)", v, present)
	}
}

func TestMessageTemplatesDBRequiresKeys(t *testing.T) {
	rec := &MessageTemplatesDB{MessageTemplates: *DefaultMessageTemplates()}
	if err := rec.Validate(); !errors.Is(err, ErrMissingPersistenceKey) {
		t.Fatalf("expected ErrMissingPersistenceKey, got %v", err)
	}
}

func TestDefaultMessageTemplatesDB(t *testing.T) {
	rec := DefaultMessageTemplatesDB("acme")
	if rec.PK != "company#acme" || rec.SK != SKMessageTemplates {
		t.Fatalf("unexpected keys: PK=%q SK=%q", rec.PK, rec.SK)
	}
	if err := rec.Validate(); err != nil {
		t.Fatalf("default DB record must validate: %v", err)
	}
}

func TestMessageTemplatesDBRoundTrip(t *testing.T) {
	orig := DefaultMessageTemplatesDB("acme")
	doc, err := orig.ToDocument(true)
	if err != nil {
		t.Fatalf("ToDocument failed: %v", err)
	}
	back, err := MessageTemplatesDBFromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument failed: %v", err)
	}
	if back.PK != orig.PK || back.SK != orig.SK {
		t.Fatalf("keys changed in round trip: %q/%q", back.PK, back.SK)
	}
	if back.Menu == nil || back.Menu.MainMenu == nil {
		t.Fatal("menu group lost in round trip")
	}
	if len(back.Links) != len(orig.Links) {
		t.Fatalf("links changed in round trip: %d vs %d", len(back.Links), len(orig.Links))
	}
}

func TestMessageTemplatesDBDecodeFullPayload(t *testing.T) {
	payload := `{
		"PK": "company#acme",
		"SK": "message_templates",
		"onboarding": {
			"member_onboarding": {
				"text": "Do you have an account?",
				"reply_markup": {"inline_keyboard": [[
					{"text": "Yes", "callback_data": "account_yes"},
					{"text": "No", "callback_data": "account_no"}
				]]}
			},
			"greeting_message": "Hello!"
		},
		"menu": {
			"main_menu": {
				"text": "Menu",
				"reply_markup": {"inline_keyboard": [[{"text": "Bet", "callback_data": "bet"}]]}
			},
			"support_message": "Contact us"
		},
		"links": [
			{"title": "Support", "message_text": "We can help.", "button_label": "Contact", "button_url": "https://acme.example.com/support"},
			{"title": "Main Site", "message_text": "Visit us.", "button_label": "Open", "button_url": "https://acme.example.com"},
			{"title": "Sign Up", "message_text": "Join now.", "button_label": "Sign up", "button_url": "https://acme.example.com/signup"},
			{"title": "Withdrawal", "message_text": "Cash out.", "button_label": "Withdraw", "button_url": "https://acme.example.com/withdrawal"},
			{"title": "Deposit", "message_text": "Top up.", "button_label": "Deposit", "button_url": "https://acme.example.com/deposit"},
			{"title": "Bet Results", "message_text": "See results.", "button_label": "Results", "button_url": "https://acme.example.com/results"}
		]
	}`
	var rec MessageTemplatesDB
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if rec.PK != "company#acme" || rec.SK != SKMessageTemplates {
		t.Fatalf("unexpected keys: PK=%q SK=%q", rec.PK, rec.SK)
	}
	if rec.Menu.Support == nil || *rec.Menu.Support.Text != "Contact us" {
		t.Fatalf("legacy menu key not remapped: %+v", rec.Menu)
	}
	if rec.Onboarding.GreetingMessage == nil || *rec.Onboarding.GreetingMessage.Text != "Hello!" {
		t.Fatalf("nested string coercion failed: %+v", rec.Onboarding)
	}
	if err := rec.Validate(); err != nil {
		t.Fatalf("payload must validate end to end: %v", err)
	}
}

func TestMessageTemplatesValidateRejectsBrokenGroup(t *testing.T) {
	rec := DefaultMessageTemplates()
	rec.Onboarding.MemberOnboarding = keyboardMessage("account_yes")
	if err := rec.Validate(); !errors.Is(err, ErrUnsatisfiedCallbackContract) {
		t.Fatalf("expected ErrUnsatisfiedCallbackContract, got %v", err)
	}
}

func TestMessageTemplatesValidateRejectsBrokenLinks(t *testing.T) {
	rec := DefaultMessageTemplates()
	rec.Links = rec.Links[1:]
	if err := rec.Validate(); !errors.Is(err, ErrMissingRequiredLinks) {
		t.Fatalf("expected ErrMissingRequiredLinks, got %v", err)
	}
}
