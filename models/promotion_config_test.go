package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validPromotion() PromotionItem {
	return PromotionItem{
		Title:     "Weekend free bet",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Details:   "Place a bet this weekend and get a free one.",
		Keywords:  []string{"Free", " BET ", "free"},
	}
}

func TestAddPromotionAssignsID(t *testing.T) {
	cfg := NewPromotionsConfig()
	p, err := cfg.AddPromotion(validPromotion())
	if err != nil {
		t.Fatalf("AddPromotion failed: %v", err)
	}
	if p.PromotionID == "" {
		t.Fatal("blank promotion_id should get a generated UUID")
	}
	if got := cfg.GetPromotion(p.PromotionID); got == nil {
		t.Fatal("added promotion should be retrievable")
	}
}

func TestPromotionKeywordNormalization(t *testing.T) {
	cfg := NewPromotionsConfig()
	p, err := cfg.AddPromotion(validPromotion())
	if err != nil {
		t.Fatalf("AddPromotion failed: %v", err)
	}
	want := []string{"free", "bet"}
	if len(p.Keywords) != len(want) {
		t.Fatalf("expected %v, got %v", want, p.Keywords)
	}
	for i := range want {
		if p.Keywords[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, p.Keywords)
		}
	}
}

func TestPromotionRejectsNumericTitle(t *testing.T) {
	p := validPromotion()
	p.Title = "12345"
	if err := p.Validate(); err == nil || !strings.Contains(err.Error(), "purely numeric") {
		t.Fatalf("numeric title should be rejected, got %v", err)
	}
}

func TestPromotionRejectsBadDates(t *testing.T) {
	p := validPromotion()
	p.EndDate = p.StartDate
	if err := p.Validate(); err == nil {
		t.Fatal("end_date equal to start_date should be rejected")
	}
}

func TestPromotionRejectsBlankDetails(t *testing.T) {
	p := validPromotion()
	p.Details = "   "
	if err := p.Validate(); err == nil {
		t.Fatal("blank details should be rejected")
	}
}

func TestPromotionKeywordTooLong(t *testing.T) {
	p := validPromotion()
	p.Keywords = []string{strings.Repeat("x", 51)}
	if err := p.Validate(); err == nil {
		t.Fatal("over-long keyword should be rejected")
	}
}

func TestAddPromotionRejectsDuplicateID(t *testing.T) {
	cfg := NewPromotionsConfig()
	p := validPromotion()
	p.PromotionID = "fixed-id"
	if _, err := cfg.AddPromotion(p); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := cfg.AddPromotion(p); err == nil {
		t.Fatal("duplicate promotion_id should be rejected")
	}
}

func TestRemovePromotion(t *testing.T) {
	cfg := NewPromotionsConfig()
	p := validPromotion()
	p.PromotionID = "to-remove"
	if _, err := cfg.AddPromotion(p); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !cfg.RemovePromotion("to-remove") {
		t.Fatal("existing promotion should be removed")
	}
	if cfg.RemovePromotion("to-remove") {
		t.Fatal("second removal should report absence")
	}
}

func TestActivePromotions(t *testing.T) {
	cfg := NewPromotionsConfig()
	current := validPromotion()
	current.PromotionID = "current"
	expired := validPromotion()
	expired.PromotionID = "expired"
	expired.StartDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expired.EndDate = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if _, err := cfg.AddPromotion(current); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := cfg.AddPromotion(expired); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	active := cfg.ActivePromotions(now)
	if len(active) != 1 || active[0].PromotionID != "current" {
		t.Fatalf("expected only the current promotion, got %+v", active)
	}
}

func TestPromotionsConfigDuplicateIDsRejected(t *testing.T) {
	cfg := NewPromotionsConfig()
	a := validPromotion()
	a.PromotionID = "same"
	b := validPromotion()
	b.PromotionID = "same"
	cfg.Promotions = []PromotionItem{a, b}
	if err := cfg.Validate(); err == nil {
		t.Fatal("duplicate IDs should be rejected")
	}
}

func TestPromotionsConfigDBRequiresKeys(t *testing.T) {
	rec := &PromotionsConfigDB{PromotionsConfig: *NewPromotionsConfig()}
	if err := rec.Validate(); !errors.Is(err, ErrMissingPersistenceKey) {
		t.Fatalf("expected ErrMissingPersistenceKey, got %v", err)
	}
}

func TestPromotionsConfigDBRoundTrip(t *testing.T) {
	orig := NewPromotionsConfigDB("acme")
	if orig.PK != "company#acme" || orig.SK != SKPromotionsConfig {
		t.Fatalf("unexpected keys: PK=%q SK=%q", orig.PK, orig.SK)
	}
	if _, err := orig.AddPromotion(validPromotion()); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	doc, err := orig.ToDocument(true)
	if err != nil {
		t.Fatalf("ToDocument failed: %v", err)
	}
	back, err := PromotionsConfigDBFromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument failed: %v", err)
	}
	if len(back.Promotions) != 1 || back.Promotions[0].Title != "Weekend free bet" {
		t.Fatalf("promotions changed in round trip: %+v", back.Promotions)
	}
}
