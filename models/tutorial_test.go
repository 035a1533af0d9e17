package models

import (
	"errors"
	"testing"
)

func validTutorial() TutorialItem {
	return TutorialItem{
		S3Key:    "acme/tutorials/how-to-bet.mp4",
		Title:    "How to place your first bet",
		FileName: "how-to-bet.mp4",
		FileSize: 15728640,
		FileType: "video/mp4",
	}
}

func TestAddTutorialFillsDefaults(t *testing.T) {
	col := NewTutorials()
	item, err := col.AddTutorial(validTutorial())
	if err != nil {
		t.Fatalf("AddTutorial failed: %v", err)
	}
	if item.TutorialID == "" {
		t.Fatal("blank tutorial_id should get a generated UUID")
	}
	if item.UploadedAt == "" {
		t.Fatal("blank uploaded_at should be filled in")
	}
	if got := col.GetTutorial(item.TutorialID); got == nil {
		t.Fatal("added tutorial should be retrievable")
	}
}

func TestAddTutorialRejectsDuplicateID(t *testing.T) {
	col := NewTutorials()
	item := validTutorial()
	item.TutorialID = "fixed"
	if _, err := col.AddTutorial(item); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := col.AddTutorial(item); err == nil {
		t.Fatal("duplicate tutorial_id should be rejected")
	}
}

func TestTutorialRequiresCoreFields(t *testing.T) {
	item := validTutorial()
	item.S3Key = ""
	if _, err := NewTutorials().AddTutorial(item); err == nil {
		t.Fatal("missing s3_key should be rejected")
	}
	item = validTutorial()
	item.Title = ""
	if _, err := NewTutorials().AddTutorial(item); err == nil {
		t.Fatal("missing title should be rejected")
	}
}

func TestRemoveTutorial(t *testing.T) {
	col := NewTutorials()
	item := validTutorial()
	item.TutorialID = "gone"
	if _, err := col.AddTutorial(item); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !col.RemoveTutorial("gone") {
		t.Fatal("existing tutorial should be removed")
	}
	if col.RemoveTutorial("gone") {
		t.Fatal("second removal should report absence")
	}
}

func TestTutorialsDBRequiresKeys(t *testing.T) {
	rec := &TutorialsDB{Tutorials: *NewTutorials()}
	if err := rec.Validate(); !errors.Is(err, ErrMissingPersistenceKey) {
		t.Fatalf("expected ErrMissingPersistenceKey, got %v", err)
	}
}

func TestTutorialsDBRoundTrip(t *testing.T) {
	orig := NewTutorialsDB("acme")
	if orig.PK != "company#acme" || orig.SK != SKTutorials {
		t.Fatalf("unexpected keys: PK=%q SK=%q", orig.PK, orig.SK)
	}
	if _, err := orig.AddTutorial(validTutorial()); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	doc, err := orig.ToDocument(true)
	if err != nil {
		t.Fatalf("ToDocument failed: %v", err)
	}
	back, err := TutorialsDBFromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument failed: %v", err)
	}
	if len(back.Tutorials.Tutorials) != 1 {
		t.Fatalf("tutorials changed in round trip: %+v", back.Tutorials)
	}
	if back.Tutorials.Tutorials[0].FileSize != 15728640 {
		t.Fatalf("file size changed in round trip: %+v", back.Tutorials.Tutorials[0])
	}
}
