package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// maxTutorials caps the per-tenant tutorial collection.
const maxTutorials = 100

// TutorialItem is one uploaded tutorial video, referenced by its object
// storage key.
type TutorialItem struct {
	TutorialID string `json:"tutorial_id"`
	S3Key      string `json:"s3_key"`
	Title      string `json:"title"`
	FileName   string `json:"file_name"`
	FileSize   int64  `json:"file_size"`
	FileType   string `json:"file_type"`
	UploadedAt string `json:"uploaded_at"`
}

// Validate enforces the per-item constraints.
func (t *TutorialItem) Validate() error {
	if t.TutorialID == "" {
		return fmt.Errorf("tutorial_id is required")
	}
	if t.S3Key == "" {
		return fmt.Errorf("tutorial %q: s3_key is required", t.TutorialID)
	}
	if t.Title == "" {
		return fmt.Errorf("tutorial %q: title is required", t.TutorialID)
	}
	return nil
}

// Tutorials is the tenant's tutorial video collection.
type Tutorials struct {
	Tutorials []TutorialItem `json:"tutorials"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewTutorials creates an empty collection with fresh timestamps.
func NewTutorials() *Tutorials {
	now := time.Now().UTC()
	return &Tutorials{
		Tutorials: []TutorialItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (t *Tutorials) UnmarshalJSON(data []byte) error {
	type alias Tutorials
	var a alias
	if err := decodeStrict(data, &a); err != nil {
		return err
	}
	*t = Tutorials(a)
	if t.Tutorials == nil {
		t.Tutorials = []TutorialItem{}
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	return nil
}

// Validate enforces the collection cap, per-item constraints and ID
// uniqueness.
func (t *Tutorials) Validate() error {
	if len(t.Tutorials) > maxTutorials {
		return fmt.Errorf("too many tutorials: %d (max %d)", len(t.Tutorials), maxTutorials)
	}
	seen := make(map[string]bool, len(t.Tutorials))
	for i := range t.Tutorials {
		if err := t.Tutorials[i].Validate(); err != nil {
			return fmt.Errorf("tutorials[%d]: %w", i, err)
		}
		id := t.Tutorials[i].TutorialID
		if seen[id] {
			return fmt.Errorf("duplicate tutorial_id %q", id)
		}
		seen[id] = true
	}
	return nil
}

// AddTutorial appends a validated tutorial and refreshes the timestamp.
// Blank ID and upload time are filled in.
func (t *Tutorials) AddTutorial(item TutorialItem) (*TutorialItem, error) {
	if item.TutorialID == "" {
		item.TutorialID = uuid.NewString()
	}
	if item.UploadedAt == "" {
		item.UploadedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if t.GetTutorial(item.TutorialID) != nil {
		return nil, fmt.Errorf("duplicate tutorial_id %q", item.TutorialID)
	}
	if len(t.Tutorials) >= maxTutorials {
		return nil, fmt.Errorf("too many tutorials: %d (max %d)", len(t.Tutorials)+1, maxTutorials)
	}
	t.Tutorials = append(t.Tutorials, item)
	t.Touch()
	return &t.Tutorials[len(t.Tutorials)-1], nil
}

// RemoveTutorial deletes the tutorial with the given ID, reporting whether
// it was present.
func (t *Tutorials) RemoveTutorial(tutorialID string) bool {
	for i := range t.Tutorials {
		if t.Tutorials[i].TutorialID == tutorialID {
			t.Tutorials = append(t.Tutorials[:i], t.Tutorials[i+1:]...)
			t.Touch()
			return true
		}
	}
	return false
}

// GetTutorial returns the tutorial with the given ID, or nil.
func (t *Tutorials) GetTutorial(tutorialID string) *TutorialItem {
	for i := range t.Tutorials {
		if t.Tutorials[i].TutorialID == tutorialID {
			return &t.Tutorials[i]
		}
	}
	return nil
}

// Touch refreshes the updated timestamp.
func (t *Tutorials) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// ToDocument lowers the collection to its document-store projection.
func (t *Tutorials) ToDocument(dropNulls bool) (Document, error) {
	return toDocument(t, dropNulls)
}

// SKTutorials is the fixed sort key for tutorial records.
const SKTutorials = "tutorials"

// TutorialsDB is the persisted variant of Tutorials.
type TutorialsDB struct {
	Tutorials
	PK string `json:"PK"`
	SK string `json:"SK"`
}

// NewTutorialsDB creates an empty persisted collection for a tenant.
func NewTutorialsDB(companyID string) *TutorialsDB {
	return &TutorialsDB{
		Tutorials: *NewTutorials(),
		PK:        CompanyPK(companyID),
		SK:        SKTutorials,
	}
}

// UnmarshalJSON splits the persistence keys off the payload, then decodes
// the rest through Tutorials' own decoder.
func (t *TutorialsDB) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data)
	if err != nil {
		return err
	}
	pk, sk, err := popPersistenceKeys(raw)
	if err != nil {
		return err
	}
	var base Tutorials
	if err := json.Unmarshal(encodeRawObject(raw), &base); err != nil {
		return err
	}
	t.Tutorials = base
	t.PK = pk
	t.SK = sk
	return nil
}

// Validate requires both persistence keys, then validates the collection.
func (t *TutorialsDB) Validate() error {
	if t.PK == "" || t.SK == "" {
		return fmt.Errorf("%w for TutorialsDB", ErrMissingPersistenceKey)
	}
	return t.Tutorials.Validate()
}

// ToDocument lowers the persisted collection, keys included.
func (t *TutorialsDB) ToDocument(dropNulls bool) (Document, error) {
	return toDocument(t, dropNulls)
}

// TutorialsDBFromDocument reconstructs and validates a persisted
// collection from its stored mapping.
func TutorialsDBFromDocument(doc Document) (*TutorialsDB, error) {
	var t TutorialsDB
	if err := fromDocument(doc, &t); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// TutorialVideo is the API projection of a tutorial, carrying a signed
// download URL. Keys are camelCase to match the dashboard client.
type TutorialVideo struct {
	TutorialID *string `json:"tutorialId"`
	Key        string  `json:"key"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	FileName   string  `json:"fileName"`
	FileSize   int64   `json:"fileSize"`
	FileType   string  `json:"fileType"`
	UploadedAt *string `json:"uploadedAt"`
}

// GetTutorialVideosResponse is the listing response DTO.
type GetTutorialVideosResponse struct {
	Videos []TutorialVideo `json:"videos"`
	Count  int             `json:"count"`
}

// UploadTutorialVideoResponse is the upload response DTO.
type UploadTutorialVideoResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	VideoURL   string `json:"videoUrl"`
	VideoKey   string `json:"videoKey"`
	Title      string `json:"title"`
	TutorialID string `json:"tutorialId"`
}

// DeleteTutorialVideoResponse is the delete response DTO.
type DeleteTutorialVideoResponse struct {
	Success           bool    `json:"success"`
	Message           string  `json:"message"`
	DeletedKey        string  `json:"deletedKey"`
	DeletedTutorialID *string `json:"deletedTutorialId"`
}
