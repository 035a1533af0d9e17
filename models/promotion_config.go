package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

const (
	maxPromotions      = 100
	maxPromotionTitle  = 200
	maxPromotionDetail = 5000
	maxKeywords        = 20
	maxKeywordLen      = 50
)

// PromotionItem is one time-bounded promotion shown to members.
type PromotionItem struct {
	PromotionID string    `json:"promotion_id"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Details     string    `json:"details"`
	Keywords    []string  `json:"keywords"`
}

func (p *PromotionItem) UnmarshalJSON(data []byte) error {
	type alias PromotionItem
	var a alias
	if err := decodeStrict(data, &a); err != nil {
		return err
	}
	*p = PromotionItem(a)
	if p.PromotionID == "" {
		p.PromotionID = uuid.NewString()
	}
	if p.Keywords == nil {
		p.Keywords = []string{}
	}
	return nil
}

// Validate normalizes the item in place (trimmed title, lowercased deduped
// keywords) and enforces its constraints.
func (p *PromotionItem) Validate() error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return fmt.Errorf("promotion title must not be blank")
	}
	if len(p.Title) > maxPromotionTitle {
		return fmt.Errorf("promotion title too long: %d chars (max %d)", len(p.Title), maxPromotionTitle)
	}
	if isPurelyNumeric(p.Title) {
		return fmt.Errorf("promotion title must not be purely numeric: %q", p.Title)
	}
	if strings.TrimSpace(p.Details) == "" {
		return fmt.Errorf("promotion %q: details must not be blank", p.Title)
	}
	if len(p.Details) > maxPromotionDetail {
		return fmt.Errorf("promotion %q: details too long (max %d)", p.Title, maxPromotionDetail)
	}
	if !p.EndDate.After(p.StartDate) {
		return fmt.Errorf("promotion %q: end_date must be after start_date", p.Title)
	}
	if len(p.Keywords) > maxKeywords {
		return fmt.Errorf("promotion %q: too many keywords: %d (max %d)", p.Title, len(p.Keywords), maxKeywords)
	}
	normalized, err := normalizeKeywords(p.Keywords)
	if err != nil {
		return fmt.Errorf("promotion %q: %w", p.Title, err)
	}
	p.Keywords = normalized
	return nil
}

func isPurelyNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// normalizeKeywords trims, lowercases and dedupes keywords, preserving
// first-seen order and skipping blanks.
func normalizeKeywords(keywords []string) ([]string, error) {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if len(k) > maxKeywordLen {
			return nil, fmt.Errorf("keyword too long (max %d chars): %q", maxKeywordLen, k[:maxKeywordLen])
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out, nil
}

// IsActive reports whether the promotion is running at the given instant.
func (p *PromotionItem) IsActive(now time.Time) bool {
	return !now.Before(p.StartDate) && now.Before(p.EndDate)
}

// PromotionsConfig is the tenant's promotion catalog.
type PromotionsConfig struct {
	Promotions []PromotionItem `json:"promotions"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewPromotionsConfig creates an empty catalog with fresh timestamps.
func NewPromotionsConfig() *PromotionsConfig {
	now := time.Now().UTC()
	return &PromotionsConfig{
		Promotions: []PromotionItem{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (c *PromotionsConfig) UnmarshalJSON(data []byte) error {
	type alias PromotionsConfig
	var a alias
	if err := decodeStrict(data, &a); err != nil {
		return err
	}
	*c = PromotionsConfig(a)
	if c.Promotions == nil {
		c.Promotions = []PromotionItem{}
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	return nil
}

// Validate enforces the catalog cap, per-item constraints and ID
// uniqueness.
func (c *PromotionsConfig) Validate() error {
	if len(c.Promotions) > maxPromotions {
		return fmt.Errorf("too many promotions: %d (max %d)", len(c.Promotions), maxPromotions)
	}
	seen := make(map[string]bool, len(c.Promotions))
	for i := range c.Promotions {
		if err := c.Promotions[i].Validate(); err != nil {
			return fmt.Errorf("promotions[%d]: %w", i, err)
		}
		id := c.Promotions[i].PromotionID
		if seen[id] {
			return fmt.Errorf("duplicate promotion_id %q", id)
		}
		seen[id] = true
	}
	return nil
}

// AddPromotion appends a validated promotion and refreshes the timestamp.
// A blank ID gets a fresh UUID.
func (c *PromotionsConfig) AddPromotion(item PromotionItem) (*PromotionItem, error) {
	if item.PromotionID == "" {
		item.PromotionID = uuid.NewString()
	}
	if item.Keywords == nil {
		item.Keywords = []string{}
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if c.GetPromotion(item.PromotionID) != nil {
		return nil, fmt.Errorf("duplicate promotion_id %q", item.PromotionID)
	}
	if len(c.Promotions) >= maxPromotions {
		return nil, fmt.Errorf("too many promotions: %d (max %d)", len(c.Promotions)+1, maxPromotions)
	}
	c.Promotions = append(c.Promotions, item)
	c.Touch()
	return &c.Promotions[len(c.Promotions)-1], nil
}

// RemovePromotion deletes the promotion with the given ID, reporting
// whether it was present.
func (c *PromotionsConfig) RemovePromotion(promotionID string) bool {
	for i := range c.Promotions {
		if c.Promotions[i].PromotionID == promotionID {
			c.Promotions = append(c.Promotions[:i], c.Promotions[i+1:]...)
			c.Touch()
			return true
		}
	}
	return false
}

// GetPromotion returns the promotion with the given ID, or nil.
func (c *PromotionsConfig) GetPromotion(promotionID string) *PromotionItem {
	for i := range c.Promotions {
		if c.Promotions[i].PromotionID == promotionID {
			return &c.Promotions[i]
		}
	}
	return nil
}

// ActivePromotions returns the promotions running at the given instant.
func (c *PromotionsConfig) ActivePromotions(now time.Time) []PromotionItem {
	var active []PromotionItem
	for i := range c.Promotions {
		if c.Promotions[i].IsActive(now) {
			active = append(active, c.Promotions[i])
		}
	}
	return active
}

// Touch refreshes the updated timestamp.
func (c *PromotionsConfig) Touch() {
	c.UpdatedAt = time.Now().UTC()
}

// ToDocument lowers the catalog to its document-store projection.
func (c *PromotionsConfig) ToDocument(dropNulls bool) (Document, error) {
	return toDocument(c, dropNulls)
}

// SKPromotionsConfig is the fixed sort key for promotion records.
const SKPromotionsConfig = "promotions_config"

// PromotionsConfigDB is the persisted variant of PromotionsConfig.
type PromotionsConfigDB struct {
	PromotionsConfig
	PK string `json:"PK"`
	SK string `json:"SK"`
}

// NewPromotionsConfigDB creates an empty persisted catalog for a tenant.
func NewPromotionsConfigDB(companyID string) *PromotionsConfigDB {
	return &PromotionsConfigDB{
		PromotionsConfig: *NewPromotionsConfig(),
		PK:               CompanyPK(companyID),
		SK:               SKPromotionsConfig,
	}
}

// UnmarshalJSON splits the persistence keys off the payload, then decodes
// the rest through PromotionsConfig's own decoder.
func (c *PromotionsConfigDB) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data)
	if err != nil {
		return err
	}
	pk, sk, err := popPersistenceKeys(raw)
	if err != nil {
		return err
	}
	var base PromotionsConfig
	if err := json.Unmarshal(encodeRawObject(raw), &base); err != nil {
		return err
	}
	c.PromotionsConfig = base
	c.PK = pk
	c.SK = sk
	return nil
}

// Validate requires both persistence keys, then validates the catalog.
func (c *PromotionsConfigDB) Validate() error {
	if c.PK == "" || c.SK == "" {
		return fmt.Errorf("%w for PromotionsConfigDB", ErrMissingPersistenceKey)
	}
	return c.PromotionsConfig.Validate()
}

// ToDocument lowers the persisted catalog, keys included.
func (c *PromotionsConfigDB) ToDocument(dropNulls bool) (Document, error) {
	return toDocument(c, dropNulls)
}

// PromotionsConfigDBFromDocument reconstructs and validates a persisted
// catalog from its stored mapping.
func PromotionsConfigDBFromDocument(doc Document) (*PromotionsConfigDB, error) {
	var c PromotionsConfigDB
	if err := fromDocument(doc, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
