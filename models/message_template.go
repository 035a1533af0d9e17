package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageTemplates composes every message group plus the quick-links
// collection into one versioned, timestamped record. All groups are
// optional; a tenant may configure them piecemeal.
type MessageTemplates struct {
	Onboarding   *OnboardingMessages   `json:"onboarding"`
	Validation   *ValidationMessages   `json:"validation"`
	Registration *RegistrationMessages `json:"registration"`
	Menu         *MenuMessages         `json:"menu"`
	Bets         *BetsMessages         `json:"bets"`
	Combos       *CombosMessages       `json:"combos"`
	Errors       *ErrorMessages        `json:"errors"`
	Confirmation *ConfirmationMessages `json:"confirmation"`
	Labels       *LabelMessages        `json:"labels"`
	End          *EndMessages          `json:"end"`
	Guidance     *GuidanceMessages     `json:"guidance"`

	Links QuickLinks `json:"links"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMessageTemplates creates an empty record with the default quick-links
// collection and fresh timestamps.
func NewMessageTemplates() *MessageTemplates {
	now := time.Now().UTC()
	return &MessageTemplates{
		Links:     DefaultQuickLinks(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UnmarshalJSON strictly decodes the aggregate and fills in the defaults a
// partial payload may omit: the quick-links collection and the timestamps.
func (t *MessageTemplates) UnmarshalJSON(data []byte) error {
	type alias MessageTemplates
	var a alias
	if err := decodeStrict(data, &a); err != nil {
		return err
	}
	*t = MessageTemplates(a)
	if t.Links == nil {
		t.Links = DefaultQuickLinks()
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

// Validate runs every configured group's structural and callback-contract
// checks, then the quick-links invariants. There is no partial-success
// mode: the record either validates completely or is rejected.
func (t *MessageTemplates) Validate() error {
	var groups []interface{ Validate() error }
	if t.Onboarding != nil {
		groups = append(groups, t.Onboarding)
	}
	if t.Validation != nil {
		groups = append(groups, t.Validation)
	}
	if t.Registration != nil {
		groups = append(groups, t.Registration)
	}
	if t.Menu != nil {
		groups = append(groups, t.Menu)
	}
	if t.Bets != nil {
		groups = append(groups, t.Bets)
	}
	if t.Combos != nil {
		groups = append(groups, t.Combos)
	}
	if t.Errors != nil {
		groups = append(groups, t.Errors)
	}
	if t.Confirmation != nil {
		groups = append(groups, t.Confirmation)
	}
	if t.Labels != nil {
		groups = append(groups, t.Labels)
	}
	if t.End != nil {
		groups = append(groups, t.End)
	}
	if t.Guidance != nil {
		groups = append(groups, t.Guidance)
	}
	for _, g := range groups {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	if err := t.Links.Validate(); err != nil {
		return fmt.Errorf("links: %w", err)
	}
	return nil
}

// Touch refreshes the updated timestamp. It has no other effect.
func (t *MessageTemplates) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// ToDocument lowers the record to its document-store projection.
func (t *MessageTemplates) ToDocument(dropNulls bool) (Document, error) {
	return toDocument(t, dropNulls)
}

// MessageTemplatesFromDocument reconstructs and validates a record from
// its stored mapping.
func MessageTemplatesFromDocument(doc Document) (*MessageTemplates, error) {
	var t MessageTemplates
	if err := fromDocument(doc, &t); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// DefaultMessageTemplates returns the known-good configuration new tenants
// start from: every group populated, every contract-bearing field carrying
// a keyboard that satisfies its own rule.
func DefaultMessageTemplates() *MessageTemplates {
	t := NewMessageTemplates()

	t.Onboarding = &OnboardingMessages{
		MemberOnboarding: &MessageItem{
			Text: strPtr("Welcome to our chatbot!"),
			ReplyMarkup: &InlineKeyboardMarkup{
				InlineKeyboard: [][]InlineKeyboardButton{
					{{Text: "I have an account", CallbackData: strPtr("account_yes")}},
					{{Text: "I'm new here", CallbackData: strPtr("account_no")}},
				},
			},
		},
		GreetingMessage: NewTextMessage("Hello! 👋 How can I help you today?"),
	}

	resendOTP := func(text string) *MessageItem {
		return &MessageItem{
			Text: strPtr(text),
			ReplyMarkup: &InlineKeyboardMarkup{
				InlineKeyboard: [][]InlineKeyboardButton{
					{{Text: "Resend code", CallbackData: strPtr("send_otp")}},
				},
			},
		}
	}
	t.Validation = &ValidationMessages{
		MemberValidation: NewTextMessage("Please validate your account."),
		SendOTP:          resendOTP("We've sent you an OTP."),
		BadOTP:           resendOTP("Invalid OTP, try again."),
		ErrorOTP:         resendOTP("We couldn't verify that code."),
	}

	t.Registration = &RegistrationMessages{
		NotRegisteredUser: NewTextMessage("You are not registered."),
	}

	t.Menu = &MenuMessages{
		MainMenu: &MessageItem{
			Text: strPtr("Main menu"),
			ReplyMarkup: &InlineKeyboardMarkup{
				InlineKeyboard: [][]InlineKeyboardButton{
					{{Text: "Place a bet", CallbackData: strPtr("bet")}},
				},
			},
		},
		ShowLinks: &MessageItem{
			Text: strPtr("Quick links"),
			ReplyMarkup: &InlineKeyboardMarkup{
				InlineKeyboard: [][]InlineKeyboardButton{
					{{Text: "Help", URL: strPtr("https://placeholder.com/help")}},
				},
			},
		},
	}

	t.Bets = &BetsMessages{
		SelectSport:      NewTextMessage("Select a sport"),
		SelectTournament: NewTextMessage("Select a tournament"),
		BetAmount:        NewTextMessage("Enter your bet amount"),
		SelectTypeOfBet: &MessageItem{
			Text: strPtr("How do you want to bet?"),
			ReplyMarkup: &InlineKeyboardMarkup{
				InlineKeyboard: [][]InlineKeyboardButton{
					{{Text: "Single bet", CallbackData: strPtr("bet_simple&{FIXTURE_ID}")}},
					{{Text: "Add to combo", CallbackData: strPtr("add_market_to_combo&{FIXTURE_ID}")}},
				},
			},
		},
	}

	t.Combos = &CombosMessages{
		ShowAllMarketsByFixtures:    NewTextMessage("Showing all markets"),
		CombosRecommendation:        defaultCombosRecommendation(),
		CombosConfirmAddRecommended: defaultCombosConfirmAddRecommended(),
		DeleteCombo: &MessageItem{
			Text: strPtr("Delete this combo?"),
			ReplyMarkup: &InlineKeyboardMarkup{
				InlineKeyboard: [][]InlineKeyboardButton{
					{{Text: "Yes, delete it", CallbackData: strPtr("combo_confirm_delete_combo")}},
				},
			},
		},
		PlaceComboBet: &MessageItem{
			Text: strPtr("Place your combo bet"),
			ReplyMarkup: &InlineKeyboardMarkup{
				InlineKeyboard: [][]InlineKeyboardButton{
					{{Text: "View summary", CallbackData: strPtr("combo_summary_after_bet")}},
				},
			},
		},
	}

	t.Errors = &ErrorMessages{
		InvalidInput:  NewTextMessage("Invalid input."),
		Error:         NewTextMessage("An error occurred."),
		GeneralErrors: DefaultGeneralErrors(),
	}

	t.Confirmation = &ConfirmationMessages{
		ConfirmBet: &MessageItem{
			Text: strPtr("Confirm your bet?"),
			ReplyMarkup: &InlineKeyboardMarkup{
				InlineKeyboard: [][]InlineKeyboardButton{
					{{Text: "Confirm", CallbackData: strPtr("confirm_bet")}},
				},
			},
		},
	}

	t.Labels = &LabelMessages{
		MenuLabelText:         NewTextMessage("Menu"),
		ListFixturesLabelText: NewTextMessage("Fixtures"),
	}

	t.End = &EndMessages{
		EndConversation: NewTextMessage("Bye!"),
	}

	t.Guidance = &GuidanceMessages{
		ValidInputText:   NewTextMessage("Looks good ✅"),
		InvalidInputText: NewTextMessage("Please check your input ⚠️"),
	}

	return t
}

// MessageTemplatesDB is the persisted variant of MessageTemplates, carrying
// the tenant's partition/sort key pair. Both keys are mandatory.
type MessageTemplatesDB struct {
	MessageTemplates
	PK string `json:"PK"`
	SK string `json:"SK"`
}

// SKMessageTemplates is the fixed sort key for message-template records.
const SKMessageTemplates = "message_templates"

// CompanyPK builds the partition key for a tenant.
func CompanyPK(companyID string) string {
	return "company#" + companyID
}

// DefaultMessageTemplatesDB builds the default record for a tenant.
func DefaultMessageTemplatesDB(companyID string) *MessageTemplatesDB {
	return &MessageTemplatesDB{
		MessageTemplates: *DefaultMessageTemplates(),
		PK:               CompanyPK(companyID),
		SK:               SKMessageTemplates,
	}
}

// UnmarshalJSON splits the persistence keys off the payload, then decodes
// the rest through MessageTemplates' own decoder.
func (t *MessageTemplatesDB) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data)
	if err != nil {
		return err
	}
	pk, sk, err := popPersistenceKeys(raw)
	if err != nil {
		return err
	}
	var base MessageTemplates
	if err := json.Unmarshal(encodeRawObject(raw), &base); err != nil {
		return err
	}
	t.MessageTemplates = base
	t.PK = pk
	t.SK = sk
	return nil
}

// Validate requires both persistence keys, then validates the base record.
func (t *MessageTemplatesDB) Validate() error {
	if t.PK == "" || t.SK == "" {
		return fmt.Errorf("%w for MessageTemplatesDB", ErrMissingPersistenceKey)
	}
	return t.MessageTemplates.Validate()
}

// ToDocument lowers the persisted record, keys included.
func (t *MessageTemplatesDB) ToDocument(dropNulls bool) (Document, error) {
	return toDocument(t, dropNulls)
}

// MessageTemplatesDBFromDocument reconstructs and validates a persisted
// record from its stored mapping.
func MessageTemplatesDBFromDocument(doc Document) (*MessageTemplatesDB, error) {
	var t MessageTemplatesDB
	if err := fromDocument(doc, &t); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// popPersistenceKeys extracts PK/SK from a raw object so the remainder can
// be decoded by the base type.
func popPersistenceKeys(raw map[string]json.RawMessage) (pk, sk string, err error) {
	if v, ok := raw["PK"]; ok {
		if err = json.Unmarshal(v, &pk); err != nil {
			return "", "", fmt.Errorf("PK: %v", err)
		}
		delete(raw, "PK")
	}
	if v, ok := raw["SK"]; ok {
		if err = json.Unmarshal(v, &sk); err != nil {
			return "", "", fmt.Errorf("SK: %v", err)
		}
		delete(raw, "SK")
	}
	return pk, sk, nil
}
