package models

import (
	"fmt"
	"sort"
	"strings"
)

// maxQuickLinks caps the quick-links collection.
const maxQuickLinks = 100

// requiredLinkTitles is the core subset of the quick-links collection.
// Their content is freely editable but the title-identity can never be
// removed or renamed away. Matching is case-insensitive.
var requiredLinkTitles = []string{
	"support",
	"main site",
	"sign up",
	"withdrawal",
	"deposit",
	"bet results",
}

// QuickLink is one entry of the titled-button collection rendered by the
// menu's show_links message.
type QuickLink struct {
	Title       string `json:"title" validate:"required,max=200"`
	MessageText string `json:"message_text" validate:"required,max=5000"`
	ButtonLabel string `json:"button_label" validate:"required,max=100"`
	ButtonURL   string `json:"button_url" validate:"required,max=2000,http_url"`
}

// Validate trims the title and enforces the per-entry constraints.
func (l *QuickLink) Validate() error {
	l.Title = strings.TrimSpace(l.Title)
	if err := validate.Struct(l); err != nil {
		return err
	}
	if strings.TrimSpace(l.MessageText) == "" {
		return fmt.Errorf("message_text must not be blank")
	}
	if strings.TrimSpace(l.ButtonLabel) == "" {
		return fmt.Errorf("button_label must not be blank")
	}
	return nil
}

// QuickLinks is the bounded, deduplicated quick-links collection.
type QuickLinks []QuickLink

// Validate enforces the collection invariants: the cap, case-insensitive
// title uniqueness, and the presence of every required title.
func (l QuickLinks) Validate() error {
	if len(l) > maxQuickLinks {
		return fmt.Errorf("%w: %d entries (max %d)", ErrTooManyLinks, len(l), maxQuickLinks)
	}
	seen := make(map[string]string, len(l))
	for i := range l {
		if err := l[i].Validate(); err != nil {
			return fmt.Errorf("link %d (%q): %w", i, l[i].Title, err)
		}
		key := strings.ToLower(l[i].Title)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q duplicates %q", ErrDuplicateLinkTitle, l[i].Title, prev)
		}
		seen[key] = l[i].Title
	}
	var missing []string
	for _, title := range requiredLinkTitles {
		if _, ok := seen[strings.ToLower(title)]; !ok {
			missing = append(missing, title)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing %v (required set: %v)",
			ErrMissingRequiredLinks, missing, requiredLinkTitles)
	}
	return nil
}

// Find returns the link with the given title (case-insensitive), or nil.
func (l QuickLinks) Find(title string) *QuickLink {
	for i := range l {
		if strings.EqualFold(l[i].Title, title) {
			return &l[i]
		}
	}
	return nil
}

// DefaultQuickLinks returns the collection every new tenant starts from:
// the six required entries pointing at placeholder destinations.
func DefaultQuickLinks() QuickLinks {
	return QuickLinks{
		{
			Title:       "Support",
			MessageText: "Need a hand? Our support team is available 24/7.",
			ButtonLabel: "Contact support",
			ButtonURL:   "https://placeholder.com/support",
		},
		{
			Title:       "Main Site",
			MessageText: "Visit our main site for the full experience.",
			ButtonLabel: "Open site",
			ButtonURL:   "https://placeholder.com",
		},
		{
			Title:       "Sign Up",
			MessageText: "Create your account in a couple of minutes.",
			ButtonLabel: "Sign up",
			ButtonURL:   "https://placeholder.com/signup",
		},
		{
			Title:       "Withdrawal",
			MessageText: "Withdraw your winnings from your account page.",
			ButtonLabel: "Withdraw",
			ButtonURL:   "https://placeholder.com/withdrawal",
		},
		{
			Title:       "Deposit",
			MessageText: "Top up your balance to keep playing.",
			ButtonLabel: "Deposit",
			ButtonURL:   "https://placeholder.com/deposit",
		},
		{
			Title:       "Bet Results",
			MessageText: "Check the results of your latest bets.",
			ButtonLabel: "See results",
			ButtonURL:   "https://placeholder.com/results",
		},
	}
}
