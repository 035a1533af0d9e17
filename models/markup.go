package models

import "fmt"

// maxCallbackDataLen is the Telegram bound on callback_data payloads.
const maxCallbackDataLen = 64

// InlineKeyboardButton represents a single actionable button on an inline
// keyboard. Exactly one of CallbackData or URL must be set, never both and
// never neither.
type InlineKeyboardButton struct {
	Text         string  `json:"text"`
	CallbackData *string `json:"callback_data"`
	URL          *string `json:"url"`
}

// NewCallbackButton creates a validated button that dispatches callback data.
func NewCallbackButton(text, callbackData string) (InlineKeyboardButton, error) {
	b := InlineKeyboardButton{Text: text, CallbackData: &callbackData}
	if err := b.Validate(); err != nil {
		return InlineKeyboardButton{}, err
	}
	return b, nil
}

// NewURLButton creates a validated button that opens a URL.
func NewURLButton(text, url string) (InlineKeyboardButton, error) {
	b := InlineKeyboardButton{Text: text, URL: &url}
	if err := b.Validate(); err != nil {
		return InlineKeyboardButton{}, err
	}
	return b, nil
}

// Validate enforces the button invariants.
func (b *InlineKeyboardButton) Validate() error {
	if b.Text == "" {
		return fmt.Errorf("%w: text must not be empty", ErrInvalidButton)
	}
	hasCallback := b.CallbackData != nil && *b.CallbackData != ""
	hasURL := b.URL != nil && *b.URL != ""
	if hasCallback && hasURL {
		return fmt.Errorf("%w: button must have either callback_data or url, not both", ErrInvalidButton)
	}
	if !hasCallback && !hasURL {
		return fmt.Errorf("%w: button must define either callback_data or url", ErrInvalidButton)
	}
	if hasCallback && len(*b.CallbackData) > maxCallbackDataLen {
		return fmt.Errorf("%w: callback_data must be <= %d characters", ErrInvalidButton, maxCallbackDataLen)
	}
	return nil
}

// InlineKeyboardMarkup represents the 2-D button grid attached to a message.
// Row and column order is display order. An empty keyboard is valid and
// denotes "no actions"; assembly itself never fails, contained buttons are
// checked by Validate.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// Validate checks every contained button.
func (m *InlineKeyboardMarkup) Validate() error {
	for i, row := range m.InlineKeyboard {
		for j := range row {
			if err := row[j].Validate(); err != nil {
				return fmt.Errorf("row %d, button %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// callbackTokens returns the callback data carried by the keyboard's
// buttons, in layout order. Link buttons are skipped.
func (m *InlineKeyboardMarkup) callbackTokens() []string {
	var tokens []string
	for _, row := range m.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil && *b.CallbackData != "" {
				tokens = append(tokens, *b.CallbackData)
			}
		}
	}
	return tokens
}
