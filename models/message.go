package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MessageItem is one unit of conversational output: optional text, an
// optional inline keyboard, and an optional secondary message block sent
// right after the main one.
//
// Back-compat: a bare JSON string decodes as {"text": <string>}. The
// coercion lives in UnmarshalJSON so it applies to every MessageItem-typed
// field anywhere in the tree, however deeply nested.
type MessageItem struct {
	Text             *string               `json:"text"`
	ReplyMarkup      *InlineKeyboardMarkup `json:"reply_markup"`
	SecondaryMessage *SecondaryMessage     `json:"secondary_message"`
}

// SecondaryMessage is the additional message block a stage may send after
// its main message.
type SecondaryMessage struct {
	Text        *string               `json:"text"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup"`
}

// NewTextMessage creates a text-only message.
func NewTextMessage(text string) *MessageItem {
	return &MessageItem{Text: &text}
}

// UnmarshalJSON coerces bare strings into {"text": s} and strictly decodes
// object payloads.
func (m *MessageItem) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*m = MessageItem{Text: &s}
		return nil
	}
	type alias MessageItem
	var a alias
	if err := decodeStrict(trimmed, &a); err != nil {
		return err
	}
	*m = MessageItem(a)
	return nil
}

// UnmarshalJSON applies the same string coercion and strict decoding as
// MessageItem.
func (s *SecondaryMessage) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = SecondaryMessage{Text: &str}
		return nil
	}
	type alias SecondaryMessage
	var a alias
	if err := decodeStrict(trimmed, &a); err != nil {
		return err
	}
	*s = SecondaryMessage(a)
	return nil
}

// Validate checks the structural invariants of the attached keyboards.
func (m *MessageItem) Validate() error {
	if m.ReplyMarkup != nil {
		if err := m.ReplyMarkup.Validate(); err != nil {
			return fmt.Errorf("reply_markup: %w", err)
		}
	}
	if m.SecondaryMessage != nil && m.SecondaryMessage.ReplyMarkup != nil {
		if err := m.SecondaryMessage.ReplyMarkup.Validate(); err != nil {
			return fmt.Errorf("secondary_message.reply_markup: %w", err)
		}
	}
	return nil
}

// Callbacks returns every callback token exposed by the message's
// keyboards, primary and secondary. Link buttons are ignored. A message
// without markup exposes nothing.
func (m *MessageItem) Callbacks() []string {
	var tokens []string
	if m.ReplyMarkup != nil {
		tokens = append(tokens, m.ReplyMarkup.callbackTokens()...)
	}
	if m.SecondaryMessage != nil && m.SecondaryMessage.ReplyMarkup != nil {
		tokens = append(tokens, m.SecondaryMessage.ReplyMarkup.callbackTokens()...)
	}
	return tokens
}
