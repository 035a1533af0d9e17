package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMessageItemStringCoercion(t *testing.T) {
	var m MessageItem
	if err := json.Unmarshal([]byte(`"Welcome!"`), &m); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if m.Text == nil || *m.Text != "Welcome!" {
		t.Fatalf("expected text %q, got %+v", "Welcome!", m)
	}
	if m.ReplyMarkup != nil || m.SecondaryMessage != nil {
		t.Fatalf("coerced message should carry only text: %+v", m)
	}
}

func TestMessageItemObjectDecode(t *testing.T) {
	payload := `{
		"text": "Pick one",
		"reply_markup": {"inline_keyboard": [[{"text": "Bet", "callback_data": "bet"}]]},
		"secondary_message": "And here is more"
	}`
	var m MessageItem
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if m.Text == nil || *m.Text != "Pick one" {
		t.Fatalf("unexpected text: %+v", m.Text)
	}
	if m.ReplyMarkup == nil || len(m.ReplyMarkup.InlineKeyboard) != 1 {
		t.Fatalf("unexpected markup: %+v", m.ReplyMarkup)
	}
	if m.SecondaryMessage == nil || m.SecondaryMessage.Text == nil || *m.SecondaryMessage.Text != "And here is more" {
		t.Fatalf("secondary message string coercion failed: %+v", m.SecondaryMessage)
	}
}

func TestMessageItemRejectsUnknownFields(t *testing.T) {
	var m MessageItem
	if err := json.Unmarshal([]byte(`{"text": "hi", "label": "nope"}`), &m); err == nil {
		t.Fatal("unknown field should be rejected")
	}
}

func TestMessageItemCoercionIdempotent(t *testing.T) {
	var first MessageItem
	if err := json.Unmarshal([]byte(`"hello"`), &first); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	out, err := json.Marshal(&first)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var second MessageItem
	if err := json.Unmarshal(out, &second); err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("round trip changed the message: %+v vs %+v", first, second)
	}
}

func TestCallbacksUnionPrimaryAndSecondary(t *testing.T) {
	cb1, cb2, u := "first", "second", "https://example.com"
	m := MessageItem{
		ReplyMarkup: &InlineKeyboardMarkup{
			InlineKeyboard: [][]InlineKeyboardButton{
				{{Text: "a", CallbackData: &cb1}, {Text: "link", URL: &u}},
			},
		},
		SecondaryMessage: &SecondaryMessage{
			ReplyMarkup: &InlineKeyboardMarkup{
				InlineKeyboard: [][]InlineKeyboardButton{
					{{Text: "b", CallbackData: &cb2}},
				},
			},
		},
	}
	got := m.Callbacks()
	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCallbacksWithoutMarkup(t *testing.T) {
	m := NewTextMessage("just text")
	if got := m.Callbacks(); len(got) != 0 {
		t.Fatalf("text-only message should expose no callbacks, got %v", got)
	}
}
