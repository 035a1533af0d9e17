package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// rawObject splits a JSON object into its raw members so group decoders
// can remap legacy keys before the strict decode runs.
func rawObject(data []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// renameLegacyKey moves raw[legacy] to raw[canonical]. The canonical key,
// when already present, always wins and the legacy key is discarded
// silently.
func renameLegacyKey(raw map[string]json.RawMessage, legacy, canonical string) {
	v, ok := raw[legacy]
	if !ok {
		return
	}
	if _, exists := raw[canonical]; !exists {
		raw[canonical] = v
	}
	delete(raw, legacy)
}

func encodeRawObject(raw map[string]json.RawMessage) []byte {
	b, _ := json.Marshal(raw)
	return b
}

// OnboardingMessages holds the conversation-opening stage messages.
type OnboardingMessages struct {
	MemberOnboarding *MessageItem `json:"member_onboarding"`
	GreetingMessage  *MessageItem `json:"greeting_message"`
}

// member_onboarding asks whether the member already has an account; its
// keyboard must dispatch both answers.
var onboardingCallbackRules = map[string]CallbackRule{
	"member_onboarding": exactCallbacks("account_yes", "account_no"),
}

func (g *OnboardingMessages) messageFields() map[string]*MessageItem {
	return map[string]*MessageItem{
		"member_onboarding": g.MemberOnboarding,
		"greeting_message":  g.GreetingMessage,
	}
}

func (g *OnboardingMessages) Validate() error {
	return validateGroup("onboarding", g.messageFields(), onboardingCallbackRules)
}

// ValidationMessages holds the account/OTP validation stage messages.
type ValidationMessages struct {
	MemberValidation      *MessageItem `json:"member_validation"`
	MemberValidationPhone *MessageItem `json:"member_validation_phone"`
	MemberValidationEmail *MessageItem `json:"member_validation_email"`
	SendOTP               *MessageItem `json:"send_otp"`
	BadOTP                *MessageItem `json:"bad_otp"`
	BlockedOTP            *MessageItem `json:"blocked_otp"`
	ErrorOTP              *MessageItem `json:"error_otp"`
}

// Every OTP prompt must offer a resend action.
var validationCallbackRules = map[string]CallbackRule{
	"send_otp":  exactCallbacks("send_otp"),
	"bad_otp":   exactCallbacks("send_otp"),
	"error_otp": exactCallbacks("send_otp"),
}

func (g *ValidationMessages) messageFields() map[string]*MessageItem {
	return map[string]*MessageItem{
		"member_validation":       g.MemberValidation,
		"member_validation_phone": g.MemberValidationPhone,
		"member_validation_email": g.MemberValidationEmail,
		"send_otp":                g.SendOTP,
		"bad_otp":                 g.BadOTP,
		"blocked_otp":             g.BlockedOTP,
		"error_otp":               g.ErrorOTP,
	}
}

func (g *ValidationMessages) Validate() error {
	return validateGroup("validation", g.messageFields(), validationCallbackRules)
}

// RegistrationMessages holds the not-registered-user stage messages.
type RegistrationMessages struct {
	NotRegisteredUser        *MessageItem `json:"not_registered_user"`
	NotRegisteredUserCountry *MessageItem `json:"not_registered_user_country"`
}

func (g *RegistrationMessages) messageFields() map[string]*MessageItem {
	return map[string]*MessageItem{
		"not_registered_user":         g.NotRegisteredUser,
		"not_registered_user_country": g.NotRegisteredUserCountry,
	}
}

func (g *RegistrationMessages) Validate() error {
	return validateGroup("registration", g.messageFields(), nil)
}

// MenuMessages holds the main-menu stage messages.
type MenuMessages struct {
	MainMenu   *MessageItem `json:"main_menu"`
	Support    *MessageItem `json:"support"`
	Withdrawal *MessageItem `json:"withdrawal"`
	Balance    *MessageItem `json:"balance"`
	Results    *MessageItem `json:"results"`
	Deposit    *MessageItem `json:"deposit"`
	ShowLinks  *MessageItem `json:"show_links"` // renders the quick-links collection
}

var menuCallbackRules = map[string]CallbackRule{
	"main_menu": exactCallbacks("bet"),
}

// UnmarshalJSON remaps the legacy *_message keys before the strict decode.
func (g *MenuMessages) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data)
	if err != nil {
		return err
	}
	renameLegacyKey(raw, "support_message", "support")
	renameLegacyKey(raw, "withdrawal_message", "withdrawal")
	renameLegacyKey(raw, "deposit_message", "deposit")
	renameLegacyKey(raw, "show_links_message", "show_links")

	type alias MenuMessages
	var a alias
	if err := decodeStrict(encodeRawObject(raw), &a); err != nil {
		return err
	}
	*g = MenuMessages(a)
	return nil
}

func (g *MenuMessages) messageFields() map[string]*MessageItem {
	return map[string]*MessageItem{
		"main_menu":  g.MainMenu,
		"support":    g.Support,
		"withdrawal": g.Withdrawal,
		"balance":    g.Balance,
		"results":    g.Results,
		"deposit":    g.Deposit,
		"show_links": g.ShowLinks,
	}
}

func (g *MenuMessages) Validate() error {
	return validateGroup("menu", g.messageFields(), menuCallbackRules)
}

// BetsMessages holds the single-bet placement stage messages.
type BetsMessages struct {
	SpecialBet       *MessageItem `json:"special_bet"`
	SelectSport      *MessageItem `json:"select_sport"`
	SelectTournament *MessageItem `json:"select_tournament"`
	SelectFixture    *MessageItem `json:"select_fixture"`
	SelectTypeOfBet  *MessageItem `json:"select_type_of_bet"`
	BetAmount        *MessageItem `json:"bet_amount"`
	InvalidBetAmount *MessageItem `json:"invalid_bet_amount"`
	FixtureOdds      *MessageItem `json:"fixture_odds"`
	SpecialBetsOdds  *MessageItem `json:"special_bets_odds"`
	UnavailableOdds  *MessageItem `json:"unavailable_odds"`
	PlacedBet        *MessageItem `json:"placed_bet"`
	PlacedBetMenu    *MessageItem `json:"placed_bet_menu"`
	WithoutFunds     *MessageItem `json:"without_funds"`
	Deposit          *MessageItem `json:"deposit"`
	BetRejected      *MessageItem `json:"bet_rejected"`
}

// Templates carry the {FIXTURE_ID} placeholder verbatim; it is substituted
// at send time, so the stored token is matched literally.
var betsCallbackRules = map[string]CallbackRule{
	"select_type_of_bet": exactCallbacks("bet_simple&{FIXTURE_ID}", "add_market_to_combo&{FIXTURE_ID}"),
}

func (g *BetsMessages) messageFields() map[string]*MessageItem {
	return map[string]*MessageItem{
		"special_bet":        g.SpecialBet,
		"select_sport":       g.SelectSport,
		"select_tournament":  g.SelectTournament,
		"select_fixture":     g.SelectFixture,
		"select_type_of_bet": g.SelectTypeOfBet,
		"bet_amount":         g.BetAmount,
		"invalid_bet_amount": g.InvalidBetAmount,
		"fixture_odds":       g.FixtureOdds,
		"special_bets_odds":  g.SpecialBetsOdds,
		"unavailable_odds":   g.UnavailableOdds,
		"placed_bet":         g.PlacedBet,
		"placed_bet_menu":    g.PlacedBetMenu,
		"without_funds":      g.WithoutFunds,
		"deposit":            g.Deposit,
		"bet_rejected":       g.BetRejected,
	}
}

func (g *BetsMessages) Validate() error {
	return validateGroup("bets", g.messageFields(), betsCallbackRules)
}

// CombosMessages holds the combo-bet stage messages.
type CombosMessages struct {
	ShowAllMarketsByFixtures       *MessageItem `json:"show_all_markets_by_fixtures"`
	ErrorToAddMarket               *MessageItem `json:"error_to_add_market"`
	ErrorToGetOdds                 *MessageItem `json:"error_to_get_odds"`
	ErrorToPlaceBet                *MessageItem `json:"error_to_place_bet"`
	SummaryAfterAddMarket          *MessageItem `json:"summary_after_add_market"`
	SummaryAfterRemoveBetFromCombo *MessageItem `json:"summary_after_remove_bet_from_combo"`
	RemoveMarket                   *MessageItem `json:"remove_market"`
	SelectAmount                   *MessageItem `json:"select_amount"`
	PlaceComboBet                  *MessageItem `json:"place_combo_bet"`
	SummaryAfterBet                *MessageItem `json:"summary_after_bet"`
	ShowMyCombo                    *MessageItem `json:"show_my_combo"`
	DeleteCombo                    *MessageItem `json:"delete_combo"`
	ComboOdds                      *MessageItem `json:"combo_odds"`
	CombosRecommendation           *MessageItem `json:"combos_recommendation"`
	CombosConfirmAddRecommended    *MessageItem `json:"combos_confirm_add_recommended"`
}

var combosCallbackRules = map[string]CallbackRule{
	"combos_recommendation": exactCallbacks("combo_select_amount_recommended"),
	"delete_combo":          exactCallbacks("combo_confirm_delete_combo"),
	"place_combo_bet":       exactCallbacks("combo_summary_after_bet"),
}

// defaultCombosRecommendation already satisfies its own callback contract,
// so an incomplete caller payload never leaves the contract-checked field
// unpopulated.
func defaultCombosRecommendation() *MessageItem {
	return &MessageItem{
		Text: strPtr("Recommended combos"),
		ReplyMarkup: &InlineKeyboardMarkup{
			InlineKeyboard: [][]InlineKeyboardButton{{
				{Text: "Select recommended amount", CallbackData: strPtr("combo_select_amount_recommended")},
			}},
		},
	}
}

func defaultCombosConfirmAddRecommended() *MessageItem {
	return NewTextMessage("Do you want to add these recommended combos?")
}

// UnmarshalJSON fixes known payload typos (errro_ -> error_, sumary_ ->
// summary_), strictly decodes, then injects the recommendation defaults
// when the fields arrive absent or null.
func (g *CombosMessages) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data)
	if err != nil {
		return err
	}
	renameLegacyKey(raw, "errro_to_place_bet", "error_to_place_bet")
	for key, v := range raw {
		if strings.HasPrefix(key, "sumary_") {
			corrected := "summary_" + strings.TrimPrefix(key, "sumary_")
			if _, exists := raw[corrected]; !exists {
				raw[corrected] = v
			}
			delete(raw, key)
		}
	}

	type alias CombosMessages
	var a alias
	if err := decodeStrict(encodeRawObject(raw), &a); err != nil {
		return err
	}
	*g = CombosMessages(a)
	if g.CombosRecommendation == nil {
		g.CombosRecommendation = defaultCombosRecommendation()
	}
	if g.CombosConfirmAddRecommended == nil {
		g.CombosConfirmAddRecommended = defaultCombosConfirmAddRecommended()
	}
	return nil
}

func (g *CombosMessages) messageFields() map[string]*MessageItem {
	return map[string]*MessageItem{
		"show_all_markets_by_fixtures":        g.ShowAllMarketsByFixtures,
		"error_to_add_market":                 g.ErrorToAddMarket,
		"error_to_get_odds":                   g.ErrorToGetOdds,
		"error_to_place_bet":                  g.ErrorToPlaceBet,
		"summary_after_add_market":            g.SummaryAfterAddMarket,
		"summary_after_remove_bet_from_combo": g.SummaryAfterRemoveBetFromCombo,
		"remove_market":                       g.RemoveMarket,
		"select_amount":                       g.SelectAmount,
		"place_combo_bet":                     g.PlaceComboBet,
		"summary_after_bet":                   g.SummaryAfterBet,
		"show_my_combo":                       g.ShowMyCombo,
		"delete_combo":                        g.DeleteCombo,
		"combo_odds":                          g.ComboOdds,
		"combos_recommendation":               g.CombosRecommendation,
		"combos_confirm_add_recommended":      g.CombosConfirmAddRecommended,
	}
}

func (g *CombosMessages) Validate() error {
	return validateGroup("combos", g.messageFields(), combosCallbackRules)
}

// ErrorMessages holds the generic error stage messages plus the per-locale
// fallback error strings used when no stage-specific message applies.
type ErrorMessages struct {
	InvalidInput  *MessageItem        `json:"invalid_input"`
	Error         *MessageItem        `json:"error"`
	Error2        *MessageItem        `json:"error_2"`
	GeneralErrors map[string][]string `json:"general_errors"`
}

// UnmarshalJSON strictly decodes and falls back to the built-in locale
// table when general_errors is omitted.
func (g *ErrorMessages) UnmarshalJSON(data []byte) error {
	type alias ErrorMessages
	var a alias
	if err := decodeStrict(bytes.TrimSpace(data), &a); err != nil {
		return err
	}
	*g = ErrorMessages(a)
	if g.GeneralErrors == nil {
		g.GeneralErrors = DefaultGeneralErrors()
	}
	return nil
}

func (g *ErrorMessages) messageFields() map[string]*MessageItem {
	return map[string]*MessageItem{
		"invalid_input": g.InvalidInput,
		"error":         g.Error,
		"error_2":       g.Error2,
	}
}

func (g *ErrorMessages) Validate() error {
	return validateGroup("errors", g.messageFields(), nil)
}

// ConfirmationMessages holds the bet-confirmation stage messages.
type ConfirmationMessages struct {
	ConfirmBet *MessageItem `json:"confirm_bet"`
}

var confirmationCallbackRules = map[string]CallbackRule{
	"confirm_bet": exactCallbacks("confirm_bet"),
}

func (g *ConfirmationMessages) messageFields() map[string]*MessageItem {
	return map[string]*MessageItem{
		"confirm_bet": g.ConfirmBet,
	}
}

func (g *ConfirmationMessages) Validate() error {
	return validateGroup("confirmation", g.messageFields(), confirmationCallbackRules)
}

// LabelMessages holds the short labels rendered above lists and keyboards.
type LabelMessages struct {
	MenuLabelText                        *MessageItem `json:"menu_label_text"`
	LabelText                            *MessageItem `json:"label_text"`
	ComboSummaryAfterAddMarketLabelText  *MessageItem `json:"combo_summary_after_add_market_label_text"`
	SelectTournamentLabelText            *MessageItem `json:"select_tournament_label_text"`
	SelectFixtureLabelText               *MessageItem `json:"select_fixture_label_text"`
	MarketsWithoutComboLabelText         *MessageItem `json:"markets_without_combo_label_text"`
	SelectSportLabelText                 *MessageItem `json:"select_sport_label_text"`
	MoreOptionsText                      *MessageItem `json:"more_options_text"`
	ComboRemoveMarketLabelText           *MessageItem `json:"combo_remove_market_label_text"`
	SelectedOtherMarketLabelText         *MessageItem `json:"selected_other_market_label_text"`
	OtherMarketsLabelText                *MessageItem `json:"other_markets_label_text"`
	ComboOddsLabelText                   *MessageItem `json:"combo_odds_label_text"`
	FixtureOddsLabelText                 *MessageItem `json:"fixture_odds_label_text"`
	MenuMoreOptionsText                  *MessageItem `json:"menu_more_options_text"`
	ListMarketsLabelText                 *MessageItem `json:"list_markets_label_text"`
	ListFixturesLabelText                *MessageItem `json:"list_fixtures_label_text"`
}

func (g *LabelMessages) messageFields() map[string]*MessageItem {
	return map[string]*MessageItem{
		"menu_label_text":                           g.MenuLabelText,
		"label_text":                                g.LabelText,
		"combo_summary_after_add_market_label_text": g.ComboSummaryAfterAddMarketLabelText,
		"select_tournament_label_text":              g.SelectTournamentLabelText,
		"select_fixture_label_text":                 g.SelectFixtureLabelText,
		"markets_without_combo_label_text":          g.MarketsWithoutComboLabelText,
		"select_sport_label_text":                   g.SelectSportLabelText,
		"more_options_text":                         g.MoreOptionsText,
		"combo_remove_market_label_text":            g.ComboRemoveMarketLabelText,
		"selected_other_market_label_text":          g.SelectedOtherMarketLabelText,
		"other_markets_label_text":                  g.OtherMarketsLabelText,
		"combo_odds_label_text":                     g.ComboOddsLabelText,
		"fixture_odds_label_text":                   g.FixtureOddsLabelText,
		"menu_more_options_text":                    g.MenuMoreOptionsText,
		"list_markets_label_text":                   g.ListMarketsLabelText,
		"list_fixtures_label_text":                  g.ListFixturesLabelText,
	}
}

func (g *LabelMessages) Validate() error {
	return validateGroup("labels", g.messageFields(), nil)
}

// EndMessages holds the conversation-closing stage messages.
type EndMessages struct {
	EndConversation *MessageItem `json:"end_conversation"`
}

func (g *EndMessages) messageFields() map[string]*MessageItem {
	return map[string]*MessageItem{
		"end_conversation": g.EndConversation,
	}
}

func (g *EndMessages) Validate() error {
	return validateGroup("end", g.messageFields(), nil)
}

// GuidanceMessages holds the input-guidance stage messages.
type GuidanceMessages struct {
	ValidInputText       *MessageItem `json:"valid_input_text"`
	InvalidInputText     *MessageItem `json:"invalid_input_text"`
	InvalidInputResponse *MessageItem `json:"invalid_input_response"`
}

func (g *GuidanceMessages) messageFields() map[string]*MessageItem {
	return map[string]*MessageItem{
		"valid_input_text":       g.ValidInputText,
		"invalid_input_text":     g.InvalidInputText,
		"invalid_input_response": g.InvalidInputResponse,
	}
}

func (g *GuidanceMessages) Validate() error {
	return validateGroup("guidance", g.messageFields(), nil)
}

// DefaultGeneralErrors returns the built-in per-locale fallback error
// strings used when a payload omits errors.general_errors.
func DefaultGeneralErrors() map[string][]string {
	return map[string][]string{
		"en": {
			"Something went wrong. Please try again.",
			"We couldn't process your request.",
			"That option is no longer available.",
			"Please try again in a few seconds.",
			"We're having trouble right now. Hang tight.",
			"Your session expired. Start again from the menu.",
			"We couldn't find that selection.",
			"The service is temporarily unavailable.",
			"Please check your input and try again.",
			"An unexpected error occurred.",
		},
		"es": {
			"Algo salió mal. Inténtalo de nuevo.",
			"No pudimos procesar tu solicitud.",
			"Esa opción ya no está disponible.",
			"Inténtalo de nuevo en unos segundos.",
			"Estamos teniendo problemas. Un momento.",
			"Tu sesión expiró. Vuelve a empezar desde el menú.",
			"No encontramos esa selección.",
			"El servicio no está disponible temporalmente.",
			"Revisa lo que escribiste e inténtalo de nuevo.",
			"Ocurrió un error inesperado.",
		},
		"pt-br": {
			"Algo deu errado. Tente novamente.",
			"Não conseguimos processar sua solicitação.",
			"Essa opção não está mais disponível.",
			"Tente novamente em alguns segundos.",
			"Estamos com problemas no momento. Aguarde.",
			"Sua sessão expirou. Comece de novo pelo menu.",
			"Não encontramos essa seleção.",
			"O serviço está temporariamente indisponível.",
			"Verifique o que você digitou e tente novamente.",
			"Ocorreu um erro inesperado.",
		},
	}
}
