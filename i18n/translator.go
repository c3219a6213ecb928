// Package i18n renders localized messages for issue codes.
package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional parameters to embed in the message (for example,
// "max" or "key"); occurrences of {name} in the template are replaced.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			tmpl = "型が不正です"
		case "required":
			tmpl = "値は必須です"
		case "null_not_allowed":
			tmpl = "null は許可されていません"
		case "unknown_key":
			tmpl = "未知のキーです: {key}"
		case "too_small":
			tmpl = "値が下限 {min} を下回っています"
		case "too_big":
			tmpl = "値が上限 {max} を超えています"
		case "too_short":
			tmpl = "短すぎます (最小 {min})"
		case "too_long":
			tmpl = "長すぎます (最大 {max})"
		case "pattern":
			tmpl = "値がパターンに一致しません"
		case "invalid_enum":
			tmpl = "許可された値ではありません: {choices}"
		case "invalid_format":
			tmpl = "{format} として不正です"
		case "parse_error":
			tmpl = "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			tmpl = "invalid type"
		case "required":
			tmpl = "value is required"
		case "null_not_allowed":
			tmpl = "value must not be null"
		case "unknown_key":
			tmpl = "unknown key: {key}"
		case "too_small":
			tmpl = "value is below allowed min of {min}"
		case "too_big":
			tmpl = "value is above allowed max of {max}"
		case "too_short":
			tmpl = "value is shorter than min length of {min}"
		case "too_long":
			tmpl = "value is longer than max length of {max}"
		case "pattern":
			tmpl = "value does not match expected pattern"
		case "invalid_enum":
			tmpl = "value is not one of: {choices}"
		case "invalid_format":
			tmpl = "value is not a valid {format}"
		case "parse_error":
			tmpl = "parse error"
		}
	}
	if tmpl == "" {
		return code
	}
	return substitute(tmpl, data)
}

func substitute(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	out := tmpl
	for k, v := range data {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
