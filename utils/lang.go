package utils

import (
	"fmt"
	"io/ioutil"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"github.com/bitmark-inc/schisto-api/score"
)

const DefaultLanguage = "en"

// SupportedLanguages are the languages users can choose from
var SupportedLanguages = []string{"en", "sw", "luo"}

// messageTags are the tags the messages of each language are registered
// under. There is no CLDR plural rule for Luo, so its messages, which have
// no plural forms, take the English rule.
var messageTags = map[string]language.Tag{
	"en":  language.English,
	"sw":  language.Swahili,
	"luo": language.English,
}

// bundles keeps one bundle per supported language
var bundles map[string]*i18n.Bundle

func InitI18NBundle() {
	if err := LoadI18NBundle(viper.GetString("i18n.dir")); err != nil {
		log.Panicf("load i18n messages with error: %s", err)
	}
}

// LoadI18NBundle loads a message file for each supported language from a
// directory
func LoadI18NBundle(dir string) error {
	loaded := make(map[string]*i18n.Bundle, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		b, err := loadMessageFile(path.Join(dir, lang+".yaml"), messageTags[lang])
		if err != nil {
			return fmt.Errorf("load %s messages: %w", lang, err)
		}
		loaded[lang] = b
	}
	bundles = loaded
	return nil
}

func loadMessageFile(file string, tag language.Tag) (*i18n.Bundle, error) {
	buf, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var texts map[string]string
	if err := yaml.Unmarshal(buf, &texts); err != nil {
		return nil, err
	}

	messages := make([]*i18n.Message, 0, len(texts))
	for id, text := range texts {
		messages = append(messages, &i18n.Message{ID: id, Other: text})
	}

	b := i18n.NewBundle(tag)
	if err := b.AddMessages(tag, messages...); err != nil {
		return nil, err
	}
	return b, nil
}

// NewLocalizer returns a localizer of a supported language. Unsupported
// languages get the default one.
func NewLocalizer(lang string) *i18n.Localizer {
	lang = NormalizeLanguage(lang)
	return i18n.NewLocalizer(bundles[lang], messageTags[lang].String())
}

// NormalizeLanguage returns the language itself if it is supported, or the
// default language otherwise
func NormalizeLanguage(lang string) string {
	for _, l := range SupportedLanguages {
		if l == lang {
			return l
		}
	}
	return DefaultLanguage
}

// Localize returns the message of an id in a language. The id is returned
// when there is no such message.
func Localize(lang, id string) string {
	return LocalizeWithData(lang, id, nil)
}

func LocalizeWithData(lang, id string, data map[string]interface{}) string {
	lang = NormalizeLanguage(lang)
	config := &i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	}

	msg, err := NewLocalizer(lang).Localize(config)
	if err != nil && lang != DefaultLanguage {
		msg, err = NewLocalizer(DefaultLanguage).Localize(config)
	}
	if err != nil {
		log.WithField("prefix", "i18n").WithError(err).Warnf("message %s not found for %s", id, lang)
		return id
	}
	return msg
}

// TierLabel returns the display name of a risk tier
func TierLabel(lang string, tier score.Tier) string {
	return Localize(lang, "tier_"+string(tier))
}

// ChatSystemInstruction returns the instruction given to the chat model
// before a conversation in a language
func ChatSystemInstruction(lang string) string {
	return Localize(lang, "chat_system_instruction")
}

// QuotaExceededMessage tells a free user the prompt limit is reached
func QuotaExceededMessage(lang string, limit int) string {
	return LocalizeWithData(lang, "quota_exceeded", map[string]interface{}{
		"Limit": limit,
	})
}

// AttachmentPrompt is the message sent along with a file uploaded to the
// chat
func AttachmentPrompt(lang, name string) string {
	return LocalizeWithData(lang, "chat_attachment_prompt", map[string]interface{}{
		"Name": name,
	})
}
