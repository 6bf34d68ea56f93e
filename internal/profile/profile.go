package profile

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Profile is the configuration to start the bot.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// TelegramToken is the Telegram bot API token
	TelegramToken string
	// GoogleEmail is the account expected to own the target calendar; it is
	// named in remediation messages when Google rejects the OAuth scope
	GoogleEmail string
	// Timezone is the IANA zone all events are created in
	Timezone string

	// OpenAI configuration
	OpenAIAPIKey  string // OPENAI_API_KEY
	OpenAIBaseURL string // OPENAI_BASE_URL (default: https://api.openai.com/v1)
	OpenAIModel   string // OPENAI_MODEL (default: gpt-4o-mini)

	// Google Calendar OAuth configuration
	GoogleCredentialsFile   string // GOOGLE_CREDENTIALS_FILE (default: credentials.json)
	GoogleTokenFile         string // GOOGLE_TOKEN_FILE (default: token.json)
	GoogleCredentialsBase64 string // GOOGLE_CREDENTIALS_BASE64, overrides the credentials file when set
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// Location resolves the configured timezone. Falls back to Europe/Istanbul
// when the configured value is not a valid IANA zone.
func (p *Profile) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		loc, _ = time.LoadLocation("Europe/Istanbul")
	}
	return loc
}

// FromEnv loads configuration from environment variables.
func FromEnv() *Profile {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("MODE", "dev")
	v.SetDefault("TIMEZONE", "Europe/Istanbul")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	v.SetDefault("GOOGLE_TOKEN_FILE", "token.json")

	return &Profile{
		Mode:                    v.GetString("MODE"),
		TelegramToken:           v.GetString("TELEGRAM_TOKEN"),
		GoogleEmail:             v.GetString("GOOGLE_EMAIL"),
		Timezone:                v.GetString("TIMEZONE"),
		OpenAIAPIKey:            v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL:           v.GetString("OPENAI_BASE_URL"),
		OpenAIModel:             v.GetString("OPENAI_MODEL"),
		GoogleCredentialsFile:   v.GetString("GOOGLE_CREDENTIALS_FILE"),
		GoogleTokenFile:         v.GetString("GOOGLE_TOKEN_FILE"),
		GoogleCredentialsBase64: v.GetString("GOOGLE_CREDENTIALS_BASE64"),
	}
}

// Validate checks that all required startup parameters are present.
func (p *Profile) Validate() error {
	if p.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN environment variable is required")
	}
	if p.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY environment variable is required")
	}
	if p.GoogleEmail == "" {
		return errors.New("GOOGLE_EMAIL environment variable is required")
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return errors.Wrapf(err, "invalid TIMEZONE %q", p.Timezone)
	}
	return nil
}
