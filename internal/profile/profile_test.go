package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *Profile {
	return &Profile{
		Mode:          "dev",
		TelegramToken: "123456:test-token",
		GoogleEmail:   "someone@example.com",
		Timezone:      "Europe/Istanbul",
		OpenAIAPIKey:  "sk-test",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validProfile().Validate())

	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"missing telegram token", func(p *Profile) { p.TelegramToken = "" }},
		{"missing openai key", func(p *Profile) { p.OpenAIAPIKey = "" }},
		{"missing google email", func(p *Profile) { p.GoogleEmail = "" }},
		{"bad timezone", func(p *Profile) { p.Timezone = "Mars/OlympusMons" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tok")
	t.Setenv("OPENAI_API_KEY", "key")
	t.Setenv("GOOGLE_EMAIL", "a@b.c")

	p := FromEnv()
	assert.Equal(t, "Europe/Istanbul", p.Timezone)
	assert.Equal(t, "gpt-4o-mini", p.OpenAIModel)
	assert.Equal(t, "https://api.openai.com/v1", p.OpenAIBaseURL)
	assert.Equal(t, "credentials.json", p.GoogleCredentialsFile)
	assert.Equal(t, "token.json", p.GoogleTokenFile)
	assert.True(t, p.IsDev())
}

func TestLocation_Fallback(t *testing.T) {
	p := validProfile()
	p.Timezone = "Not/AZone"
	loc := p.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "Europe/Istanbul", loc.String())
}
