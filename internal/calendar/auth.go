package calendar

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// NewService builds an authorized Calendar client from the stored OAuth
// token. Token refresh is handled transparently by the oauth2 client; the
// token file must already exist (see Authorize).
func NewService(ctx context.Context, p Credentials) (*gcal.Service, error) {
	cfg, err := oauthConfig(p)
	if err != nil {
		return nil, err
	}

	tok, err := tokenFromFile(p.TokenFile)
	if err != nil {
		return nil, errors.Wrapf(err, "no stored Google token at %s, run the auth command first", p.TokenFile)
	}

	svc, err := gcal.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, tok)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create calendar service")
	}
	return svc, nil
}

// Credentials holds the OAuth material locations for the calendar backend.
type Credentials struct {
	// CredentialsFile is the OAuth client secrets JSON path.
	CredentialsFile string
	// CredentialsBase64 overrides CredentialsFile when non-empty; used on
	// hosts where mounting a secrets file is not practical.
	CredentialsBase64 string
	// TokenFile is where the authorized user token is persisted.
	TokenFile string
}

// Authorize runs the one-time console OAuth flow and persists the token.
func Authorize(ctx context.Context, p Credentials) error {
	cfg, err := oauthConfig(p)
	if err != nil {
		return err
	}

	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Tarayıcıda şu adresi aç ve yetkilendirme kodunu buraya yapıştır:\n%v\n> ", authURL)

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return errors.Wrap(err, "failed to read authorization code")
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return errors.Wrap(err, "failed to exchange authorization code")
	}

	return saveToken(p.TokenFile, tok)
}

func oauthConfig(p Credentials) (*oauth2.Config, error) {
	var data []byte
	var err error

	if p.CredentialsBase64 != "" {
		data, err = base64.StdEncoding.DecodeString(p.CredentialsBase64)
		if err != nil {
			return nil, errors.Wrap(err, "GOOGLE_CREDENTIALS_BASE64 is not valid base64")
		}
	} else {
		data, err = os.ReadFile(p.CredentialsFile)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read client secrets file %s", p.CredentialsFile)
		}
	}

	cfg, err := google.ConfigFromJSON(data, gcal.CalendarEventsScope)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse client secrets")
	}
	return cfg, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, errors.Wrapf(err, "token file %s is not valid JSON", path)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrapf(err, "unable to create token file %s", path)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(tok)
}
