package youtube

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
	"mkuznets.com/go/ytpublish/internal/fetch"
	"mkuznets.com/go/ytpublish/internal/utils"
)

// Handshake holds the OAuth2 client used to obtain upload permission. The
// redirect URL configured here is used both for the authorization URL and
// for the code exchange; the provider rejects mismatches.
type Handshake struct {
	config *oauth2.Config
}

func NewHandshake(config *oauth2.Config) (*Handshake, error) {
	if config.ClientID == "" {
		return nil, errors.New("oauth client id is not set")
	}
	if config.RedirectURL == "" {
		return nil, errors.New("oauth redirect url is not set")
	}
	return &Handshake{config: config}, nil
}

// NewConfig builds an OAuth2 config from Google client secrets JSON. The first
// redirect URI in the secrets is used unless redirectURL overrides it.
func NewConfig(secrets []byte, redirectURL string) (*oauth2.Config, error) {
	config, err := google.ConfigFromJSON(secrets, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse client secrets")
	}
	if redirectURL != "" {
		config.RedirectURL = redirectURL
	}
	return config, nil
}

// LoadSecrets reads client secrets from a local path or a gs://bucket/object.
func LoadSecrets(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "gs://") {
		r, err := fetch.NewGCS().Fetch(ctx, location)
		if err != nil {
			return nil, err
		}
		// noinspection GoUnhandledErrorResult
		defer r.Close() // nolint

		data, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read %s", location)
		}
		return data, nil
	}

	path, err := utils.Expand(location)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read client secrets")
	}
	return data, nil
}

func (h *Handshake) RedirectURL() string {
	return h.config.RedirectURL
}

// AuthURL returns the consent page URL requesting offline upload access,
// with st encoded into the state parameter.
func (h *Handshake) AuthURL(st State) (string, error) {
	state, err := st.Encode()
	if err != nil {
		return "", errors.Wrap(err, "could not encode state")
	}
	return h.config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (h *Handshake) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return h.config.Exchange(ctx, code)
}

func (h *Handshake) TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource {
	return h.config.TokenSource(ctx, token)
}
