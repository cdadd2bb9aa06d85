package ytpublish

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
	"mkuznets.com/go/ytpublish/internal/appdirs"
	"mkuznets.com/go/ytpublish/internal/fetch"
	"mkuznets.com/go/ytpublish/internal/utils"
	"mkuznets.com/go/ytpublish/internal/youtube"
)

const ConfigDefaults = `
server:
  listen: ":3001"
youtube:
  credentials: credentials.json
  privacy: private
browser:
  open: true
fetch:
  timeout: 0s
`

type Config struct {
	Server struct {
		Listen     string `yaml:"listen"`
		SuccessURL string `yaml:"success_url"`
		// BodyLimit is the size in bytes above which request bodies are
		// streamed instead of buffered. Zero keeps the server default.
		BodyLimit int `yaml:"body_limit"`
	} `yaml:"server"`
	Staging struct {
		Dir string `yaml:"dir"`
	} `yaml:"staging"`
	Youtube Youtube `yaml:"youtube"`
	Browser struct {
		Open bool `yaml:"open"`
	} `yaml:"browser"`
	Fetch struct {
		Timeout time.Duration  `yaml:"timeout"`
		S3      fetch.S3Config `yaml:"s3"`
	} `yaml:"fetch"`
	Ledger struct {
		Path string `yaml:"path"`
	} `yaml:"ledger"`
}

type Youtube struct {
	// Credentials is a path to the OAuth2 client secrets JSON or a gs:// link.
	Credentials string   `yaml:"credentials"`
	RedirectURL string   `yaml:"redirect_url"`
	Privacy     string   `yaml:"privacy"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
}

func (yt *Youtube) VideoOptions() []youtube.VideoOption {
	return []youtube.VideoOption{
		youtube.WithPrivacy(yt.Privacy),
		youtube.WithCategory(yt.Category),
		youtube.WithTags(yt.Tags),
	}
}

// Validate checks the config and fills in the data directory defaults.
// The staging directory is created if missing.
func (cfg *Config) Validate() error {
	if cfg.Server.Listen == "" {
		return errors.New("`server.listen` is required")
	}
	if err := cfg.validateYoutube(); err != nil {
		return err
	}
	if cfg.Server.BodyLimit < 0 {
		return errors.New("`server.body_limit` must not be negative")
	}
	if cfg.Fetch.Timeout < 0 {
		return errors.New("`fetch.timeout` must not be negative")
	}
	if err := cfg.validateStaging(); err != nil {
		return err
	}
	return cfg.validateLedger()
}

func (cfg *Config) validateYoutube() error {
	yt := &cfg.Youtube
	if yt.Privacy == "" {
		yt.Privacy = youtube.PrivacyPrivate
	}
	if !youtube.ValidPrivacy(yt.Privacy) {
		return fmt.Errorf("`youtube.privacy` must be one of private, unlisted, public: %q", yt.Privacy)
	}
	if yt.Credentials == "" {
		return errors.New("`youtube.credentials` is required")
	}
	if !strings.HasPrefix(yt.Credentials, "gs://") {
		path, err := utils.Expand(yt.Credentials)
		if err != nil {
			return fmt.Errorf("could not expand `youtube.credentials`: %v", err)
		}
		yt.Credentials = path
	}
	return nil
}

func (cfg *Config) validateStaging() error {
	if cfg.Staging.Dir == "" {
		cfg.Staging.Dir = appdirs.DataPath("uploads")
	}
	path, err := utils.Expand(cfg.Staging.Dir)
	if err != nil {
		return fmt.Errorf("could not expand `staging.dir`: %v", err)
	}
	cfg.Staging.Dir = path

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("could not create staging directory: %v", err)
	}
	return utils.IsWritableDir(path)
}

func (cfg *Config) validateLedger() error {
	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = appdirs.DataPath("ledger.db")
	}
	path, err := utils.Expand(cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("could not expand `ledger.path`: %v", err)
	}
	cfg.Ledger.Path = path

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create ledger directory: %v", err)
	}
	return nil
}

type ConfigCommand struct {
	Command
}

func (cmd *ConfigCommand) Execute([]string) error {
	if err := cmd.Config.WriteYAML(os.Stdout); err != nil {
		log.Err(err).Msg("Could not print config")
		return err
	}
	return nil
}

const redacted = "********"

// WriteYAML writes the effective config with secrets masked.
func (cfg *Config) WriteYAML(w io.Writer) error {
	masked := *cfg
	if masked.Fetch.S3.SecretKey != "" {
		masked.Fetch.S3.SecretKey = redacted
	}

	data, err := yaml.Marshal(&masked)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
