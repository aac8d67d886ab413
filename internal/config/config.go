package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"LOG_FILE" env-default:"tictactoe.log"`
	Game     Game   `yaml:"game"`
	Theme    Theme  `yaml:"theme"`
	Link     Link   `yaml:"link"`
}

type Game struct {
	AutoResetDelay time.Duration `yaml:"auto-reset-delay" env:"GAME_AUTO_RESET_DELAY" env-default:"1s"`
	RippleDuration time.Duration `yaml:"ripple-duration" env:"GAME_RIPPLE_DURATION" env-default:"200ms"`

	// false in the file reads as unset, so there is no env-default here.
	DisableMouse bool `yaml:"disable-mouse" env:"GAME_DISABLE_MOUSE"`
}

type Theme struct {
	PlayerA string `yaml:"player-a" env:"THEME_PLAYER_A" env-default:"#4169E1"`
	PlayerB string `yaml:"player-b" env:"THEME_PLAYER_B" env-default:"#FF6347"`
	Text    string `yaml:"text" env:"THEME_TEXT" env-default:"#FFFAFA"`
}

type Link struct {
	URL   string `yaml:"url" env:"LINK_URL" env-default:"https://github.com/ish-u"`
	Label string `yaml:"label" env:"LINK_LABEL" env-default:"github : ish-u"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// MustLoad - load configuration from the yml file at path, or from the environment when there is no file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from env: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", apperror.ErrInvalidLogLevel, that.LogLevel)
	}

	for name, color := range map[string]string{
		"player-a": that.Theme.PlayerA,
		"player-b": that.Theme.PlayerB,
		"text":     that.Theme.Text,
	} {
		if !hexColor.MatchString(color) {
			return fmt.Errorf("%w: theme.%s = %q", apperror.ErrInvalidThemeColor, name, color)
		}
	}

	return nil
}
