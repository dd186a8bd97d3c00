package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PONG_LOG_LEVEL.
const EnvPrefix = "PONG"

type Log struct {
	Level      string
	Format     string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

type Game struct {
	// Seed for the serve RNG; 0 picks a random seed.
	Seed           uint64
	CPUOpponent    bool
	WatchPrefabs   bool
	ScriptDeadZone float64
}

type Window struct {
	Title string
}

type Config struct {
	Log    Log
	Game   Game
	Window Window
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.cpu_opponent", false)
	v.SetDefault("game.watch_prefabs", false)
	v.SetDefault("game.script_dead_zone", 0.35)
	v.SetDefault("window.title", "pong")
}

// Load reads settings from path (a yaml file), the environment and the
// defaults, in falling priority. An empty path looks for pong.yaml in the
// working directory; a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pong")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	seed, err := cast.ToUint64E(v.Get("game.seed"))
	if err != nil {
		return Config{}, fmt.Errorf("config: game.seed: %w", err)
	}

	cfg := Config{
		Log: Log{
			Level:      cast.ToString(v.Get("log.level")),
			Format:     cast.ToString(v.Get("log.format")),
			File:       cast.ToString(v.Get("log.file")),
			MaxSize:    cast.ToInt(v.Get("log.max_size")),
			MaxBackups: cast.ToInt(v.Get("log.max_backups")),
			MaxAge:     cast.ToInt(v.Get("log.max_age")),
			Compress:   cast.ToBool(v.Get("log.compress")),
		},
		Game: Game{
			Seed:           seed,
			CPUOpponent:    cast.ToBool(v.Get("game.cpu_opponent")),
			WatchPrefabs:   cast.ToBool(v.Get("game.watch_prefabs")),
			ScriptDeadZone: cast.ToFloat64(v.Get("game.script_dead_zone")),
		},
		Window: Window{
			Title: cast.ToString(v.Get("window.title")),
		},
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("config: log.format must be text or json, got %q", cfg.Log.Format)
	}
	return cfg, nil
}
