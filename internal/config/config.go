package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "planner.db"
	DefaultLogName        = "planner.log"
	appDir                = "planner"
)

type Keymap struct {
	Quit       string `toml:"quit"`
	Add        string `toml:"add"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Left       string `toml:"left"`
	Right      string `toml:"right"`
	Toggle     string `toml:"toggle"`
	Delete     string `toml:"delete"`
	Confirm    string `toml:"confirm"`
	Cancel     string `toml:"cancel"`
	Priority   string `toml:"priority"`
	Calendar   string `toml:"calendar"`
	Today      string `toml:"today"`
	NextList   string `toml:"next_list"`
	PrevList   string `toml:"prev_list"`
	NewList    string `toml:"new_list"`
	DeleteList string `toml:"delete_list"`
	PrevMonth  string `toml:"prev_month"`
	NextMonth  string `toml:"next_month"`
}

type Config struct {
	DBPath          string `toml:"db_path"`
	LogPath         string `toml:"log_path"`
	LogLevel        string `toml:"log_level"`
	DefaultPriority string `toml:"default_priority"`
	Keys            Keymap `toml:"keys"`
}

// ResolveConfigPath picks <user config dir>/planner/config.toml, or
// config.toml in the working directory when no user config dir exists.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDir, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults there on first run.
// Relative db and log paths are taken relative to the config file.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	return cfg.resolve(path), nil
}

func (c Config) resolve(configPath string) Config {
	base := filepath.Dir(configPath)
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if c.LogPath != "" && !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(base, c.LogPath)
	}
	return c
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:          DefaultDBName,
		LogPath:         DefaultLogName,
		LogLevel:        "info",
		DefaultPriority: "medium",
		Keys: Keymap{
			Quit:       "q",
			Add:        "a",
			Up:         "k",
			Down:       "j",
			Left:       "h",
			Right:      "l",
			Toggle:     " ",
			Delete:     "d",
			Confirm:    "enter",
			Cancel:     "esc",
			Priority:   "p",
			Calendar:   "c",
			Today:      "t",
			NextList:   "tab",
			PrevList:   "shift+tab",
			NewList:    "n",
			DeleteList: "D",
			PrevMonth:  "[",
			NextMonth:  "]",
		},
	}
}
