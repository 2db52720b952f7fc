package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Exports  ExportsConfig  `mapstructure:"exports"`
	Settings SettingsConfig `mapstructure:"settings"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type ExportsConfig struct {
	NotesDirectory  string `mapstructure:"notes_directory"`
	GraphsDirectory string `mapstructure:"graphs_directory"`
	MapsDirectory   string `mapstructure:"maps_directory"`
}

type SettingsConfig struct {
	File string `mapstructure:"file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/learntrack")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.path", "learning_tracker.db")
	v.SetDefault("exports.notes_directory", filepath.Join("exports", "notes"))
	v.SetDefault("exports.graphs_directory", filepath.Join("exports", "graphs"))
	v.SetDefault("exports.maps_directory", filepath.Join("exports", "maps"))
	v.SetDefault("settings.file", "settings.json")

	if err := v.BindEnv("database.path", "LEARNTRACK_DB_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind LEARNTRACK_DB_PATH environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
