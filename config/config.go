package config

import (
	"registry/internal/logger"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	ServerPort  int
	CorsOrigin  string

	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int

	AdminSessionTTLMinutes int
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("registry")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("environment", "development")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("cors.origin", "http://localhost:3000")
	viper.SetDefault("database.db_path", "data/registry.db")
	viper.SetDefault("database.cache_address", "localhost")
	viper.SetDefault("database.cache_port", 6379)
	viper.SetDefault("admin.session_ttl_minutes", 720)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, log.Err("failed to read config file", err)
		}
		log.Debug("no config file found, using env and defaults")
	}

	config := Config{
		Environment:            viper.GetString("environment"),
		ServerPort:             viper.GetInt("server.port"),
		CorsOrigin:             viper.GetString("cors.origin"),
		DatabaseDbPath:         viper.GetString("database.db_path"),
		DatabaseCacheAddress:   viper.GetString("database.cache_address"),
		DatabaseCachePort:      viper.GetInt("database.cache_port"),
		AdminSessionTTLMinutes: viper.GetInt("admin.session_ttl_minutes"),
	}

	log.Info("Config initialized", "environment", config.Environment, "port", config.ServerPort)

	return config, nil
}
