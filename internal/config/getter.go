package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const prefix = "ALARMEVAL"

var conf Config

// Parse reads the configuration file given as parameter.
// Environment variables prefixed with ALARMEVAL_ override file values.
func Parse(confFile string) (*Config, error) {
	setDefault()

	viper.SetEnvPrefix(prefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if len(confFile) > 0 {
		viper.SetConfigFile(confFile)

		err := viper.ReadInConfig()
		if err != nil {
			return &conf, fmt.Errorf("failed to read config file %v: %w", confFile, err)
		}
	}

	err := viper.Unmarshal(&conf)
	if err != nil {
		return &conf, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &conf, nil
}

func setDefault() {
	viper.SetDefault("logs.level", 4)
	viper.SetDefault("logs.encoder", EncoderTypeConsole)
	viper.SetDefault("metrics.port", 7777)
	viper.SetDefault("gracefulduration", "8s")
	viper.SetDefault("evaluator.cachettl", "60s")
	viper.SetDefault("kafka.consumer.group", "alarm-evaluator")
	viper.SetDefault("kafka.notifier.topic", "alarm.notifications")
}
