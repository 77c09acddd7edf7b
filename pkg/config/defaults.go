package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultJava           = "java"
	DefaultJar            = "/usr/share/java/css-validator.jar"
	DefaultProfile        = "css3"
	DefaultMedium         = "all"
	DefaultWarning        = "0"
	DefaultLang           = "en"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvJava = "CSSFILT_JAVA"
	EnvJar  = "CSSFILT_JAR"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Java: DefaultJava,
		Jar:  DefaultJar,
		Validator: ValidatorConfig{
			Profile: DefaultProfile,
			Medium:  DefaultMedium,
			Warning: DefaultWarning,
			Lang:    DefaultLang,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if java := os.Getenv(EnvJava); java != "" {
		c.Java = java
	}
	if jar := os.Getenv(EnvJar); jar != "" {
		c.Jar = jar
	}
}
