package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`
	RedisURL    string `mapstructure:"REDIS_URL"`

	WhatsAppAccessToken       string `mapstructure:"WHATSAPP_ACCESS_TOKEN"`
	WhatsAppPhoneNumberID     string `mapstructure:"WHATSAPP_PHONE_NUMBER_ID"`
	WhatsAppVerifyToken       string `mapstructure:"WHATSAPP_VERIFY_TOKEN"`
	WhatsAppAPIVersion        string `mapstructure:"WHATSAPP_API_VERSION"`
	WhatsAppBusinessAccountID string `mapstructure:"WHATSAPP_BUSINESS_ACCOUNT_ID"`

	SupportEmail    string `mapstructure:"SUPPORT_EMAIL"`
	SupportHelpline string `mapstructure:"SUPPORT_HELPLINE"`
}

// Load builds a Config from the .env file and the environment. Reloading
// configuration is an explicit re-construction: call Load again and swap the
// result; there is no cached state to invalidate.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("WHATSAPP_VERIFY_TOKEN", "123456")
	v.SetDefault("WHATSAPP_API_VERSION", "v22.0")
	v.SetDefault("SUPPORT_EMAIL", "support@care.ohc.network")
	v.SetDefault("SUPPORT_HELPLINE", "1800-123-456")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("REDIS_URL")
	v.BindEnv("WHATSAPP_ACCESS_TOKEN")
	v.BindEnv("WHATSAPP_PHONE_NUMBER_ID")
	v.BindEnv("WHATSAPP_VERIFY_TOKEN")
	v.BindEnv("WHATSAPP_API_VERSION")
	v.BindEnv("WHATSAPP_BUSINESS_ACCOUNT_ID")
	v.BindEnv("SUPPORT_EMAIL")
	v.BindEnv("SUPPORT_HELPLINE")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks the fixed set of settings the WhatsApp channel cannot run
// without. The defaults for WHATSAPP_VERIFY_TOKEN and WHATSAPP_API_VERSION
// are usable out of the box; the access token, phone number id and business
// account id have no sane default.
func (c *Config) Validate() error {
	required := map[string]string{
		"WHATSAPP_ACCESS_TOKEN":        c.WhatsAppAccessToken,
		"WHATSAPP_PHONE_NUMBER_ID":     c.WhatsAppPhoneNumberID,
		"WHATSAPP_VERIFY_TOKEN":        c.WhatsAppVerifyToken,
		"WHATSAPP_API_VERSION":         c.WhatsAppAPIVersion,
		"WHATSAPP_BUSINESS_ACCOUNT_ID": c.WhatsAppBusinessAccountID,
	}
	for _, name := range []string{
		"WHATSAPP_ACCESS_TOKEN",
		"WHATSAPP_PHONE_NUMBER_ID",
		"WHATSAPP_VERIFY_TOKEN",
		"WHATSAPP_API_VERSION",
		"WHATSAPP_BUSINESS_ACCOUNT_ID",
	} {
		if required[name] == "" {
			return fmt.Errorf("the %q setting is required: set it in the environment or .env", name)
		}
	}
	return nil
}
