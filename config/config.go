package config

import (
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// ShopSettings are the business rules read from shop.toml. Deployment
// settings (ports, credentials) stay in the environment.
type ShopSettings struct {
	TaxRate                 decimal.Decimal
	TaxStartDate            time.Time
	TaxItemName             string
	EmployeePriceMultiplier decimal.Decimal
}

type SMTPSettings struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	JWTSecret   string
	Shop        ShopSettings
	SMTP        SMTPSettings
}

func Load() *Config {
	return &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getEnv("JWT_SECRET", "rice-bikes-dev-secret"),
		Shop:        loadShopSettings(),
		SMTP: SMTPSettings{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "noreply@ricebikes.com"),
		},
	}
}

func loadShopSettings() ShopSettings {
	v := viper.New()
	v.SetConfigName("shop")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if path := os.Getenv("SHOP_CONFIG"); path != "" {
		v.SetConfigFile(path)
	}

	v.SetDefault("tax.rate", 0.0825)
	v.SetDefault("tax.start_date", "2017-09-01")
	v.SetDefault("tax.item_name", "Sales Tax")
	v.SetDefault("pricing.employee_multiplier", 1.1)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("shop config not read (%v), using defaults", err)
	}

	startDate, err := time.Parse("2006-01-02", v.GetString("tax.start_date"))
	if err != nil {
		log.Fatalf("invalid tax.start_date %q: %v", v.GetString("tax.start_date"), err)
	}

	return ShopSettings{
		TaxRate:                 decimal.NewFromFloat(v.GetFloat64("tax.rate")),
		TaxStartDate:            startDate,
		TaxItemName:             v.GetString("tax.item_name"),
		EmployeePriceMultiplier: decimal.NewFromFloat(v.GetFloat64("pricing.employee_multiplier")),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
