package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port             string `mapstructure:"PORT" validate:"required"`
	PostgresUsername string `mapstructure:"POSTGRES_USERNAME" validate:"required"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD" validate:"required"`
	PostgresDatabase string `mapstructure:"POSTGRES_DATABASE" validate:"required"`
	PostgresSSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	PostgresHost     string `mapstructure:"POSTGRES_HOST" validate:"required"`
	PostgresPort     string `mapstructure:"POSTGRES_PORT" validate:"required"`
	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	ServiceName      string `mapstructure:"SERVICE_NAME" validate:"required"`
	CookieKey        string `mapstructure:"COOKIE_KEY" validate:"required,base64"`
	ViewsDir         string `mapstructure:"VIEWS_DIR" validate:"required"`
}

func Read() *AppConfig {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	bindEnvVariables()
	setDefaults()

	var appConfig AppConfig
	err := viper.Unmarshal(&appConfig)
	if err != nil {
		panic(fmt.Errorf("fatal error unmarshalling config: %w", err))
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&appConfig); err != nil {
		panic(fmt.Errorf("fatal error validating config: %w", err))
	}

	return &appConfig
}

func bindEnvVariables() {
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("POSTGRES_USERNAME")
	_ = viper.BindEnv("POSTGRES_PASSWORD")
	_ = viper.BindEnv("POSTGRES_DATABASE")
	_ = viper.BindEnv("POSTGRES_SSLMODE")
	_ = viper.BindEnv("POSTGRES_HOST")
	_ = viper.BindEnv("POSTGRES_PORT")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("SERVICE_NAME")
	_ = viper.BindEnv("COOKIE_KEY")
	_ = viper.BindEnv("VIEWS_DIR")
}

func setDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("SERVICE_NAME", "catalog")
	viper.SetDefault("VIEWS_DIR", "./views")
}
