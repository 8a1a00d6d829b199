package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const EnvironmentProduction = "production"

type Config struct {
	Port        string
	Environment string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	RunMigrations    bool

	JWTSecret string
	JWTTTL    time.Duration

	OperatorWorkers int
	Location        *time.Location

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	FrontendURL  string

	RedisAddress  string
	RedisPassword string

	CORSAllowedOrigins []string
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Only set it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

func (c *Config) PostgresDSN() string {
	return "postgres://" + c.PostgresUsername + ":" + c.PostgresPassword + "@" +
		c.PostgresAddress + ":" + c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env file is fine, the process environment is used as is.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:        "9446",
		Environment: "development",

		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		RunMigrations:    true,

		JWTSecret: "development-secret",
		JWTTTL:    30 * 24 * time.Hour,

		OperatorWorkers: 4,
		Location:        time.UTC,

		SMTPPort:    "587",
		MailFrom:    "no-reply@money-manager.local",
		FrontendURL: "http://localhost:3000",

		CORSAllowedOrigins: []string{"*"},
	}

	setString(&env.Port, "PORT")
	setString(&env.Environment, "APP_ENV")
	setString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setString(&env.PostgresPort, "POSTGRES_PORT")
	setString(&env.PostgresDB, "POSTGRES_DB")
	setString(&env.PostgresUsername, "POSTGRES_USERNAME")
	setString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	setString(&env.SMTPHost, "SMTP_HOST")
	setString(&env.SMTPPort, "SMTP_PORT")
	setString(&env.SMTPUsername, "SMTP_USERNAME")
	setString(&env.SMTPPassword, "SMTP_PASSWORD")
	setString(&env.MailFrom, "MAIL_FROM")
	setString(&env.FrontendURL, "FRONTEND_URL")
	setString(&env.RedisAddress, "REDIS_ADDRESS")
	setString(&env.RedisPassword, "REDIS_PASSWORD")

	envJWTSecret := os.Getenv("JWT_SECRET")
	if len(envJWTSecret) != 0 {
		env.JWTSecret = envJWTSecret
	} else if env.IsProduction() {
		return nil, errors.New("JWT_SECRET is required in production")
	}

	envJWTTTL := os.Getenv("JWT_TTL")
	if len(envJWTTTL) != 0 {
		ttl, err := time.ParseDuration(envJWTTTL)
		if err != nil {
			return nil, errors.New("JWT_TTL: " + err.Error())
		}
		env.JWTTTL = ttl
	}

	envRunMigrations := os.Getenv("RUN_MIGRATIONS")
	if len(envRunMigrations) != 0 {
		runMigrations, err := strconv.ParseBool(envRunMigrations)
		if err != nil {
			return nil, errors.New("RUN_MIGRATIONS: " + err.Error())
		}
		env.RunMigrations = runMigrations
	}

	envTrustProxy := os.Getenv("TRUST_PROXY_HEADERS")
	if len(envTrustProxy) != 0 {
		trustProxy, err := strconv.ParseBool(envTrustProxy)
		if err != nil {
			return nil, errors.New("TRUST_PROXY_HEADERS: " + err.Error())
		}
		env.TrustProxyHeaders = trustProxy
	}

	envWorkers := os.Getenv("OPERATOR_WORKERS")
	if len(envWorkers) != 0 {
		workers, err := strconv.Atoi(envWorkers)
		if err != nil {
			return nil, errors.New("OPERATOR_WORKERS: " + err.Error())
		}
		env.OperatorWorkers = workers
	}

	envTimezone := os.Getenv("TIMEZONE")
	if len(envTimezone) != 0 {
		loc, err := time.LoadLocation(envTimezone)
		if err != nil {
			return nil, errors.New("TIMEZONE: " + err.Error())
		}
		env.Location = loc
	}

	envOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if len(envOrigins) != 0 {
		var origins []string
		for _, origin := range strings.Split(envOrigins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		env.CORSAllowedOrigins = origins
	}

	return &env, nil
}

func setString(target *string, key string) {
	if value := os.Getenv(key); len(value) != 0 {
		*target = value
	}
}
