package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Addr              string
	DSN               string
	MaxConnections    int
	AdminPasswordHash string
	SigningSecret     string // base64

	// Fallbacks used when the SSM mail parameter is unavailable.
	MailFrom       string
	MailRecipients []string
	ReportSendAt   string
}

var instance *Config
var once sync.Once

// Get loads the configuration once. A missing .env file is fine in
// production where variables come from the environment directly.
func Get() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Debugf("no .env file loaded: %s", err)
		}

		instance = &Config{
			Addr:              getEnv("ADDR", "0.0.0.0:8090"),
			DSN:               getEnv("DSN", ""),
			MaxConnections:    getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			SigningSecret:     getEnv("TIMECLOCK_SIGNING_SECRET", ""),
			MailFrom:          getEnv("MAIL_FROM", ""),
			MailRecipients:    getEnvAsList("MAIL_RECIPIENTS"),
			ReportSendAt:      getEnv("REPORT_SEND_AT", "23:36"),
		}

		if instance.DSN == "" {
			logrus.Fatal("DSN is required")
		}
		if instance.AdminPasswordHash == "" {
			logrus.Fatal("ADMIN_PASSWORD_HASH is required")
		}
		if instance.SigningSecret == "" {
			logrus.Fatal("TIMECLOCK_SIGNING_SECRET is required")
		}
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	if val, err := strconv.Atoi(getEnv(name, "")); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsList(name string) []string {
	raw := getEnv(name, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
