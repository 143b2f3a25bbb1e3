package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database and server settings are mandatory; the
// LINE messaging settings are optional so that the service can run without
// outbound notifications (e.g. in local development).
type Config struct {
	Env               string // application environment (e.g. "dev", "prod")
	Port              string // HTTP port to listen on
	DBUser            string // database username
	DBPass            string // database password (optional)
	DBHost            string // database host address
	DBPort            string // database port number
	DBName            string // database name
	JWTSecret         string // secret used to sign admin session JWTs
	AdminTokenTTLMin  int    // admin session token time-to-live in minutes
	AdminPasswordHash string // bcrypt hash of the admin password
	Timezone          string // IANA timezone used for "today" when rejecting past dates
	AppBaseURL        string // public base URL embedded in notification links (optional)
	LineChannelSecret string // LINE channel secret for webhook signature validation (optional)
	LineChannelToken  string // LINE channel access token for the Messaging API (optional)
	LineGroupID       string // LINE group that receives new-reservation announcements (optional)
	LineAdminUserID   string // LINE user that receives contact-form messages (optional)
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),                  // environment (dev/test/prod)
		Port:              must("APP_PORT"),                 // port to bind the HTTP server
		DBUser:            must("DB_USER"),                  // database user
		DBPass:            os.Getenv("DB_PASS"),             // database password (empty allowed)
		DBHost:            must("DB_HOST"),                  // database host
		DBPort:            must("DB_PORT"),                  // database port
		DBName:            must("DB_NAME"),                  // database name
		JWTSecret:         must("JWT_SECRET"),               // secret used for signing admin JWTs
		AdminTokenTTLMin:  mustInt("ADMIN_TOKEN_TTL_MIN"),   // TTL for admin tokens in minutes
		AdminPasswordHash: must("ADMIN_PASSWORD_HASH"),      // bcrypt hash checked on admin login
		Timezone:          getenv("APP_TIMEZONE", "UTC"),    // calendar timezone for date checks
		AppBaseURL:        os.Getenv("APP_BASE_URL"),        // base URL for links in notifications
		LineChannelSecret: os.Getenv("LINE_CHANNEL_SECRET"), // webhook signature secret
		LineChannelToken:  os.Getenv("LINE_CHANNEL_TOKEN"),  // Messaging API bearer token
		LineGroupID:       os.Getenv("LINE_GROUP_ID"),       // group chat for announcements
		LineAdminUserID:   os.Getenv("LINE_ADMIN_USER_ID"),  // recipient of contact messages
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
