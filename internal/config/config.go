package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and limits.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // secret used to sign JWTs
	AccessTTLMin  int    // access token time‑to‑live in minutes
	StaffUser     string // staff login username
	StaffPassHash string // bcrypt hash of the staff password
	CycleHour     int    // billing cycle cutover hour (0-23)
	MaxRooms      int    // maximum rooms per reservation
	TxMaxAttempts int    // transaction attempts before giving up on lock conflicts
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Operational knobs
// with sensible defaults fall back when unset.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),                      // environment (dev/test/prod)
		Port:          must("APP_PORT"),                     // port to bind the HTTP server
		DBUser:        must("DB_USER"),                      // database user
		DBPass:        os.Getenv("DB_PASS"),                 // database password (empty allowed)
		DBHost:        must("DB_HOST"),                      // database host
		DBPort:        must("DB_PORT"),                      // database port
		DBName:        must("DB_NAME"),                      // database name
		JWTSecret:     must("JWT_SECRET"),                   // secret used for signing JWTs
		AccessTTLMin:  mustInt("ACCESS_TOKEN_TTL_MIN"),      // TTL for access tokens in minutes
		StaffUser:     must("STAFF_USER"),                   // staff account username
		StaffPassHash: must("STAFF_PASS_HASH"),              // bcrypt hash of the staff password
		CycleHour:     intDefault("BOOKING_CYCLE_HOUR", 12), // noon cutover by default
		MaxRooms:      intDefault("MAX_ROOMS_PER_BOOKING", 10),
		TxMaxAttempts: intDefault("TX_MAX_ATTEMPTS", 4),
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

// intDefault reads an optional integer variable, falling back to def when
// the variable is unset.  A malformed value is still fatal: silently
// running with a wrong cutover hour or retry budget is worse than failing.
func intDefault(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
