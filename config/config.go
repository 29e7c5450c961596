package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

var (
	MAIN_ROUTES   string
	APP_PORT      string
	JWTSecret     string
	JWTExpiration int

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// ReportTZOffsetMin is the fixed minute offset applied when rendering
	// timestamps on reports and exports. Default 330 (UTC+5:30, IST). It is
	// deliberately a config value, never derived from the server locale.
	ReportTZOffsetMin int
	ReportTZLabel     string

	SMTPHost     string
	SMTPPort     int
	SMTPSender   string
	SMTPPassword string

	CookieSecure   bool
	CookieHTTPOnly bool
	CookieSameSite string

	allowedOrigins map[string]bool
)

// LoadConfig membaca file .env dan menginisialisasi variabel konfigurasi
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Server Configuration
	MAIN_ROUTES = getEnv("MAIN_ROUTES", "/api/v1")
	APP_PORT = getEnv("APP_PORT", "9000")

	// JWT Configuration
	JWTSecret = getEnv("JWT_SECRET", "potrack_key_secret")
	JWTExpiration = getEnvAsInt("JWT_EXPIRATION", 86400)

	// Database Configuration
	DBDriver = getEnv("DB_DRIVER", "sqlite")
	DBHost = getEnv("DB_HOST", "localhost")
	DBPort = getEnv("DB_PORT", "5432")
	DBUser = getEnv("DB_USER", "postgres")
	DBPassword = getEnv("DB_PASSWORD", "password")
	DBName = getEnv("DB_NAME", "production_order_tracking")

	// Report Configuration
	ReportTZOffsetMin = getEnvAsInt("REPORT_TZ_OFFSET_MIN", 330)
	ReportTZLabel = getEnv("REPORT_TZ_LABEL", "IST")

	// SMTP Configuration (report email delivery)
	SMTPHost = getEnv("SMTP_HOST", "")
	SMTPPort = getEnvAsInt("SMTP_PORT", 465)
	SMTPSender = getEnv("SMTP_SENDER", "")
	SMTPPassword = getEnv("SMTP_PASSWORD", "")

	// Cookie Configuration
	CookieSecure = getEnvAsBool("COOKIE_SECURE", true)
	CookieHTTPOnly = getEnvAsBool("COOKIE_HTTPONLY", false)
	CookieSameSite = getEnv("COOKIE_SAMESITE", "None")

	loadAllowedOrigins()
}

// ReportLocation is the fixed-offset zone used for report rendering.
func ReportLocation() *time.Location {
	return time.FixedZone(ReportTZLabel, ReportTZOffsetMin*60)
}

// getEnv membaca environment variable dengan nilai default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt membaca environment variable sebagai integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool membaca environment variable sebagai boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func loadAllowedOrigins() {
	allowedOrigins = make(map[string]bool)
	originsStr := getEnv("ALLOWED_ORIGINS", "")

	if originsStr == "" {
		allowedOrigins = map[string]bool{
			"http://127.0.0.1:3000": true,
		}
		return
	}

	origins := strings.Split(originsStr, ",")
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
}

func SetupCORS(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if allowedOrigins[origin] {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Set("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight request
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})
}

func GetTokenCookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: CookieHTTPOnly,
		SameSite: CookieSameSite,
		Path:     "/",
		Secure:   CookieSecure,
	}
}
