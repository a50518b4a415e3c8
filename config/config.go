package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL    string
	ProfileDir string
	ChromeBin  string
	Headless   bool

	SearchPageLimit  int
	ShopPageLimit    int
	RatingsPageLimit int

	MaxSearchPages  int
	MaxActivePages  int
	MaxSoldOutPages int

	RateLimitMinSec      int
	RateLimitMaxSec      int
	MaxRetries           int
	MaxReviewsPerProduct int

	OutputDir    string
	UploadDir    string
	WordcloudDir string
	FontPath     string

	ServerPort int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		BaseURL:    getEnv("SHOPEE_BASE_URL", "https://shopee.ph"),
		ProfileDir: getEnv("BROWSER_PROFILE_DIR", "./shopee_session"),
		ChromeBin:  getEnv("CHROME_BIN", ""),
		Headless:   getEnvBool("HEADLESS", false),

		SearchPageLimit:  getEnvInt("SEARCH_PAGE_LIMIT", 60),
		ShopPageLimit:    getEnvInt("SHOP_PAGE_LIMIT", 30),
		RatingsPageLimit: getEnvInt("RATINGS_PAGE_LIMIT", 50),

		MaxSearchPages:  getEnvInt("MAX_SEARCH_PAGES", 10),
		MaxActivePages:  getEnvInt("MAX_ACTIVE_PAGES", 10),
		MaxSoldOutPages: getEnvInt("MAX_SOLDOUT_PAGES", 20),

		RateLimitMinSec:      getEnvInt("RATE_LIMIT_MIN_SEC", 3),
		RateLimitMaxSec:      getEnvInt("RATE_LIMIT_MAX_SEC", 5),
		MaxRetries:           getEnvInt("MAX_RETRIES", 3),
		MaxReviewsPerProduct: getEnvInt("MAX_REVIEWS_PER_PRODUCT", 1000),

		OutputDir:    getEnv("OUTPUT_DIR", "./outputs"),
		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
		WordcloudDir: getEnv("WORDCLOUD_DIR", "./wordclouds"),
		FontPath:     getEnv("WORDCLOUD_FONT", ""),

		ServerPort: getEnvInt("SERVER_PORT", 5000),
	}
}

// LoginURL is the page a human must log in on before any scraping can start.
func (c *Config) LoginURL() string {
	return c.BaseURL + "/buyer/login"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
