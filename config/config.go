// Package config loads the service settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Blob backends.
const (
	BlobDisk = "disk"
	BlobS3   = "s3"
)

// Config holds runtime settings for the registration service.
type Config struct {
	Port string

	StoreBackend    string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	RazorpayKeyID     string
	RazorpayKeySecret string

	BlobBackend string
	UploadRoot  string
	MaxUploadMB int64
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	LogLevel  string
	LogFormat string
	LogFile   string

	PostmarkToken string
	EmailSender   string

	CORSOrigins []string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Port = "3000"
	c.StoreBackend = StoreMongo
	c.MongoDatabase = "startup-registrations"
	c.MongoCollection = "formdatas"
	c.BlobBackend = BlobDisk
	c.UploadRoot = "."
	c.MaxUploadMB = 200
	c.S3Region = "us-east-1"
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.CORSOrigins = []string{"*"}
}

// Load applies defaults, then an optional .env file, then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.StoreBackend, "STORE_BACKEND")
	setString(&c.MongoURI, "MONGO_URI")
	setString(&c.MongoDatabase, "MONGO_DATABASE")
	setString(&c.MongoCollection, "MONGO_COLLECTION")
	setString(&c.RazorpayKeyID, "RAZORPAY_KEY_ID")
	setString(&c.RazorpayKeySecret, "RAZORPAY_KEY_SECRET")
	setString(&c.BlobBackend, "BLOB_BACKEND")
	setString(&c.UploadRoot, "UPLOAD_ROOT")
	setString(&c.S3Bucket, "S3_BUCKET")
	setString(&c.S3Region, "S3_REGION")
	setString(&c.S3Endpoint, "S3_ENDPOINT")
	setString(&c.S3AccessKey, "S3_ACCESS_KEY")
	setString(&c.S3SecretKey, "S3_SECRET_KEY")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")
	setString(&c.LogFile, "LOG_FILE")
	setString(&c.PostmarkToken, "POSTMARK_API_TOKEN")
	setString(&c.EmailSender, "EMAIL_SENDER")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	}

	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid MAX_UPLOAD_MB %q", v)
		}
		c.MaxUploadMB = n
	}
	return nil
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.RazorpayKeyID == "" {
		errs = append(errs, errors.New("RAZORPAY_KEY_ID is not set"))
	}
	if c.RazorpayKeySecret == "" {
		errs = append(errs, errors.New("RAZORPAY_KEY_SECRET is not set"))
	}

	switch c.StoreBackend {
	case StoreMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is not set"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}

	switch c.BlobBackend {
	case BlobDisk:
	case BlobS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown BLOB_BACKEND %q", c.BlobBackend))
	}

	return errors.Join(errs...)
}

// MaxUploadBytes is the request body ceiling for multipart submissions.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
