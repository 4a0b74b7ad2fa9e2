package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Catalog backend names accepted by -b / CATALOG_BACKEND.
const (
	BackendMemory = "memory"
	BackendDir    = "dir"
	BackendDB     = "db"
	BackendS3     = "s3"
)

type Config struct {
	Port            int
	Backend         string
	ImageDir        string
	DatabaseURL     string
	DatabaseType    string
	MaxImageWidth   int
	OrganizerSalt   string
	ResetClosesGate bool

	// S3-compatible object storage (backend "s3")
	S3Endpoint  string
	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool
}

// ParseFlags validates flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("closet-vote", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Backend, "b", "", "Catalog backend (memory, dir, db, or s3)")
	fs.StringVar(&cfg.ImageDir, "i", "", "Image directory (backend dir)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (backend db)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&cfg.MaxImageWidth, "max-width", 0, "Downscale uploaded images wider than this")
	fs.BoolVar(&cfg.ResetClosesGate, "reset-closes-gate", false, "Reset also closes the voting gate")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.OrganizerSalt, "organizer-salt", "", "Organizer key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3319 // default
		}
	}

	if cfg.Backend == "" {
		cfg.Backend = os.Getenv("CATALOG_BACKEND")
		if cfg.Backend == "" {
			cfg.Backend = BackendMemory
		}
	}
	switch cfg.Backend {
	case BackendMemory, BackendDir, BackendDB, BackendS3:
	default:
		return Config{}, fmt.Errorf("unknown catalog backend %q", cfg.Backend)
	}

	if cfg.ImageDir == "" {
		cfg.ImageDir = os.Getenv("IMAGE_DIR")
	}
	if cfg.Backend == BackendDir && cfg.ImageDir == "" {
		return Config{}, errors.New("image directory required for dir backend (use -i or IMAGE_DIR env)")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.Backend == BackendDB && cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required for db backend (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.MaxImageWidth == 0 {
		if widthStr := os.Getenv("MAX_IMAGE_WIDTH"); widthStr != "" {
			width, err := strconv.Atoi(widthStr)
			if err != nil {
				return Config{}, errors.New("invalid MAX_IMAGE_WIDTH env variable")
			}
			cfg.MaxImageWidth = width
		} else {
			cfg.MaxImageWidth = 800 // default
		}
	}
	if cfg.MaxImageWidth < 0 {
		return Config{}, errors.New("MAX_IMAGE_WIDTH must be non-negative")
	}

	if !cfg.ResetClosesGate {
		cfg.ResetClosesGate = os.Getenv("RESET_CLOSES_GATE") == "true"
	}

	// Secrets - MUST be provided
	if cfg.OrganizerSalt == "" {
		cfg.OrganizerSalt = os.Getenv("ORGANIZER_KEY_SALT")
	}
	if cfg.OrganizerSalt == "" {
		return Config{}, errors.New("ORGANIZER_KEY_SALT required")
	}

	// S3 settings are env-only; they only matter for the s3 backend
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3Bucket = os.Getenv("S3_BUCKET")
	cfg.S3Region = os.Getenv("S3_REGION")
	if cfg.S3Region == "" {
		cfg.S3Region = "us-east-1"
	}
	cfg.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
	cfg.S3SecretKey = os.Getenv("S3_SECRET_KEY")
	cfg.S3UseSSL = os.Getenv("S3_USE_SSL") != "false"

	if cfg.Backend == BackendS3 && (cfg.S3Endpoint == "" || cfg.S3Bucket == "") {
		return Config{}, errors.New("S3_ENDPOINT and S3_BUCKET required for s3 backend")
	}

	return cfg, nil
}
