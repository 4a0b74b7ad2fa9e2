// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - Backend: Catalog backend, one of memory, dir, db, s3 (default: memory)
  - ImageDir: Directory scanned for images (required for dir backend)
  - DatabaseURL: Connection string (required for db backend)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - MaxImageWidth: Uploads wider than this are downscaled (default: 800)
  - OrganizerSalt: Secret for organizer key HMAC (required)
  - ResetClosesGate: Whether a data reset also closes the voting gate

# CLI Flags

	-p                  Server port
	-b                  Catalog backend
	-i                  Image directory
	-d                  Database URL
	-t                  Database type
	--max-width         Downscale threshold in pixels
	--reset-closes-gate Reset also closes the gate
	--organizer-salt    Organizer key salt

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	CATALOG_BACKEND    → -b
	IMAGE_DIR          → -i
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	MAX_IMAGE_WIDTH    → --max-width
	RESET_CLOSES_GATE  → --reset-closes-gate
	ORGANIZER_KEY_SALT → --organizer-salt

S3 settings (s3 backend only) are env-only: S3_ENDPOINT, S3_BUCKET,
S3_REGION, S3_ACCESS_KEY, S3_SECRET_KEY, S3_USE_SSL.

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - ORGANIZER_KEY_SALT must be provided
  - IMAGE_DIR must be provided for the dir backend
  - DATABASE_URL must be provided for the db backend
  - S3_ENDPOINT and S3_BUCKET must be provided for the s3 backend
*/
package cliparse
