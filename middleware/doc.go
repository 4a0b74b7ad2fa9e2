// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Middleware

  - WithLogging: structured request/completion logging via slog
  - RequireOrganizer: validates the X-Organizer-Key header
  - CORS: permissive cross-origin headers for the frontend

# Helpers

  - JSONResponse: write a JSON body with status code
  - ErrorResponse: write a models.ErrorResponse
  - ErrorResponseCode: ErrorResponse with a machine-readable code
  - ParseJSONBody: decode a request body
  - GetClientIP: client IP through proxies (X-Forwarded-For, X-Real-IP)
*/
package middleware
