// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles server configuration from CLI flags and
environment variables. Flags win over env vars; env vars win over
defaults.

Required settings:

  - DATABASE_URL (-d): connection string
  - SESSION_SECRET (-session-secret): HMAC secret for session tokens

Optional settings:

  - PORT (-p): server port (default 3524)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
*/
package cliparse
