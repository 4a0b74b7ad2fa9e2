// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes.

# Routes

Public:

	GET  /health              Liveness + catalog backend ping
	GET  /                    Service banner
	GET  /images              Catalog with tallies and gate state
	GET  /images/{id}         Image bytes
	POST /ballots             Cast a ballot
	GET  /results             Tallies, voter count, total votes
	GET  /results/export      CSV report (item,votes)
	GET  /session             Gate state

Organizer (X-Organizer-Key required):

	POST /images              Publish images (?mode=replace|append)
	POST /session/open        Open the voting gate
	POST /session/close       Close the voting gate
	POST /reset               Wipe votes (optionally the catalog too)

Uses Go 1.22+ method-qualified ServeMux patterns. Every route is wrapped in
request logging; organizer routes additionally pass RequireOrganizer.
*/
package router
