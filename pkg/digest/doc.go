// Package digest builds and sends the upcoming launches email.
//
// A [Service] run fetches launches inside the configured horizon, formats
// one line per launch and sends a single email. Each line holds the local
// time and the mission name, e.g. "Mon Jan 06 10:00 AM — Starlink Group 11-1",
// or "NET Mar 2025 — Transporter-13" when only the month is known.
//
// Times are shown in the configured timezone at the precision the API
// reports. An empty list still produces an email saying nothing is scheduled,
// unless SkipEmpty is set.
//
// Any fetch, render or delivery failure aborts the run and is returned to
// the caller; nothing is retried and nothing is stored between runs.
package digest
