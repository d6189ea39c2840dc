// Package ingest turns resume folders into stored candidate profiles.
//
// The Parser type walks a resume tree laid out as
// <root>/<role-category>/<candidate>/<file>, reads plain-text resumes, and
// extracts structured fields with deterministic rules:
//   - contact details (email, phone, location)
//   - skills from a flat dictionary, matched as whole words
//   - years of experience and work-authorization class
//   - a short display snippet
//
// Binary resume formats are skipped with a warning naming an external
// converter. Unreadable or near-empty files are counted and skipped, never
// stored partially.
package ingest
