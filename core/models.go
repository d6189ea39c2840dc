package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that the same source
// produces the same ID on every ingestion.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// HashContent returns a 64-bit BLAKE2b digest of text. Profiles store the
// digest of their resume text so index builds can detect stale vectors.
func HashContent(text string) uint64 {
	return uint64(IDFromContent(text))
}

// Stage identifies where a candidate sits in the recruitment funnel.
type Stage int

const (
	// StageUploaded is the initial stage after a resume is ingested.
	StageUploaded Stage = iota + 1
	// StageReviewed means a recruiter has screened the candidate.
	StageReviewed
	// StageInterviewed means at least one interview took place.
	StageInterviewed
	// StageOffered means an offer has been extended.
	StageOffered
	// StageHired means the candidate accepted an offer.
	StageHired
	// StageRejected means the candidate left the funnel.
	StageRejected
)

// String returns the display name of the stage.
func (s Stage) String() string {
	switch s {
	case StageUploaded:
		return "Uploaded"
	case StageReviewed:
		return "Reviewed"
	case StageInterviewed:
		return "Interviewed"
	case StageOffered:
		return "Offered"
	case StageHired:
		return "Hired"
	case StageRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// CandidateProfile is one parsed resume. The Id is derived from the source
// file path, so re-parsing the same file replaces the record instead of
// duplicating it. ContentHash tracks the resume text the indexes last saw.
type CandidateProfile struct {
	Id              ID
	Name            string
	Email           string
	Phone           string
	RoleCategory    string   // derived from the resume folder the file was found in
	CurrentTitle    string
	Titles          []string // job titles recognized anywhere in the resume
	Skills          []string // canonical skill names, sorted
	ExperienceYears float64
	Location        string
	WorkAuth        string
	ResumeText      string
	Snippet         string // short preview for result lists
	SourceFile      string // path relative to the resume root
	ContentHash     uint64 // BLAKE2b digest of ResumeText
	Stage           Stage
	IngestedAt      time.Time
}

/// SearchText composes the text both indexes operate on: the structured
// fields followed by a bounded prefix of the raw resume text.
func (p *CandidateProfile) SearchText() string {
	const maxResumePrefix = 1000

	var b strings.Builder
	for _, part := range []string{p.Name, p.RoleCategory, p.CurrentTitle} {
		if part != "" {
			b.WriteString(part)
			b.WriteByte(' ')
		}
	}
	for _, t := range p.Titles {
		b.WriteString(t)
		b.WriteByte(' ')
	}
	for _, s := range p.Skills {
		b.WriteString(s)
		b.WriteByte(' ')
	}
	for _, part := range []string{p.Location, p.WorkAuth} {
		if part != "" {
			b.WriteString(part)
			b.WriteByte(' ')
		}
	}
	text := p.ResumeText
	if len(text) > maxResumePrefix {
		text = text[:maxResumePrefix]
	}
	b.WriteString(text)
	return b.String()
}

// VacancyStatus is the lifecycle state of a vacancy.
type VacancyStatus int

const (
	VacancyOpen VacancyStatus = iota + 1
	VacancyOnHold
	VacancyClosed
	VacancyFilled
)

// String returns the display name of the status.
func (s VacancyStatus) String() string {
	switch s {
	case VacancyOpen:
		return "Open"
	case VacancyOnHold:
		return "On Hold"
	case VacancyClosed:
		return "Closed"
	case VacancyFilled:
		return "Filled"
	default:
		return "Unknown"
	}
}

// VacancyPriority orders vacancies for recruiter attention.
type VacancyPriority int

const (
	PriorityLow VacancyPriority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// String returns the display name of the priority.
func (p VacancyPriority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return "Unknown"
	}
}

// Vacancy is an open position candidates are matched against. Vacancies are
// either derived automatically from resume folders at parse time (stable
// slug-based Ids) or created explicitly (random Ids).
type Vacancy struct {
	Id            string
	Title         string
	RoleCategory  string
	Description   string
	Skills        []string // required skills
	MinExperience float64  // years
	Location      string
	WorkAuth      string // required work authorization class, empty for any
	Status        VacancyStatus
	Priority      VacancyPriority
	CandidateIds  []ID // candidates assigned by a recruiter
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BuildState is the outcome of an index build stage run.
type BuildState int

const (
	BuildRunning BuildState = iota + 1
	BuildSucceeded
	BuildFailed
)

// String returns the display name of the build state.
func (s BuildState) String() string {
	switch s {
	case BuildRunning:
		return "Running"
	case BuildSucceeded:
		return "Succeeded"
	case BuildFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// BuildStatus records the last run of one pipeline stage. One record per
// stage name is kept, overwritten on every run, so the UI can show when each
// index was last built and whether it is healthy.
type BuildStatus struct {
	Stage      string // "parse", "semantic" or "keyword"
	State      BuildState
	StartedAt  time.Time
	FinishedAt time.Time
	Documents  int
	Skipped    int
	Error      string // empty unless State == BuildFailed
}
