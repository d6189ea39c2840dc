// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package kpi

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/storage"
)

const (
	// defaultTrendDays is the ingestion trend window.
	defaultTrendDays = 30

	// velocityBaselineDays is the time-to-hire a velocity of 1.0 represents.
	velocityBaselineDays = 7.0

	dateLayout = "2006-01-02"
)

// Funnel counts candidates at or beyond each hiring stage. A hired candidate
// counts into every bucket; a rejected one into none.
type Funnel struct {
	Uploaded    int `json:"uploaded"`
	Reviewed    int `json:"reviewed"`
	Interviewed int `json:"interviewed"`
	Offered     int `json:"offered"`
	Hired       int `json:"hired"`
}

// TrendPoint is one day of ingestion volume. Days without ingests are
// omitted.
type TrendPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Count int    `json:"count"`
}

// Report is the aggregated recruiting snapshot served to dashboards.
type Report struct {
	GeneratedAt           time.Time      `json:"generatedAt"`
	PoolSize              int            `json:"poolSize"`
	ActiveVacancies       int            `json:"activeVacancies"`
	StageDistribution     map[string]int `json:"stageDistribution"`
	Funnel                Funnel         `json:"funnel"`
	ConversionRate        float64        `json:"conversionRate"` // uploaded to hired, percent
	AvgTimeToPresentHours float64        `json:"avgTimeToPresentHours"`
	AvgTimeToHireDays     float64        `json:"avgTimeToHireDays"`
	PipelineVelocity      float64        `json:"pipelineVelocity"`
	CandidatesByRole      map[string]int `json:"candidatesByRole"`
	VacanciesByStatus     map[string]int `json:"vacanciesByStatus"`
	VacanciesByPriority   map[string]int `json:"vacanciesByPriority"`
	IngestionTrend        []TrendPoint   `json:"ingestionTrend"`
}

// Reporter aggregates stored candidates and vacancies into a Report.
type Reporter struct {
	profiles  storage.ProfileRepository
	vacancies storage.VacancyRepository
	trendDays int
	logger    *slog.Logger
}

// Option configures a Reporter.
type Option func(*Reporter) error

// WithTrendWindow sets the ingestion trend window in days.
func WithTrendWindow(days int) Option {
	return func(r *Reporter) error {
		if days <= 0 {
			return fmt.Errorf("trend window must be positive, got %d", days)
		}
		r.trendDays = days
		return nil
	}
}

// WithLogger sets the logger. Passing nil restores the default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reporter) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewReporter creates a KPI reporter over the given repositories.
func NewReporter(profiles storage.ProfileRepository, vacancies storage.VacancyRepository, opts ...Option) (*Reporter, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if vacancies == nil {
		return nil, ErrVacancyRepositoryRequired
	}

	r := &Reporter{
		profiles:  profiles,
		vacancies: vacancies,
		trendDays: defaultTrendDays,
		logger:    slog.Default().With("component", "kpi"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Report walks the stored candidates and vacancies once and aggregates the
// dashboard numbers. Nothing is cached or persisted: every call reflects the
// store as of now.
func (r *Reporter) Report(ctx context.Context) (*Report, error) {
	now := time.Now().UTC()
	report := &Report{
		GeneratedAt:         now,
		StageDistribution:   map[string]int{},
		CandidatesByRole:    map[string]int{},
		VacanciesByStatus:   map[string]int{},
		VacanciesByPriority: map[string]int{},
	}

	cutoff := now.AddDate(0, 0, -r.trendDays)
	trend := map[string]int{}
	var (
		presentHours float64
		presented    int
		hireDays     float64
		hired        int
	)

	for profile, err := range r.profiles.AllProfiles(ctx) {
		if err != nil {
			return nil, err
		}

		report.PoolSize++
		report.StageDistribution[profile.Stage.String()]++
		role := profile.RoleCategory
		if role == "" {
			role = "Unknown"
		}
		report.CandidatesByRole[role]++
		report.Funnel.add(profile.Stage)

		if profile.IngestedAt.IsZero() {
			continue
		}
		age := now.Sub(profile.IngestedAt)
		if profile.Stage != core.StageUploaded {
			presentHours += age.Hours()
			presented++
		}
		if profile.Stage == core.StageHired {
			hireDays += age.Hours() / 24
			hired++
		}
		if !profile.IngestedAt.Before(cutoff) {
			trend[profile.IngestedAt.UTC().Format(dateLayout)]++
		}
	}

	vacancies, err := r.vacancies.ListVacancies(ctx)
	if err != nil {
		return nil, err
	}
	for _, vacancy := range vacancies {
		report.VacanciesByStatus[vacancy.Status.String()]++
		report.VacanciesByPriority[vacancy.Priority.String()]++
		if vacancy.Status == core.VacancyOpen {
			report.ActiveVacancies++
		}
	}

	if report.Funnel.Uploaded > 0 {
		report.ConversionRate = round1(float64(report.Funnel.Hired) / float64(report.Funnel.Uploaded) * 100)
	}
	if presented > 0 {
		report.AvgTimeToPresentHours = round1(presentHours / float64(presented))
	}
	if hired > 0 {
		report.AvgTimeToHireDays = round1(hireDays / float64(hired))
	}
	report.PipelineVelocity = 1.0
	if report.AvgTimeToHireDays > 0 {
		report.PipelineVelocity = round1(velocityBaselineDays / report.AvgTimeToHireDays)
	}

	for _, date := range slices.Sorted(maps.Keys(trend)) {
		report.IngestionTrend = append(report.IngestionTrend, TrendPoint{Date: date, Count: trend[date]})
	}

	r.logger.Debug("kpi report generated",
		"poolSize", report.PoolSize,
		"vacancies", len(vacancies),
		"trendPoints", len(report.IngestionTrend))
	return report, nil
}

// add counts a candidate into every funnel bucket their stage has passed
// through. Rejected candidates left the funnel and count nowhere.
func (f *Funnel) add(stage core.Stage) {
	switch stage {
	case core.StageHired:
		f.Hired++
		fallthrough
	case core.StageOffered:
		f.Offered++
		fallthrough
	case core.StageInterviewed:
		f.Interviewed++
		fallthrough
	case core.StageReviewed:
		f.Reviewed++
		fallthrough
	case core.StageUploaded:
		f.Uploaded++
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
