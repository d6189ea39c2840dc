package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// skillKeywords is the flat dictionary matched against resume text. The
// extracted skill list preserves this order.
var skillKeywords = []string{
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "php", "go", "rust", "swift", "kotlin",
	"react", "angular", "vue", "django", "flask", "spring", "node.js", "express", ".net", "laravel",
	"sql", "mysql", "postgresql", "mongodb", "redis", "oracle", "dynamodb", "cassandra", "elasticsearch",
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "terraform", "ci/cd", "devops",
	"machine learning", "deep learning", "data science", "tensorflow", "pytorch", "pandas", "numpy", "spark",
	"git", "jira", "agile", "scrum", "rest api", "graphql", "microservices",
	"leadership", "team management", "communication", "problem solving", "analytical", "project management",
}

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+?1?\s*\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+\d{1,3}\s?\d{10,14}`),
		regexp.MustCompile(`\d{3}[-.\s]\d{3}[-.\s]\d{4}`),
	}

	// City of up to three words, a two-letter state code, optional zip.
	locationRe = regexp.MustCompile(`(?:[A-Z][A-Za-z]+ ){0,2}[A-Z][A-Za-z]+, ?[A-Z]{2}(?: ?\d{5})?\b`)

	experienceRes = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2})\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`experience\s*:\s*(\d{1,2})\+?\s*years?`),
		regexp.MustCompile(`(\d{1,2})\+?\s*years?\s+in\b`),
	}

	titleWordRe = regexp.MustCompile(`(?i)\b(?:engineer|developer|designer|manager|analyst|scientist|architect|consultant|administrator|specialist|director|lead)\b`)

	authorizedToWorkRe = regexp.MustCompile(`authorized\s+to\s+work`)
	needsSponsorshipRe = regexp.MustCompile(`(?:requires?|needs?)\s+(?:visa\s+)?sponsor`)
)

// workAuthTable maps work-authorization classes to their common spellings.
// Order matters: the first class with a matching pattern wins.
var workAuthTable = []struct {
	class    string
	patterns []*regexp.Regexp
}{
	{"US Citizen", compileAll(`u\.?s\.?\s+citizen`, `united\s+states\s+citizen`, `citizenship\s*:\s*u\.?s`, `american\s+citizen`)},
	{"Green Card", compileAll(`green\s+card`, `permanent\s+resident`, `lawful\s+permanent\s+resident`, `lpr\b`)},
	{"H1B", compileAll(`h-?1b`, `h1-?b\s+visa`, `work\s+visa\s+h1b`)},
	{"EAD", compileAll(`\bead\b`, `employment\s+authorization`, `work\s+authorization\s+document`)},
	{"OPT", compileAll(`\bopt\b`, `optional\s+practical\s+training`, `f-?1\s+opt`)},
	{"CPT", compileAll(`\bcpt\b`, `curricular\s+practical\s+training`)},
	{"TN Visa", compileAll(`\btn\b.*visa`, `tn-?1`, `nafta\s+visa`)},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}

func extractEmail(text string) string {
	return emailRe.FindString(text)
}

func extractPhone(text string) string {
	for _, re := range phoneRes {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func extractLocation(text string) string {
	return strings.TrimSpace(locationRe.FindString(text))
}

// extractWorkAuth classifies the work-authorization status mentioned in the
// resume, or returns "" when nothing matches.
func extractWorkAuth(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range workAuthTable {
		for _, re := range entry.patterns {
			if re.MatchString(lower) {
				return entry.class
			}
		}
	}
	if authorizedToWorkRe.MatchString(lower) {
		return "Authorized to Work"
	}
	if needsSponsorshipRe.MatchString(lower) {
		return "Requires Sponsorship"
	}
	return ""
}

// extractSkills returns the dictionary skills that appear in the text as
// standalone words, in dictionary order.
func extractSkills(text string) []string {
	// Two normalized views: one keeps dots so ".net" and "node.js" can
	// match, one strips them so a sentence-final "Python." still counts.
	padded := normalizeForSkills(text, false)
	noDots := normalizeForSkills(text, true)

	var skills []string
	for _, skill := range skillKeywords {
		probe := " " + skill + " "
		if strings.Contains(padded, probe) || strings.Contains(noDots, probe) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// normalizeForSkills lowercases the text and replaces everything except
// letters, digits, and the symbols that occur inside skill names (+ # . /)
// with spaces, so dictionary entries match as whole words.
func normalizeForSkills(text string, stripDots bool) string {
	var b strings.Builder
	b.Grow(len(text) + 2)
	b.WriteByte(' ')
	for _, r := range strings.ToLower(text) {
		switch {
		case r == '.' && stripDots:
			b.WriteByte(' ')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '#', r == '.', r == '/':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	b.WriteByte(' ')
	return b.String()
}

const (
	maxTitleLines = 10
	maxTitleLen   = 60
)

// extractTitle returns the first short header line that reads like a job
// title. Lines with digits or an email are never titles.
func extractTitle(text string) string {
	lines := strings.SplitN(text, "\n", maxTitleLines+1)
	if len(lines) > maxTitleLines {
		lines = lines[:maxTitleLines]
	}
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" || len(line) > maxTitleLen {
			continue
		}
		if strings.ContainsAny(line, "@0123456789") {
			continue
		}
		if titleWordRe.MatchString(line) {
			return line
		}
	}
	return ""
}

// extractExperienceYears returns the largest plausible years-of-experience
// claim (at most 50) found in the text.
func extractExperienceYears(text string) float64 {
	lower := strings.ToLower(text)
	maxYears := 0
	for _, re := range experienceRes {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			years, err := strconv.Atoi(m[1])
			if err != nil || years > 50 {
				continue
			}
			maxYears = max(maxYears, years)
		}
	}
	return float64(maxYears)
}

// makeSnippet keeps the first three sentences, capped at 300 characters.
func makeSnippet(text string) string {
	parts := strings.SplitN(text, ".", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	snippet := strings.Join(parts, ". ")
	runes := []rune(snippet)
	if len(runes) > 300 {
		return string(runes[:300]) + "..."
	}
	return snippet
}
