package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Swetcha17/recruitment-automation/core"
)

// binaryExts are resume formats this parser refuses: text must be pulled
// out with an external converter (pdftotext, pandoc) before ingestion.
var binaryExts = map[string]bool{".pdf": true, ".doc": true, ".docx": true}

var textExts = map[string]bool{".txt": true, ".md": true}

// Stats summarizes one resume-tree scan.
type Stats struct {
	RoleFolders int
	FilesFound  int
	Parsed      int
	Skipped     int      // binary formats, malformed or unreadable documents
	Errors      []string // one line per skipped file
}

// ParseTree walks a resume tree laid out as
//
//	root/<role-category>/<candidate>/<resume file>
//
// and parses every plain-text resume found. A resume may also sit directly
// under a role folder, in which case the file stem names the candidate.
// Binary formats and malformed documents are counted, logged, and skipped;
// only directory-level failures abort the walk.
func (p *Parser) ParseTree(ctx context.Context, root string) ([]*core.CandidateProfile, *Stats, error) {
	roleEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read resume root %s: %w", root, err)
	}

	stats := &Stats{}
	var profiles []*core.CandidateProfile

	for _, roleEntry := range roleEntries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if !roleEntry.IsDir() || strings.HasPrefix(roleEntry.Name(), ".") {
			continue
		}
		role := roleEntry.Name()
		roleDir := filepath.Join(root, role)
		stats.RoleFolders++

		candidateEntries, err := os.ReadDir(roleDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read role folder %s: %w", roleDir, err)
		}

		for _, entry := range candidateEntries {
			if strings.HasPrefix(entry.Name(), ".") {
				continue
			}

			if !entry.IsDir() {
				name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
				source := filepath.ToSlash(filepath.Join(role, entry.Name()))
				if profile := p.parseOne(filepath.Join(roleDir, entry.Name()), source, role, name, stats); profile != nil {
					profiles = append(profiles, profile)
				}
				continue
			}

			candidateDir := filepath.Join(roleDir, entry.Name())
			files, err := os.ReadDir(candidateDir)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read candidate folder %s: %w", candidateDir, err)
			}
			for _, file := range files {
				if file.IsDir() || strings.HasPrefix(file.Name(), ".") {
					continue
				}
				source := filepath.ToSlash(filepath.Join(role, entry.Name(), file.Name()))
				if profile := p.parseOne(filepath.Join(candidateDir, file.Name()), source, role, entry.Name(), stats); profile != nil {
					profiles = append(profiles, profile)
				}
			}
		}
	}

	p.logger.Info("resume tree parsed",
		"root", root,
		"roles", stats.RoleFolders,
		"files", stats.FilesFound,
		"parsed", stats.Parsed,
		"skipped", stats.Skipped)
	return profiles, stats, nil
}

// parseOne handles a single file from the tree, updating stats in place.
// Returns nil when the file is skipped or is not a resume.
func (p *Parser) parseOne(filePath, sourceFile, role, candidateName string, stats *Stats) *core.CandidateProfile {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch {
	case binaryExts[ext]:
		stats.FilesFound++
		stats.Skipped++
		stats.Errors = append(stats.Errors, sourceFile+": binary format, convert to text first")
		p.logger.Warn("skipping binary resume, extract text with an external converter (pdftotext, pandoc) first",
			"file", sourceFile)
		return nil
	case !textExts[ext]:
		return nil
	}

	stats.FilesFound++
	profile, err := p.ParseFile(filePath, sourceFile, role, candidateName)
	if err != nil {
		stats.Skipped++
		stats.Errors = append(stats.Errors, sourceFile+": "+err.Error())
		p.logger.Warn("skipping resume", "file", sourceFile, "err", err)
		return nil
	}
	stats.Parsed++
	return profile
}
