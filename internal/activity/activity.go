// Package activity holds the commit records that feed a day's activity block
// and the calendar-date helpers shared by sync and cleanup.
package activity

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// NoExtension is the extension bucket for files without a suffix.
const NoExtension = "no_extension"

// FileChange describes one file touched by a commit.
type FileChange struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// Stats summarises the file changes of a commit. A commit whose details could
// not be fetched carries nil Stats.
type Stats struct {
	Additions  int            `json:"additions"`
	Deletions  int            `json:"deletions"`
	Files      []FileChange   `json:"files"`
	Extensions map[string]int `json:"extensions"`
}

// TotalFiles returns the number of files touched.
func (s *Stats) TotalFiles() int {
	if s == nil {
		return 0
	}
	return len(s.Files)
}

// AnalyzeFiles aggregates per-file changes into Stats.
func AnalyzeFiles(files []FileChange) *Stats {
	stats := &Stats{
		Files:      make([]FileChange, 0, len(files)),
		Extensions: make(map[string]int),
	}
	for _, file := range files {
		stats.Additions += file.Additions
		stats.Deletions += file.Deletions
		stats.Extensions[Extension(file.Filename)]++
		stats.Files = append(stats.Files, file)
	}
	return stats
}

// Extension returns the lowercased extension of name, or NoExtension.
func Extension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || ext == "." {
		return NoExtension
	}
	return ext
}

// Commit is one activity record contributing to a day's block.
type Commit struct {
	Repo    string `json:"repo"`
	SHA     string `json:"sha"`
	Message string `json:"message"`
	// Readable is the display form of Message; empty means use Message.
	Readable string    `json:"readable,omitempty"`
	URL      string    `json:"url"`
	Time     time.Time `json:"time"`
	Stats    *Stats    `json:"stats,omitempty"`
}

// ShortSHA returns the first eight characters of the commit hash.
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 8 {
		return c.SHA[:8]
	}
	return c.SHA
}

// DisplayMessage returns the readable message when present.
func (c Commit) DisplayMessage() string {
	if c.Readable != "" {
		return c.Readable
	}
	return strings.TrimSpace(c.Message)
}

// Totals aggregates line changes and distinct repositories over commits.
type Totals struct {
	Commits   int
	Repos     int
	Additions int
	Deletions int
	Files     int
}

// Summarize computes Totals for commits.
func Summarize(commits []Commit) Totals {
	repos := make(map[string]struct{}, len(commits))
	totals := Totals{Commits: len(commits)}
	for _, c := range commits {
		repos[c.Repo] = struct{}{}
		if c.Stats != nil {
			totals.Additions += c.Stats.Additions
			totals.Deletions += c.Stats.Deletions
			totals.Files += c.Stats.TotalFiles()
		}
	}
	totals.Repos = len(repos)
	return totals
}

// RepoNames returns the distinct repositories in commits, sorted.
func RepoNames(commits []Commit) []string {
	seen := make(map[string]struct{}, len(commits))
	names := make([]string, 0, len(commits))
	for _, c := range commits {
		if _, ok := seen[c.Repo]; ok {
			continue
		}
		seen[c.Repo] = struct{}{}
		names = append(names, c.Repo)
	}
	sort.Strings(names)
	return names
}
