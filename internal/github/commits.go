package github

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"daynote/internal/activity"
	"daynote/internal/logging"
	"daynote/internal/services"
)

type repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Owner    struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type commitListing struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		Author  struct {
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

type commitDetail struct {
	Files []activity.FileChange `json:"files"`
}

// DailyCommits returns the user's commits for every day in [start, end],
// grouped by calendar day in the configured location.
func (c *Client) DailyCommits(ctx context.Context, start, end time.Time) (activity.RecordSet, error) {
	if c.cfg.Username == "" {
		return nil, services.Wrap(services.ErrConfiguration, "github", "daily commits", "username required", nil)
	}
	loc := c.cfg.Location
	since := activity.Day(start, loc)
	until := activity.Day(end, loc).AddDate(0, 0, 1)

	repos, err := c.listRepos(ctx)
	if err != nil {
		return nil, services.Wrap(services.ErrFeed, "github", "list repositories", c.cfg.Username, err)
	}

	var collected []activity.Commit
	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		commits, err := c.repoCommits(ctx, repo, since, until)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logging.WarnWithContext(c.logger, "skipping repository", "github_repo_failed",
				logging.String("repo", repo.FullName),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check repository access for the configured token"),
				logging.String(logging.FieldImpact, "commits from this repository are missing from the notes"),
			)
			continue
		}
		collected = append(collected, commits...)
	}

	set := activity.Group(collected, loc, c.cfg.MaxCommitsPerDay)
	for key, day := range set {
		for i := range day {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			day[i].Stats = c.commitStats(ctx, day[i])
		}
		set[key] = day
	}
	c.logger.Info("activity fetched",
		logging.Int("repositories", len(repos)),
		logging.Int("commits", set.Total()),
		logging.Int("days", len(set)),
	)
	return set, nil
}

func (c *Client) listRepos(ctx context.Context) ([]repository, error) {
	var repos []repository
	path := "/users/" + url.PathEscape(c.cfg.Username) + "/repos"
	for page := 1; page <= maxPages; page++ {
		query := url.Values{}
		query.Set("per_page", strconv.Itoa(pageSize))
		query.Set("page", strconv.Itoa(page))
		query.Set("type", "owner")
		var batch []repository
		if _, err := c.getJSON(ctx, "github list repos", path, query, &batch); err != nil {
			return nil, err
		}
		repos = append(repos, batch...)
		if len(batch) < pageSize {
			break
		}
	}
	return repos, nil
}

func (c *Client) repoCommits(ctx context.Context, repo repository, since, until time.Time) ([]activity.Commit, error) {
	owner := repo.Owner.Login
	if owner == "" {
		owner = c.cfg.Username
	}
	path := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo.Name) + "/commits"
	var commits []activity.Commit
	for page := 1; page <= maxPages; page++ {
		query := url.Values{}
		query.Set("author", c.cfg.Username)
		query.Set("since", since.UTC().Format(time.RFC3339))
		query.Set("until", until.UTC().Format(time.RFC3339))
		query.Set("per_page", strconv.Itoa(pageSize))
		query.Set("page", strconv.Itoa(page))
		var batch []commitListing
		status, err := c.getJSON(ctx, "github list commits", path, query, &batch)
		if err != nil {
			// An empty repository answers 409 Conflict.
			if status == http.StatusConflict {
				return nil, nil
			}
			return nil, err
		}
		for _, item := range batch {
			if c.filtered(item.Commit.Message) {
				continue
			}
			commit := activity.Commit{
				Repo:    repo.Name,
				SHA:     item.SHA,
				Message: strings.TrimSpace(item.Commit.Message),
				URL:     item.HTMLURL,
				Time:    item.Commit.Author.Date,
			}
			if c.cfg.ReadableMessages {
				commit.Readable = ReadableMessage(commit.Message)
			}
			commits = append(commits, commit)
		}
		if len(batch) < pageSize {
			break
		}
	}
	return commits, nil
}

// commitStats fetches per-file details. Missing details leave the commit
// without stats rather than failing the day.
func (c *Client) commitStats(ctx context.Context, commit activity.Commit) *activity.Stats {
	owner := c.cfg.Username
	path := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(commit.Repo) + "/commits/" + url.PathEscape(commit.SHA)
	var detail commitDetail
	status, err := c.getJSON(ctx, "github commit details", path, nil, &detail)
	if err != nil {
		if status == http.StatusNotFound {
			return nil
		}
		c.logger.Debug("commit details unavailable",
			logging.String("repo", commit.Repo),
			logging.String("sha", commit.ShortSHA()),
			logging.Error(err),
		)
		return nil
	}
	return activity.AnalyzeFiles(detail.Files)
}

// filtered reports whether message matches a sync keyword.
func (c *Client) filtered(message string) bool {
	if len(c.cfg.FilterKeywords) == 0 {
		return false
	}
	lower := strings.ToLower(message)
	for _, keyword := range c.cfg.FilterKeywords {
		if keyword != "" && strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
