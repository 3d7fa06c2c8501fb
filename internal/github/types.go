package github

import (
	"time"

	"reposcout/internal/domain"
)

type searchResponse struct {
	TotalCount        int        `json:"total_count"`
	IncompleteResults bool       `json:"incomplete_results"`
	Items             []repoItem `json:"items"`
}

type repoItem struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Owner           owner     `json:"owner"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Language        *string   `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	Topics          []string  `json:"topics"`
	Archived        bool      `json:"archived"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type owner struct {
	Login string `json:"login"`
}

func (r repoItem) toDomain() domain.Repository {
	return domain.Repository{
		FullName:    r.FullName,
		Owner:       r.Owner.Login,
		Name:        r.Name,
		Description: deref(r.Description),
		HTMLURL:     r.HTMLURL,
		Language:    deref(r.Language),
		Stars:       r.StargazersCount,
		Forks:       r.ForksCount,
		OpenIssues:  r.OpenIssuesCount,
		Topics:      r.Topics,
		Archived:    r.Archived,
		UpdatedAt:   r.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
