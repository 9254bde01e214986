package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	// maxResults bounds how many works a single search returns.
	maxResults = 8

	// descriptionFetchLimit bounds concurrent work-detail requests.
	descriptionFetchLimit = 4

	// minDescriptionLength filters out stub descriptions that are
	// too short to be useful.
	minDescriptionLength = 15
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Work is a single result from an Open Library search.
type Work struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	Authors          []string `json:"authors"`
	FirstPublishYear int      `json:"firstPublishYear,omitempty"`
	CoverURL         string   `json:"coverUrl,omitempty"`
	Description      string   `json:"description,omitempty"`
}

type rawSearchResponse struct {
	NumFound int      `json:"numFound"`
	Docs     []rawDoc `json:"docs"`
}

type rawDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	CoverID          int      `json:"cover_i"`
	FirstPublishYear int      `json:"first_publish_year"`
}

type rawWorkDetail struct {
	Description rawDescription `json:"description"`
}

// rawDescription handles the two shapes Open Library uses for work
// descriptions: a plain string or a {"type", "value"} object.
type rawDescription string

func (d *rawDescription) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = rawDescription(s)
		return nil
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*d = rawDescription(obj.Value)
	return nil
}

// Search queries Open Library for works matching the query and returns
// up to maxResults of them, with descriptions fetched per work. A work
// whose description fetch fails is still returned, without one.
func (c *Client) Search(ctx context.Context, query string) ([]Work, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	body, err := c.doRequest(ctx, "/search.json?q="+url.QueryEscape(query)+"&limit=20")
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	var raw rawSearchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	docs := raw.Docs
	if len(docs) > maxResults {
		docs = docs[:maxResults]
	}

	works := make([]Work, len(docs))
	for i, doc := range docs {
		works[i] = Work{
			Key:              doc.Key,
			Title:            doc.Title,
			Authors:          doc.AuthorName,
			FirstPublishYear: doc.FirstPublishYear,
			CoverURL:         CoverURL(doc.CoverID),
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(descriptionFetchLimit)
	for i := range works {
		g.Go(func() error {
			desc, err := c.description(gctx, works[i].Key)
			if err != nil {
				c.logger.Debug("openlibrary description fetch failed",
					"work", works[i].Key, "error", err)
				return nil
			}
			works[i].Description = desc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return works, nil
}

// description fetches and cleans the description for a single work key
// such as "/works/OL45804W".
func (c *Client) description(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	body, err := c.doRequest(ctx, key+".json")
	if err != nil {
		return "", err
	}

	var raw rawWorkDetail
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("parse work detail: %w", err)
	}

	return cleanDescription(string(raw.Description)), nil
}

// cleanDescription strips embedded URLs and rejects descriptions that
// are too short or consist only of a link.
func cleanDescription(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < minDescriptionLength {
		return ""
	}
	if urlPattern.MatchString(s) {
		s = strings.TrimSpace(urlPattern.ReplaceAllString(s, ""))
		if len(s) < minDescriptionLength {
			return ""
		}
	}
	return s
}

// CoverURL returns the medium-size cover image URL for a cover ID, or
// empty when the work has no cover.
func CoverURL(coverID int) string {
	if coverID <= 0 {
		return ""
	}
	return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", coverID)
}
