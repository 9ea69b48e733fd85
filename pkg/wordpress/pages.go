package wordpress

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type ListPagesOptions struct {
	Page    int
	PerPage int
	Search  string
	Status  string
	Parent  int
}

func (o ListPagesOptions) query() url.Values {
	q := url.Values{}
	setInt(q, "page", o.Page)
	setInt(q, "per_page", o.PerPage)
	setString(q, "search", o.Search)
	setString(q, "status", o.Status)
	setInt(q, "parent", o.Parent)
	return q
}

type PageRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Status  string `json:"status,omitempty"`
	Slug    string `json:"slug,omitempty"`
	Parent  int    `json:"parent,omitempty"`
	Author  int    `json:"author,omitempty"`
}

func (c *Client) ListPages(ctx context.Context, opts ListPagesOptions) ([]Page, error) {
	var pages []Page
	if err := c.get(ctx, "/pages", opts.query(), &pages); err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

func (c *Client) GetPage(ctx context.Context, id int) (*Page, error) {
	var page Page
	if err := c.get(ctx, fmt.Sprintf("/pages/%d", id), nil, &page); err != nil {
		return nil, fmt.Errorf("get page %d: %w", id, err)
	}
	return &page, nil
}

func (c *Client) CreatePage(ctx context.Context, req PageRequest) (*Page, error) {
	var page Page
	if err := c.write(ctx, http.MethodPost, "/pages", nil, req, &page, "/pages"); err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &page, nil
}

func (c *Client) UpdatePage(ctx context.Context, id int, req PageRequest) (*Page, error) {
	var page Page
	if err := c.write(ctx, http.MethodPost, fmt.Sprintf("/pages/%d", id), nil, req, &page, "/pages"); err != nil {
		return nil, fmt.Errorf("update page %d: %w", id, err)
	}
	return &page, nil
}

func (c *Client) DeletePage(ctx context.Context, id int, force bool) (*Page, error) {
	path := fmt.Sprintf("/pages/%d", id)
	if force {
		var out Deleted[Page]
		query := url.Values{"force": {"true"}}
		if err := c.write(ctx, http.MethodDelete, path, query, nil, &out, "/pages"); err != nil {
			return nil, fmt.Errorf("delete page %d: %w", id, err)
		}
		return &out.Previous, nil
	}
	var page Page
	if err := c.write(ctx, http.MethodDelete, path, nil, nil, &page, "/pages"); err != nil {
		return nil, fmt.Errorf("delete page %d: %w", id, err)
	}
	return &page, nil
}
