package wordpress

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type ListTermsOptions struct {
	Page    int
	PerPage int
	Search  string
	Post    int
	// HideEmpty drops terms with no attached content.
	HideEmpty bool
}

func (o ListTermsOptions) query() url.Values {
	q := url.Values{}
	setInt(q, "page", o.Page)
	setInt(q, "per_page", o.PerPage)
	setString(q, "search", o.Search)
	setInt(q, "post", o.Post)
	if o.HideEmpty {
		q.Set("hide_empty", "true")
	}
	return q
}

type CategoryRequest struct {
	Name        string `json:"name,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Parent      int    `json:"parent,omitempty"`
}

type TagRequest struct {
	Name        string `json:"name,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

func (c *Client) ListCategories(ctx context.Context, opts ListTermsOptions) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/categories", opts.query(), &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id int) (*Category, error) {
	var category Category
	if err := c.get(ctx, fmt.Sprintf("/categories/%d", id), nil, &category); err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error) {
	var category Category
	if err := c.write(ctx, http.MethodPost, "/categories", nil, req, &category, "/categories"); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int, req CategoryRequest) (*Category, error) {
	var category Category
	if err := c.write(ctx, http.MethodPost, fmt.Sprintf("/categories/%d", id), nil, req, &category, "/categories"); err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	return &category, nil
}

// DeleteCategory erases the term. Terms have no trash, so force is implied.
func (c *Client) DeleteCategory(ctx context.Context, id int) (*Category, error) {
	query := url.Values{"force": {"true"}}
	var out Deleted[Category]
	if err := c.write(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), query, nil, &out, "/categories"); err != nil {
		return nil, fmt.Errorf("delete category %d: %w", id, err)
	}
	return &out.Previous, nil
}

func (c *Client) ListTags(ctx context.Context, opts ListTermsOptions) ([]Tag, error) {
	var tags []Tag
	if err := c.get(ctx, "/tags", opts.query(), &tags); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (c *Client) GetTag(ctx context.Context, id int) (*Tag, error) {
	var tag Tag
	if err := c.get(ctx, fmt.Sprintf("/tags/%d", id), nil, &tag); err != nil {
		return nil, fmt.Errorf("get tag %d: %w", id, err)
	}
	return &tag, nil
}

func (c *Client) CreateTag(ctx context.Context, req TagRequest) (*Tag, error) {
	var tag Tag
	if err := c.write(ctx, http.MethodPost, "/tags", nil, req, &tag, "/tags"); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return &tag, nil
}

func (c *Client) UpdateTag(ctx context.Context, id int, req TagRequest) (*Tag, error) {
	var tag Tag
	if err := c.write(ctx, http.MethodPost, fmt.Sprintf("/tags/%d", id), nil, req, &tag, "/tags"); err != nil {
		return nil, fmt.Errorf("update tag %d: %w", id, err)
	}
	return &tag, nil
}

func (c *Client) DeleteTag(ctx context.Context, id int) (*Tag, error) {
	query := url.Values{"force": {"true"}}
	var out Deleted[Tag]
	if err := c.write(ctx, http.MethodDelete, fmt.Sprintf("/tags/%d", id), query, nil, &out, "/tags"); err != nil {
		return nil, fmt.Errorf("delete tag %d: %w", id, err)
	}
	return &out.Previous, nil
}
