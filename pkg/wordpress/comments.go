package wordpress

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type ListCommentsOptions struct {
	Page    int
	PerPage int
	Search  string
	Post    int
	Status  string
}

func (o ListCommentsOptions) query() url.Values {
	q := url.Values{}
	setInt(q, "page", o.Page)
	setInt(q, "per_page", o.PerPage)
	setString(q, "search", o.Search)
	setInt(q, "post", o.Post)
	setString(q, "status", o.Status)
	return q
}

type CreateCommentRequest struct {
	Post        int    `json:"post"`
	Parent      int    `json:"parent,omitempty"`
	Content     string `json:"content"`
	AuthorName  string `json:"author_name,omitempty"`
	AuthorEmail string `json:"author_email,omitempty"`
}

type UpdateCommentRequest struct {
	Content string `json:"content,omitempty"`
	Status  string `json:"status,omitempty"`
}

func (c *Client) ListComments(ctx context.Context, opts ListCommentsOptions) ([]Comment, error) {
	var comments []Comment
	if err := c.get(ctx, "/comments", opts.query(), &comments); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (c *Client) GetComment(ctx context.Context, id int) (*Comment, error) {
	var comment Comment
	if err := c.get(ctx, fmt.Sprintf("/comments/%d", id), nil, &comment); err != nil {
		return nil, fmt.Errorf("get comment %d: %w", id, err)
	}
	return &comment, nil
}

func (c *Client) CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	var comment Comment
	if err := c.write(ctx, http.MethodPost, "/comments", nil, req, &comment, "/comments"); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

func (c *Client) UpdateComment(ctx context.Context, id int, req UpdateCommentRequest) (*Comment, error) {
	var comment Comment
	if err := c.write(ctx, http.MethodPost, fmt.Sprintf("/comments/%d", id), nil, req, &comment, "/comments"); err != nil {
		return nil, fmt.Errorf("update comment %d: %w", id, err)
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, id int, force bool) (*Comment, error) {
	path := fmt.Sprintf("/comments/%d", id)
	if force {
		var out Deleted[Comment]
		query := url.Values{"force": {"true"}}
		if err := c.write(ctx, http.MethodDelete, path, query, nil, &out, "/comments"); err != nil {
			return nil, fmt.Errorf("delete comment %d: %w", id, err)
		}
		return &out.Previous, nil
	}
	var comment Comment
	if err := c.write(ctx, http.MethodDelete, path, nil, nil, &comment, "/comments"); err != nil {
		return nil, fmt.Errorf("delete comment %d: %w", id, err)
	}
	return &comment, nil
}
