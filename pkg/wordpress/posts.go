package wordpress

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type ListPostsOptions struct {
	Page       int
	PerPage    int
	Search     string
	Status     string
	Author     int
	Categories []int
	Tags       []int
}

func (o ListPostsOptions) query() url.Values {
	q := url.Values{}
	setInt(q, "page", o.Page)
	setInt(q, "per_page", o.PerPage)
	setString(q, "search", o.Search)
	setString(q, "status", o.Status)
	setInt(q, "author", o.Author)
	setInts(q, "categories", o.Categories)
	setInts(q, "tags", o.Tags)
	return q
}

type PostRequest struct {
	Title      string `json:"title,omitempty"`
	Content    string `json:"content,omitempty"`
	Excerpt    string `json:"excerpt,omitempty"`
	Status     string `json:"status,omitempty"`
	Slug       string `json:"slug,omitempty"`
	Author     int    `json:"author,omitempty"`
	Categories []int  `json:"categories,omitempty"`
	Tags       []int  `json:"tags,omitempty"`
}

func (c *Client) ListPosts(ctx context.Context, opts ListPostsOptions) ([]Post, error) {
	var posts []Post
	if err := c.get(ctx, "/posts", opts.query(), &posts); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, id int) (*Post, error) {
	var post Post
	if err := c.get(ctx, fmt.Sprintf("/posts/%d", id), nil, &post); err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, req PostRequest) (*Post, error) {
	var post Post
	if err := c.write(ctx, http.MethodPost, "/posts", nil, req, &post, "/posts"); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, id int, req PostRequest) (*Post, error) {
	var post Post
	if err := c.write(ctx, http.MethodPost, fmt.Sprintf("/posts/%d", id), nil, req, &post, "/posts"); err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	return &post, nil
}

// DeletePost trashes the post, or erases it permanently when force is set.
func (c *Client) DeletePost(ctx context.Context, id int, force bool) (*Post, error) {
	path := fmt.Sprintf("/posts/%d", id)
	if force {
		var out Deleted[Post]
		query := url.Values{"force": {"true"}}
		if err := c.write(ctx, http.MethodDelete, path, query, nil, &out, "/posts"); err != nil {
			return nil, fmt.Errorf("delete post %d: %w", id, err)
		}
		return &out.Previous, nil
	}
	var post Post
	if err := c.write(ctx, http.MethodDelete, path, nil, nil, &post, "/posts"); err != nil {
		return nil, fmt.Errorf("delete post %d: %w", id, err)
	}
	return &post, nil
}
