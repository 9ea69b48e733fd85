package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/docdyhr/mcp-wordpress-sub005/pkg/cache"
)

type ListMediaOptions struct {
	Page      int
	PerPage   int
	Search    string
	MediaType string
	MimeType  string
}

func (o ListMediaOptions) query() url.Values {
	q := url.Values{}
	setInt(q, "page", o.Page)
	setInt(q, "per_page", o.PerPage)
	setString(q, "search", o.Search)
	setString(q, "media_type", o.MediaType)
	setString(q, "mime_type", o.MimeType)
	return q
}

type UpdateMediaRequest struct {
	Title   string `json:"title,omitempty"`
	AltText string `json:"alt_text,omitempty"`
	Caption string `json:"caption,omitempty"`
}

func (c *Client) ListMedia(ctx context.Context, opts ListMediaOptions) ([]MediaItem, error) {
	var items []MediaItem
	if err := c.get(ctx, "/media", opts.query(), &items); err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return items, nil
}

func (c *Client) GetMedia(ctx context.Context, id int) (*MediaItem, error) {
	var item MediaItem
	if err := c.get(ctx, fmt.Sprintf("/media/%d", id), nil, &item); err != nil {
		return nil, fmt.Errorf("get media %d: %w", id, err)
	}
	return &item, nil
}

// UploadMedia creates an attachment from raw file bytes. WordPress reads the
// filename from the Content-Disposition header.
func (c *Client) UploadMedia(ctx context.Context, filename, contentType string, data []byte) (*MediaItem, error) {
	headers := http.Header{}
	headers.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	payload, err := c.doRaw(ctx, http.MethodPost, "/media", nil, data, contentType, headers)
	if err != nil {
		return nil, fmt.Errorf("upload media %s: %w", filename, err)
	}
	if c.cache != nil {
		c.cache.Invalidate(ctx, cache.Prefix(c.siteID, "/media"))
	}

	var item MediaItem
	if err := json.Unmarshal(payload, &item); err != nil {
		return nil, fmt.Errorf("upload media %s: %w", filename, err)
	}
	return &item, nil
}

func (c *Client) UpdateMedia(ctx context.Context, id int, req UpdateMediaRequest) (*MediaItem, error) {
	var item MediaItem
	if err := c.write(ctx, http.MethodPost, fmt.Sprintf("/media/%d", id), nil, req, &item, "/media"); err != nil {
		return nil, fmt.Errorf("update media %d: %w", id, err)
	}
	return &item, nil
}

// DeleteMedia erases the attachment. WordPress only supports force-deletes
// for media, there is no trash.
func (c *Client) DeleteMedia(ctx context.Context, id int) (*MediaItem, error) {
	var out Deleted[MediaItem]
	query := url.Values{"force": {"true"}}
	if err := c.write(ctx, http.MethodDelete, fmt.Sprintf("/media/%d", id), query, nil, &out, "/media"); err != nil {
		return nil, fmt.Errorf("delete media %d: %w", id, err)
	}
	return &out.Previous, nil
}
