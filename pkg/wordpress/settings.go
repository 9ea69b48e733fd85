package wordpress

import (
	"context"
	"fmt"
	"net/http"
)

// UpdateSettingsRequest carries only the fields being changed; nil pointers
// are omitted so WordPress keeps its current values.
type UpdateSettingsRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Timezone     *string `json:"timezone_string,omitempty"`
	DateFormat   *string `json:"date_format,omitempty"`
	TimeFormat   *string `json:"time_format,omitempty"`
	Language     *string `json:"language,omitempty"`
	PostsPerPage *int    `json:"posts_per_page,omitempty"`
}

func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.get(ctx, "/settings", nil, &settings); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &settings, nil
}

func (c *Client) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*Settings, error) {
	var settings Settings
	if err := c.write(ctx, http.MethodPost, "/settings", nil, req, &settings, "/settings"); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return &settings, nil
}
