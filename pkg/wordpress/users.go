package wordpress

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type ListUsersOptions struct {
	Page    int
	PerPage int
	Search  string
	Roles   []string
}

func (o ListUsersOptions) query() url.Values {
	q := url.Values{}
	setInt(q, "page", o.Page)
	setInt(q, "per_page", o.PerPage)
	setString(q, "search", o.Search)
	if len(o.Roles) > 0 {
		q.Set("roles", joinStrings(o.Roles))
	}
	return q
}

type CreateUserRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

type UpdateUserRequest struct {
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Description string   `json:"description,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context, opts ListUsersOptions) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/users", opts.query(), &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	var user User
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// CurrentUser returns the account the client authenticates as.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/me", nil, &user); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := c.write(ctx, http.MethodPost, "/users", nil, req, &user, "/users"); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, req UpdateUserRequest) (*User, error) {
	var user User
	if err := c.write(ctx, http.MethodPost, fmt.Sprintf("/users/%d", id), nil, req, &user, "/users"); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return &user, nil
}

// DeleteUser removes the user, reassigning their content. WordPress requires
// both force and reassign for user deletion.
func (c *Client) DeleteUser(ctx context.Context, id, reassignTo int) (*User, error) {
	query := url.Values{
		"force":    {"true"},
		"reassign": {strconv.Itoa(reassignTo)},
	}
	var out Deleted[User]
	if err := c.write(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), query, nil, &out, "/users"); err != nil {
		return nil, fmt.Errorf("delete user %d: %w", id, err)
	}
	return &out.Previous, nil
}
