package tools

import (
	"fmt"
	"strings"

	"github.com/docdyhr/mcp-wordpress-sub005/pkg/wordpress"
)

func formatPostList(posts []wordpress.Post) string {
	if len(posts) == 0 {
		return "No posts found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d posts:\n", len(posts))
	for _, p := range posts {
		fmt.Fprintf(&b, "- #%d [%s] %s (%s)\n", p.ID, p.Status, p.Title.Rendered, p.Link)
	}
	return b.String()
}

func formatPost(p *wordpress.Post) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Post #%d: %s\n", p.ID, p.Title.Rendered)
	fmt.Fprintf(&b, "Status: %s\n", p.Status)
	fmt.Fprintf(&b, "Slug: %s\n", p.Slug)
	fmt.Fprintf(&b, "Date: %s (modified %s)\n", p.Date, p.Modified)
	fmt.Fprintf(&b, "Link: %s\n", p.Link)
	if p.Excerpt.Rendered != "" {
		fmt.Fprintf(&b, "Excerpt: %s\n", strings.TrimSpace(p.Excerpt.Rendered))
	}
	return b.String()
}

func formatPageList(pages []wordpress.Page) string {
	if len(pages) == 0 {
		return "No pages found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d pages:\n", len(pages))
	for _, p := range pages {
		fmt.Fprintf(&b, "- #%d [%s] %s (%s)\n", p.ID, p.Status, p.Title.Rendered, p.Link)
	}
	return b.String()
}

func formatPage(p *wordpress.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Page #%d: %s\n", p.ID, p.Title.Rendered)
	fmt.Fprintf(&b, "Status: %s\n", p.Status)
	fmt.Fprintf(&b, "Slug: %s\n", p.Slug)
	if p.Parent != 0 {
		fmt.Fprintf(&b, "Parent: #%d\n", p.Parent)
	}
	fmt.Fprintf(&b, "Link: %s\n", p.Link)
	return b.String()
}

func formatMediaList(items []wordpress.MediaItem) string {
	if len(items) == 0 {
		return "No media found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d media items:\n", len(items))
	for _, m := range items {
		fmt.Fprintf(&b, "- #%d [%s] %s (%s)\n", m.ID, m.MimeType, m.Title.Rendered, m.SourceURL)
	}
	return b.String()
}

func formatMedia(m *wordpress.MediaItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Media #%d: %s\n", m.ID, m.Title.Rendered)
	fmt.Fprintf(&b, "Type: %s (%s)\n", m.MediaType, m.MimeType)
	if m.AltText != "" {
		fmt.Fprintf(&b, "Alt text: %s\n", m.AltText)
	}
	fmt.Fprintf(&b, "URL: %s\n", m.SourceURL)
	return b.String()
}

func formatCommentList(comments []wordpress.Comment) string {
	if len(comments) == 0 {
		return "No comments found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d comments:\n", len(comments))
	for _, c := range comments {
		fmt.Fprintf(&b, "- #%d on post #%d by %s [%s]\n", c.ID, c.Post, c.AuthorName, c.Status)
	}
	return b.String()
}

func formatComment(c *wordpress.Comment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Comment #%d on post #%d\n", c.ID, c.Post)
	fmt.Fprintf(&b, "Author: %s\n", c.AuthorName)
	fmt.Fprintf(&b, "Status: %s\n", c.Status)
	fmt.Fprintf(&b, "Date: %s\n", c.Date)
	fmt.Fprintf(&b, "Content: %s\n", strings.TrimSpace(c.Content.Rendered))
	return b.String()
}

func formatUserList(users []wordpress.User) string {
	if len(users) == 0 {
		return "No users found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d users:\n", len(users))
	for _, u := range users {
		roles := ""
		if len(u.Roles) > 0 {
			roles = " (" + strings.Join(u.Roles, ", ") + ")"
		}
		fmt.Fprintf(&b, "- #%d %s%s\n", u.ID, u.Name, roles)
	}
	return b.String()
}

func formatUser(u *wordpress.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User #%d: %s\n", u.ID, u.Name)
	if u.Username != "" {
		fmt.Fprintf(&b, "Username: %s\n", u.Username)
	}
	if u.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", u.Email)
	}
	if len(u.Roles) > 0 {
		fmt.Fprintf(&b, "Roles: %s\n", strings.Join(u.Roles, ", "))
	}
	return b.String()
}

func formatCategoryList(categories []wordpress.Category) string {
	if len(categories) == 0 {
		return "No categories found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d categories:\n", len(categories))
	for _, c := range categories {
		fmt.Fprintf(&b, "- #%d %s (%d posts)\n", c.ID, c.Name, c.Count)
	}
	return b.String()
}

func formatCategory(c *wordpress.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Category #%d: %s\n", c.ID, c.Name)
	fmt.Fprintf(&b, "Slug: %s\n", c.Slug)
	if c.Parent != 0 {
		fmt.Fprintf(&b, "Parent: #%d\n", c.Parent)
	}
	if c.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", c.Description)
	}
	fmt.Fprintf(&b, "Posts: %d\n", c.Count)
	return b.String()
}

func formatTagList(tags []wordpress.Tag) string {
	if len(tags) == 0 {
		return "No tags found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d tags:\n", len(tags))
	for _, tag := range tags {
		fmt.Fprintf(&b, "- #%d %s (%d posts)\n", tag.ID, tag.Name, tag.Count)
	}
	return b.String()
}

func formatTag(t *wordpress.Tag) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tag #%d: %s\n", t.ID, t.Name)
	fmt.Fprintf(&b, "Slug: %s\n", t.Slug)
	if t.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", t.Description)
	}
	fmt.Fprintf(&b, "Posts: %d\n", t.Count)
	return b.String()
}

func formatSettings(s *wordpress.Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Site: %s\n", s.Title)
	fmt.Fprintf(&b, "Tagline: %s\n", s.Description)
	fmt.Fprintf(&b, "URL: %s\n", s.URL)
	fmt.Fprintf(&b, "Admin email: %s\n", s.Email)
	fmt.Fprintf(&b, "Timezone: %s\n", s.Timezone)
	fmt.Fprintf(&b, "Language: %s\n", s.Language)
	fmt.Fprintf(&b, "Posts per page: %d\n", s.PostsPerPage)
	return b.String()
}
