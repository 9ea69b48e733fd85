package tools

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/docdyhr/mcp-wordpress-sub005/pkg/wordpress"
)

// Toolset binds the WordPress tool vocabulary to one or more site clients.
// Every tool accepts an optional "site" parameter selecting the target site;
// it defaults to the toolset's default site.
type Toolset struct {
	clients     map[string]*wordpress.Client
	defaultSite string
}

func NewToolset(clients map[string]*wordpress.Client, defaultSite string) *Toolset {
	return &Toolset{clients: clients, defaultSite: defaultSite}
}

func (ts *Toolset) client(params map[string]any) (*wordpress.Client, error) {
	site, err := optionalString(params, "site")
	if err != nil {
		return nil, err
	}
	if site == "" {
		site = ts.defaultSite
	}
	c, ok := ts.clients[site]
	if !ok {
		return nil, fmt.Errorf("unknown site %q", site)
	}
	return c, nil
}

// Register adds the full WordPress toolset to reg.
func (ts *Toolset) Register(reg *Registry) error {
	all := []Tool{
		{Name: "wp_list_posts", Description: "List posts, filterable by search, status, author, categories and tags", Handler: ts.listPosts},
		{Name: "wp_get_post", Description: "Get a single post by id", Handler: ts.getPost},
		{Name: "wp_create_post", Description: "Create a post", Handler: ts.createPost},
		{Name: "wp_update_post", Description: "Update a post by id", Handler: ts.updatePost},
		{Name: "wp_delete_post", Description: "Trash or force-delete a post by id", Handler: ts.deletePost},
		{Name: "wp_list_pages", Description: "List pages", Handler: ts.listPages},
		{Name: "wp_get_page", Description: "Get a single page by id", Handler: ts.getPage},
		{Name: "wp_create_page", Description: "Create a page", Handler: ts.createPage},
		{Name: "wp_update_page", Description: "Update a page by id", Handler: ts.updatePage},
		{Name: "wp_delete_page", Description: "Trash or force-delete a page by id", Handler: ts.deletePage},
		{Name: "wp_list_media", Description: "List media library items", Handler: ts.listMedia},
		{Name: "wp_get_media", Description: "Get a media item by id", Handler: ts.getMedia},
		{Name: "wp_upload_media", Description: "Upload a file to the media library (base64 data)", Handler: ts.uploadMedia},
		{Name: "wp_update_media", Description: "Update media metadata by id", Handler: ts.updateMedia},
		{Name: "wp_delete_media", Description: "Delete a media item by id", Handler: ts.deleteMedia},
		{Name: "wp_list_comments", Description: "List comments, filterable by post and status", Handler: ts.listComments},
		{Name: "wp_get_comment", Description: "Get a comment by id", Handler: ts.getComment},
		{Name: "wp_create_comment", Description: "Create a comment on a post", Handler: ts.createComment},
		{Name: "wp_update_comment", Description: "Update a comment's content or status", Handler: ts.updateComment},
		{Name: "wp_delete_comment", Description: "Trash or force-delete a comment", Handler: ts.deleteComment},
		{Name: "wp_list_users", Description: "List users", Handler: ts.listUsers},
		{Name: "wp_get_user", Description: "Get a user by id", Handler: ts.getUser},
		{Name: "wp_create_user", Description: "Create a user", Handler: ts.createUser},
		{Name: "wp_update_user", Description: "Update a user by id", Handler: ts.updateUser},
		{Name: "wp_delete_user", Description: "Delete a user, reassigning their content", Handler: ts.deleteUser},
		{Name: "wp_current_user", Description: "Show the authenticated user", Handler: ts.currentUser},
		{Name: "wp_list_categories", Description: "List categories", Handler: ts.listCategories},
		{Name: "wp_get_category", Description: "Get a category by id", Handler: ts.getCategory},
		{Name: "wp_create_category", Description: "Create a category", Handler: ts.createCategory},
		{Name: "wp_update_category", Description: "Update a category by id", Handler: ts.updateCategory},
		{Name: "wp_delete_category", Description: "Delete a category by id", Handler: ts.deleteCategory},
		{Name: "wp_list_tags", Description: "List tags", Handler: ts.listTags},
		{Name: "wp_get_tag", Description: "Get a tag by id", Handler: ts.getTag},
		{Name: "wp_create_tag", Description: "Create a tag", Handler: ts.createTag},
		{Name: "wp_update_tag", Description: "Update a tag by id", Handler: ts.updateTag},
		{Name: "wp_delete_tag", Description: "Delete a tag by id", Handler: ts.deleteTag},
		{Name: "wp_get_settings", Description: "Show site settings", Handler: ts.getSettings},
		{Name: "wp_update_settings", Description: "Update site settings", Handler: ts.updateSettings},
	}
	for _, t := range all {
		if err := reg.Register(t); err != nil {
			return err
		}
	}
	return nil
}

func (ts *Toolset) listPosts(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	opts := wordpress.ListPostsOptions{}
	if opts.Page, err = optionalInt(params, "page"); err != nil {
		return "", err
	}
	if opts.PerPage, err = optionalInt(params, "per_page"); err != nil {
		return "", err
	}
	if opts.Search, err = optionalString(params, "search"); err != nil {
		return "", err
	}
	if opts.Status, err = optionalString(params, "status"); err != nil {
		return "", err
	}
	if opts.Author, err = optionalInt(params, "author"); err != nil {
		return "", err
	}
	if opts.Categories, err = optionalIntSlice(params, "categories"); err != nil {
		return "", err
	}
	if opts.Tags, err = optionalIntSlice(params, "tags"); err != nil {
		return "", err
	}
	posts, err := c.ListPosts(ctx, opts)
	if err != nil {
		return "", err
	}
	return formatPostList(posts), nil
}

func (ts *Toolset) getPost(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	post, err := c.GetPost(ctx, id)
	if err != nil {
		return "", err
	}
	return formatPost(post), nil
}

func postRequestFromParams(params map[string]any) (wordpress.PostRequest, error) {
	var req wordpress.PostRequest
	var err error
	if req.Title, err = optionalString(params, "title"); err != nil {
		return req, err
	}
	if req.Content, err = optionalString(params, "content"); err != nil {
		return req, err
	}
	if req.Excerpt, err = optionalString(params, "excerpt"); err != nil {
		return req, err
	}
	if req.Status, err = optionalString(params, "status"); err != nil {
		return req, err
	}
	if req.Slug, err = optionalString(params, "slug"); err != nil {
		return req, err
	}
	if req.Author, err = optionalInt(params, "author"); err != nil {
		return req, err
	}
	if req.Categories, err = optionalIntSlice(params, "categories"); err != nil {
		return req, err
	}
	if req.Tags, err = optionalIntSlice(params, "tags"); err != nil {
		return req, err
	}
	return req, nil
}

func (ts *Toolset) createPost(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	req, err := postRequestFromParams(params)
	if err != nil {
		return "", err
	}
	if req.Title == "" {
		return "", fmt.Errorf("missing required parameter %q", "title")
	}
	post, err := c.CreatePost(ctx, req)
	if err != nil {
		return "", err
	}
	return "Created post:\n" + formatPost(post), nil
}

func (ts *Toolset) updatePost(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	req, err := postRequestFromParams(params)
	if err != nil {
		return "", err
	}
	post, err := c.UpdatePost(ctx, id, req)
	if err != nil {
		return "", err
	}
	return "Updated post:\n" + formatPost(post), nil
}

func (ts *Toolset) deletePost(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	force, err := optionalBool(params, "force")
	if err != nil {
		return "", err
	}
	post, err := c.DeletePost(ctx, id, force)
	if err != nil {
		return "", err
	}
	if force {
		return fmt.Sprintf("Permanently deleted post #%d (%s).", post.ID, post.Title.Rendered), nil
	}
	return fmt.Sprintf("Moved post #%d (%s) to trash.", post.ID, post.Title.Rendered), nil
}

func (ts *Toolset) listPages(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	opts := wordpress.ListPagesOptions{}
	if opts.Page, err = optionalInt(params, "page"); err != nil {
		return "", err
	}
	if opts.PerPage, err = optionalInt(params, "per_page"); err != nil {
		return "", err
	}
	if opts.Search, err = optionalString(params, "search"); err != nil {
		return "", err
	}
	if opts.Status, err = optionalString(params, "status"); err != nil {
		return "", err
	}
	if opts.Parent, err = optionalInt(params, "parent"); err != nil {
		return "", err
	}
	pages, err := c.ListPages(ctx, opts)
	if err != nil {
		return "", err
	}
	return formatPageList(pages), nil
}

func (ts *Toolset) getPage(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	page, err := c.GetPage(ctx, id)
	if err != nil {
		return "", err
	}
	return formatPage(page), nil
}

func pageRequestFromParams(params map[string]any) (wordpress.PageRequest, error) {
	var req wordpress.PageRequest
	var err error
	if req.Title, err = optionalString(params, "title"); err != nil {
		return req, err
	}
	if req.Content, err = optionalString(params, "content"); err != nil {
		return req, err
	}
	if req.Status, err = optionalString(params, "status"); err != nil {
		return req, err
	}
	if req.Slug, err = optionalString(params, "slug"); err != nil {
		return req, err
	}
	if req.Parent, err = optionalInt(params, "parent"); err != nil {
		return req, err
	}
	return req, nil
}

func (ts *Toolset) createPage(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	req, err := pageRequestFromParams(params)
	if err != nil {
		return "", err
	}
	if req.Title == "" {
		return "", fmt.Errorf("missing required parameter %q", "title")
	}
	page, err := c.CreatePage(ctx, req)
	if err != nil {
		return "", err
	}
	return "Created page:\n" + formatPage(page), nil
}

func (ts *Toolset) updatePage(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	req, err := pageRequestFromParams(params)
	if err != nil {
		return "", err
	}
	page, err := c.UpdatePage(ctx, id, req)
	if err != nil {
		return "", err
	}
	return "Updated page:\n" + formatPage(page), nil
}

func (ts *Toolset) deletePage(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	force, err := optionalBool(params, "force")
	if err != nil {
		return "", err
	}
	page, err := c.DeletePage(ctx, id, force)
	if err != nil {
		return "", err
	}
	if force {
		return fmt.Sprintf("Permanently deleted page #%d (%s).", page.ID, page.Title.Rendered), nil
	}
	return fmt.Sprintf("Moved page #%d (%s) to trash.", page.ID, page.Title.Rendered), nil
}

func (ts *Toolset) listMedia(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	opts := wordpress.ListMediaOptions{}
	if opts.Page, err = optionalInt(params, "page"); err != nil {
		return "", err
	}
	if opts.PerPage, err = optionalInt(params, "per_page"); err != nil {
		return "", err
	}
	if opts.Search, err = optionalString(params, "search"); err != nil {
		return "", err
	}
	if opts.MediaType, err = optionalString(params, "media_type"); err != nil {
		return "", err
	}
	items, err := c.ListMedia(ctx, opts)
	if err != nil {
		return "", err
	}
	return formatMediaList(items), nil
}

func (ts *Toolset) getMedia(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	item, err := c.GetMedia(ctx, id)
	if err != nil {
		return "", err
	}
	return formatMedia(item), nil
}

func (ts *Toolset) uploadMedia(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	filename, err := stringParam(params, "filename")
	if err != nil {
		return "", err
	}
	contentType, err := stringParam(params, "content_type")
	if err != nil {
		return "", err
	}
	encoded, err := stringParam(params, "data")
	if err != nil {
		return "", err
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("parameter %q must be base64-encoded: %w", "data", err)
	}
	item, err := c.UploadMedia(ctx, filename, contentType, data)
	if err != nil {
		return "", err
	}
	return "Uploaded media:\n" + formatMedia(item), nil
}

func (ts *Toolset) updateMedia(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	var req wordpress.UpdateMediaRequest
	if req.Title, err = optionalString(params, "title"); err != nil {
		return "", err
	}
	if req.AltText, err = optionalString(params, "alt_text"); err != nil {
		return "", err
	}
	if req.Caption, err = optionalString(params, "caption"); err != nil {
		return "", err
	}
	item, err := c.UpdateMedia(ctx, id, req)
	if err != nil {
		return "", err
	}
	return "Updated media:\n" + formatMedia(item), nil
}

func (ts *Toolset) deleteMedia(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	item, err := c.DeleteMedia(ctx, id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted media #%d (%s).", item.ID, item.Title.Rendered), nil
}

func (ts *Toolset) listComments(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	opts := wordpress.ListCommentsOptions{}
	if opts.Page, err = optionalInt(params, "page"); err != nil {
		return "", err
	}
	if opts.PerPage, err = optionalInt(params, "per_page"); err != nil {
		return "", err
	}
	if opts.Post, err = optionalInt(params, "post"); err != nil {
		return "", err
	}
	if opts.Status, err = optionalString(params, "status"); err != nil {
		return "", err
	}
	comments, err := c.ListComments(ctx, opts)
	if err != nil {
		return "", err
	}
	return formatCommentList(comments), nil
}

func (ts *Toolset) getComment(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	comment, err := c.GetComment(ctx, id)
	if err != nil {
		return "", err
	}
	return formatComment(comment), nil
}

func (ts *Toolset) createComment(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	var req wordpress.CreateCommentRequest
	if req.Post, err = intParam(params, "post"); err != nil {
		return "", err
	}
	if req.Content, err = stringParam(params, "content"); err != nil {
		return "", err
	}
	if req.Parent, err = optionalInt(params, "parent"); err != nil {
		return "", err
	}
	if req.AuthorName, err = optionalString(params, "author_name"); err != nil {
		return "", err
	}
	if req.AuthorEmail, err = optionalString(params, "author_email"); err != nil {
		return "", err
	}
	comment, err := c.CreateComment(ctx, req)
	if err != nil {
		return "", err
	}
	return "Created comment:\n" + formatComment(comment), nil
}

func (ts *Toolset) updateComment(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	var req wordpress.UpdateCommentRequest
	if req.Content, err = optionalString(params, "content"); err != nil {
		return "", err
	}
	if req.Status, err = optionalString(params, "status"); err != nil {
		return "", err
	}
	comment, err := c.UpdateComment(ctx, id, req)
	if err != nil {
		return "", err
	}
	return "Updated comment:\n" + formatComment(comment), nil
}

func (ts *Toolset) deleteComment(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	force, err := optionalBool(params, "force")
	if err != nil {
		return "", err
	}
	comment, err := c.DeleteComment(ctx, id, force)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted comment #%d.", comment.ID), nil
}

func (ts *Toolset) listUsers(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	opts := wordpress.ListUsersOptions{}
	if opts.Page, err = optionalInt(params, "page"); err != nil {
		return "", err
	}
	if opts.PerPage, err = optionalInt(params, "per_page"); err != nil {
		return "", err
	}
	if opts.Search, err = optionalString(params, "search"); err != nil {
		return "", err
	}
	users, err := c.ListUsers(ctx, opts)
	if err != nil {
		return "", err
	}
	return formatUserList(users), nil
}

func (ts *Toolset) getUser(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	user, err := c.GetUser(ctx, id)
	if err != nil {
		return "", err
	}
	return formatUser(user), nil
}

func (ts *Toolset) createUser(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	var req wordpress.CreateUserRequest
	if req.Username, err = stringParam(params, "username"); err != nil {
		return "", err
	}
	if req.Email, err = stringParam(params, "email"); err != nil {
		return "", err
	}
	if req.Password, err = stringParam(params, "password"); err != nil {
		return "", err
	}
	if req.Name, err = optionalString(params, "name"); err != nil {
		return "", err
	}
	if req.Roles, err = optionalStringSlice(params, "roles"); err != nil {
		return "", err
	}
	user, err := c.CreateUser(ctx, req)
	if err != nil {
		return "", err
	}
	return "Created user:\n" + formatUser(user), nil
}

func (ts *Toolset) updateUser(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	var req wordpress.UpdateUserRequest
	if req.Name, err = optionalString(params, "name"); err != nil {
		return "", err
	}
	if req.Email, err = optionalString(params, "email"); err != nil {
		return "", err
	}
	if req.Description, err = optionalString(params, "description"); err != nil {
		return "", err
	}
	if req.Roles, err = optionalStringSlice(params, "roles"); err != nil {
		return "", err
	}
	user, err := c.UpdateUser(ctx, id, req)
	if err != nil {
		return "", err
	}
	return "Updated user:\n" + formatUser(user), nil
}

func (ts *Toolset) deleteUser(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	reassign, err := intParam(params, "reassign")
	if err != nil {
		return "", err
	}
	user, err := c.DeleteUser(ctx, id, reassign)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted user #%d (%s); content reassigned to #%d.", user.ID, user.Name, reassign), nil
}

func (ts *Toolset) currentUser(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	return formatUser(user), nil
}

func (ts *Toolset) listCategories(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	opts := wordpress.ListTermsOptions{}
	if opts.Search, err = optionalString(params, "search"); err != nil {
		return "", err
	}
	if opts.PerPage, err = optionalInt(params, "per_page"); err != nil {
		return "", err
	}
	categories, err := c.ListCategories(ctx, opts)
	if err != nil {
		return "", err
	}
	return formatCategoryList(categories), nil
}

func (ts *Toolset) createCategory(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	var req wordpress.CategoryRequest
	if req.Name, err = stringParam(params, "name"); err != nil {
		return "", err
	}
	if req.Description, err = optionalString(params, "description"); err != nil {
		return "", err
	}
	if req.Parent, err = optionalInt(params, "parent"); err != nil {
		return "", err
	}
	category, err := c.CreateCategory(ctx, req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Created category #%d (%s).", category.ID, category.Name), nil
}

func (ts *Toolset) getCategory(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	category, err := c.GetCategory(ctx, id)
	if err != nil {
		return "", err
	}
	return formatCategory(category), nil
}

func (ts *Toolset) updateCategory(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	var req wordpress.CategoryRequest
	if req.Name, err = optionalString(params, "name"); err != nil {
		return "", err
	}
	if req.Description, err = optionalString(params, "description"); err != nil {
		return "", err
	}
	if req.Parent, err = optionalInt(params, "parent"); err != nil {
		return "", err
	}
	category, err := c.UpdateCategory(ctx, id, req)
	if err != nil {
		return "", err
	}
	return "Updated category:\n" + formatCategory(category), nil
}

func (ts *Toolset) deleteCategory(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	category, err := c.DeleteCategory(ctx, id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted category #%d (%s).", category.ID, category.Name), nil
}

func (ts *Toolset) listTags(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	opts := wordpress.ListTermsOptions{}
	if opts.Search, err = optionalString(params, "search"); err != nil {
		return "", err
	}
	if opts.PerPage, err = optionalInt(params, "per_page"); err != nil {
		return "", err
	}
	tags, err := c.ListTags(ctx, opts)
	if err != nil {
		return "", err
	}
	return formatTagList(tags), nil
}

func (ts *Toolset) createTag(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	var req wordpress.TagRequest
	if req.Name, err = stringParam(params, "name"); err != nil {
		return "", err
	}
	if req.Description, err = optionalString(params, "description"); err != nil {
		return "", err
	}
	tag, err := c.CreateTag(ctx, req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Created tag #%d (%s).", tag.ID, tag.Name), nil
}

func (ts *Toolset) getTag(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	tag, err := c.GetTag(ctx, id)
	if err != nil {
		return "", err
	}
	return formatTag(tag), nil
}

func (ts *Toolset) updateTag(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	var req wordpress.TagRequest
	if req.Name, err = optionalString(params, "name"); err != nil {
		return "", err
	}
	if req.Description, err = optionalString(params, "description"); err != nil {
		return "", err
	}
	tag, err := c.UpdateTag(ctx, id, req)
	if err != nil {
		return "", err
	}
	return "Updated tag:\n" + formatTag(tag), nil
}

func (ts *Toolset) deleteTag(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	id, err := intParam(params, "id")
	if err != nil {
		return "", err
	}
	tag, err := c.DeleteTag(ctx, id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted tag #%d (%s).", tag.ID, tag.Name), nil
}

func (ts *Toolset) getSettings(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	settings, err := c.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	return formatSettings(settings), nil
}

func (ts *Toolset) updateSettings(ctx context.Context, params map[string]any) (string, error) {
	c, err := ts.client(params)
	if err != nil {
		return "", err
	}
	var req wordpress.UpdateSettingsRequest
	for key, target := range map[string]**string{
		"title":       &req.Title,
		"description": &req.Description,
		"timezone":    &req.Timezone,
		"language":    &req.Language,
	} {
		if _, ok := params[key]; !ok {
			continue
		}
		v, err := stringParam(params, key)
		if err != nil {
			return "", err
		}
		*target = &v
	}
	if _, ok := params["posts_per_page"]; ok {
		n, err := intParam(params, "posts_per_page")
		if err != nil {
			return "", err
		}
		req.PostsPerPage = &n
	}
	settings, err := c.UpdateSettings(ctx, req)
	if err != nil {
		return "", err
	}
	return "Updated settings:\n" + formatSettings(settings), nil
}
