package wordpress

// Rendered is WordPress's {rendered, raw} text envelope. Raw is only present
// when the request is authenticated with edit context.
type Rendered struct {
	Rendered string `json:"rendered"`
	Raw      string `json:"raw,omitempty"`
}

type Post struct {
	ID         int      `json:"id"`
	Date       string   `json:"date"`
	Modified   string   `json:"modified"`
	Slug       string   `json:"slug"`
	Status     string   `json:"status"`
	Link       string   `json:"link"`
	Title      Rendered `json:"title"`
	Content    Rendered `json:"content"`
	Excerpt    Rendered `json:"excerpt"`
	Author     int      `json:"author"`
	Categories []int    `json:"categories"`
	Tags       []int    `json:"tags"`
}

type Page struct {
	ID       int      `json:"id"`
	Date     string   `json:"date"`
	Modified string   `json:"modified"`
	Slug     string   `json:"slug"`
	Status   string   `json:"status"`
	Link     string   `json:"link"`
	Title    Rendered `json:"title"`
	Content  Rendered `json:"content"`
	Parent   int      `json:"parent"`
	Author   int      `json:"author"`
}

type MediaItem struct {
	ID        int      `json:"id"`
	Date      string   `json:"date"`
	Slug      string   `json:"slug"`
	Link      string   `json:"link"`
	Title     Rendered `json:"title"`
	AltText   string   `json:"alt_text"`
	Caption   Rendered `json:"caption"`
	MediaType string   `json:"media_type"`
	MimeType  string   `json:"mime_type"`
	SourceURL string   `json:"source_url"`
}

type Comment struct {
	ID          int      `json:"id"`
	Post        int      `json:"post"`
	Parent      int      `json:"parent"`
	Author      int      `json:"author"`
	AuthorName  string   `json:"author_name"`
	AuthorEmail string   `json:"author_email,omitempty"`
	Date        string   `json:"date"`
	Content     Rendered `json:"content"`
	Status      string   `json:"status"`
	Link        string   `json:"link"`
}

type User struct {
	ID          int      `json:"id"`
	Username    string   `json:"username,omitempty"`
	Name        string   `json:"name"`
	Email       string   `json:"email,omitempty"`
	Slug        string   `json:"slug"`
	Roles       []string `json:"roles,omitempty"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
}

type Category struct {
	ID          int    `json:"id"`
	Count       int    `json:"count"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Parent      int    `json:"parent"`
	Link        string `json:"link"`
}

type Tag struct {
	ID          int    `json:"id"`
	Count       int    `json:"count"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type Settings struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	URL             string `json:"url"`
	Email           string `json:"email"`
	Timezone        string `json:"timezone_string"`
	DateFormat      string `json:"date_format"`
	TimeFormat      string `json:"time_format"`
	Language        string `json:"language"`
	PostsPerPage    int    `json:"posts_per_page"`
	DefaultCategory int    `json:"default_category"`
}

// Deleted is the envelope WordPress returns for force-deletes.
type Deleted[T any] struct {
	Deleted  bool `json:"deleted"`
	Previous T    `json:"previous"`
}
