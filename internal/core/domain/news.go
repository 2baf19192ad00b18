package domain

type NewsScope string

const (
	NewsScopeIndia  NewsScope = "india"
	NewsScopeGlobal NewsScope = "global"
)

type NewsQuery struct {
	Topic string
	Scope NewsScope
	Max   int
}

type NewsSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type NewsArticle struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	URL         string     `json:"url"`
	Image       string     `json:"image"`
	PublishedAt string     `json:"publishedAt"`
	Source      NewsSource `json:"source"`
}
