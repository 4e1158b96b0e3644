package reddit

// Post is a single search result, flattened from Reddit's listing envelope.
type Post struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Subreddit    string `json:"subreddit"`
	SelfText     string `json:"selftext"`
	SelfTextHTML string `json:"selftext_html,omitempty"`
	Author       string `json:"author"`
	Ups          int    `json:"ups"`
	CreatedUTC   int64  `json:"created_utc"`
	Domain       string `json:"domain"`
	URL          string `json:"url"`
	Archived     bool   `json:"archived"`
	Permalink    string `json:"permalink"`
	VideoURL     string `json:"video_url,omitempty"`
}

// Comment is the top comment of a post.
type Comment struct {
	Author     string `json:"author"`
	Body       string `json:"body"`
	Ups        int    `json:"ups"`
	CreatedUTC int64  `json:"created_utc"`
}

// SearchQuery describes one post search.
type SearchQuery struct {
	Title        string
	Platform     string
	MatchExactly bool
	Limit        int
}

type listing struct {
	Data struct {
		Children []struct {
			Data wirePost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type wirePost struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Subreddit    string  `json:"subreddit"`
	Selftext     string  `json:"selftext"`
	SelftextHTML string  `json:"selftext_html"`
	Author       string  `json:"author"`
	Ups          int     `json:"ups"`
	CreatedUTC   float64 `json:"created_utc"`
	Domain       string  `json:"domain"`
	URL          string  `json:"url"`
	Permalink    string  `json:"permalink"`
	Archived     bool    `json:"archived"`
	Stickied     bool    `json:"stickied"`
	Media        struct {
		RedditVideo struct {
			FallbackURL string `json:"fallback_url"`
		} `json:"reddit_video"`
	} `json:"media"`
}

func (w wirePost) toPost() Post {
	return Post{
		ID:           w.ID,
		Title:        w.Title,
		Subreddit:    w.Subreddit,
		SelfText:     w.Selftext,
		SelfTextHTML: w.SelftextHTML,
		Author:       w.Author,
		Ups:          w.Ups,
		CreatedUTC:   int64(w.CreatedUTC),
		Domain:       w.Domain,
		URL:          w.URL,
		Archived:     w.Archived,
		Permalink:    w.Permalink,
		VideoURL:     w.Media.RedditVideo.FallbackURL,
	}
}

// commentListing decodes the second element of the /comments response,
// which holds the post's comments sorted by the requested order.
type commentListing struct {
	Data struct {
		Children []struct {
			Data wireComment `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type wireComment struct {
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	Ups        int     `json:"ups"`
	CreatedUTC float64 `json:"created_utc"`
	Stickied   bool    `json:"stickied"`
}
