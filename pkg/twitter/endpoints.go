package twitter

import (
	"fmt"
	"net/url"
)

const (
	// BaseURL is the X/Twitter web origin
	BaseURL = "https://twitter.com"
	// LoginURL is the interactive login page
	LoginURL = BaseURL + "/login"
)

// SearchURL builds the live-search URL for a keyword with a language
// filter and inclusive date bounds. The resulting query uses the
// search operators the web client understands:
//
//	<keyword> lang:<lang> since:<start> until:<end>
func SearchURL(keyword, lang, since, until string) string {
	q := fmt.Sprintf("%s lang:%s since:%s until:%s", keyword, lang, since, until)

	params := url.Values{}
	params.Set("q", q)
	params.Set("src", "typed_query")
	params.Set("f", "live")

	return BaseURL + "/search?" + params.Encode()
}
