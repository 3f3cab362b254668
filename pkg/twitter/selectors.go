package twitter

// X.com DOM selectors.
// Isolated here because X changes their DOM frequently; update these
// when extraction breaks.
const (
	// TweetText matches the text body of a rendered tweet
	TweetText = `[data-testid="tweetText"]`

	// FeedContainer is the column that holds search results
	FeedContainer = `[data-testid="primaryColumn"]`

	// HomeIndicator is present only when the session is logged in
	HomeIndicator = `[data-testid="SideNav_NewTweet_Button"]`
)
