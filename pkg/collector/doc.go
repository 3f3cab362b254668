// Package collector implements the scroll-and-collect loop for one
// date window of the X live search timeline.
//
// The timeline renders lazily, so the loop alternates between reading
// the currently rendered tweet texts and scrolling to the bottom of
// the document:
//   - Extract every rendered tweet text and add it to an ordered set,
//     stopping exactly at the configured threshold
//   - Scroll to the bottom and sleep a randomized delay
//   - Compare the page height; an unchanged height counts as a stall
//
// Repeated stalls usually mean the feed has throttled or run dry, so
// after a configured number of consecutive stalls the loop takes one
// long randomized pause before trying again. A hard scroll cap turns
// windows with too few results into an IncompleteWindowError instead
// of an endless scroll.
//
// The collector only talks to the browser through the Driver
// interface, so tests can script page contents and heights without a
// real browser.
package collector
