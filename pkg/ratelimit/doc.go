// Package ratelimit paces search navigations so the scraper does not
// hammer X with rapid page loads.
//
// The token bucket refills to capacity after each period. The scraper
// takes one token per window navigation:
//
//	limiter := ratelimit.NewTokenBucket(6, time.Minute)
//	limiter.Wait()
//	// navigate
package ratelimit
