// Package browser owns the Chromium session driven through rod.
//
// A Session launches one browser, opens one page, and exposes the
// small surface the collector needs: navigation, tweet text
// extraction, page height reads, and scrolling. Login works either by
// injecting stored auth_token/ct0 cookies or, when no cookies are
// available, by opening a visible window and waiting for the user to
// log in. Stealth fingerprint masking is injected before the first
// navigation when enabled.
package browser
