/*
Package cache owns the per-page manifest cache and its in-flight
coalescing.

One manifest fetch runs per page URL at a time. The first caller to
observe an empty cache slot registers a loading marker and starts the
fetch in a detached goroutine; every concurrent caller for the same page
awaits that marker and then re-reads the cache, so all waiters observe
one consistent post-fetch snapshot. Fetch failures degrade to an empty
widget list and are retried by the next request.
*/
package cache
