// Package manifest fetches and filters per-page widget manifests.
//
// Components:
//   - Client: POSTs the page-info request to the embed service with
//     rate limiting and circuit breaker protection
//   - FilterForPosition: pure filter/sort of manifest entries for one
//     placement slot
//
// Error taxonomy:
//   - NetworkError: transport failure or non-2xx status
//   - DecodingError: response body does not match the manifest shape
//
// The client performs no application-level retries; a failed fetch is
// reported to the caller, which decides whether to try again. Retry at
// the transport level (connection resets, 5xx) is handled inside the
// retryablehttp transport.
package manifest
