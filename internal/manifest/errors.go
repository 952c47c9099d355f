package manifest

import "fmt"

// NetworkError reports a transport failure or a non-2xx response from
// the manifest endpoint.
type NetworkError struct {
	Status int // HTTP status, 0 when the request never completed
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("manifest fetch failed: status %d", e.Status)
	}
	return fmt.Sprintf("manifest fetch failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodingError reports a response body that does not parse against
// the expected manifest shape.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("manifest decode failed: %v", e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}
