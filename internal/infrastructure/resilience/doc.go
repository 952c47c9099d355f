/*
Package resilience provides a circuit breaker for outbound calls.

The breaker sits in front of the manifest endpoint so a flapping or
unreachable backend fails fast instead of tying up request goroutines.

# Usage

	breaker := resilience.New("manifest-fetch", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 10
		},
	})

	result, err := breaker.Execute(func() (interface{}, error) {
		return client.Call()
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
