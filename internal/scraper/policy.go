package scraper

import (
	"math/rand/v2"
	"time"
)

// DefaultDelay is slept before every request.
const DefaultDelay = 500 * time.Millisecond

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36 Edg/135.0.0.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:138.0) Gecko/20100101 Firefox/138.0",
	"Opera/9.80 (X11; Linux i686; Ubuntu/14.10) Presto/2.12.388 Version/12.16.2",
}

// FetchPolicy decides the user agent and courtesy delay of each request.
type FetchPolicy struct {
	UserAgent func() string
	Delay     func() time.Duration
}

// DefaultPolicy picks a random desktop browser agent per request and waits delay
// before it. A non-positive delay means DefaultDelay.
func DefaultPolicy(delay time.Duration) FetchPolicy {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return FetchPolicy{
		UserAgent: func() string {
			return userAgents[rand.IntN(len(userAgents))]
		},
		Delay: func() time.Duration { return delay },
	}
}

// NoDelayPolicy sends a fixed agent without waiting. Intended for tests.
func NoDelayPolicy(agent string) FetchPolicy {
	return FetchPolicy{
		UserAgent: func() string { return agent },
		Delay:     func() time.Duration { return 0 },
	}
}

func (p FetchPolicy) userAgent() string {
	if p.UserAgent == nil {
		return userAgents[0]
	}
	return p.UserAgent()
}

func (p FetchPolicy) delay() time.Duration {
	if p.Delay == nil {
		return 0
	}
	return p.Delay()
}
