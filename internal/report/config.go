package report

import "time"

// Config holds report transport settings.
type Config struct {
	Endpoint     string        // full URL of the report endpoint
	Timeout      time.Duration // per-request timeout
	Offline      bool          // use the fixture transport instead of HTTP
	FixtureDelay time.Duration // simulated latency of the fixture transport
}

// DefaultConfig returns a Config with sensible defaults. The endpoint is
// empty, which selects the fixture transport.
func DefaultConfig() Config {
	return Config{
		Timeout:      15 * time.Second,
		FixtureDelay: 2200 * time.Millisecond,
	}
}

// UseFixture reports whether the fixture transport should serve requests.
func (c Config) UseFixture() bool {
	return c.Offline || c.Endpoint == ""
}
