// Package clock provides the logical tick counter and the process-wide
// stamp-serial/nar-id generator threaded through the reasoning core.
//
// Per spec §9 ("Global mutable state"), the clock and serial counter are
// modeled as a single context object rather than package-level singletons,
// so tests can construct an isolated Context and get deterministic
// behaviour by seeding its random source.
package clock

import "math/rand"

// Eternal is the sentinel occurrence time marking an atemporal sentence.
const Eternal = -1 << 31 // INT32_MIN

// Context bundles the logical clock and the evidence-serial/nar-id
// generator that every new Stamp consults.
type Context struct {
	now    int64
	serial int64
	rng    *rand.Rand
	narID  int64
}

// New creates a Context starting at logical time 0, seeded from the given
// seed for reproducible nar-id generation (spec §9 "Randomness").
func New(seed int64) *Context {
	r := rand.New(rand.NewSource(seed))
	return &Context{
		rng:   r,
		narID: int64(r.Uint64()),
	}
}

// Now returns the current logical time.
func (c *Context) Now() int64 {
	return c.now
}

// Tick advances the logical clock by exactly one and returns the new time.
func (c *Context) Tick() int64 {
	c.now++
	return c.now
}

// NextSerial returns the next monotonically increasing input-serial,
// used as the second half of a Stamp evidence-base entry.
func (c *Context) NextSerial() int64 {
	c.serial++
	return c.serial
}

// NarID returns this context's randomly sampled signed 64-bit identifier —
// fixed for the lifetime of the Context, identifying "this NARS instance" —
// mixed into every new Stamp's evidence-base entry alongside the serial.
func (c *Context) NarID() int64 {
	return c.narID
}
