// Package session provides the backends that keep one core.State per
// browser session.
//
// MemoryStore keeps states in process and is swept by the core janitor.
// RedisStore keeps them in redis with a sliding expiry, so several server
// instances can share sessions.
package session
