package utils

import (
	"sync"
	"time"
)

// Logged-out tokens are kept until their natural expiry so they cannot be
// replayed. Expired entries are dropped lazily on lookup.
var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.RWMutex
)

func BlacklistToken(token string, expiry time.Time) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = expiry
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()

	expiry, exists := blacklistedTokens[token]
	if !exists {
		return false
	}
	if time.Now().After(expiry) {
		delete(blacklistedTokens, token)
		return false
	}
	return true
}
