// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Per-IP token buckets. Three tiers cover this API's surfaces: a general
// tier for browsing, search and listing reads; a tight auth tier so
// credential stuffing against /signup and /login burns out quickly; and an
// upload tier because image and document uploads are the most expensive
// requests served here.

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		burst:   burst,
	}
	go l.sweep()
	return l
}

// sweep drops buckets idle for five minutes so the map stays bounded by
// recent traffic rather than lifetime unique IPs.
func (l *ipLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		for ip, c := range l.clients {
			if time.Since(c.lastSeen) > 5*time.Minute {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()

	return c.limiter.Allow()
}

func (l *ipLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please slow down and try again",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

var (
	// Browsing, search and the rest of the read surface.
	generalLimiter = newIPLimiter(rate.Limit(20), 40)

	// Signup and login attempts: 5 quick tries, then one every 12 seconds.
	authLimiter = newIPLimiter(rate.Every(12*time.Second), 5)

	// Image, ownership-document and contract-document uploads.
	uploadLimiter = newIPLimiter(rate.Every(6*time.Second), 10)
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.middleware()
}

func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.middleware()
}

func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.middleware()
}
