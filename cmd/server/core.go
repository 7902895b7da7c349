package main

import (
	"database/sql"
	"net/http"

	"prodauth/internal/custody"
	"prodauth/internal/identity"
	"prodauth/internal/manufacturer"
	"prodauth/internal/ownership"
	platformredis "prodauth/internal/platform/redis"
	"prodauth/internal/product"
	"prodauth/internal/verify"
)

// registryCore bundles the wired services for adapters to embed and backs the
// ops endpoints.
type registryCore struct {
	Authenticator *identity.Authenticator
	Manufacturers *manufacturer.Service
	Products      *product.Service
	Ownership     *ownership.Service
	Custody       *custody.Service
	Verify        *verify.Service

	db    *sql.DB
	redis *platformredis.Client
}

func (c *registryCore) healthz(w http.ResponseWriter, r *http.Request) {
	if c.db != nil {
		if err := c.db.PingContext(r.Context()); err != nil {
			http.Error(w, "postgres unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	if c.redis != nil {
		if err := c.redis.Health(r.Context()); err != nil {
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
