package deps

import (
	"time"

	"github.com/joa2pac/conexa-star-wars-api/internal/auth"
	"github.com/joa2pac/conexa-star-wars-api/internal/cognito"
	"github.com/joa2pac/conexa-star-wars-api/internal/repos"
	moviesync "github.com/joa2pac/conexa-star-wars-api/internal/sync"
	"github.com/joa2pac/conexa-star-wars-api/pkg/cache"
)

// ServerDeps holds the dependencies required by handlers and server.
type ServerDeps struct {
	Repo    *repos.Repository
	Sync    *moviesync.Service
	Cognito *cognito.Service
	Cache   cache.Cache
	Auth    *auth.Verifier

	Name      string
	StartedAt time.Time
}
