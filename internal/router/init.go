package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/container"
	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	pginfra "github.com/AcasisDev/siteguard-hub/internal/infrastructure/postgres"
	"github.com/AcasisDev/siteguard-hub/internal/infrastructure/redisstore"
	"github.com/AcasisDev/siteguard-hub/internal/infrastructure/search"
	"github.com/AcasisDev/siteguard-hub/internal/infrastructure/whois"
	handlers "github.com/AcasisDev/siteguard-hub/internal/interface/http"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
	"github.com/AcasisDev/siteguard-hub/internal/router/modules"
	"github.com/AcasisDev/siteguard-hub/pkg/helpers"
)

const whoisCacheTTL = 6 * time.Hour

// Deps holds everything the HTTP modules are built from.
type Deps struct {
	Identity  *application.IdentityService
	Lifecycle *application.SessionLifecycle
	Auth      gin.HandlerFunc

	Websites    *application.WebsiteService
	Credentials *application.CredentialService
	Domains     *application.DomainService
	Servers     *application.ServerService
	Users       *application.UserService
	Dashboard   *application.DashboardService
	Profiles    *application.ProfileService

	// Detach unsubscribes the lifecycle from the identity service.
	Detach func()
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	log := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	roles := pginfra.NewRoleRepository(pool)
	websites := pginfra.NewWebsiteRepository(pool)
	activity := application.NewActivityRecorder(pginfra.NewActivityRepository(pool), log)

	var pub application.JobPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	identity := application.NewIdentityService(users, profiles, container.GetJWT(), rdb, pub, log)

	resolver := application.NewRoleResolver(roles, profiles, log, cfg.RoleLookupTimeout, cfg.AvatarBaseURL)
	states := redisstore.NewSessionStore(rdb, cfg.SessionTTL)
	states.LoadingTimeout = 3 * cfg.RoleLookupTimeout
	lifecycle := application.NewSessionLifecycle(states, resolver, log)
	detach := lifecycle.Attach(identity)

	var searcher application.WebsiteSearcher
	if es := container.GetES(); es != nil {
		idx := search.NewWebsiteIndex(es, cfg.ESWebsitesIndex)
		if err := idx.EnsureIndex(context.Background()); err != nil {
			log.WithError(err).Warn("website index unavailable; search falls back to the database")
		} else {
			searcher = idx
		}
	}

	var lookup application.WhoisLookup
	if cfg.WhoisTimeout > 0 {
		lookup = whois.NewCached(whois.NewClient(cfg.WhoisTimeout, log), rdb, whoisCacheTTL, log)
	}
	domains := application.NewDomainService(pginfra.NewDomainRepository(pool), websites, lookup, activity)

	return Deps{
		Identity:    identity,
		Lifecycle:   lifecycle,
		Auth:        middleware.Auth(identity, lifecycle, log),
		Websites:    application.NewWebsiteService(websites, searcher, activity, log),
		Credentials: application.NewCredentialService(pginfra.NewCredentialRepository(pool), websites, activity),
		Domains:     domains,
		Servers:     application.NewServerService(pginfra.NewServerRepository(pool), websites, activity),
		Users:       application.NewUserService(users, roles, profiles, activity, log),
		Dashboard:   application.NewDashboardService(pginfra.NewStatsRepository(pool), pginfra.NewActivityRepository(pool), domains),
		Profiles:    application.NewProfileService(profiles, container.GetGCS(), cfg.GCSBucket, log),
		Detach:      detach,
	}
}

// InitModules builds the application services and registers every HTTP
// module. It should be called once during startup; the returned func
// detaches the session lifecycle on shutdown.
func InitModules(r *Registry) func() {
	cfg := container.GetConfig()
	log := container.GetLogger()
	d := buildDeps()
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(d.Identity, d.Lifecycle, cookies, log, cfg.SignupRedirectURL), d.Auth))
	r.Add(modules.NewDashboardModule(handlers.NewDashboardHandler(d.Dashboard, log), d.Auth))
	r.Add(modules.NewResourceModule("/websites", access.ResourceWebsites,
		handlers.NewResourceHandler[entity.Website, application.WebsiteInput](d.Websites, "website", log), d.Auth))
	r.Add(modules.NewResourceModule("/credentials", access.ResourceCredentials,
		handlers.NewResourceHandler[entity.Credential, application.CredentialInput](d.Credentials, "credential", log), d.Auth))
	r.Add(modules.NewDomainModule(handlers.NewDomainHandler(d.Domains, log), d.Auth))
	r.Add(modules.NewResourceModule("/servers", access.ResourceServers,
		handlers.NewResourceHandler[entity.Server, application.ServerInput](d.Servers, "server", log), d.Auth))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(d.Users, log), d.Auth))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(d.Profiles, d.Lifecycle, log), d.Auth))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return d.Detach
}
