package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpin "callcenter/internal/adapters/in/http"
	"callcenter/internal/adapters/out/membercache"
	"callcenter/internal/adapters/out/postgres"
	"callcenter/internal/adapters/out/postgres/memberrepo"
	"callcenter/internal/core/application/usecases/commands"
	"callcenter/internal/core/application/usecases/queries"
	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/member"
	"callcenter/internal/core/ports"
	"callcenter/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	members     *memberrepo.GormMemberDirectory
	memberCache *membercache.CachedMemberDirectory
	redisClient *redis.Client
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}

	root := CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		members:    memberrepo.NewGormMemberDirectory(gormDB),
		logger:     logger,
	}

	if config.RedisAddr != "" {
		root.redisClient = membercache.NewClient(config.RedisAddr)
		root.memberCache = membercache.NewCachedMemberDirectory(
			root.members, root.redisClient, config.MemberCacheTTL, config.ServiceName, logger,
		)
	}

	return root
}

func (c *CompositionRoot) MemberDirectory() ports.MemberDirectory {
	if c.memberCache != nil {
		return c.memberCache
	}
	return c.members
}

func (c *CompositionRoot) CreateCreateSessionCommandHandler() commands.CreateSessionCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateSessionCommandHandler(f)
}

func (c *CompositionRoot) CreateLookupMemberCommandHandler() commands.LookupMemberCommandHandler {
	var f commands.SessionUoWFactory = FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewLookupMemberCommandHandler(f, c.MemberDirectory())
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetSessionQueryHandler() queries.GetSessionQueryHandler {
	return queries.NewGetSessionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAuditSessionsQueryHandler() queries.AuditSessionsQueryHandler {
	return queries.NewAuditSessionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateSessionCommandHandler(),
		c.CreateGetSessionQueryHandler(),
		c.CreateLookupMemberCommandHandler(),
		c.CreateSubmitOrderCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return httpin.NewRouter(c.CreateHTTPServer(), c.config.ServiceName, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAuditSessionsQueryHandler(), c.config.AuditSchedule, c.logger)
}

// SeedMembers upserts the members and drops their cached entries so
// renamed or deactivated members are not served stale.
func (c *CompositionRoot) SeedMembers(ctx context.Context, members ...*member.Member) error {
	if err := c.members.Seed(ctx, members...); err != nil {
		return err
	}

	if c.memberCache == nil {
		return nil
	}

	numbers := make([]kernel.DigitCode, 0, len(members))
	for _, m := range members {
		numbers = append(numbers, m.Number())
	}
	if err := c.memberCache.Invalidate(ctx, numbers...); err != nil {
		c.logger.WarnContext(ctx, "member cache invalidation failed", "error", err)
	}

	return nil
}

// CheckCache reports whether the member cache is reachable. A missing
// cache is not an error; lookups then go straight to the database.
func (c *CompositionRoot) CheckCache(ctx context.Context) error {
	if c.redisClient == nil {
		return nil
	}
	return c.redisClient.Ping(ctx).Err()
}

func (c *CompositionRoot) Close() error {
	var errList []error

	if c.redisClient != nil {
		errList = append(errList, c.redisClient.Close())
	}

	if c.gormDB != nil {
		sqlDB, err := c.gormDB.DB()
		if err != nil {
			errList = append(errList, err)
		} else {
			errList = append(errList, sqlDB.Close())
		}
	}

	return errors.Join(errList...)
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
