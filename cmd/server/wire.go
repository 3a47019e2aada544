//go:build wireinject
// +build wireinject

package main

import (
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/app"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/auth"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/category"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/certificate"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/contact"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/filestorage"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/firebase"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/home"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/jobs"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/middleware"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/logger"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/product"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/project"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/search"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/user"

	platformElasticsearch "github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/elasticsearch"

	"github.com/google/wire"
)

var platformSet = wire.NewSet(
	logger.New,
	provideDatabase,
	provideRedis,
	platformElasticsearch.NewClient,
	provideProductIndex,
	firebase.NewService,
	filestorage.NewFileStorageService,
	provideFormLimiter,
)

var sessionSet = wire.NewSet(
	auth.NewJWTService,
	wire.Bind(new(auth.TokenService), new(*auth.JWTService)),
	auth.NewRedisRefreshStore,
	wire.Bind(new(auth.RefreshStore), new(*auth.RedisRefreshStore)),
	auth.ProvideFirebaseAuth,
	auth.NewSessionManager,
	auth.NewCookieConfig,
	auth.NewCookieHelper,
	auth.NewService,
	wire.Bind(new(auth.Service), new(*auth.ServiceImplementation)),
	wire.Bind(new(auth.Profiles), new(*user.ServiceImplementation)),
	auth.NewHandler,

	user.NewGORMRepository,
	user.NewService,
	wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
	user.NewHandler,

	wire.Bind(new(middleware.SessionResolver), new(*auth.SessionManager)),
	wire.Bind(new(middleware.RoleSource), new(*user.ServiceImplementation)),
	wire.Struct(new(app.Edge), "*"),
	middleware.RequireSession,
)

var catalogSet = wire.NewSet(
	wire.Bind(new(filestorage.MediaStore), new(*filestorage.FileStorageService)),
	filestorage.NewHandler,

	category.NewGORMRepository,
	category.NewService,
	category.NewHandler,

	product.NewGORMRepository,
	product.NewService,
	wire.Bind(new(product.SearchIndex), new(*search.ProductIndex)),
	wire.Bind(new(product.Service), new(*product.ServiceImplementation)),
	product.NewHandler,

	project.NewGORMRepository,
	project.NewService,
	project.NewHandler,

	certificate.NewGORMRepository,
	certificate.NewService,
	certificate.NewHandler,

	contact.NewGORMRepository,
	contact.NewService,
	contact.NewHandler,

	home.NewService,
	wire.Bind(new(home.ProductSource), new(*product.ServiceImplementation)),
	wire.Bind(new(home.ProjectSource), new(project.Service)),
	wire.Bind(new(home.CertificateCounter), new(certificate.Service)),
	wire.Bind(new(home.UnreadCounter), new(contact.Service)),
	wire.Bind(new(home.ApprovalCounter), new(*user.ServiceImplementation)),
	home.NewHandler,

	jobs.NewCatalogReindexJob,
	wire.Bind(new(jobs.Reindexer), new(*product.ServiceImplementation)),
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		platformSet,
		sessionSet,
		catalogSet,
		wire.Struct(new(app.Handlers), "*"),
		app.NewServer,
	)
	return nil, nil, nil
}
