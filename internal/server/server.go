// Package server exposes the data layer over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/bancalarisantiago/workfolio/internal/company"
	companydomain "github.com/bancalarisantiago/workfolio/internal/company/domain"
	"github.com/bancalarisantiago/workfolio/internal/config"
	"github.com/bancalarisantiago/workfolio/internal/document"
	docdomain "github.com/bancalarisantiago/workfolio/internal/document/domain"
	docservice "github.com/bancalarisantiago/workfolio/internal/document/service"
	"github.com/bancalarisantiago/workfolio/internal/employee"
	"github.com/bancalarisantiago/workfolio/internal/event"
	eventdomain "github.com/bancalarisantiago/workfolio/internal/event/domain"
	"github.com/bancalarisantiago/workfolio/internal/notification"
	notificationdomain "github.com/bancalarisantiago/workfolio/internal/notification/domain"
	"github.com/bancalarisantiago/workfolio/internal/observability/logger"
	obsmetrics "github.com/bancalarisantiago/workfolio/internal/observability/metrics"
	obstracing "github.com/bancalarisantiago/workfolio/internal/observability/tracing"
	"github.com/bancalarisantiago/workfolio/internal/paycheck"
	paydomain "github.com/bancalarisantiago/workfolio/internal/paycheck/domain"
	payservice "github.com/bancalarisantiago/workfolio/internal/paycheck/service"
	"github.com/bancalarisantiago/workfolio/internal/storage"
	"github.com/bancalarisantiago/workfolio/internal/user"
	userdomain "github.com/bancalarisantiago/workfolio/internal/user/domain"
	userservice "github.com/bancalarisantiago/workfolio/internal/user/service"
)

var Module = fx.Module("http.server",
	company.Module,
	user.Module,
	document.Module,
	paycheck.Module,
	event.Module,
	notification.Module,
	storage.Module,
	employee.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config

	companies     companydomain.Repository
	users         userdomain.Repository
	documents     docdomain.Repository
	paychecks     paydomain.Repository
	events        eventdomain.Repository
	notifications notificationdomain.Repository

	avatarSvc       *userservice.AvatarService
	documentFileSvc *docservice.FileService
	paycheckFileSvc *payservice.FileService

	employeeDocs      *employee.DocumentsService
	employeePaychecks *employee.PaychecksService
}

type ServerParams struct {
	fx.In

	Gin *gin.Engine
	Cfg config.Config

	Companies     companydomain.Repository
	Users         userdomain.Repository
	Documents     docdomain.Repository
	Paychecks     paydomain.Repository
	Events        eventdomain.Repository
	Notifications notificationdomain.Repository

	AvatarSvc       *userservice.AvatarService
	DocumentFileSvc *docservice.FileService
	PaycheckFileSvc *payservice.FileService

	EmployeeDocs      *employee.DocumentsService
	EmployeePaychecks *employee.PaychecksService
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:            p.Gin,
		cfg:               p.Cfg,
		companies:         p.Companies,
		users:             p.Users,
		documents:         p.Documents,
		paychecks:         p.Paychecks,
		events:            p.Events,
		notifications:     p.Notifications,
		avatarSvc:         p.AvatarSvc,
		documentFileSvc:   p.DocumentFileSvc,
		paycheckFileSvc:   p.PaycheckFileSvc,
		employeeDocs:      p.EmployeeDocs,
		employeePaychecks: p.EmployeePaychecks,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api/v1")

	me := api.Group("/me", s.UserRequired())
	{
		me.GET("/profile", s.getMyProfile)
		me.PATCH("/profile", s.updateMyProfile)
		me.GET("/preferences", s.getMyPreferences)
		me.PATCH("/preferences", s.updateMyPreferences)

		me.PUT("/avatar", s.uploadMyAvatar)
		me.GET("/avatar/url", s.getMyAvatarURL)
		me.DELETE("/avatar", s.deleteMyAvatar)

		me.GET("/documents", s.getMyDocuments)
		me.GET("/documents/:documentId/download", s.downloadMyDocument)
		me.GET("/paychecks", s.getMyPaychecks)
		me.GET("/paychecks/:paycheckId/download", s.downloadMyPaycheck)
	}

	companies := api.Group("/companies/:companyId")
	{
		companies.GET("", s.getCompany)
		companies.PATCH("", s.updateCompany)
		companies.GET("/members", s.listMembers)
		companies.GET("/audit-logs", s.listAuditLogs)

		companies.GET("/documents", s.listDocuments)
		companies.POST("/documents", s.createDocument)
		companies.GET("/documents/:documentId", s.getDocument)
		companies.POST("/documents/:documentId/files", s.uploadDocumentFile)
		companies.GET("/files/:fileId/url", s.getDocumentFileURL)
		companies.DELETE("/files/:fileId", s.deleteDocumentFile)

		companies.GET("/paychecks", s.listPaychecks)
		companies.POST("/paychecks", s.createPaycheck)
		companies.GET("/paychecks/:paycheckId", s.getPaycheck)
		companies.POST("/paychecks/:paycheckId/file", s.uploadPaycheckFile)
		companies.GET("/paychecks/:paycheckId/file/url", s.getPaycheckFileURL)
		companies.DELETE("/paychecks/:paycheckId/file", s.deletePaycheckFile)

		companies.GET("/events", s.listEvents)
		companies.GET("/events/:eventId/attendees", s.listEventAttendees)
		companies.GET("/holidays", s.listHolidays)
		companies.GET("/notifications", s.listNotifications)
	}
}
