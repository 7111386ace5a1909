package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly-api/docs"
	v1 "github.com/gatherly/gatherly-api/internal/api/handler/v1"
	"github.com/gatherly/gatherly-api/internal/api/middleware"
	"github.com/gatherly/gatherly-api/internal/config"
	"github.com/gatherly/gatherly-api/internal/repository"
	"github.com/gatherly/gatherly-api/internal/repository/dao"
	"github.com/gatherly/gatherly-api/internal/service"
	"github.com/gatherly/gatherly-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	store *storage.S3Store
}

func NewServer(conf *config.AppConfig, db *gorm.DB, store *storage.S3Store) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		store:  store,
	}

	s.MountMiddlewares()

	userSvc := s.initUserService(db)
	eventSvc := s.initEventService(db)

	authenticator := middleware.NewAuthenticator(conf.API.JWTSigningKey, userSvc)
	eventGuard := middleware.NewEventGuard(eventSvc)

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db, userSvc, eventSvc)
	eventHandler := v1.NewEventHandler(eventSvc)
	ruleHandler := s.initRuleHandler(db)
	pictureHandler := s.initPictureHandler(db)
	issueHandler := s.initIssueHandler(db)
	participantHandler := s.initParticipantHandler(db)
	ratingHandler := s.initRatingHandler(db)
	feedbackHandler := s.initFeedbackHandler(db)
	imageHandler := v1.NewImageHandler(store)
	adminHandler := s.initAdminHandler(db)

	s.MountHandlers(authenticator, eventGuard, handlers{
		auth:        authHandler,
		user:        userHandler,
		event:       eventHandler,
		rule:        ruleHandler,
		picture:     pictureHandler,
		issue:       issueHandler,
		participant: participantHandler,
		rating:      ratingHandler,
		feedback:    feedbackHandler,
		image:       imageHandler,
		admin:       adminHandler,
	})

	return s
}

type handlers struct {
	auth        *v1.AuthHandler
	user        *v1.UserHandler
	event       *v1.EventHandler
	rule        *v1.RuleHandler
	picture     *v1.PictureHandler
	issue       *v1.IssueHandler
	participant *v1.ParticipantHandler
	rating      *v1.RatingHandler
	feedback    *v1.FeedbackHandler
	image       *v1.ImageHandler
	admin       *v1.AdminHandler
}

func (s *Server) initUserService(db *gorm.DB) *service.UserService {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)

	return service.NewUserService(repo, s.store)
}

func (s *Server) initEventService(db *gorm.DB) *service.EventService {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)

	return service.NewEventService(repo, s.store)
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)

	return v1.NewAuthHandler(s.Config.API, svc)
}

func (s *Server) initUserHandler(db *gorm.DB, userSvc *service.UserService, eventSvc *service.EventService) *v1.UserHandler {
	participationDAO := dao.NewParticipationDAO(db)
	participationRepo := repository.NewParticipationRepository(participationDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	participationSvc := service.NewParticipationService(participationRepo, eventRepo)

	return v1.NewUserHandler(userSvc, participationSvc, eventSvc)
}

func (s *Server) initRuleHandler(db *gorm.DB) *v1.RuleHandler {
	ruleDAO := dao.NewRuleDAO(db)
	repo := repository.NewRuleRepository(ruleDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewRuleService(repo, eventRepo)

	return v1.NewRuleHandler(svc)
}

func (s *Server) initPictureHandler(db *gorm.DB) *v1.PictureHandler {
	pictureDAO := dao.NewPictureDAO(db)
	repo := repository.NewPictureRepository(pictureDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewPictureService(repo, eventRepo, s.store)

	return v1.NewPictureHandler(svc)
}

func (s *Server) initIssueHandler(db *gorm.DB) *v1.IssueHandler {
	issueDAO := dao.NewIssueDAO(db)
	repo := repository.NewIssueRepository(issueDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewIssueService(repo, eventRepo)

	return v1.NewIssueHandler(svc)
}

func (s *Server) initParticipantHandler(db *gorm.DB) *v1.ParticipantHandler {
	participationDAO := dao.NewParticipationDAO(db)
	repo := repository.NewParticipationRepository(participationDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewParticipationService(repo, eventRepo)

	return v1.NewParticipantHandler(svc)
}

func (s *Server) initRatingHandler(db *gorm.DB) *v1.RatingHandler {
	ratingDAO := dao.NewRatingDAO(db)
	repo := repository.NewRatingRepository(ratingDAO)
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewRatingService(repo, userRepo)

	return v1.NewRatingHandler(svc)
}

func (s *Server) initFeedbackHandler(db *gorm.DB) *v1.FeedbackHandler {
	feedbackDAO := dao.NewFeedbackDAO(db)
	repo := repository.NewFeedbackRepository(feedbackDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewFeedbackService(repo, eventRepo)

	return v1.NewFeedbackHandler(svc)
}

func (s *Server) initAdminHandler(db *gorm.DB) *v1.AdminHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	authSvc := service.NewAuthService(userRepo)
	adminSvc := service.NewAdminService(userRepo, eventRepo)

	return v1.NewAdminHandler(s.Config.API, authSvc, adminSvc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(auth *middleware.Authenticator, eventGuard *middleware.EventGuard, h handlers) {
	const basePath = "/api/v1"

	guest := s.Router.Group(basePath, auth.RequireGuest())
	{
		guest.POST("/register", h.auth.HandleRegister)
		guest.POST("/login", h.auth.HandleLogin)
		guest.POST("/admin/login", h.admin.HandleAdminLogin)
	}

	public := s.Router.Group(basePath)
	{
		public.GET("/login-status", auth.OptionalJWT(), h.auth.HandleLoginStatus)
		public.GET("/s3/getImage/:key", h.image.HandleGetImage)
	}

	authed := s.Router.Group(basePath, auth.VerifyJWT())
	{
		authed.DELETE("/logout", h.auth.HandleLogout)

		authed.GET("/events", h.event.HandleListEvents)
		authed.GET("/events/:eventId", h.event.HandleGetEvent)
		authed.GET("/events/suggested/:eventId", h.event.HandleSuggestedEvents)
		authed.POST("/events", h.event.HandleCreateEvent)
		authed.PATCH("/events", eventGuard.RequireEventCreator(), h.event.HandleUpdateEvent)
		authed.DELETE("/events/:eventId", eventGuard.RequireEventCreator(), h.event.HandleDeleteEvent)

		authed.GET("/eventRules/:eventId", h.rule.HandleListRules)
		authed.POST("/eventRules", eventGuard.RequireEventCreator(), h.rule.HandleAddRule)
		authed.PATCH("/eventRules", eventGuard.RequireEventCreator(), h.rule.HandleUpdateRule)
		authed.DELETE("/eventRules/:ruleId/event/:eventId", eventGuard.RequireEventCreator(), h.rule.HandleDeleteRule)

		authed.GET("/eventPictures/:eventId", h.picture.HandleListPictures)
		authed.POST("/eventPictures", eventGuard.RequireEventCreator(), h.picture.HandleAddPictures)
		authed.DELETE("/eventPictures/:id/event/:eventId", eventGuard.RequireEventCreator(), h.picture.HandleDeletePicture)

		authed.GET("/issueTypes", h.issue.HandleListIssueTypes)
		authed.GET("/addressedIssues/:eventId", h.issue.HandleListAddressedIssues)
		authed.POST("/addressedIssues", eventGuard.RequireEventCreator(), h.issue.HandleAssociateIssue)
		authed.DELETE("/addressedIssues/:issueId/event/:eventId", eventGuard.RequireEventCreator(), h.issue.HandleDissociateIssue)

		authed.GET("/eventParticipants/:eventId", h.participant.HandleListParticipants)
		authed.GET("/eventParticipants/count/:eventId", h.participant.HandleCountParticipants)
		authed.GET("/eventParticipants/isParticipant/:eventId", h.participant.HandleIsParticipant)
		authed.POST("/eventParticipants", eventGuard.RequireNotEventCreator(), h.participant.HandleJoinEvent)
		authed.PATCH("/eventParticipants/didAttend", eventGuard.RequireEventCreator(), h.participant.HandleDidAttend)
		authed.DELETE("/eventParticipants/:eventId", h.participant.HandleLeaveEvent)

		authed.GET("/userRatings/:userId", h.rating.HandleListRatings)
		authed.POST("/userRatings", h.rating.HandleCreateRating)
		authed.PATCH("/userRatings", h.rating.HandleUpdateRating)
		authed.DELETE("/userRatings/:ratedUserId", h.rating.HandleDeleteRating)

		authed.GET("/eventFeedbacks/:eventId", h.feedback.HandleListFeedbacks)
		authed.POST("/eventFeedbacks", h.feedback.HandleCreateFeedback)
		authed.PATCH("/eventFeedbacks", h.feedback.HandleUpdateFeedback)
		authed.DELETE("/eventFeedbacks/:eventId", h.feedback.HandleDeleteFeedback)

		authed.GET("/user/:userId", h.user.HandleGetUser)
		authed.GET("/user/uname/:username", h.user.HandleGetUserByUsername)
		authed.GET("/user/check-event/:eventId", h.user.HandleCheckEvent)
		authed.PATCH("/user", h.user.HandleUpdateUser)
		authed.PATCH("/user/change-password", h.user.HandleChangePassword)
		authed.DELETE("/user", h.user.HandleDeleteUser)
		authed.GET("/userPastEvents/participated", h.user.HandleParticipatedEvents)
		authed.GET("/userPastEvents/created", h.user.HandleCreatedEvents)
	}

	admin := s.Router.Group(basePath+"/admin", auth.VerifyJWT(), middleware.RequireAdmin())
	{
		admin.GET("/allCounts", h.admin.HandleAllCounts)
		admin.GET("/activeUsers", h.admin.HandleActiveUsers)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Gatherly API"
	docs.SwaggerInfo.Description = "Community-event management backend."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
