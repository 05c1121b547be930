package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/takumi-oki/boardops-api/docs"
	v1 "github.com/takumi-oki/boardops-api/internal/api/handler/v1"
	"github.com/takumi-oki/boardops-api/internal/api/middleware"
	"github.com/takumi-oki/boardops-api/internal/config"
	"github.com/takumi-oki/boardops-api/internal/repository"
	"github.com/takumi-oki/boardops-api/internal/repository/dao"
	"github.com/takumi-oki/boardops-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	teamHandler := s.initTeamHandler(db)
	announcementHandler := s.initAnnouncementHandler(db)
	boardHandler := s.initBoardHandler(db)
	practiceHandler := s.initPracticeHandler(db)
	attendanceHandler := s.initAttendanceHandler(db)
	sessionHandler := s.initSessionHandler(db)
	transportHandler := s.initTransportHandler(db)
	s.MountHandlers(authHandler, userHandler, teamHandler, announcementHandler,
		boardHandler, practiceHandler, attendanceHandler, sessionHandler, transportHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initTeamHandler(db *gorm.DB) *v1.TeamHandler {
	teamDAO := dao.NewTeamDAO(db)
	repo := repository.NewTeamRepository(teamDAO)
	svc := service.NewTeamService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewTeamHandler(svc, uSvc)

	return handler
}

func (s *Server) initAnnouncementHandler(db *gorm.DB) *v1.AnnouncementHandler {
	announcementDAO := dao.NewAnnouncementDAO(db)
	repo := repository.NewAnnouncementRepository(announcementDAO)
	svc := service.NewAnnouncementService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewAnnouncementHandler(svc, uSvc)

	return handler
}

func (s *Server) initBoardHandler(db *gorm.DB) *v1.BoardHandler {
	boardDAO := dao.NewBoardDAO(db)
	repo := repository.NewBoardRepository(boardDAO)
	svc := service.NewBoardService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewBoardHandler(svc, uSvc)

	return handler
}

func (s *Server) initPracticeHandler(db *gorm.DB) *v1.PracticeHandler {
	practiceRepo := repository.NewPracticeRepository(dao.NewPracticeDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	boardRepo := repository.NewBoardRepository(dao.NewBoardDAO(db))
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	transportRepo := repository.NewTransportRepository(dao.NewTransportDAO(db))
	svc := service.NewPracticeService(practiceRepo, userRepo, boardRepo, sessionRepo, transportRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewPracticeHandler(svc, uSvc)

	return handler
}

func (s *Server) initAttendanceHandler(db *gorm.DB) *v1.AttendanceHandler {
	repo := repository.NewPracticeRepository(dao.NewPracticeDAO(db))
	svc := service.NewAttendanceService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewAttendanceHandler(svc, uSvc)

	return handler
}

func (s *Server) initSessionHandler(db *gorm.DB) *v1.SessionHandler {
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	practiceRepo := repository.NewPracticeRepository(dao.NewPracticeDAO(db))
	svc := service.NewSessionService(sessionRepo, userRepo, practiceRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewSessionHandler(svc, uSvc)

	return handler
}

func (s *Server) initTransportHandler(db *gorm.DB) *v1.TransportHandler {
	transportRepo := repository.NewTransportRepository(dao.NewTransportDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	practiceRepo := repository.NewPracticeRepository(dao.NewPracticeDAO(db))
	svc := service.NewTransportService(transportRepo, userRepo, practiceRepo, nil)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewTransportHandler(svc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	teamHandler *v1.TeamHandler,
	announcementHandler *v1.AnnouncementHandler,
	boardHandler *v1.BoardHandler,
	practiceHandler *v1.PracticeHandler,
	attendanceHandler *v1.AttendanceHandler,
	sessionHandler *v1.SessionHandler,
	transportHandler *v1.TransportHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.POST("/auth/guest", authHandler.HandleGuestLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users", userHandler.HandleListUsers)
		authed.GET("/users/:userID", userHandler.HandleGetUser)
		authed.PUT("/users/me", userHandler.HandleUpdateProfile)
		authed.POST("/users/:userID/promote", userHandler.HandlePromoteUser)
		authed.POST("/users/:userID/demote", userHandler.HandleDemoteUser)
		authed.DELETE("/users/:userID", userHandler.HandleDeleteUser)
		authed.GET("/generations", userHandler.HandleGetGenerations)

		authed.GET("/teams", teamHandler.HandleListTeams)
		authed.POST("/teams", teamHandler.HandleCreateTeam)
		authed.DELETE("/teams/:teamID", teamHandler.HandleDeleteTeam)

		authed.GET("/announcements", announcementHandler.HandleListAnnouncements)
		authed.POST("/announcements", announcementHandler.HandleCreateAnnouncement)
		authed.DELETE("/announcements/:announcementID", announcementHandler.HandleDeleteAnnouncement)

		authed.GET("/boards", boardHandler.HandleListBoards)
		authed.POST("/boards", boardHandler.HandleCreateBoard)
		authed.POST("/boards/relocate", boardHandler.HandleRelocateBoards)
		authed.GET("/boards/:boardID", boardHandler.HandleGetBoard)
		authed.PUT("/boards/:boardID", boardHandler.HandleUpdateBoard)
		authed.DELETE("/boards/:boardID", boardHandler.HandleDeleteBoard)
		authed.GET("/boards/:boardID/histories", boardHandler.HandleGetBoardHistories)

		authed.GET("/practices", practiceHandler.HandleListPractices)
		authed.POST("/practices", practiceHandler.HandleCreatePractice)
		authed.GET("/practices/:practiceID", practiceHandler.HandleGetPracticeDetail)
		authed.DELETE("/practices/:practiceID", practiceHandler.HandleDeletePractice)

		authed.PUT("/practices/:practiceID/attendance", attendanceHandler.HandleRecordAttendance)
		authed.GET("/practices/:practiceID/attendances", attendanceHandler.HandleListAttendances)
		authed.GET("/dashboard", attendanceHandler.HandleGetDashboard)

		authed.POST("/practices/:practiceID/sessions", sessionHandler.HandleAddSession)
		authed.GET("/practices/:practiceID/unassigned", sessionHandler.HandleGetUnassigned)
		authed.POST("/sessions/:sessionID/members", sessionHandler.HandleAssignMembers)
		authed.DELETE("/sessions/:sessionID/members/:userID", sessionHandler.HandleUnassignMember)
		authed.DELETE("/sessions/:sessionID", sessionHandler.HandleDeleteSession)

		authed.POST("/practices/:practiceID/transports", transportHandler.HandleAssignTransport)
		authed.POST("/practices/:practiceID/transports/lottery", transportHandler.HandleRunLottery)
		authed.DELETE("/transports/:transportID", transportHandler.HandleUnassignTransport)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Board Ops API"
	docs.SwaggerInfo.Description = "Practice logistics: boards, attendance, sessions and transport duties."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
