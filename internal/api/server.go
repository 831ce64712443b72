package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/rifas-online/rifas-api/docs"
	v1 "github.com/rifas-online/rifas-api/internal/api/handler/v1"
	"github.com/rifas-online/rifas-api/internal/api/middleware"
	"github.com/rifas-online/rifas-api/internal/config"
	"github.com/rifas-online/rifas-api/internal/repository"
	"github.com/rifas-online/rifas-api/internal/repository/dao"
	"github.com/rifas-online/rifas-api/internal/service"
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
	raffleHandler := s.initRaffleHandler(db)
	ticketHandler := s.initTicketHandler(db)
	winnerHandler := s.initWinnerHandler(db)
	s.MountHandlers(authHandler, raffleHandler, ticketHandler, winnerHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	adminDAO := dao.NewAdminDAO(db)
	repo := repository.NewAdminRepository(adminDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initRaffleHandler(db *gorm.DB) *v1.RaffleHandler {
	raffleDAO := dao.NewRaffleDAO(db)
	repo := repository.NewRaffleRepository(raffleDAO)
	svc := service.NewRaffleService(repo)
	handler := v1.NewRaffleHandler(svc)

	return handler
}

func (s *Server) initTicketHandler(db *gorm.DB) *v1.TicketHandler {
	ticketDAO := dao.NewTicketDAO(db)
	repo := repository.NewTicketRepository(ticketDAO)
	raffleRepo := repository.NewRaffleRepository(dao.NewRaffleDAO(db))
	svc := service.NewTicketService(repo, raffleRepo)
	handler := v1.NewTicketHandler(svc)

	return handler
}

func (s *Server) initWinnerHandler(db *gorm.DB) *v1.WinnerHandler {
	winnerDAO := dao.NewWinnerDAO(db)
	repo := repository.NewWinnerRepository(winnerDAO)
	raffleRepo := repository.NewRaffleRepository(dao.NewRaffleDAO(db))
	svc := service.NewWinnerService(repo, raffleRepo)
	handler := v1.NewWinnerHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, raffleHandler *v1.RaffleHandler, ticketHandler *v1.TicketHandler, winnerHandler *v1.WinnerHandler) {
	const basePath = "/api"

	authenticated := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	public := s.Router.Group(basePath)
	{
		public.POST("/admin/login", authHandler.HandleLogin)
		public.POST("/admin/setup", authHandler.HandleSetup)

		public.GET("/raffles", raffleHandler.HandleListRaffles)
		public.GET("/raffles/:raffleID", raffleHandler.HandleGetRaffle)
		public.GET("/raffles/:raffleID/available-numbers", ticketHandler.HandleGetAvailableNumbers)
		public.GET("/raffles/:raffleID/tickets", ticketHandler.HandleListRaffleTickets)
		public.GET("/raffles/:raffleID/winners", winnerHandler.HandleListRaffleWinners)

		public.GET("/tickets", ticketHandler.HandleListAllTickets)
		public.GET("/tickets/:ticketID", ticketHandler.HandleGetTicket)
		public.POST("/tickets", ticketHandler.HandleReserveTicket)

		public.GET("/winners", winnerHandler.HandleListWinners)
	}

	admin := s.Router.Group(basePath, authenticated)
	{
		admin.GET("/admin/verify", authHandler.HandleVerify)
		admin.PUT("/admin/password", authHandler.HandleChangePassword)

		admin.POST("/raffles", raffleHandler.HandleCreateRaffle)
		admin.PUT("/raffles/:raffleID", raffleHandler.HandleUpdateRaffle)
		admin.DELETE("/raffles/:raffleID", raffleHandler.HandleDeleteRaffle)

		admin.DELETE("/tickets/:ticketID", ticketHandler.HandleReleaseTicket)
		admin.PATCH("/tickets/:ticketID/payment-status", ticketHandler.HandleUpdatePaymentStatus)

		admin.POST("/winners", winnerHandler.HandleRegisterWinner)
		admin.PATCH("/winners/:winnerID/claim", winnerHandler.HandleMarkClaimed)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Rifas API"
	docs.SwaggerInfo.Description = "Raffle ticket sales API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
