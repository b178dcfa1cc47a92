package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/festival-benevoles/api/docs"
	v1 "github.com/festival-benevoles/api/internal/api/handler/v1"
	"github.com/festival-benevoles/api/internal/api/middleware"
	"github.com/festival-benevoles/api/internal/config"
	"github.com/festival-benevoles/api/internal/domain"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type handlers struct {
	auth        *v1.AuthHandler
	user        *v1.UserHandler
	festival    *v1.FestivalHandler
	poste       *v1.PosteHandler
	catalog     *v1.CatalogHandler
	inscription *v1.InscriptionHandler
	flexible    *v1.FlexibleHandler
	referent    *v1.ReferentHandler
	message     *v1.MessageHandler
}

func NewServer(conf *config.AppConfig, svcs *Services) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(svcs, s.initHandlers(svcs))

	return s
}

func (s *Server) initHandlers(svcs *Services) handlers {
	return handlers{
		auth:        v1.NewAuthHandler(s.Config.API, svcs.Auth),
		user:        v1.NewUserHandler(svcs.User),
		festival:    v1.NewFestivalHandler(svcs.Festival),
		poste:       v1.NewPosteHandler(svcs.Poste, svcs.Festival),
		catalog:     v1.NewCatalogHandler(svcs.Catalog, svcs.Festival),
		inscription: v1.NewInscriptionHandler(svcs.Inscription, svcs.User, svcs.Festival),
		flexible:    v1.NewFlexibleHandler(svcs.Flexible, svcs.Festival),
		referent:    v1.NewReferentHandler(svcs.Referent, svcs.User, svcs.Festival),
		message:     v1.NewMessageHandler(svcs.Message, svcs.User, svcs.Festival),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(svcs *Services, h handlers) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", h.auth.HandleSignup)
		public.POST("/auth/login", h.auth.HandleLogin)
		public.GET("/schedule", h.inscription.HandleGetSchedule)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())

	isAdmin := middleware.RequireRole(svcs.User, domain.RoleAdmin)
	isStaff := middleware.RequireRole(svcs.User, domain.RoleAdmin, domain.RoleReferent)

	users := authenticated.Group("/users")
	{
		users.GET("/me", h.user.HandleGetMe)
		users.PUT("/me", h.user.HandleUpdateMe)
		users.PUT("/me/password", h.user.HandleChangePassword)
		users.DELETE("/me", h.user.HandleDeleteMe)
		users.GET("", isAdmin, h.user.HandleListUsers)
		users.POST("/:userID/ban", isAdmin, h.user.HandleBanUser)
	}

	festivals := authenticated.Group("/festivals")
	{
		festivals.GET("", h.festival.HandleListFestivals)
		festivals.POST("", isAdmin, h.festival.HandleCreateFestival)
		festivals.GET("/:festivalID", h.festival.HandleGetFestival)
		festivals.POST("/:festivalID/activate", isAdmin, h.festival.HandleActivateFestival)
		festivals.DELETE("/:festivalID", isAdmin, h.festival.HandleDeleteFestival)

		festivals.GET("/:festivalID/postes", h.poste.HandleListPostes)
		festivals.POST("/:festivalID/postes", isAdmin, h.poste.HandleCreatePoste)

		festivals.POST("/:festivalID/catalog", isAdmin, h.catalog.HandleImportCatalog)
		festivals.GET("/:festivalID/games", h.catalog.HandleListGames)
		festivals.GET("/:festivalID/games/:jeuID", h.catalog.HandleGetGame)
		festivals.GET("/:festivalID/zones", h.catalog.HandleListZones)

		festivals.GET("/:festivalID/occupancy/postes", h.inscription.HandlePosteOccupancy)
		festivals.GET("/:festivalID/occupancy/zones", h.inscription.HandleZoneOccupancy)
		festivals.GET("/:festivalID/inscriptions/me", h.inscription.HandleMySignups)
		festivals.POST("/:festivalID/inscriptions/postes", h.inscription.HandleSignupPoste)
		festivals.DELETE("/:festivalID/inscriptions/postes", h.inscription.HandleWithdrawPoste)
		festivals.POST("/:festivalID/inscriptions/zones", h.inscription.HandleSignupZone)
		festivals.DELETE("/:festivalID/inscriptions/zones", h.inscription.HandleWithdrawZone)
		festivals.POST("/:festivalID/inscriptions/batch", h.inscription.HandleBatch)
		festivals.POST("/:festivalID/users/:userID/inscriptions", isStaff, h.inscription.HandleAssignBatch)

		festivals.POST("/:festivalID/flexibles/resolve", isAdmin, h.flexible.HandleResolveFlexibles)

		festivals.GET("/:festivalID/referents/me/postes", isStaff, h.referent.HandleMyPostes)
		festivals.GET("/:festivalID/referents/me/volunteers", isStaff, h.referent.HandleMyVolunteers)

		festivals.POST("/:festivalID/messages/users/:userID", h.message.HandleSendToUser)
		festivals.POST("/:festivalID/messages/all", isAdmin, h.message.HandleSendToAll)
		festivals.POST("/:festivalID/messages/postes/:posteID", isStaff, h.message.HandleSendToPoste)
		festivals.GET("/:festivalID/messages/inbox", h.message.HandleInbox)
		festivals.GET("/:festivalID/messages/unread", h.message.HandleUnreadCount)
		festivals.DELETE("/:festivalID/messages/inbox", h.message.HandleDeleteInbox)
	}

	postes := authenticated.Group("/postes")
	{
		postes.GET("/:posteID", h.poste.HandleGetPoste)
		postes.PUT("/:posteID", isAdmin, h.poste.HandleUpdatePoste)
		postes.DELETE("/:posteID", isAdmin, h.poste.HandleDeletePoste)
		postes.GET("/:posteID/referents", h.referent.HandleListReferents)
		postes.POST("/:posteID/referents/:userID", isAdmin, h.referent.HandleAssignReferent)
		postes.DELETE("/:posteID/referents/:userID", isAdmin, h.referent.HandleUnassignReferent)
	}

	authenticated.DELETE("/messages/:messageID", h.message.HandleDeleteSent)

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Festival volunteers API"
	docs.SwaggerInfo.Description = "Volunteer sign-ups, catalog reconciliation and flexible resolution for board-game festivals."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
