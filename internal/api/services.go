package api

import (
	"gorm.io/gorm"

	"github.com/festival-benevoles/api/internal/config"
	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository"
	"github.com/festival-benevoles/api/internal/repository/dao"
	"github.com/festival-benevoles/api/internal/service"
)

// Services is the service layer wired over one database handle. The HTTP server,
// the CLI commands and the scheduler share it.
type Services struct {
	Auth        *service.AuthService
	User        *service.UserService
	Festival    *service.FestivalService
	Poste       *service.PosteService
	Catalog     *service.CatalogService
	Inscription *service.InscriptionService
	Flexible    *service.FlexibleService
	Referent    *service.ReferentService
	Message     *service.MessageService
}

func NewServices(conf *config.AppConfig, db *gorm.DB) *Services {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	festivalRepo := repository.NewFestivalRepository(dao.NewFestivalDAO(db))
	posteRepo := repository.NewPosteRepository(dao.NewPosteDAO(db))
	catalogRepo := repository.NewCatalogRepository(dao.NewCatalogDAO(db))
	inscriptionRepo := repository.NewInscriptionRepository(dao.NewInscriptionDAO(db))
	referentRepo := repository.NewReferentRepository(dao.NewReferentDAO(db))
	messageRepo := repository.NewMessageRepository(dao.NewMessageDAO(db))

	festivals := service.NewFestivalService(festivalRepo)
	schedule := domain.Schedule{
		Jours:    conf.Schedule.Jours,
		Creneaux: conf.Schedule.Creneaux,
	}

	return &Services{
		Auth:        service.NewAuthService(userRepo),
		User:        service.NewUserService(userRepo),
		Festival:    festivals,
		Poste:       service.NewPosteService(posteRepo),
		Catalog:     service.NewCatalogService(catalogRepo, festivals),
		Inscription: service.NewInscriptionService(inscriptionRepo, posteRepo, catalogRepo, schedule),
		Flexible:    service.NewFlexibleService(inscriptionRepo, festivals, domain.RandomPicker{}),
		Referent:    service.NewReferentService(referentRepo),
		Message:     service.NewMessageService(messageRepo, userRepo, posteRepo, inscriptionRepo),
	}
}
