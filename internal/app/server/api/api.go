//POST /api/auth/createuser           # Регистрация (публичный)
//POST /api/auth/login                # Логин (публичный)
//GET|POST /api/auth/getuser          # Текущий пользователь (auth)
//GET  /api/about/getrecords          # О компании (auth), далее create, update/{id}, createOrUpdate[/{id}], delete/{id}
//GET  /api/contactus/getcontact      # Контакты, одна запись на владельца (auth)
//GET  /api/services/getservice       # Услуги (auth)
//GET  /api/user/info                 # Публикации пользователя (auth)
//GET  /api/{prefix}/get/{id}         # Одна запись любого вида (auth)
//GET  /api/{prefix}/{uploaddir}/*    # Вложения (публичный)

package api

import (
	"net/http"

	healthAPI "nodex/internal/app/server/api/http/health"
	"nodex/internal/app/server/api/http/middleware"
	"nodex/internal/app/server/api/http/middleware/auth"
	"nodex/internal/app/server/api/http/middleware/logger"
	recordAPI "nodex/internal/app/server/api/http/record"
	userAPI "nodex/internal/app/server/api/http/user"
	"nodex/internal/app/server/config"
	"nodex/internal/domain/record"
	"nodex/internal/domain/token"
	"nodex/internal/domain/user"
	"nodex/internal/infrastructure/attachment"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

// Deps - все внешние зависимости HTTP слоя.
type Deps struct {
	Config  *config.Config
	Users   user.Repository
	Records record.Store
	Files   attachment.Storage
	// DB необязателен: без него /api/health не проверяет базу
	DB      healthAPI.Checker
	Log     *slog.Logger
}

type Routes interface {
	SetupRoutes(api huma.API)
}

// New создает *chi.Mux со всеми операциями через huma.Register и раздачей вложений
func New(d Deps) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	if d.Config.Files.MaxUploadBytes > 0 {
		mux.Use(chimw.RequestSize(d.Config.Files.MaxUploadBytes))
	}

	cfg := huma.DefaultConfig("Nodex API", "1.0.0")
	// без $schema в ответах: клиенты ждут прежнюю форму тел
	cfg.CreateHooks = nil
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"auth":   {Type: "apiKey", In: "header", Name: d.Config.Auth.Header},
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}

	API := humachi.New(mux, cfg)

	for _, h := range handlers(API, d) {
		h.SetupRoutes(API)
	}
	mountUploads(mux, d.Files)

	return mux
}

func handlers(API huma.API, d Deps) []Routes {
	tokens := token.NewService(d.Config.Auth.Secret, d.Config.Auth.TokenTTL)
	authMW := auth.New(API, tokens, d.Config.Auth.Header, d.Log)
	loggerMW := logger.New(d.Log)
	// логгер идет после auth, чтобы в записи был user_id
	chains := middleware.NewChains(authMW.Middleware(), loggerMW.Middleware())

	healthHandler := healthAPI.NewHandler(d.DB, d.Log, chains.Public())

	userService := user.NewService(d.Users, user.NewValidator(), tokens, d.Log)
	userHandler := userAPI.NewHandler(userService, d.Log, chains.Public(), chains.Protected())

	protected := chains.Protected
	publicURL := d.Config.Server.PublicURL
	maxUpload := d.Config.Files.MaxUploadBytes

	about := recordAPI.NewHandler[record.AboutFields, record.AboutPatch](
		record.NewService[record.AboutFields, record.AboutPatch](record.KindAbout, d.Records, d.Files, d.Users, publicURL, d.Log),
		recordAPI.AboutRoutes, maxUpload, d.Log, protected(),
	)
	contact := recordAPI.NewHandler[record.ContactFields, record.ContactPatch](
		record.NewService[record.ContactFields, record.ContactPatch](record.KindContact, d.Records, d.Files, d.Users, publicURL, d.Log),
		recordAPI.ContactRoutes, maxUpload, d.Log, protected(),
	)
	services := recordAPI.NewHandler[record.ServiceFields, record.ServicePatch](
		record.NewService[record.ServiceFields, record.ServicePatch](record.KindService, d.Records, d.Files, d.Users, publicURL, d.Log),
		recordAPI.ServiceRoutes, maxUpload, d.Log, protected(),
	)
	userdata := recordAPI.NewHandler[record.UserdataFields, record.UserdataPatch](
		record.NewService[record.UserdataFields, record.UserdataPatch](record.KindUserdata, d.Records, d.Files, d.Users, publicURL, d.Log),
		recordAPI.UserdataRoutes, maxUpload, d.Log, protected(),
	)

	return []Routes{healthHandler, userHandler, about, contact, services, userdata}
}

// mountUploads раздает вложения по адресу <префикс вида>/<каталог вида>/<имя>
func mountUploads(mux *chi.Mux, files attachment.Storage) {
	for _, kind := range record.Kinds() {
		prefix := kind.RoutePrefix + "/" + kind.UploadDir
		mux.Handle(prefix+"/*", http.StripPrefix(prefix, files.Handler(kind.UploadDir)))
	}
}
