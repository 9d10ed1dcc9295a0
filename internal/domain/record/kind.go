package record

// Kind описывает вид записи: имя в хранилище, каталог вложений и публичный префикс маршрутов.
type Kind struct {
	Name        string
	UploadDir   string
	RoutePrefix string
	// Singleton: у владельца не больше одной записи этого вида.
	Singleton bool
}

var (
	KindAbout = Kind{
		Name:        "about",
		UploadDir:   "aboutuploads",
		RoutePrefix: "/api/about",
	}
	KindContact = Kind{
		Name:        "contact",
		UploadDir:   "contactuploads",
		RoutePrefix: "/api/contactus",
		Singleton:   true,
	}
	KindService = Kind{
		Name:        "service",
		UploadDir:   "serviceuploads",
		RoutePrefix: "/api/services",
	}
	KindUserdata = Kind{
		Name:        "userdata",
		UploadDir:   "uploads",
		RoutePrefix: "/api/user",
	}
)

func Kinds() []Kind {
	return []Kind{KindAbout, KindContact, KindService, KindUserdata}
}
