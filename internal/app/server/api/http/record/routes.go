package record

// Routes - пути операций относительно префикса вида. Пустой путь - операция не публикуется.
type Routes struct {
	List   string
	Get    string
	Create string
	Update string
	Upsert []string
	Delete string
	// WrapList отдает список как {"record": [...]}
	WrapList bool
}

var (
	AboutRoutes = Routes{
		List:     "/getrecords",
		Get:      "/get/{id}",
		Create:   "/create",
		Update:   "/update/{id}",
		Upsert:   []string{"/createOrUpdate/{id}", "/createOrUpdate"},
		Delete:   "/delete/{id}",
		WrapList: true,
	}
	ContactRoutes = Routes{
		List:   "/getcontact",
		Get:    "/get/{id}",
		Create: "/createcontact",
		Update: "/updatecontact/{id}",
		Upsert: []string{"/managecontact", "/managecontact/{id}"},
		Delete: "/deletecontact/{id}",
	}
	ServiceRoutes = Routes{
		List:   "/getservice",
		Get:    "/get/{id}",
		Create: "/createservice",
		Update: "/updateservice/{id}",
		Delete: "/deleteservice/{id}",
	}
	UserdataRoutes = Routes{
		List:   "/info",
		Get:    "/get/{id}",
		Create: "/record",
		Update: "/updaterecord/{id}",
		Delete: "/deleterecord/{id}",
	}
)
