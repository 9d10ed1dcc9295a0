package health

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status   string `json:"status" example:"OK" doc:"OK, если сервис принимает запросы"`
	Database string `json:"database,omitempty" example:"up" doc:"Состояние базы, если проверка подключена"`
}
