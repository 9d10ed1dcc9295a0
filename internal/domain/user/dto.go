package user

type SignupRequest struct {
	Name     string
	Email    string
	Contact  string
	Password string
}

type LoginRequest struct {
	Email    string
	Password string
}
