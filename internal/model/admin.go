package model

type Admin struct {
	ID       int
	Name     string
	Login    string
	Password string
}

type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}
