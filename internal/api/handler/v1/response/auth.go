package response

type AdminUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	User    AdminUser `json:"user"`
	Token   string    `json:"token"`
}

type VerifyResponse struct {
	Valid bool      `json:"valid"`
	User  AdminUser `json:"user"`
}

type SetupResponse struct {
	Message string    `json:"message"`
	Admin   AdminUser `json:"admin"`
}
