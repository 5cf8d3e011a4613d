package user

type registerInput struct {
	Body registerRequest
}

type registerRequest struct {
	Login    string `json:"login" doc:"Логин" minLength:"3" maxLength:"32"`
	Password string `json:"password" doc:"Пароль" minLength:"6"`
	ShopName string `json:"shop_name,omitempty" doc:"Название лавки"`
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"user_id"`
	Status string `json:"status"`
}

type loginInput struct {
	Body loginRequest
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}
