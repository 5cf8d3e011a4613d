package user

import "time"

// User — учетная запись владельца лавки
type User struct {
	ID        int       `json:"id"`
	Login     string    `json:"login"`
	Password  string    `json:"-"`
	ShopName  string    `json:"shop_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
