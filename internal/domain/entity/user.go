package entity

import "time"

// User representa a quien inicia sesión. Username es la clave única.
// Password guarda el valor tal como lo entrega el AuthenticationService configurado:
// texto plano (modo demo local) o hash bcrypt.
type User struct {
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
