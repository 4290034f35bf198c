package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleCliente = "cliente"
)

// User representa un usuario de la aplicación (administrador del vivero o cliente).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Phone        string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
