package domain

// User is the joining party. Identity is owned by an upstream service.
type User struct {
	ID   int64
	Name string
}
