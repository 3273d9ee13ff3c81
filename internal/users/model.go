package users

// User is a users table row. Email is unique across all users, enforced
// by the database.
type User struct {
	ID    int64
	Name  string
	Email string
}
