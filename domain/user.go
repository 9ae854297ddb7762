package domain

// User is the stored form of an account. Password holds the bcrypt digest,
// never the raw password.
type User struct {
	ID       string
	Username string
	Password string
	Fullname string
}

// UserView is the only serializable form of a User. The password digest is
// structurally absent rather than stripped at encode time.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname,omitempty"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID, Username: u.Username, Fullname: u.Fullname}
}
