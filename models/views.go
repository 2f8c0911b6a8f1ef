package models

import "time"

// View types are the JSON shapes handed to clients. They are built only by
// the canonical projection functions in the services package.

// UserView uses the display-name key the front end reads, regardless of the
// fullName key used in update requests.
type UserView struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Role        string `json:"role"`
}

type AuthorView struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
	Email     string  `json:"email"`
}

type CommentView struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	Author    AuthorView `json:"author"`
}

type PostView struct {
	ID        string        `json:"id"`
	Author    AuthorView    `json:"author"`
	Topic     string        `json:"topic"`
	Title     string        `json:"title"`
	ImageURL  string        `json:"imageUrl"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	Status    string        `json:"status"`
	Likes     int           `json:"likes"`
	Dislikes  int           `json:"dislikes"`
	Comments  []CommentView `json:"comments"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}
