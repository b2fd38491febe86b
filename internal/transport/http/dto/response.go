package dto

// -------- Users --------

type SignupData struct {
	User SignupUserView `json:"user"`
}

type SignupUserView struct {
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarURL"`
	Message      string `json:"message"`
}

type LoginData struct {
	Token string        `json:"token"`
	User  LoginUserView `json:"user"`
}

type LoginUserView struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

type CurrentData struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

type VerifyData struct {
	Message string `json:"message"`
}

type AvatarData struct {
	AvatarURL string `json:"avatarURL"`
}

type UserView struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarURL"`
	Verified     bool   `json:"verified"`
}

type UsersData struct {
	Users []UserView `json:"users"`
}

// -------- Contacts --------

type ContactView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ContactsData struct {
	Contacts []ContactView `json:"contacts"`
}

type ContactData struct {
	Contact ContactView `json:"contact"`
}
