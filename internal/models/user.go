package models

type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	PublicID string `json:"public_id"`
	Phone    string `json:"phone,omitempty"`
}

type MeResponse struct {
	User *User `json:"user"`
}

type LoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

type GoogleLoginPayload struct {
	Token string `json:"token"`
}

// UpdateProfileRequest is sent as multipart form data; Avatar is optional.
type UpdateProfileRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=120"`
	Phone          string `json:"phone" validate:"omitempty,min=9,max=20"`
	Avatar         []byte `json:"-"`
	AvatarFilename string `json:"-"`
}

type SessionView struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}
