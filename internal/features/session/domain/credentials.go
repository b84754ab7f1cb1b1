package domain

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up form.
type Registration struct {
	Name     string `json:"name" validate:"required,max=80"`
	Surname  string `json:"surname" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=20"`
	District string `json:"district,omitempty"`
	Address  string `json:"address,omitempty"`
}

// AuthResult is what the backend returns on login and registration.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
