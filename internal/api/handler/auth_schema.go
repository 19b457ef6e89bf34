package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type registerRequest struct {
	Username  string `json:"username"   validate:"required,min=3"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6"`
	Role      string `json:"role"`
	Age       *int   `json:"age,omitempty"`
	Contact   string `json:"contact,omitempty"`
	BloodType string `json:"blood_type,omitempty"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type verifyOTPRequest struct {
	Username string `json:"username" validate:"required"`
	Code     string `json:"code"     validate:"required,len=6"`
}

type requestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Code        string `json:"code"         validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// userResponse is the public view of an account. Credential and code fields
// never leave the service.
type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Age       *int   `json:"age,omitempty"`
	Contact   string `json:"contact,omitempty"`
	BloodType string `json:"blood_type,omitempty"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
