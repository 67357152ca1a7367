package dto

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginResponse carries the access token; the refresh token travels only in
// the HttpOnly cookie.
type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the body of POST /register. The name pattern and the
// length bounds match the historical validation rules of the service.
type RegisterRequest struct {
	Name      string `json:"name" binding:"required,nombre,min=4,max=255"`
	Email     string `json:"email" binding:"required,email,min=6,max=255"`
	Password1 string `json:"password1" binding:"required,min=6,max=1024"`
	Password2 string `json:"password2" binding:"required,eqfield=Password1"`
}

// ConfirmRequest is the body of POST /confirmar.
type ConfirmRequest struct {
	Email string `json:"mail" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// ChangePasswordRequest is the body of the authenticated POST /cambiar-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"contrasenaActual" binding:"required"`
	NewPassword     string `json:"nuevaContrasena" binding:"required,min=6,max=1024"`
	NewPassword2    string `json:"nuevaContrasena2" binding:"required,eqfield=NewPassword"`
}

// ForgotPasswordRequest is the body of POST /olvido-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the body of POST /restablecer-password. The token
// is the one delivered by the reset email and is always verified. The two
// passwords are compared in the handler so a mismatch answers 401, not 400.
type ResetPasswordRequest struct {
	Email        string `json:"mail" binding:"required,email"`
	Token        string `json:"token" binding:"required"`
	NewPassword  string `json:"nuevaContrasena" binding:"required,min=6,max=1024"`
	NewPassword2 string `json:"nuevaContrasena2" binding:"required"`
}

// GoogleTokenRequest is the body of POST /google/token and /google/firebase.
type GoogleTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// GoogleAuthResponse is returned for ID-token sign-in.
type GoogleAuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
