package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LoginRequest is polymorphic over actor kinds. Identifier is the admin id,
// the supplier name, or the customer email depending on ActorKind.
type LoginRequest struct {
	ActorKind  string `json:"actor_kind" validate:"required,oneof=admin supplier customer"`
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required,min=4"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=80"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ActorResponse struct {
	ID        string `json:"id"`
	ActorKind string `json:"actor_kind"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
}

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int           `json:"expires_in"`
	Actor        ActorResponse `json:"actor"`
}
