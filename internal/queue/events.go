package queue

// Routing keys on the events exchange. The notifier binds mail.#.
const (
	KeyActivation = "mail.activation"
	KeyWelcome    = "mail.welcome"
)

type ActivationRequested struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Code  string `json:"activation_code"`
}

type UserActivated struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
