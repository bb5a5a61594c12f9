package mailer

import "time"

// SignupJob is the JSON payload put on the RabbitMQ sign-up queue after an
// account is created. The worker assigns the initial role and sends the
// welcome email from it.
type SignupJob struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	RedirectURL string    `json:"redirect_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
