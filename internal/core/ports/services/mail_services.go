package services

import "context"

// EmailDispatcher sends the out-of-band emails of the auth flows. Every
// method returns immediately: delivery happens on a detached goroutine and
// failures are logged, never surfaced to the request.
type EmailDispatcher interface {
	// SendVerificationEmail mails the account-activation link carrying the
	// recipient's email and the verification token.
	SendVerificationEmail(ctx context.Context, to, name, token string)

	// SendResetEmail mails the password-reset link carrying the recipient's
	// URL-encoded email and the reset token.
	SendResetEmail(ctx context.Context, to, name, token string)

	// SendWelcomeEmail greets a freshly auto-provisioned federated account.
	SendWelcomeEmail(ctx context.Context, to, name string)
}
