package clients

import "context"

// LoginRedirector is told when the session was torn down and the operator
// must log in again. It is called once per failed refresh.
type LoginRedirector interface {
	RedirectToLogin(ctx context.Context, reason error)
}

// RedirectFunc adapts a function to LoginRedirector.
type RedirectFunc func(ctx context.Context, reason error)

func (f RedirectFunc) RedirectToLogin(ctx context.Context, reason error) {
	f(ctx, reason)
}

// RedirectBroadcaster fans a redirect out to several sinks in order.
type RedirectBroadcaster []LoginRedirector

func (b RedirectBroadcaster) RedirectToLogin(ctx context.Context, reason error) {
	for _, r := range b {
		if r != nil {
			r.RedirectToLogin(ctx, reason)
		}
	}
}
