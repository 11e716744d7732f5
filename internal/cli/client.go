package cli

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/clients"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/repository"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/session"
)

// openClient restores the stored session and returns a backend client for it.
// The returned func releases the token store.
func openClient(ctx context.Context, opts *RootOptions, errOut io.Writer) (*clients.APIClient, func(), error) {
	cfg := opts.Config

	var closers []io.Closer
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i].Close()
		}
	}

	var store session.TokenStore
	var err error
	if cfg.Session.Store == "redis" {
		redisClient := repository.NewRedisClient(cfg.Redis)
		closers = append(closers, redisClient)
		store, _, err = session.OpenStore(cfg.Session, redisClient)
	} else {
		var closer io.Closer
		store, closer, err = session.OpenStore(cfg.Session, nil)
		if closer != nil {
			closers = append(closers, closer)
		}
	}
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	sess := session.New(store)
	if err := sess.Restore(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}

	redirect := clients.RedirectFunc(func(ctx context.Context, reason error) {
		io.WriteString(errOut, "Session expired. Run `posctl login` to sign in again.\n")
	})

	logger := logging.NewLoggerV2("posctl")
	return clients.NewAPIClient(cfg.API, sess, redirect, nil, logger), cleanup, nil
}

func errorCode(err error) string {
	var apiErr *clients.APIError
	switch {
	case stderrors.Is(err, clients.ErrSessionExpired):
		return ErrCodeSessionExpired
	case stderrors.As(err, &apiErr):
		return ErrCodeBackend
	default:
		return ErrCodeGeneric
	}
}
