package commands

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mhofmann-club/aufstellung/internal/config"
	"github.com/mhofmann-club/aufstellung/pkg/core/model"
	"github.com/mhofmann-club/aufstellung/pkg/db"
	"github.com/mhofmann-club/aufstellung/pkg/roster"
)

// AppContext holds the dependencies shared by all commands.
type AppContext struct {
	Cfg     *config.Config
	Logger  *zap.Logger
	Store   db.Store
	Rosters roster.Directory
	// Actor is nil until a token was supplied and verified.
	Actor *model.Actor
}

// OpContext returns a context bounded by the configured store timeout.
func (a *AppContext) OpContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(a.Cfg.StoreTimeoutSeconds) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}

// RequireActor returns the verified acting user, or an error for commands
// that mutate state without a token.
func (a *AppContext) RequireActor() (model.Actor, error) {
	if a.Actor == nil {
		return model.Actor{}, errors.New("this command needs an actor token (--token or AUFSTELLUNG_TOKEN)")
	}
	return *a.Actor, nil
}

const dateLayout = "2006-01-02"
