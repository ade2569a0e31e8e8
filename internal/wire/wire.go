//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/issue-warden/internal/app"
	"github.com/sevigo/issue-warden/internal/config"
)

func InitializeApp(ctx context.Context, cfg *config.Config) (*app.App, error) {
	wire.Build(AppSet)
	return &app.App{}, nil
}
