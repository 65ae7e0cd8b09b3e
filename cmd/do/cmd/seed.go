package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mementoapp/memento/internal/app"
	"github.com/mementoapp/memento/internal/apperr"
	"github.com/mementoapp/memento/internal/config"
	"github.com/mementoapp/memento/internal/logger"
	"github.com/mementoapp/memento/internal/model"
	"github.com/mementoapp/memento/internal/service"
	"github.com/spf13/cobra"
)

const seedPassword = "memento-dev-password"

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create demo users and a shared album in the development database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.IsProduction() {
				return errors.New("refusing to seed a production database")
			}
			logger.Init(true, "", cfg.AppEnv)

			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			return seed(cmd.Context(), a)
		},
	}
}

// seed is idempotent for users; each run adds one more demo album.
func seed(ctx context.Context, a *app.App) error {
	alice, err := seedUser(ctx, a.AuthService, "alice@example.com", "Alice")
	if err != nil {
		return err
	}
	bob, err := seedUser(ctx, a.AuthService, "bob@example.com", "Bob")
	if err != nil {
		return err
	}

	album, err := a.AlbumService.Create(ctx, alice.ID, "Summer Trip")
	if err != nil {
		return fmt.Errorf("create album: %w", err)
	}

	_, err = a.AlbumService.AddMember(ctx, alice.ID, album.ID, bob.ID)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}

	caption := "Sunset at the pier"
	_, err = a.ImageService.Create(ctx, bob.ID, service.NewImage{
		AlbumID:  album.ID,
		ImageURL: "https://res.cloudinary.com/demo/image/upload/sample.jpg",
		Caption:  &caption,
	})
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}

	slog.Info("seeded demo data",
		"album_id", album.ID,
		"users", []string{alice.Email, bob.Email},
		"password", seedPassword,
	)
	return nil
}

func seedUser(ctx context.Context, auth *service.AuthService, email, name string) (*model.User, error) {
	user, err := auth.Register(ctx, email, seedPassword, name)
	if apperr.Is(err, apperr.KindConflict) {
		return auth.Login(ctx, email, seedPassword)
	}
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", email, err)
	}
	return user, nil
}
