package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/nvallejo/postreria/cart/cmd"
	catalogCmd "github.com/nvallejo/postreria/catalog/cmd"
	favoriteCmd "github.com/nvallejo/postreria/favorite/cmd"
	"github.com/nvallejo/postreria/internal/common/constants"
	"github.com/nvallejo/postreria/internal/log"
	userCmd "github.com/nvallejo/postreria/user/cmd"
)

func Start() {
	logger := log.InitLogger("/var/log/postreria.log", os.Getenv("APP_ENV")).
		With().
		Str(log.KEY_APP_NAME, constants.APP_MAIN_POSTRERIA).
		Str(log.KEY_TAG, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: "postreria"}
	commands := []*cobra.Command{
		{
			Use:   "catalog",
			Short: "Run catalog service",
			Run: func(cmd *cobra.Command, args []string) {
				catalogCmd.RunCatalogService(cmd.Context())
			},
		},
		{
			Use:   "cart",
			Short: "Run cart service",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context())
			},
		},
		{
			Use:   "favorite",
			Short: "Run favorite service",
			Run: func(cmd *cobra.Command, args []string) {
				favoriteCmd.RunFavoriteService(cmd.Context())
			},
		},
		{
			Use:   "user",
			Short: "Run user service",
			Run: func(cmd *cobra.Command, args []string) {
				userCmd.RunUserService(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
