package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"lavka/cmd/client/cmd/types"
	"lavka/internal/app/client"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	Long:  `Стирает сохраненный токен. Локальные данные и очередь остаются на месте.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if err := app.Logout(); err != nil {
			return fmt.Errorf("ошибка выхода: %w", err)
		}

		fmt.Println("Выход выполнен.")
		return nil
	},
}
