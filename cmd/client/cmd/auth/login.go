package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lavka/cmd/client/cmd/types"
	"lavka/internal/app/client"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему",
	Long: `Аутентификация на сервере лавки.

После входа токен сохраняется локально, и клиент сразу забирает
свежий снимок товаров и покупателей.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		fmt.Println("=== Вход в систему ===")
		fmt.Println()

		fmt.Print("Логин: ")
		var login string
		_, _ = fmt.Scanln(&login)

		fmt.Print("Пароль: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		fmt.Println("Аутентификация...")
		if err := app.Login(ctx, login, string(password)); err != nil {
			return fmt.Errorf("ошибка входа: %w", err)
		}

		fmt.Println("Вход выполнен.")

		// Свежий снимок сразу после входа; без сети не страшно —
		// клиент продолжит со старым
		if err := app.RefreshInventory(ctx); err != nil {
			fmt.Printf("Снимок товаров не обновился: %v\n", err)
			fmt.Println("Продолжаем с локальным снимком.")
			return nil
		}
		if err := app.RefreshCustomers(ctx); err != nil {
			fmt.Printf("Покупатели не обновились: %v\n", err)
		}
		fmt.Println("Данные синхронизированы.")
		return nil
	},
}
