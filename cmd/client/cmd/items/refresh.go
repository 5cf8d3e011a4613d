package items

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lavka/cmd/client/cmd/types"
	"lavka/internal/app/client"
)

var RefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Обновить снимок товаров с сервера",
	Long: `Забирает полный набор товарных строк с сервера и целиком заменяет
им локальный снимок.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.RefreshInventory(ctx); err != nil {
			return fmt.Errorf("снимок не обновился: %w", err)
		}

		items, err := app.CachedItems()
		if err != nil {
			return err
		}
		fmt.Printf("Снимок обновлен, товаров: %d.\n", len(items))
		return nil
	},
}
