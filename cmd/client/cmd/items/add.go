package items

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lavka/cmd/client/cmd/types"
	"lavka/internal/app/client"
	"lavka/internal/domain/inventory"
)

var (
	addName        string
	addQuantity    float64
	addPrice       float64
	addSKU         string
	addBaseUnit    string
	addDisplayUnit string
	addFactor      float64
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Завести новый товар",
	Long: `Заводит новую строку товара на сервере. Работает только онлайн:
создание строки не откладывается в очередь, чтобы повтор не плодил
дубликаты. Остаток задается в единицах продажи.

Пример:
  lavka items add --name "Рис" --qty 5 --price 85 \
    --base-unit грамм --unit килограмм --factor 1000`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if addName == "" {
			return fmt.Errorf("укажите название: --name")
		}
		if addFactor <= 0 {
			addFactor = 1
		}

		item := inventory.Item{
			Name:         addName,
			SKU:          addSKU,
			QuantityBase: inventory.ToBase(addQuantity, addFactor),
			Price:        addPrice,
			BaseUnit:     addBaseUnit,
			DisplayUnit:  addDisplayUnit,
			Factor:       addFactor,
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		id, err := app.AddItem(ctx, item)
		if err != nil {
			return fmt.Errorf("ошибка создания товара: %w", err)
		}

		fmt.Printf("Товар %q заведен, id %d.\n", item.Name, id)

		// Обновляем снимок, чтобы товар сразу был виден в items list
		if err := app.RefreshInventory(ctx); err != nil {
			fmt.Printf("Снимок не обновился: %v\n", err)
		}
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVar(&addName, "name", "", "название товара")
	AddCmd.Flags().Float64Var(&addQuantity, "qty", 0, "остаток в единицах продажи")
	AddCmd.Flags().Float64Var(&addPrice, "price", 0, "цена за единицу продажи")
	AddCmd.Flags().StringVar(&addSKU, "sku", "", "артикул")
	AddCmd.Flags().StringVar(&addBaseUnit, "base-unit", "", "базовая единица хранения (грамм, миллилитр, штука)")
	AddCmd.Flags().StringVar(&addDisplayUnit, "unit", "", "единица продажи (килограмм, литр, штука)")
	AddCmd.Flags().Float64Var(&addFactor, "factor", 1, "сколько базовых единиц в единице продажи")
}
