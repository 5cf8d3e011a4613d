package sale

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lavka/cmd/client/cmd/types"
	"lavka/internal/app/client"
	"lavka/internal/domain/inventory"
	"lavka/internal/domain/operation"
)

var (
	newCustomer string
	newOnCredit bool
)

var NewCmd = &cobra.Command{
	Use:   "new товар:количество [товар:количество ...]",
	Short: "Провести продажу",
	Long: `Проводит продажу. Позиции задаются парами товар:количество, количество —
в единицах продажи товара. Цена берется из локального снимка.

Онлайн списание и чек уходят на сервер сразу; без сети операции ложатся
в очередь и будут применены при появлении соединения.

Примеры:
  lavka sale new "Рис:2"
  lavka sale new "Рис:1.5" "Сахар:1" --customer "Ахмед" --credit`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		cached, err := app.CachedItems()
		if err != nil {
			return fmt.Errorf("ошибка чтения снимка товаров: %w", err)
		}

		items := make([]operation.SaleItem, 0, len(args))
		for _, arg := range args {
			name, qty, err := parsePosition(arg)
			if err != nil {
				return err
			}

			price, found := 0.0, false
			for _, it := range cached {
				if inventory.SameName(it.Name, name) {
					price, found = it.Price, true
					break
				}
			}
			if !found {
				fmt.Printf("Товар %q не найден в локальном снимке, цена будет нулевой.\n", name)
			}

			items = append(items, operation.SaleItem{
				Name:            name,
				QuantityDisplay: qty,
				Price:           price,
			})
		}

		if newOnCredit && newCustomer == "" {
			return fmt.Errorf("продажа в долг требует покупателя: --customer")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		result, err := app.NewSale(ctx, items, newCustomer, newOnCredit)
		if err != nil {
			return fmt.Errorf("ошибка проведения продажи: %w", err)
		}

		fmt.Printf("Чек %s на %.2f проведен.\n", result.Sale.InvoiceID, result.Sale.Amount)
		if result.Queued {
			fmt.Println("Сети нет: операции в очереди, уйдут на сервер при появлении соединения.")
		}
		return nil
	},
}

// parsePosition разбирает позицию вида "Рис:2" или "Рис:1.5"
func parsePosition(arg string) (string, float64, error) {
	idx := strings.LastIndex(arg, ":")
	if idx <= 0 || idx == len(arg)-1 {
		return "", 0, fmt.Errorf("позиция %q: ожидается товар:количество", arg)
	}

	name := strings.TrimSpace(arg[:idx])
	qty, err := strconv.ParseFloat(strings.TrimSpace(arg[idx+1:]), 64)
	if err != nil || qty <= 0 {
		return "", 0, fmt.Errorf("позиция %q: некорректное количество", arg)
	}
	return name, qty, nil
}

func init() {
	NewCmd.Flags().StringVar(&newCustomer, "customer", "", "имя покупателя")
	NewCmd.Flags().BoolVar(&newOnCredit, "credit", false, "продажа в долг (udhar)")
}
