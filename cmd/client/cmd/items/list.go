package items

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lavka/cmd/client/cmd/types"
	"lavka/internal/app/client"
)

var lowOnly bool

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список товаров",
	Long: `Показывает локальный снимок товарных остатков. Работает без сети:
снимок обновляется командой items refresh или автоматически после входа.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		items, err := app.CachedItems()
		if err != nil {
			return fmt.Errorf("ошибка чтения товаров: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("Товаров нет. Обновите снимок: lavka items refresh")
			return nil
		}

		yellow := color.New(color.FgYellow).SprintFunc()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tНАЗВАНИЕ\tОСТАТОК\tЦЕНА\t")
		for _, item := range items {
			if lowOnly && !item.Low() {
				continue
			}
			name := item.Name
			if item.Low() {
				name = yellow(name + " (мало)")
			}
			fmt.Fprintf(w, "%d\t%s\t%.2f %s\t%.2f\t\n",
				item.ID, name, item.QuantityDisplay(), item.DisplayUnit, item.Price)
		}
		w.Flush()

		if last, err := app.LastInventorySync(); err == nil && !last.IsZero() {
			fmt.Printf("\nСнимок от %s\n", last.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	ListCmd.Flags().BoolVar(&lowOnly, "low", false, "только заканчивающиеся товары")
}
