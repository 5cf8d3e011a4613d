package sale

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lavka/cmd/client/cmd/types"
	"lavka/internal/app/client"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Журнал продаж",
	Long: `Показывает локальный журнал продаж. Непереданные на сервер чеки
помечены; они уйдут при ближайшей синхронизации.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		sales, err := app.CachedSales()
		if err != nil {
			return fmt.Errorf("ошибка чтения журнала: %w", err)
		}

		if len(sales) == 0 {
			fmt.Println("Продаж пока нет.")
			return nil
		}

		red := color.New(color.FgRed).SprintFunc()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ДАТА\tЧЕК\tСУММА\tПОЗИЦИЙ\tПОКУПАТЕЛЬ\t")
		var total float64
		for _, s := range sales {
			mark := ""
			if !s.Synced {
				mark = red(" *")
			}
			fmt.Fprintf(w, "%s\t%s%s\t%.2f\t%d\t%s\t\n",
				s.Date.Local().Format("2006-01-02 15:04"),
				s.InvoiceID, mark, s.Amount, s.ItemCount(), s.Customer)
			total += s.Amount
		}
		w.Flush()

		fmt.Printf("\nВсего: %.2f (%d чеков)\n", total, len(sales))
		if count, err := app.PendingCount(); err == nil && count > 0 {
			fmt.Printf("%s операций ждут отправки на сервер\n", red(fmt.Sprint(count)))
		}
		return nil
	},
}
