package udhar

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lavka/cmd/client/cmd/types"
	"lavka/internal/app/client"
)

var refreshCustomers bool

var CustomersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Покупатели с балансами долгов",
	Long: `Показывает покупателей и их балансы из локального снимка.
С флагом --refresh снимок сначала обновляется с сервера.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if refreshCustomers {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := app.RefreshCustomers(ctx); err != nil {
				fmt.Printf("Снимок не обновился: %v\n", err)
			}
		}

		customers, err := app.CachedCustomers()
		if err != nil {
			return fmt.Errorf("ошибка чтения покупателей: %w", err)
		}

		if len(customers) == 0 {
			fmt.Println("Покупателей с долгами нет.")
			return nil
		}

		red := color.New(color.FgRed).SprintFunc()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ПОКУПАТЕЛЬ\tТЕЛЕФОН\tБАЛАНС\t")
		var total float64
		for _, c := range customers {
			balance := fmt.Sprintf("%.2f", c.Balance)
			if c.Balance > 0 {
				balance = red(balance)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", c.Name, c.Phone, balance)
			total += c.Balance
		}
		w.Flush()

		fmt.Printf("\nОбщий долг: %.2f\n", total)
		return nil
	},
}

func init() {
	CustomersCmd.Flags().BoolVar(&refreshCustomers, "refresh", false, "обновить снимок с сервера")
}
