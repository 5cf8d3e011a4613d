package udhar

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lavka/cmd/client/cmd/types"
	"lavka/internal/app/client"
)

var addNote string

var AddCmd = &cobra.Command{
	Use:   "add покупатель сумма",
	Short: "Записать строку в долговую книгу",
	Long: `Добавляет запись в долговую книгу покупателя. Положительная сумма —
долг вырос, отрицательная — покупатель вернул деньги.

Примеры:
  lavka udhar add "Ахмед" 150 --note "мука в долг"
  lavka udhar add "Ахмед" -100 --note "вернул часть"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("некорректная сумма %q", args[1])
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		queued, err := app.RecordUdhar(ctx, args[0], amount, addNote)
		if err != nil {
			return fmt.Errorf("ошибка записи: %w", err)
		}

		fmt.Println("Запись внесена.")
		if queued {
			fmt.Println("Сети нет: запись в очереди, уйдет на сервер при появлении соединения.")
		}
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVar(&addNote, "note", "", "примечание к записи")
}
