package sync

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"lavka/cmd/client/cmd/types"
	"lavka/internal/app/client"
)

var (
	syncStatus bool
	syncWatch  bool
	dropID     int64
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Синхронизация с сервером",
	Long: `Прогоняет очередь отложенных операций на сервер.

Без флагов выполняется один проход: проверка соединения и отправка
всех операций, накопленных в офлайне, в порядке постановки.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if syncStatus {
			return showStatus(cmd.Context(), app)
		}
		if dropID > 0 {
			return dropPending(app, dropID)
		}
		if syncWatch {
			return watch(cmd.Context(), app)
		}
		return runDrain(cmd.Context(), app)
	},
}

func runDrain(ctx context.Context, app *client.App) error {
	if !app.IsAuthenticated() {
		return fmt.Errorf("требуется вход: lavka auth login")
	}

	fmt.Println("Проверка соединения...")
	if err := app.CheckConnection(ctx); err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}

	count, err := app.PendingCount()
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("Очередь пуста, синхронизировать нечего.")
		return nil
	}

	fmt.Printf("В очереди %d операций, отправляем...\n", count)
	result, err := app.Sync().Drain(ctx)
	if err != nil {
		return fmt.Errorf("ошибка синхронизации: %w", err)
	}
	if result == nil {
		fmt.Println("Синхронизация уже идет.")
		return nil
	}

	fmt.Println()
	fmt.Printf("Готово за %v.\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("Применено: %d\n", result.Applied)
	if result.NoMatch > 0 {
		fmt.Printf("Закрыто без цели (товар исчез с сервера): %d\n", result.NoMatch)
	}
	if result.Failed > 0 {
		fmt.Printf("Не прошло (останутся в очереди): %d\n", result.Failed)
	}
	if result.Skipped > 0 {
		fmt.Printf("Отложено из-за потери сети: %d\n", result.Skipped)
	}
	return nil
}

func showStatus(ctx context.Context, app *client.App) error {
	fmt.Println("=== Состояние синхронизации ===")

	fmt.Print("Соединение: ")
	if err := app.CheckConnection(ctx); err != nil {
		fmt.Printf("нет (%v)\n", err)
	} else {
		fmt.Println("есть")
	}

	fmt.Print("Вход выполнен: ")
	if app.IsAuthenticated() {
		fmt.Println("да")
	} else {
		fmt.Println("нет")
	}

	stats := app.Sync().Stats()
	fmt.Printf("Проходов: %d, применено: %d, ошибок: %d, закрыто без цели: %d\n",
		stats.TotalDrains, stats.TotalApplied, stats.TotalFailed, stats.TotalNoMatch)
	if !stats.LastSuccess.IsZero() {
		fmt.Printf("Последний успешный проход: %s\n", stats.LastSuccess.Local().Format("2006-01-02 15:04:05"))
	}

	pending, err := app.ListPending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("Очередь пуста.")
		return nil
	}

	fmt.Printf("\nВ очереди %d операций:\n", len(pending))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tВИД\tПОСТАВЛЕНА\t")
	for _, env := range pending {
		fmt.Fprintf(w, "%d\t%s\t%s\t\n",
			env.ID, env.Kind, env.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	w.Flush()

	fmt.Println("\nЗастрявшую операцию можно выбросить вручную: lavka sync --drop <id>")
	return nil
}

// dropPending выбрасывает операцию из очереди. Координатор сам никогда не
// бросает упавшие операции, так что вечно отвергаемую сервером убирает
// владелец, осознанно.
func dropPending(app *client.App, id int64) error {
	if err := app.DropPending(id); err != nil {
		return fmt.Errorf("ошибка удаления операции %d: %w", id, err)
	}
	fmt.Printf("Операция %d выброшена из очереди.\n", id)
	return nil
}

func watch(ctx context.Context, app *client.App) error {
	fmt.Println("Следим за сетью, очередь уходит при появлении соединения. Ctrl+C для выхода.")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.StartBackground(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	fmt.Println("\nОстанавливаемся.")
	return nil
}

func init() {
	SyncCmd.Flags().BoolVar(&syncStatus, "status", false, "показать состояние и содержимое очереди")
	SyncCmd.Flags().BoolVar(&syncWatch, "watch", false, "фоновый режим: следить за сетью и синхронизировать")
	SyncCmd.Flags().Int64Var(&dropID, "drop", 0, "выбросить операцию из очереди по id")
}
