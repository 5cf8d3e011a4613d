package sale

import (
	"github.com/spf13/cobra"
)

// SaleCmd — родительская команда работы с продажами
var SaleCmd = &cobra.Command{
	Use:   "sale",
	Short: "Продажи",
	Long:  `Проведение продаж и просмотр журнала. Продажа работает и без сети.`,
}
