package udhar

import (
	"github.com/spf13/cobra"
)

// UdharCmd — родительская команда долговой книги покупателей
var UdharCmd = &cobra.Command{
	Use:   "udhar",
	Short: "Долговая книга",
	Long: `Учет долгов покупателей (udhar): записи о продажах в долг и
погашениях, балансы покупателей.`,
}
