package items

import (
	"github.com/spf13/cobra"
)

// ItemsCmd — родительская команда работы с товарными остатками
var ItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Товарные остатки",
	Long:  `Просмотр, добавление и обновление товарных остатков лавки.`,
}
