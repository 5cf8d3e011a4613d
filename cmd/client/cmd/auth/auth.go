package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd — родительская команда операций с учетной записью владельца
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление учетной записью",
	Long:  `Регистрация, вход и выход владельца лавки.`,
}
