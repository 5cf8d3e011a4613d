package cmd

import (
	"lavka/cmd/client/cmd/auth"
	"lavka/cmd/client/cmd/items"
	"lavka/cmd/client/cmd/sale"
	"lavka/cmd/client/cmd/sync"
	"lavka/cmd/client/cmd/udhar"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(items.ItemsCmd)
	items.ItemsCmd.AddCommand(items.ListCmd)
	items.ItemsCmd.AddCommand(items.AddCmd)
	items.ItemsCmd.AddCommand(items.RefreshCmd)

	rootCmd.AddCommand(sale.SaleCmd)
	sale.SaleCmd.AddCommand(sale.NewCmd)
	sale.SaleCmd.AddCommand(sale.ListCmd)

	rootCmd.AddCommand(udhar.UdharCmd)
	udhar.UdharCmd.AddCommand(udhar.AddCmd)
	udhar.UdharCmd.AddCommand(udhar.CustomersCmd)

	rootCmd.AddCommand(sync.SyncCmd)
}
