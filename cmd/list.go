package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/vietdv277/sm2env/internal/aws"
	pkgtypes "github.com/vietdv277/sm2env/pkg/types"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available secrets",
	Long: `List secrets from Secrets Manager and SSM Parameter Store.

Examples:
  sm2env list                   # List everything
  sm2env list --filter prod     # Names containing "prod"`,
	RunE: runList,
}

var listFilter string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listFilter, "filter", "", "Only show secrets whose name contains this text")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := aws.NewClient(ctx,
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	secrets, err := aws.NewSecretsStore(client).List(ctx, listFilter)
	if err != nil {
		return err
	}

	if len(secrets) == 0 {
		fmt.Println("No secrets found")
		return nil
	}

	printSecretsTable(secrets)

	return nil
}

func printSecretsTable(secrets []pkgtypes.Secret) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("Name", "Store", "Updated")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	tbl.WithWriter(os.Stdout)

	for _, secret := range secrets {
		updated := ""
		if !secret.UpdatedAt.IsZero() {
			updated = secret.UpdatedAt.Format("2006-01-02 15:04")
		}
		tbl.AddRow(
			truncate(secret.Name, 50),
			secret.StoreLabel(),
			updated,
		)
	}

	tbl.Print()
	fmt.Printf("\nTotal: %d secrets\n", len(secrets))
}

// truncate shortens a string with ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
