package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/sm2env/internal/aws"
	"github.com/vietdv277/sm2env/internal/config"
	"github.com/vietdv277/sm2env/internal/render"
	"github.com/vietdv277/sm2env/internal/ui"
)

var getCmd = &cobra.Command{
	Use:   "get [secret-name]",
	Short: "Fetch a secret and render it to a file or stdout",
	Long: `Fetch a secret and render it in the selected output format.

Secrets whose payload is a JSON object become KEY=VALUE pairs; anything
else is treated as plain text. Binary secrets are reported by size in
the structured formats and written byte-for-byte only with
'-o stdout --file <path>'.

Without a secret name, an interactive picker opens over the secret list.

Examples:
  sm2env get my-app/db                    # .env in the current directory
  sm2env get my-app/db --output json      # secret.json
  sm2env get my-app/db --output stdout    # print KEY=VALUE lines
  sm2env get my-app/db -o yaml -f app.yml # custom path
  sm2env get /app/db-password             # SSM parameter`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGet,
}

var (
	// get flags
	outputFormat string
	outputFile   string
)

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: stdout, json, env, yaml, csv (default env)")
	getCmd.Flags().StringVarP(&outputFile, "file", "f", "", "Write the output to this path instead of the default filename")
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	format, err := resolveFormat(outputFormat)
	if err != nil {
		return err
	}

	client, err := aws.NewClient(ctx,
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}
	store := aws.NewSecretsStore(client)

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		name, err = pickSecret(ctx, store)
		if err != nil {
			return err
		}
	}

	raw, err := store.Fetch(ctx, name)
	if err != nil {
		return err
	}

	dest, err := render.NewRenderer().Render(raw, format, outputFile)
	if err != nil {
		return err
	}

	if dest != "stdout" {
		fmt.Printf("Secret written to %s\n", dest)
	}
	return nil
}

// resolveFormat picks the output format: --output flag, then the saved
// default, then env.
func resolveFormat(flag string) (render.Format, error) {
	if flag != "" {
		return render.ParseFormat(flag)
	}
	if saved := config.GetDefaultOutput(); saved != "" {
		return render.ParseFormat(saved)
	}
	return render.FormatEnv, nil
}

// pickSecret lists all secrets and opens the interactive selector
func pickSecret(ctx context.Context, store *aws.SecretsStore) (string, error) {
	secrets, err := store.List(ctx, "")
	if err != nil {
		return "", err
	}
	if len(secrets) == 0 {
		return "", fmt.Errorf("no secrets found")
	}

	selected, err := ui.SelectSecret(secrets)
	if err != nil {
		return "", err
	}
	return selected.Name, nil
}
