package cmd

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/spf13/cobra"

	"github.com/vietdv277/sm2env/internal/aws"
	"github.com/vietdv277/sm2env/internal/ui"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current AWS identity",
	Long: `Display the current AWS caller identity.

Equivalent to 'aws sts get-caller-identity'. Useful to check which
account and role sm2env will fetch secrets with.

Examples:
  sm2env whoami
  sm2env whoami -p production`,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := aws.NewClient(ctx,
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	output, err := client.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return fmt.Errorf("failed to get caller identity: %w", err)
	}

	fmt.Println()
	fmt.Println(ui.HeaderStyle.Render("AWS Identity"))
	fmt.Println(ui.MutedStyle.Render("───────────────────────────────"))
	if GetProfile() != "" {
		fmt.Printf("  Profile: %s\n", GetProfile())
	}
	if GetRegion() != "" {
		fmt.Printf("  Region:  %s\n", GetRegion())
	}
	fmt.Printf("  Account: %s\n", derefStr(output.Account))
	fmt.Printf("  UserID:  %s\n", derefStr(output.UserId))
	fmt.Printf("  ARN:     %s\n", ui.MutedStyle.Render(derefStr(output.Arn)))

	return nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
