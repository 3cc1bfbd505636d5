package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/sm2env/internal/aws"
	"github.com/vietdv277/sm2env/internal/config"
	"github.com/vietdv277/sm2env/internal/ui"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage AWS profiles",
	Long: `Manage the AWS profile sm2env uses by default.

Examples:
  sm2env profile ls                 # List all available profiles
  sm2env profile set my-profile     # Save a default profile`,
}

var profileLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available AWS profiles",
	Long: `List all available AWS profiles from ~/.aws/credentials and ~/.aws/config.

Examples:
  sm2env profile ls`,
	RunE: runProfileList,
}

var profileSetCmd = &cobra.Command{
	Use:   "set <profile-name>",
	Short: "Set the default AWS profile",
	Long: `Save a profile to ~/.sm2env/config.yaml so future sm2env commands use it.

Examples:
  sm2env profile set my-profile
  sm2env profile set production`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileSet,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileLsCmd)
	profileCmd.AddCommand(profileSetCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	profiles, err := aws.ListProfiles()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Println("No AWS profiles found")
		fmt.Println("Create profiles in ~/.aws/credentials or ~/.aws/config")
		return nil
	}

	active := config.GetSavedProfile()

	fmt.Println()
	fmt.Println(ui.HeaderStyle.Render("AWS Profiles"))
	fmt.Println(ui.MutedStyle.Render("───────────────────────────────"))
	for _, p := range profiles {
		marker := "  "
		if p.Name == active {
			marker = "* "
		}
		line := marker + p.Name
		if p.Region != "" {
			line += ui.MutedStyle.Render(" (" + p.Region + ")")
		}
		fmt.Println("  " + line)
	}
	if active != "" {
		fmt.Println()
		fmt.Printf("  Active: %s\n", ui.NameStyle.Render(active))
	}

	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	name := args[0]

	if !aws.ValidateProfile(name) {
		return fmt.Errorf("profile %q not found in ~/.aws/credentials or ~/.aws/config", name)
	}

	if err := config.SetProfile(name); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Printf("Default profile set to %s\n", name)
	return nil
}
