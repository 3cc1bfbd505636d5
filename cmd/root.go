package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/sm2env/internal/config"
)

var (
	// Global flags
	profile string
	region  string
)

var rootCmd = &cobra.Command{
	Use:   "sm2env",
	Short: "Fetch AWS Secrets Manager secrets and save them as .env files",
	Long: `sm2env is a command-line tool that retrieves secrets from AWS Secrets
Manager (and SSM Parameter Store for /-prefixed names) and renders them
into env, JSON, YAML, or CSV files for easy environment management.

Examples:
  sm2env get my-app/db              # Write KEY=VALUE lines to .env
  sm2env get my-app/db -o json      # Write secret.json
  sm2env get my-app/db -o stdout    # Print to the terminal
  sm2env get my-app/db -f out.env   # Write to a custom path
  sm2env get                        # Pick a secret interactively
  sm2env list --filter prod         # List matching secret names`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region to use")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
}

func initConfig() {
	// Read from environment variables
	viper.SetEnvPrefix("SM2ENV")
	viper.AutomaticEnv()

	// Priority for profile: --profile flag > ~/.sm2env/config.yaml > AWS_PROFILE env
	if profile == "" {
		if saved := config.GetSavedProfile(); saved != "" {
			profile = saved
		} else {
			profile = os.Getenv("AWS_PROFILE")
		}
	}

	// Use AWS_REGION if --region not specified
	if region == "" {
		region = os.Getenv("AWS_REGION")
		if region == "" {
			region = os.Getenv("AWS_DEFAULT_REGION")
		}
	}
}

// GetProfile returns the AWS profile
func GetProfile() string {
	return profile
}

// GetRegion returns the AWS region
func GetRegion() string {
	return region
}
