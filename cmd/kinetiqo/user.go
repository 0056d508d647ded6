// ABOUTME: CLI commands for accounts and profiles.
// ABOUTME: Supports register, login, logout, and profile subcommands.
package main

import (
	"errors"
	"fmt"

	"github.com/Reogieakero/fitness/internal/config"
	"github.com/Reogieakero/fitness/internal/models"
	"github.com/Reogieakero/fitness/internal/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	regUsername string
	regEmail    string
	regPassword string
	regAge      string
	regWeight   string
	regHeight   string
	regLevel    string
	regGoal     string

	loginPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Long: `Create a new account. The new account becomes the active user.

Emails are case-insensitive and must be unique.

EXAMPLES:

  kinetiqo register --username sam --email sam@example.com --password s3cret
  kinetiqo register --username sam --email sam@example.com --password s3cret \
      --age 29 --weight 72 --height 178 --level Beginner --goal "Lose weight"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := stores.Accounts.Register(models.Registration{
			Username:     regUsername,
			Email:        regEmail,
			Password:     regPassword,
			Age:          regAge,
			Weight:       regWeight,
			Height:       regHeight,
			FitnessLevel: regLevel,
			FitnessGoal:  regGoal,
		})
		if errors.Is(err, storage.ErrConstraintViolation) {
			return fmt.Errorf("an account with email %s already exists", regEmail)
		}
		if err != nil {
			return fmt.Errorf("failed to register: %w", err)
		}

		if err := config.Update(func(c *config.Config) { c.ActiveUserID = id }); err != nil {
			return fmt.Errorf("failed to save active user: %w", err)
		}

		color.Green("✓ Registered %s", regUsername)
		fmt.Printf("  ID: %d\n", id)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in as an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := stores.Accounts.Authenticate(args[0], loginPassword)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("invalid email or password")
		}
		if err != nil {
			return fmt.Errorf("failed to log in: %w", err)
		}

		if err := config.Update(func(c *config.Config) { c.ActiveUserID = u.ID }); err != nil {
			return fmt.Errorf("failed to save active user: %w", err)
		}

		color.Green("✓ Logged in as %s", u.Username)
		fmt.Printf("  Level %d (%d XP)\n", u.Level, u.XP)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the active user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Update(func(c *config.Config) { c.ActiveUserID = 0 }); err != nil {
			return fmt.Errorf("failed to clear active user: %w", err)
		}
		color.Yellow("✗ Logged out")
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"me"},
	Short:   "Show or edit your profile",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		u, err := stores.Accounts.GetFullProfile(uid)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		faint := color.New(color.Faint)
		color.New(color.Bold).Printf("%s ", u.Username)
		faint.Printf("#%d %s\n", u.ID, u.Email)
		fmt.Printf("  Level:   %d (%d XP)\n", u.Level, u.XP)
		fmt.Printf("  Age:     %s\n", u.Age)
		fmt.Printf("  Weight:  %s\n", u.Weight)
		fmt.Printf("  Height:  %s\n", u.Height)
		fmt.Printf("  Fitness: %s\n", u.FitnessLevel)
		fmt.Printf("  Goal:    %s\n", u.FitnessGoal)
		if u.ProfileImage != nil {
			fmt.Printf("  Image:   %s\n", *u.ProfileImage)
		}
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Edit profile fields",
	Long: `Edit profile fields. Only the flags you pass are changed.

EXAMPLES:

  kinetiqo profile update --weight 70
  kinetiqo profile update --username samantha --goal "Build muscle"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		u, err := stores.Accounts.GetFullProfile(uid)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		p := u.Profile()
		flags := cmd.Flags()
		if flags.Changed("username") {
			p.Username = regUsername
		}
		if flags.Changed("age") {
			p.Age = regAge
		}
		if flags.Changed("weight") {
			p.Weight = regWeight
		}
		if flags.Changed("height") {
			p.Height = regHeight
		}
		if flags.Changed("goal") {
			p.FitnessGoal = regGoal
		}

		if err := stores.Accounts.UpdateProfile(uid, p); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		color.Green("✓ Updated profile")
		return nil
	},
}

var profileImageCmd = &cobra.Command{
	Use:   "image <uri>",
	Short: "Set the profile image reference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		if err := stores.Accounts.UpdateProfileImage(uid, args[0]); err != nil {
			return fmt.Errorf("failed to update profile image: %w", err)
		}
		color.Green("✓ Updated profile image")
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&regUsername, "username", "", "display name")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "login email")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "password")
	registerCmd.Flags().StringVar(&regAge, "age", "", "age")
	registerCmd.Flags().StringVar(&regWeight, "weight", "", "weight")
	registerCmd.Flags().StringVar(&regHeight, "height", "", "height")
	registerCmd.Flags().StringVar(&regLevel, "level", "", "fitness level (Beginner, Intermediate, Advanced)")
	registerCmd.Flags().StringVar(&regGoal, "goal", "", "fitness goal")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password")
	_ = loginCmd.MarkFlagRequired("password")

	profileUpdateCmd.Flags().StringVar(&regUsername, "username", "", "display name")
	profileUpdateCmd.Flags().StringVar(&regAge, "age", "", "age")
	profileUpdateCmd.Flags().StringVar(&regWeight, "weight", "", "weight")
	profileUpdateCmd.Flags().StringVar(&regHeight, "height", "", "height")
	profileUpdateCmd.Flags().StringVar(&regGoal, "goal", "", "fitness goal")

	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profileImageCmd)

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(profileCmd)
}
