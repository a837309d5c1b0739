package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/Halsjsko/BobTheBot/bob"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"
	"strings"
	"syscall"
)

// passwordReader reads a password without echoing it. Replaced in tests.
type passwordReader func() ([]byte, error)

var customPasswordReader passwordReader

var errEmptyUsername = errors.New("admin username can't be empty")

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database and set admin credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.DatabaseType == "" {
			return errors.New(
				"environment variable BOB_DATABASE_TYPE not set (must be one of: sqlite, postgres)",
			)
		}
		if cfg.Database == "" {
			return errors.New(
				"environment variable BOB_DATABASE not set (must be a valid " +
					"database connection string or sqlite file path)",
			)
		}

		db, err := bob.CreateDB(ctx, cfg.DatabaseType, cfg.Database)
		if err != nil {
			return fmt.Errorf("error creating database: %w", err)
		}

		var runtimeConfig bob.RuntimeConfig
		if rv := db.Last(&runtimeConfig); rv.Error != nil {
			if !errors.Is(rv.Error, gorm.ErrRecordNotFound) {
				return fmt.Errorf("error retrieving runtime config: %w", rv.Error)
			}
			runtimeConfig = bob.DefaultRuntimeConfig()
			if err = db.Create(&runtimeConfig).Error; err != nil {
				return fmt.Errorf("error creating runtime config: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		if runtimeConfig.AdminUsername != "" && runtimeConfig.AdminPassword != "" {
			fmt.Fprintln(out, "Admin credentials are already set.")
		} else {
			fmt.Fprintln(out, "Admin credentials are not set. Let's set them up.")
			if err = setAdminCredentials(cmd, db, &runtimeConfig); err != nil {
				return err
			}
			fmt.Fprintln(out, "Admin credentials set successfully.")
		}

		fmt.Fprintln(
			out,
			"Initialization complete. You can now start the bot with the 'run' subcommand.",
		)
		return nil
	},
}

func setAdminCredentials(cmd *cobra.Command, db *gorm.DB, runtimeConfig *bob.RuntimeConfig) error {
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprint(out, "Enter admin username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		return errEmptyUsername
	}

	readPassword := customPasswordReader
	if readPassword == nil {
		readPassword = func() ([]byte, error) {
			return term.ReadPassword(int(syscall.Stdin))
		}
	}

	var password string
	for {
		fmt.Fprint(out, "Enter admin password: ")
		passwordBytes, err := readPassword()
		if err != nil {
			return fmt.Errorf("error reading password: %w", err)
		}
		password = string(passwordBytes)
		fmt.Fprintln(out)

		fmt.Fprint(out, "Confirm admin password: ")
		confirmPasswordBytes, err := readPassword()
		if err != nil {
			return fmt.Errorf("error reading password: %w", err)
		}
		fmt.Fprintln(out)

		if password != "" && password == string(confirmPasswordBytes) {
			break
		}
		fmt.Fprintln(out, "Passwords do not match or are empty. Please try again.")
	}

	hashedPassword, err := bob.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err = db.Model(runtimeConfig).Updates(
		map[string]any{
			"admin_username": username,
			"admin_password": hashedPassword,
		},
	).Error; err != nil {
		return fmt.Errorf("error updating admin credentials: %w", err)
	}
	return nil
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(initCmd)
}
