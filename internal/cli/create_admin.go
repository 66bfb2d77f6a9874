// Package cli implements the command line entry points other than the
// HTTP server.
package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"librarysystem/internal/auth"
	"librarysystem/internal/config"
	"librarysystem/internal/database"
	"librarysystem/internal/entities"
)

// CreateAdminCommand provisions an administrator account so the API can be
// logged into on a fresh database.
type CreateAdminCommand struct {
	DatabasePath string
	AccountID    string
	Name         string
	Email        string
}

// NewCreateAdminCommand creates a new CreateAdminCommand.
func NewCreateAdminCommand() *CreateAdminCommand {
	return &CreateAdminCommand{}
}

// ParseFlags parses command line flags.
func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database")
	fs.StringVar(&cmd.AccountID, "account-id", "", "Account id for the administrator (e.g. staff number)")
	fs.StringVar(&cmd.Name, "name", "", "Display name for the administrator")
	fs.StringVar(&cmd.Email, "email", "", "Email address for the administrator")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an administrator account. The password is read interactively\n")
		fmt.Fprintf(os.Stderr, "and never accepted as a flag.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.AccountID == "" {
		return fmt.Errorf("account id required: use -account-id flag")
	}
	if cmd.Name == "" {
		cmd.Name = cmd.AccountID
	}

	return nil
}

// Run creates the administrator account.
func (cmd *CreateAdminCommand) Run() error {
	cfg := config.NewConfig()

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", cmd.DatabasePath, err)
	}
	defer db.Close()

	service := auth.NewService(db.DB, cfg.Auth)

	password, err := promptPassword()
	if err != nil {
		return err
	}

	account := &entities.Account{
		AccountID:   cmd.AccountID,
		Name:        cmd.Name,
		Email:       cmd.Email,
		AccountType: entities.AccountTypeAdmin,
	}

	if err := service.CreateAccount(account, password); err != nil {
		if errors.Is(err, auth.ErrAccountExists) {
			return fmt.Errorf("account %s already exists", cmd.AccountID)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	fmt.Printf("Administrator account %s created in %s\n", cmd.AccountID, cmd.DatabasePath)
	return nil
}

// promptPassword reads and confirms the password without echoing it. When
// stdin is not a terminal (piped input) it falls back to reading a single
// line.
func promptPassword() (string, error) {
	fd := int(syscall.Stdin)

	if !term.IsTerminal(fd) {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Print("Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}

	return string(first), nil
}
