package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/studyhub/internal/auth"
)

type CreateUserCommand struct {
	base
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{base: newBase()}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password, at least 8 characters (required)")
	fs.StringVar(&cmd.FirstName, "first-name", "", "First name")
	fs.StringVar(&cmd.LastName, "last-name", "", "Last name")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the SQLite database")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an account and print a bearer token for it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -email ada@example.com -password s3cret-pass\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" || cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("email and password are required")
	}
	return nil
}

func (cmd *CreateUserCommand) Run() error {
	app, err := cmd.build()
	if err != nil {
		return err
	}
	defer app.Close()

	r := app.Users.CreateUser(auth.Registration{
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Email:     cmd.Email,
		Password:  cmd.Password,
	})
	if !r.Ok() {
		return fmt.Errorf("create user: %s", r.Message)
	}

	token, err := app.Accounts.IssueToken(r.Value)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	fmt.Fprintf(cmd.out, "Created user %d (%s)\n", r.Value.ID, r.Value.Email)
	if app.Config.Auth.JWTSecret == "" {
		fmt.Fprintln(cmd.out, "AUTH_JWT_SECRET is not set, so this token is only valid for this process.")
	}
	fmt.Fprintf(cmd.out, "Token: %s\n", token)
	return nil
}
