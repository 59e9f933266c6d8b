package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gideon/notes/internal/app"
	authUseCase "github.com/gideon/notes/internal/auth/usecase"
	"github.com/gideon/notes/internal/config"
)

// RunCreateUser registers an account from the command line, bypassing the
// HTTP rate limits. Prompts for the password when it is not provided as a
// flag, so it does not end up in shell history.
//
// Requirements: database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	username string,
	email string,
	password string,
	format string,
	io IOTuple,
) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	useCase, err := container.AuthUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize auth use case: %w", err)
	}

	if password == "" {
		password, err = promptForPassword(io)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	logger.Info("creating new user", slog.String("username", username))

	output, err := useCase.Signup(ctx, authUseCase.SignupInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		result := map[string]any{
			"user_id":  output.User.ID,
			"username": output.User.Username,
			"email":    output.User.Email,
		}
		encoder := json.NewEncoder(io.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
	} else {
		fmt.Fprintf(io.Writer, "User created:\n")
		fmt.Fprintf(io.Writer, "  ID:       %d\n", output.User.ID)
		fmt.Fprintf(io.Writer, "  Username: %s\n", output.User.Username)
		fmt.Fprintf(io.Writer, "  Email:    %s\n", output.User.Email)
	}

	logger.Info("user created successfully",
		slog.Int64("user_id", output.User.ID),
		slog.String("username", output.User.Username),
	)

	return nil
}

// promptForPassword reads the password from the command's input.
func promptForPassword(io IOTuple) (string, error) {
	fmt.Fprint(io.Writer, "Password: ")

	reader := bufio.NewReader(io.Reader)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}
