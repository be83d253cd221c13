package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	contextutils "speakroots/internal/utils"
)

// hashPasswordCmd returns the hash-password command
func hashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash an admin password for server.admin_password_hash",
		Long: `Hash an admin password for server.admin_password_hash.

The password is prompted for twice on a terminal. Otherwise it is read from the
first line of standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			if password == "" {
				return contextutils.InvalidInputf("password must not be empty")
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
			if err != nil {
				return contextutils.WrapError(err, "failed to hash password")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return promptPassword(cmd.ErrOrStderr(), int(f.Fd()))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", contextutils.WrapError(err, "failed to read password")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func promptPassword(prompt io.Writer, fd int) (string, error) {
	fmt.Fprint(prompt, "Password: ")
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", contextutils.WrapError(err, "failed to read password")
	}

	fmt.Fprint(prompt, "Confirm password: ")
	confirm, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", contextutils.WrapError(err, "failed to read password confirmation")
	}

	if string(password) != string(confirm) {
		return "", contextutils.InvalidInputf("passwords do not match")
	}
	return string(password), nil
}
