package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"nodex/internal/domain/token"
	"nodex/internal/domain/user"
	"nodex/internal/infrastructure/migration"
	"nodex/internal/infrastructure/storage"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var newUser user.SignupRequest

var createUserCmd = &cobra.Command{
	Use:   "createuser",
	Short: "Создать пользователя и вывести его токен",
	Long: `Регистрирует владельца контента напрямую в хранилище, минуя HTTP.
	
Пароль запрашивается интерактивно; при перенаправленном вводе читается первая строка.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		newUser.Password = password

		if err := migration.NewMigration(cfg, migration.DefaultEngine).Up(); err != nil {
			return err
		}
		st, err := storage.Open(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()

		tokens := token.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		svc := user.NewService(st.Users, user.NewValidator(), tokens, log)

		authToken, err := svc.Signup(cmd.Context(), newUser)
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), authToken)
		return nil
	},
}

// readPassword читает пароль без эха с терминала либо первую строку из in.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Пароль: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	createUserCmd.Flags().StringVar(&newUser.Name, "name", "", "имя пользователя")
	createUserCmd.Flags().StringVar(&newUser.Email, "email", "", "email для входа")
	createUserCmd.Flags().StringVar(&newUser.Contact, "contact", "", "контактный телефон")
	_ = createUserCmd.MarkFlagRequired("email")
}
