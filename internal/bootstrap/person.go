// Package bootstrap crea cuentas en el API de personas desde la terminal
// (comando `dcd-auth persons create`).
package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// MinPasswordLength mínimo aceptado al crear una persona desde el CLI.
const MinPasswordLength = 8

// PersonCreator es lo único que necesitamos del cliente de personas.
type PersonCreator interface {
	CreatePerson(ctx context.Context, id, name, password string) (string, error)
}

// PasswordReader lee un password sin eco.
type PasswordReader func() (string, error)

// PersonInput: lo que se pudo precargar por flags.
type PersonInput struct {
	Email    string
	Name     string
	Password string
}

// Prompter pide lo que falta por terminal.
type Prompter struct {
	In  *bufio.Reader
	Out io.Writer
	// ReadPassword nil = term.ReadPassword sobre stdin.
	ReadPassword PasswordReader
}

// NewPrompter sobre stdin/stdout.
func NewPrompter() *Prompter {
	return &Prompter{In: bufio.NewReader(os.Stdin), Out: os.Stdout}
}

// ReadPasswordStdin lee la primera línea de r (para --password-stdin).
func ReadPasswordStdin(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// CreatePerson completa los datos faltantes, valida y crea la cuenta.
// Devuelve el personId que asignó el API.
func CreatePerson(ctx context.Context, creator PersonCreator, p *Prompter, in PersonInput) (string, error) {
	var err error
	if in.Email == "" {
		if in.Email, err = p.line("Email: "); err != nil {
			return "", err
		}
	}
	if in.Name == "" {
		if in.Name, err = p.line("Name: "); err != nil {
			return "", err
		}
	}
	if in.Password == "" {
		if in.Password, err = p.newPassword(); err != nil {
			return "", err
		}
	}
	if err := validate(in); err != nil {
		return "", err
	}

	id, err := creator.CreatePerson(ctx, in.Email, in.Name, in.Password)
	if err != nil {
		return "", fmt.Errorf("create person: %w", err)
	}
	return id, nil
}

func validate(in PersonInput) error {
	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		return errors.New("email cannot be empty")
	case !strings.Contains(email, "@"):
		return errors.New("invalid email format")
	case strings.TrimSpace(in.Name) == "":
		return errors.New("name cannot be empty")
	case len(in.Password) < MinPasswordLength:
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

func (p *Prompter) line(label string) (string, error) {
	fmt.Fprint(p.Out, label)
	s, err := p.In.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (p *Prompter) newPassword() (string, error) {
	read := p.ReadPassword
	if read == nil {
		read = readTerminalPassword
	}

	fmt.Fprintf(p.Out, "Password (min %d chars): ", MinPasswordLength)
	pw, err := read()
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", err
	}

	fmt.Fprint(p.Out, "Confirm Password: ")
	confirm, err := read()
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", err
	}
	if pw != confirm {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}

func readTerminalPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal (use --password-stdin)")
	}
	b, err := term.ReadPassword(fd)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
