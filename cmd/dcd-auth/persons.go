package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datacentricdesign/dcd-auth/internal/app"
	"github.com/datacentricdesign/dcd-auth/internal/bootstrap"
)

func newPersonsCmd(cfgPath *string) *cobra.Command {
	personsCmd := &cobra.Command{Use: "persons", Short: "Cuentas en el API de personas"}

	var in bootstrap.PersonInput
	var passwordStdin bool
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Crea una persona (pide lo que falte por terminal)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			pc, err := app.NewPersonsClient(cfg, nil)
			if err != nil {
				return err
			}

			if passwordStdin {
				if in.Email == "" || in.Name == "" {
					return fmt.Errorf("--password-stdin requiere --email y --name")
				}
				if in.Password, err = bootstrap.ReadPasswordStdin(os.Stdin); err != nil {
					return fmt.Errorf("read password from stdin: %w", err)
				}
			}

			p := bootstrap.NewPrompter()
			p.Out = cmd.OutOrStdout()
			id, err := bootstrap.CreatePerson(cmd.Context(), pc, p, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "person created: %s\n", id)
			return nil
		},
	}
	createCmd.Flags().StringVar(&in.Email, "email", "", "Email (también es el id de la persona)")
	createCmd.Flags().StringVar(&in.Name, "name", "", "Nombre visible")
	createCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Leer el password de stdin")

	personsCmd.AddCommand(createCmd)
	return personsCmd
}
