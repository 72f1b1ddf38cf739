package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version lo pisa el build (-ldflags "-X main.version=...").
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "dcd-auth",
		Short:         "Login, consent y logout para el authorization server (Hydra)",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", envOr("CONFIG_PATH", ""), "Archivo YAML de configuración (env CONFIG_PATH)")

	root.AddCommand(newServeCmd(&cfgPath))
	root.AddCommand(newScopesCmd(&cfgPath))
	root.AddCommand(newPersonsCmd(&cfgPath))
	return root
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
