package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/internal/application/usecase"
	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/axion-crm/pkg/config"
	"github.com/jhoicas/axion-crm/pkg/phone"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "axionctl",
		Short:         "Operación de Axion CRM",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedAdminCmd(), newPhoneCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [command] [args...]",
		Short: "Ejecuta migraciones goose (por defecto up)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.DB.Configured() {
				return domain.ErrNotConfigured
			}
			command := "up"
			if len(args) > 0 {
				command, args = args[0], args[1:]
			}
			if err := postgres.Migrate(cmd.Context(), cfg.DB.ConnectionString(), command, args...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s ok\n", command)
			return nil
		},
	}
}

func newSeedAdminCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Crea un usuario administrador",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			pool, err := postgres.Connect(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión: %w", err)
			}
			defer postgres.CloseShared()

			uc := usecase.NewAdminUserUseCase(postgres.NewUserProfileRepository(pool), nil, nil)
			out, err := uc.Create(ctx, "", dto.CreateUserRequest{
				Email:    email,
				Password: password,
				Name:     name,
				Role:     string(entity.RoleAdmin),
			})
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s ya existe\n", email)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s creado (%s)\n", out.Email, out.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&password, "password", "", "contraseña (mínimo 8 caracteres)")
	cmd.Flags().StringVar(&name, "name", "Administrador", "nombre visible")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newPhoneCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "phone <teléfono> [mensaje]",
		Short: "Normaliza un teléfono brasileño e imprime el enlace de mensajería",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			digits, ok := phone.NormalizeBR(args[0])
			if !ok {
				return fmt.Errorf("%q no contiene dígitos", args[0])
			}
			msg := ""
			if len(args) > 1 {
				msg = args[1]
			}
			fmt.Fprintln(cmd.OutOrStdout(), digits)
			fmt.Fprintln(cmd.OutOrStdout(), phone.NewLinker(base).Link(digits, msg))
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base-url", phone.DefaultBaseURL, "base del enlace")
	return cmd
}
