package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fieldcrypt/cmd/app/commands"
	"github.com/allisson/fieldcrypt/internal/app"
	"github.com/allisson/fieldcrypt/internal/config"
)

func entityFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "entity",
		Aliases:  []string{"e"},
		Required: true,
		Usage:    "Entity type (e.g., morador, condominio, banco)",
	}
}

func recordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "record-json",
		Aliases:  []string{"r"},
		Required: true,
		Usage:    "Record as a JSON object, or '-' to read it from stdin",
	}
}

func getFieldCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "hash-document",
			Usage: "Print the lookup hash of a CPF/CNPJ",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "document",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Document number, formatted or digits only",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.FieldUseCase()
				if err != nil {
					return err
				}

				return commands.RunHashDocument(
					ctx,
					useCase,
					commands.DefaultIO().Writer,
					cmd.String("document"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "encrypt-fields",
			Usage: "Encrypt the sensitive fields of a record",
			Flags: []cli.Flag{entityFlag(), recordFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.FieldUseCase()
				if err != nil {
					return err
				}

				return commands.RunEncryptFields(
					ctx,
					useCase,
					commands.DefaultIO(),
					cmd.String("entity"),
					cmd.String("record-json"),
				)
			},
		},
		{
			Name:  "decrypt-fields",
			Usage: "Decrypt the sensitive fields of a protected record",
			Flags: []cli.Flag{entityFlag(), recordFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.FieldUseCase()
				if err != nil {
					return err
				}

				return commands.RunDecryptFields(
					ctx,
					useCase,
					commands.DefaultIO(),
					cmd.String("entity"),
					cmd.String("record-json"),
				)
			},
		},
		{
			Name:  "show-policy",
			Usage: "Print the active entity policy",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "yaml",
					Usage:   "Output format: 'yaml' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				policy, err := container.Policy()
				if err != nil {
					return err
				}

				return commands.RunShowPolicy(policy, commands.DefaultIO().Writer, cmd.String("format"))
			},
		},
	}
}
