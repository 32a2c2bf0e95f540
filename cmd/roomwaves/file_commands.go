package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a recording and print its file key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := client.Upload(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			ctx.logger.Info("recording uploaded", zap.String("file", args[0]), zap.String("path", res.Path))

			if jsonOut {
				return writeJSON(cmd, res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\nFile key: %s\n", res.Filename, res.Path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the upload result as JSON")
	return cmd
}

func newFileURLCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "file-url <file-key>",
		Short: "Print a download URL for a stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			res, err := client.FileURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.URL)
			return nil
		},
	}
}
