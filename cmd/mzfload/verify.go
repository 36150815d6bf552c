package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	mzf "github.com/logicossoftware/go-mzfload"
	"github.com/logicossoftware/go-mzfload/internal/logger"
)

func (a *app) verifyCmd() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check the checksums of a loader image",
		ArgsUsage: "<image.bin>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in := cmd.Args().First()
			if in == "" {
				return fmt.Errorf("missing input file; usage: mzfload verify %s", cmd.ArgsUsage)
			}
			data, err := readInput(in)
			if err != nil {
				return err
			}
			comp, detected := mzf.CompressionFromExt(in), false
			if comp == mzf.CompNone {
				comp, detected = mzf.DetectCompression(data), true
			}
			image, err := mzf.Unwrap(comp, data, mzf.DefaultLimits())
			if err != nil && detected && errors.Is(err, mzf.ErrInvalidPayload) {
				comp, image, err = mzf.CompNone, data, nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			h, err := mzf.VerifyImage(image)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			logger.FromContext(ctx).Info("image verified", "input", in, "compression", comp.String(), "size", h.DataSize)
			_, err = fmt.Fprintf(a.stdout, "%s: OK (%d bytes, load 0x%04X, exec 0x%04X, checksum 0x%04X)\n",
				in, h.DataSize, h.LoadAddress, h.ExecAddress, h.BodyChecksum)
			return err
		},
	}
}
