package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	mzf "github.com/logicossoftware/go-mzfload"
	"github.com/logicossoftware/go-mzfload/internal/logger"
)

// inspectReport is the machine-readable form of inspect's output.
type inspectReport struct {
	File           string `json:"file"`
	FileType       string `json:"file_type"`
	Filename       string `json:"filename"`
	Comment        string `json:"comment"`
	DataSize       uint16 `json:"data_size"`
	LoadAddress    uint16 `json:"load_address"`
	ExecAddress    uint16 `json:"exec_address"`
	BodyChecksum   uint16 `json:"body_checksum"`
	HeaderChecksum uint8  `json:"header_checksum"`
	ImageSize      int    `json:"image_size"`
}

func newInspectReport(file string, rec *mzf.Record) inspectReport {
	h := rec.LoaderHeader()
	return inspectReport{
		File:           file,
		FileType:       rec.FileType.String(),
		Filename:       rec.Filename,
		Comment:        rec.Comment,
		DataSize:       rec.DataSize,
		LoadAddress:    rec.LoadAddress,
		ExecAddress:    rec.ExecAddress,
		BodyChecksum:   h.BodyChecksum,
		HeaderChecksum: h.HeaderChecksum,
		ImageSize:      mzf.LoaderHeaderSize + int(rec.DataSize),
	}
}

func (r inspectReport) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"File:            %s\n"+
			"Type:            %s\n"+
			"Filename:        %s\n"+
			"Comment:         %s\n"+
			"Size:            %d bytes\n"+
			"Load address:    0x%04X\n"+
			"Exec address:    0x%04X\n"+
			"Body checksum:   0x%04X\n"+
			"Header checksum: 0x%02X\n"+
			"Image size:      %d bytes\n",
		r.File, r.FileType, r.Filename, r.Comment, r.DataSize,
		r.LoadAddress, r.ExecAddress, r.BodyChecksum, r.HeaderChecksum, r.ImageSize)
	return err
}

func (a *app) inspectCmd() *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the header fields and checksums of an MZF container",
		ArgsUsage: "<input.mzf>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the report as JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in := cmd.Args().First()
			if in == "" {
				return fmt.Errorf("missing input file; usage: mzfload inspect %s", cmd.ArgsUsage)
			}
			data, err := readInput(in)
			if err != nil {
				return err
			}
			var readOpts []mzf.ReadOption
			if mzf.CompressionFromExt(in) == mzf.CompBR {
				readOpts = append(readOpts, mzf.WithInputCompression(mzf.CompBR))
			}
			rec, err := mzf.DecodeReader(bytes.NewReader(data), readOpts...)
			if err != nil {
				return fmt.Errorf("decode %s: %w", in, err)
			}
			logger.FromContext(ctx).Debug("inspected", "input", in, "size", rec.DataSize)

			report := newInspectReport(in, rec)
			if !asJSON {
				return report.writeText(a.stdout)
			}
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(append(out, '\n'))
			return err
		},
	}
}
