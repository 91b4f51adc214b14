package main

import (
	"bufio"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/rrpgeconv"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newConverter(c *cli.Context) (*rrpgeconv.Converter, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	conv, err := rrpgeconv.New(c.String("db"), logger)
	if err != nil {
		return nil, err
	}
	conv.Verify = c.Bool("verify")

	return conv, nil
}

func encode(c *cli.Context, conv *rrpgeconv.Converter, f rrpgeconv.Format) error {
	w := bufio.NewWriter(os.Stdout)

	if c.IsSet("width") || c.IsSet("height") {
		pix, err := ioutil.ReadFile(c.Args().First())
		if err != nil {
			return err
		}
		if err := conv.EncodePixels(w, f, pix, c.Int("width"), c.Int("height")); err != nil {
			return err
		}
	} else {
		r, err := os.Open(c.Args().First())
		if err != nil {
			return err
		}
		defer r.Close()

		if err := conv.EncodeImage(w, f, r); err != nil {
			return err
		}
	}

	return w.Flush()
}

func encodeCommand(f rrpgeconv.Format, name, usage string) *cli.Command {
	return &cli.Command{
		Name:        name,
		Usage:       usage,
		Description: "Writes the encoded data to standard output. With --width and --height FILE is read as raw samples, one byte per pixel.",
		ArgsUsage:   "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "width",
				Usage: "width of raw sample input",
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "height of raw sample input",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "decode the result and check it against the source",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
			}

			conv, err := newConverter(c)
			if err != nil {
				return cli.NewExitError(err, 1)
			}
			defer conv.Close()

			if err := encode(c, conv, f); err != nil {
				return cli.NewExitError(err, 1)
			}

			return nil
		},
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "rrpgeconv"
	app.Usage = "RRPGE image asset converter"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"RRPGECONV_DB"},
			Usage:   "path to asset cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		encodeCommand(rrpgeconv.FormatRLE, "rle", "Encode a 4 color image as RLE data"),
		encodeCommand(rrpgeconv.FormatFont, "font", "Encode a 4 plane font image"),
		{
			Name:        "build",
			Usage:       "Convert every image in a directory",
			Description: "Each image is written next to its source with a .rle or .fnt extension.",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Value: rrpgeconv.FormatRLE.String(),
					Usage: "output format, rle or font",
				},
				&cli.BoolFlag{
					Name:  "verify",
					Usage: "decode each result and check it against the source",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := rrpgeconv.ParseFormat(c.String("format"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				conv, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer conv.Close()

				if err := conv.Build(c.Args().First(), f); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
