// Command wfval checks that a text file is well-formatted test data:
// printable characters, single spaces between tokens, no trailing
// whitespace, a final newline and no empty border lines.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/tsarn/pygon-run/internal/wfval"
)

func main() {
	cmd := &cli.Command{
		Name:      "wfval",
		Usage:     "validate that test files are well-formatted",
		ArgsUsage: "[file...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				if err := wfval.ValidateReader(os.Stdin); err != nil {
					return describe("<stdin>", err)
				}
				fmt.Printf("%s <stdin>\n", color.GreenString("ok"))
				return nil
			}

			failed := 0
			for _, path := range cmd.Args().Slice() {
				if err := wfval.ValidateFile(path); err != nil {
					failed++
					_ = describe(path, err)
					continue
				}
				fmt.Printf("%s %s\n", color.GreenString("ok"), path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files are not well-formatted", failed, cmd.Args().Len())
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// describe prints a violation with its position when available and
// always returns the error back to the caller.
func describe(name string, err error) error {
	var v *wfval.Violation
	if errors.As(err, &v) {
		fmt.Printf("%s %s: line %d, col %d: %s\n", color.RedString("bad"), name, v.Line, v.Col, v.Msg)
	} else {
		fmt.Printf("%s %s: %v\n", color.RedString("bad"), name, err)
	}
	return err
}
