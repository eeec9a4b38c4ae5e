// Command respcat decodes a stream of RESP2 or RESP3 frames and prints them
// one per line, and exposes a keyslot subcommand for cluster routing.
//
// It exists to exercise the codec packages end-to-end; it is not part of
// the module's public API.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	log       = logrus.New()
	verbose   bool
	protoFlag string
	inputPath string
	sessionID = uuid.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "respcat",
		Short: "Decode and print RESP2/RESP3 frames",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			log.WithField("session", sessionID.String()).Debug("respcat starting")
		},
		RunE: runCat,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().StringVar(&protoFlag, "proto", "resp2", "protocol to decode: resp2 or resp3")
	root.Flags().StringVarP(&inputPath, "file", "f", "", "input file (default: stdin)")

	root.AddCommand(newKeyslotCmd())
	return root
}

func runCat(cmd *cobra.Command, args []string) error {
	input, err := readInput()
	if err != nil {
		return fmt.Errorf("respcat: %w", err)
	}

	switch protoFlag {
	case "resp2":
		return catResp2(cmd.OutOrStdout(), input)
	case "resp3":
		return catResp3(cmd.OutOrStdout(), input)
	default:
		return fmt.Errorf("respcat: unknown protocol %q (want resp2 or resp3)", protoFlag)
	}
}

func readInput() ([]byte, error) {
	if inputPath == "" {
		return io.ReadAll(os.Stdin)
	}
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
