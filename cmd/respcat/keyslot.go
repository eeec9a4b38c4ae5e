package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/machinefabric/resp-go/resptype"
)

func newKeyslotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keyslot <key>",
		Short: "Print the cluster hash slot for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot := resptype.KeySlot([]byte(args[0]))
			log.WithField("key", args[0]).WithField("slot", slot).Debug("computed keyslot")
			fmt.Fprintln(cmd.OutOrStdout(), slot)
			return nil
		},
	}
}
