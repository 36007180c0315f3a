package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newResetCmd removes the persisted cluster snapshot, so the next
// session starts from an empty cluster.
func newResetCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard persisted cluster state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			storage, err := a.storage()
			if err != nil {
				return err
			}
			if all {
				if err := storage.ClearAll(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "all persisted state cleared")
				return nil
			}
			if err := storage.Clear(a.cfg.Persistence.StateKey); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cluster state cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "remove every stored key, not just the cluster snapshot")
	return cmd
}
