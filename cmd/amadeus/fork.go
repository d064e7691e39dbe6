package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amadeus-go/amadeus/fork"
	"github.com/amadeus-go/amadeus/reducer"
	"github.com/amadeus-go/amadeus/sink"
)

func newForkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fork",
		Short: "Fork the demo sequence into a sum sink and a count sink in one pass.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			xs := makeRange(nFlag)

			sumLeaf, _, _ := reducer.Sum[int]()
			countLeaf, _, _ := reducer.Count[int]()

			pair, err := fork.Reduce[int, int, int64](ctx, sink.Slice(xs), sumLeaf, countLeaf)
			if err != nil {
				return err
			}
			fmt.Printf("sum=%d count=%d\n", pair.Left, pair.Right)
			return nil
		},
	}
}
