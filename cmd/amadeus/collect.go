package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amadeus-go/amadeus"
	"github.com/amadeus-go/amadeus/reducer"
)

func newCollectCommand() *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect the squares of an even-filtered demo sequence and report the top-N most frequent residues mod 7.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			xs := makeRange(nFlag)
			// A Stream yields its tasks only once, so each reduction below
			// builds its own.
			evenSquares := func() amadeus.Stream[int] {
				return amadeus.Map(
					amadeus.Filter(amadeus.FromSlice(xs), func(_ context.Context, v int) (bool, error) { return v%2 == 0, nil }),
					func(v int) int { return v * v },
				)
			}

			r := amadeus.NewRunner(processesFlag, threadsFlag)
			out, err := amadeus.Collect[int](ctx, r, evenSquares())
			if err != nil {
				return err
			}
			fmt.Printf("collected %d even squares\n", len(out))

			leaf, combine, driver := reducer.MostFrequent[int, int](func(v int) int { return v % 7 }, topN, 0.01, 0.01)
			topOut, err := amadeus.Reduce[int, []reducer.FrequentEntry[int], []reducer.FrequentEntry[int], []reducer.FrequentEntry[int]](
				ctx, r, evenSquares(),
				amadeus.Decomposition(leaf, combine, driver),
			)
			if err != nil {
				return err
			}
			for _, e := range topOut {
				fmt.Printf("residue %d: ~%d occurrences (+/-%d)\n", e.Key, e.Count, e.Error)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&topN, "top", 5, "number of most-frequent residues to report")
	return cmd
}
