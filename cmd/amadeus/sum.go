package main

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/amadeus-go/amadeus"
)

func newSumCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sum",
		Short: "Sum the demo sequence [0, n) across processes and threads.",
		RunE: func(cmd *cobra.Command, args []string) error {
			bar := progressbar.Default(int64(nFlag), "generating")
			xs := make([]int, nFlag)
			for i := range xs {
				xs[i] = i
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			s := amadeus.FromSlice(xs)
			r := amadeus.NewRunner(processesFlag, threadsFlag)
			total, err := amadeus.Sum[int](context.Background(), r, s)
			if err != nil {
				return err
			}
			fmt.Printf("sum([0,%d)) = %d\n", nFlag, total)
			return nil
		},
	}
}
