package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amadeus-go/amadeus"
)

func newCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count the items in the demo sequence [0, n) across processes and threads.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := amadeus.FromSlice(makeRange(nFlag))
			r := amadeus.NewRunner(processesFlag, threadsFlag)
			n, err := amadeus.Count[int](context.Background(), r, s)
			if err != nil {
				return err
			}
			fmt.Printf("count([0,%d)) = %d\n", nFlag, n)
			return nil
		},
	}
}

func makeRange(n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = i
	}
	return xs
}
