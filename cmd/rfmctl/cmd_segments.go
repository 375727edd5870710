package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	promosvc "venta_maquinarias/internal/api/promo/service"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "Đếm số khách theo nhóm RFM",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(ctx context.Context, svc *promosvc.PromoService, orgID primitive.ObjectID) error {
			customers := svc.LoadSegmentation(ctx, orgID)
			counts := promosvc.SegmentCounts(customers)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SEGMENT\tCUSTOMERS")
			for _, seg := range promosvc.AllSegments() {
				fmt.Fprintf(w, "%s\t%d\n", seg, counts[seg])
			}
			fmt.Fprintf(w, "total\t%d\n", len(customers))
			return w.Flush()
		})
	},
}
