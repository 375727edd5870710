package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	promosvc "venta_maquinarias/internal/api/promo/service"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	recipientsFilter filterFlags
	recipientsLimit  int
	recipientsJSON   bool
)

var recipientsCmd = &cobra.Command{
	Use:   "recipients",
	Short: "Liệt kê khách khớp bộ lọc kèm điểm RFM",
	RunE:  runRecipients,
}

func init() {
	recipientsFilter.register(recipientsCmd)
	recipientsCmd.Flags().IntVar(&recipientsLimit, "limit", 50, "Số dòng tối đa in ra (0 = tất cả)")
	recipientsCmd.Flags().BoolVar(&recipientsJSON, "json", false, "In kết quả dạng JSON")
}

func runRecipients(cmd *cobra.Command, args []string) error {
	state, err := recipientsFilter.state()
	if err != nil {
		return err
	}
	return withService(func(ctx context.Context, svc *promosvc.PromoService, orgID primitive.ObjectID) error {
		result := svc.Recipients(ctx, orgID, state)
		if recipientsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PHONE\tNAME\tPAID\tVISITS\tLAST VISIT\tR\tF\tM\tSEGMENT")
		for i, c := range result.Customers {
			if recipientsLimit > 0 && i >= recipientsLimit {
				break
			}
			last := "-"
			if c.LastVisit != nil {
				last = c.LastVisit.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%.0f\t%d\t%s\t%d\t%d\t%d\t%s\n",
				c.ContactPhone(), c.Name, c.TotalPaid, c.VisitCount, last, c.RFM.R, c.RFM.F, c.RFM.M, c.Segment)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d/%d khách khớp bộ lọc\n", result.Matched, result.Total)
		return nil
	})
}
