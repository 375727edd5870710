// rfmctl - công cụ dòng lệnh xem phân khúc RFM và gửi khuyến mãi cho một tổ chức.
//
//	rfmctl segments   --org <id>
//	rfmctl recipients --org <id> --segments champion,loyal --min-spent 100000
//	rfmctl send       --org <id> --message "..." --segments at_risk --yes
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	promosvc "venta_maquinarias/internal/api/promo/service"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	orgHex  string
	timeout time.Duration

	// newService mở kết nối và dựng PromoService; test thay bằng service dùng dữ liệu giả
	newService = openService
)

var rootCmd = &cobra.Command{
	Use:           "rfmctl",
	Short:         "Phân khúc khách hàng RFM và gửi khuyến mãi",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&orgHex, "org", "", "ObjectID của tổ chức (bắt buộc)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Thời gian tối đa cho một lệnh")
	_ = rootCmd.MarkPersistentFlagRequired("org")

	rootCmd.AddCommand(segmentsCmd, recipientsCmd, sendCmd)
}

// withService parse --org, mở service và gọi fn với context có timeout
func withService(fn func(ctx context.Context, svc *promosvc.PromoService, orgID primitive.ObjectID) error) error {
	orgID, err := primitive.ObjectIDFromHex(orgHex)
	if err != nil {
		return fmt.Errorf("--org không hợp lệ: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	svc, closeFn, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, svc, orgID)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
