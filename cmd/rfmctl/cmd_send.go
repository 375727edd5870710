package main

import (
	"context"
	"fmt"

	promosvc "venta_maquinarias/internal/api/promo/service"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	sendFilter  filterFlags
	sendMessage string
	sendImage   string
	sendPhones  []string
	sendYes     bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Gửi khuyến mãi tới danh sách số hoặc khách khớp bộ lọc",
	Long: `Gửi khuyến mãi qua endpoint PROMO_SEND_URL theo lô.

Không có --yes thì chỉ in số người nhận (chạy thử).`,
	RunE: runSend,
}

func init() {
	sendFilter.register(sendCmd)
	sendCmd.Flags().StringVar(&sendMessage, "message", "", "Nội dung khuyến mãi (bắt buộc)")
	sendCmd.Flags().StringVar(&sendImage, "image", "", "URL hình ảnh đính kèm")
	sendCmd.Flags().StringSliceVar(&sendPhones, "phones", nil, "Danh sách số cụ thể (bỏ qua bộ lọc)")
	sendCmd.Flags().BoolVar(&sendYes, "yes", false, "Xác nhận gửi thật")
	_ = sendCmd.MarkFlagRequired("message")
}

func runSend(cmd *cobra.Command, args []string) error {
	state, err := sendFilter.state()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	return withService(func(ctx context.Context, svc *promosvc.PromoService, orgID primitive.ObjectID) error {
		input := promosvc.DispatchInput{
			Message:   sendMessage,
			ImageURL:  sendImage,
			Phones:    sendPhones,
			Filter:    state,
			CreatedBy: "rfmctl",
		}
		if !sendYes {
			phones := svc.ResolveRecipients(ctx, orgID, input)
			fmt.Fprintf(out, "Chạy thử: %d người nhận. Thêm --yes để gửi.\n", len(phones))
			return nil
		}

		var bar *progressbar.ProgressBar
		input.OnBatch = func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("Đang gửi"),
					progressbar.OptionShowCount(),
				)
			}
			_ = bar.Set(done)
		}

		campaign, err := svc.Dispatch(ctx, orgID, input)
		if bar != nil {
			_ = bar.Finish()
			fmt.Fprintln(cmd.ErrOrStderr())
		}
		if campaign != nil {
			fmt.Fprintf(out, "dispatchId=%s status=%s recipients=%d sent=%d failed=%d batches=%d\n",
				campaign.DispatchID, campaign.Status, campaign.RecipientCount, campaign.SentCount, campaign.FailedCount, campaign.BatchCount)
		}
		return err
	})
}
