package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"shopee-scraper/config"
	"shopee-scraper/utils"
)

var (
	shopID      string
	shopActive  bool
	shopSoldOut bool
	shopOutput  string
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Scrape items from a shop by Shop ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := utils.NewLogger()
		cfg := config.Load()

		// Neither flag means both.
		includeActive := shopActive || !shopSoldOut
		includeSoldOut := shopSoldOut || !shopActive

		output := shopOutput
		if output == "" {
			output = filepath.Join(cfg.OutputDir, "shop_items_"+shopID+".csv")
		}

		sess, err := openSession(cfg, logger)
		if err != nil {
			return err
		}
		defer sess.Close()

		active, soldOut, err := newScraper(cfg, sess, logger).
			ScrapeShop(shopID, includeActive, includeSoldOut, output)
		if err != nil {
			return err
		}

		fmt.Printf("\nActive items: %d | Sold-out items: %d | saved to %s\n",
			active, soldOut, output)
		return nil
	},
}

func init() {
	shopCmd.Flags().StringVarP(&shopID, "shop-id", "s", "", "Shop ID")
	shopCmd.Flags().BoolVar(&shopActive, "active", false, "Include active items")
	shopCmd.Flags().BoolVar(&shopSoldOut, "soldout", false, "Include sold-out items")
	shopCmd.Flags().StringVarP(&shopOutput, "output", "o", "", "Output CSV file")
	_ = shopCmd.MarkFlagRequired("shop-id")
}
