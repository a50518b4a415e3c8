package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"shopee-scraper/config"
	"shopee-scraper/utils"
)

var (
	reviewsInput  string
	reviewsOutput string
	reviewsMax    int
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Scrape reviews for the products listed in a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := utils.NewLogger()
		cfg := config.Load()

		if reviewsMax <= 0 {
			reviewsMax = cfg.MaxReviewsPerProduct
		}
		output := reviewsOutput
		if output == "" {
			output = filepath.Join(cfg.OutputDir, "master_reviews_list.csv")
		}

		sess, err := openSession(cfg, logger)
		if err != nil {
			return err
		}
		defer sess.Close()

		products, total, err := newScraper(cfg, sess, logger).
			ScrapeReviews(reviewsInput, output, reviewsMax)
		if err != nil {
			return err
		}

		fmt.Printf("\nProducts processed: %d | Total reviews: %d | saved to %s\n",
			products, total, output)
		return nil
	},
}

func init() {
	reviewsCmd.Flags().StringVarP(&reviewsInput, "input", "i", "", "Input CSV with Shop ID, Item ID, Product Name columns")
	reviewsCmd.Flags().StringVarP(&reviewsOutput, "output", "o", "", "Output CSV file")
	reviewsCmd.Flags().IntVarP(&reviewsMax, "max-reviews", "m", 0, "Maximum reviews per product")
	_ = reviewsCmd.MarkFlagRequired("input")
}
