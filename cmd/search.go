package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"shopee-scraper/config"
	"shopee-scraper/utils"
)

var (
	searchKeyword string
	searchPages   int
	searchOutput  string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for products by keyword",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := utils.NewLogger()
		cfg := config.Load()

		if searchPages <= 0 {
			searchPages = cfg.MaxSearchPages
		}
		output := searchOutput
		if output == "" {
			output = filepath.Join(cfg.OutputDir,
				"search_"+strings.ReplaceAll(searchKeyword, " ", "_")+".csv")
		}

		sess, err := openSession(cfg, logger)
		if err != nil {
			return err
		}
		defer sess.Close()

		count, err := newScraper(cfg, sess, logger).ScrapeSearch(searchKeyword, searchPages, output)
		if err != nil {
			return err
		}

		fmt.Printf("\nFound %d items, saved to %s\n", count, output)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchKeyword, "keyword", "k", "", "Search keyword")
	searchCmd.Flags().IntVarP(&searchPages, "pages", "p", 0, "Number of pages to scrape")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "Output CSV file")
	_ = searchCmd.MarkFlagRequired("keyword")
}
