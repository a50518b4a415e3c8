package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"shopee-scraper/config"
	"shopee-scraper/services"
	"shopee-scraper/storage"
	"shopee-scraper/utils"
	"shopee-scraper/wordcloud"
)

var (
	analyzeInput      string
	analyzeOutput     string
	analyzeWordclouds bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a review CSV into per-product sentiment summaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := utils.NewLogger()
		cfg := config.Load()

		output := analyzeOutput
		if output == "" {
			output = filepath.Join(cfg.OutputDir, "analysis_summary.csv")
		}

		table, err := storage.ReadTable(analyzeInput)
		if err != nil {
			return err
		}

		var renderer wordcloud.Renderer
		if analyzeWordclouds {
			renderer = wordcloud.NewPNGRenderer(cfg.WordcloudDir, cfg.FontPath)
		}

		summaries, err := services.NewAnalyzer(logger, renderer).Analyze(table)
		if err != nil {
			return err
		}

		writer, err := storage.NewSummaryWriter(output)
		if err != nil {
			return err
		}
		defer writer.Close()
		if err := writer.WriteSummaries(summaries); err != nil {
			return err
		}

		services.PrintReport(summaries)
		fmt.Printf("\nSummary saved to %s\n", output)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "Input review CSV")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Output summary CSV")
	analyzeCmd.Flags().BoolVar(&analyzeWordclouds, "wordclouds", false, "Generate word-cloud images")
	_ = analyzeCmd.MarkFlagRequired("input")
}
