// Package cmd defines the command-line interface: one subcommand per
// scraping mode plus analysis and the HTTP service.
package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shopee-scraper/config"
	"shopee-scraper/scraper/shopee"
	"shopee-scraper/session"
	"shopee-scraper/utils"
)

var rootCmd = &cobra.Command{
	Use:   "shopee-scraper",
	Short: "Scrape product listings and reviews, and analyze review sentiment",
	Long: `Scrapes product listings and customer reviews through an authenticated
browser session and turns raw reviews into per-product sentiment and
consensus summaries.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
}

// openSession starts the browser and waits for the human to finish logging
// in before any scraping begins.
func openSession(cfg *config.Config, logger *utils.Logger) (*session.Session, error) {
	sess, err := session.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := promptEnter("LOGIN REQUIRED: log in manually in the browser, then press Enter..."); err != nil {
		_ = sess.Close()
		return nil, err
	}
	return sess, nil
}

// promptCaptcha is the interactive captcha waiter: a blocking terminal
// prompt until the human has solved the challenge in the browser.
func promptCaptcha() error {
	return promptEnter("Please solve the captcha in the browser, then press Enter...")
}

func promptEnter(message string) error {
	fmt.Println(message)
	_, err := bufio.NewReader(os.Stdin).ReadString('\n')
	return err
}

func newScraper(cfg *config.Config, sess *session.Session, logger *utils.Logger) *shopee.Scraper {
	return shopee.New(cfg, sess, logger, promptCaptcha)
}
