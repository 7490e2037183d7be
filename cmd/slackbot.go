package cmd

import (
	"context"
	"log"
	"os"

	slackapi "github.com/slack-go/slack"
	"github.com/spf13/cobra"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/config"
	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/slackbot"
)

var slackbotUploadDir string

var slackbotCmd = &cobra.Command{
	Use:   "slackbot",
	Short: "Run the Wikipedia Slack bot",
	Long: `Polls the configured channel and answers messages of the form
"Wikipedia: <title>" with the first paragraph of the article, trying
French Wikipedia before English.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSlackbot()
	},
}

func init() {
	slackbotCmd.Flags().StringVar(&slackbotUploadDir, "upload-images", "", "upload every image in this directory to the channel before polling")
	rootCmd.AddCommand(slackbotCmd)
}

func runSlackbot() {
	token := os.Getenv("SLACK_BOT_TOKEN")
	if token == "" {
		log.Fatal("SLACK_BOT_TOKEN environment variable is required")
	}

	appCfg, err := config.GetAppConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	fileCfg, err := config.LoadFileConfig(appCfg.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if fileCfg.Slack.Channel == "" {
		log.Fatal("slack.channel must be set in the config file")
	}

	bot := slackbot.New(slackapi.New(token), slackbot.NewWikipedia(), fileCfg.Slack.Channel)

	if slackbotUploadDir != "" {
		if err := bot.UploadImages(slackbotUploadDir); err != nil {
			log.Fatalf("Image upload failed: %v", err)
		}
	}

	if err := bot.Run(context.Background()); err != nil {
		log.Fatalf("Bot stopped: %v", err)
	}
}
