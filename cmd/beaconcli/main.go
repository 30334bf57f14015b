package main

import (
	"fmt"
	"log"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/spf13/cobra"

	"github.com/go-hrops/beacon/cmd/beacon/config"
	"github.com/go-hrops/beacon/notify"
	"github.com/go-hrops/beacon/storage/model"
)

var rootCmd = &cobra.Command{
	Use:   "beaconcli",
	Short: "beaconcli can help you manage your Beacon",
	Long:  "beaconcli can help you manage your Beacon",
}

var configFile string
var scanHours int

var storages model.Backends

func loadConfig() error {
	config.Load(configFile)
	log.Println("Loaded Config")
	c := config.Get()

	var err error
	storages, err = config.LoadStorageBackends(c.Storage)
	if err != nil {
		log.Fatal(err)
	}
	return nil
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a single due-task scan and send notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		notifier := &notify.Engine{
			Tasks:         storages.Tasks,
			Subscriptions: storages.Subscriptions,
			Sender:        notify.NewWebPushSender(config.Get().Notify.VAPID),
		}
		summary, err := notifier.ScanAndNotify(time.Duration(scanHours) * time.Hour)
		if err != nil {
			return err
		}
		fmt.Printf("matched %d tasks, sent %d notifications, %d failed\n", summary.Matched, summary.Sent, summary.Failed)
		return nil
	},
}

var vapidKeysCmd = &cobra.Command{
	Use:   "vapid-keys",
	Short: "Generate a new VAPID key pair for the notify config",
	RunE: func(cmd *cobra.Command, args []string) error {
		privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
		if err != nil {
			return err
		}
		fmt.Printf("notify:\n  vapid:\n    public_key: %s\n    private_key: %s\n", publicKey, privateKey)
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "the config file to use")
	scanCmd.Flags().IntVar(&scanHours, "hours", 24, "the scan horizon in hours")
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(vapidKeysCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
