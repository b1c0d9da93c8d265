package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/hpperiph/hpmctl/hpmouse"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	debug   bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hpmctl",
	Short: "Configure and monitor HP wireless mice (930/935 Creator family)",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "dump raw USB traffic")
}

func openMouse() *hpmouse.LocalUSBMouse {
	usb, err := hpmouse.NewLocalUSBMouse()
	if err != nil {
		log.Fatal(err)
	}
	usb.SetShowInOut(verbose)
	return usb
}

// waitForEvent pulls events until match accepts one. Protocol violations
// are logged and skipped, transport errors end the wait.
func waitForEvent(events *hpmouse.Events, match func(hpmouse.Event) bool) (hpmouse.Event, error) {
	for {
		event, err := events.Next()
		if err != nil {
			if errors.Is(err, hpmouse.ErrPacketOverrun) ||
				errors.Is(err, hpmouse.ErrPacketMismatch) ||
				errors.Is(err, hpmouse.ErrSequenceGap) {
				log.Warn("skipping desynced packet: ", err)
				continue
			}
			return nil, err
		}
		if match(event) {
			return event, nil
		}
		log.Debug("skipping unrelated event: ", event)
	}
}
