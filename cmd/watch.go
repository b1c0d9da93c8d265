package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/hpperiph/hpmctl/hpmouse"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func WatchEvents() {
	usb := openMouse()
	defer usb.Close()

	events := hpmouse.ReadEvents(usb)
	for {
		event, err := events.Next()
		if err != nil {
			if errors.Is(err, hpmouse.ErrPacketOverrun) ||
				errors.Is(err, hpmouse.ErrPacketMismatch) ||
				errors.Is(err, hpmouse.ErrSequenceGap) {
				log.Warn("desynced packet: ", err)
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Println("Device disconnected")
				return
			}
			log.Fatal(err)
		}
		fmt.Println(event.String())
	}
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print decoded vendor events as they arrive",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		WatchEvents()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
