package cmd

import (
	"fmt"

	"github.com/hpperiph/hpmctl/hpmouse"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func PrintBatteryStatus() {
	usb := openMouse()
	defer usb.Close()

	if err := usb.QueryBattery(); err != nil {
		log.Fatal(err)
	}

	events := hpmouse.ReadEvents(usb)
	event, err := waitForEvent(events, func(e hpmouse.Event) bool {
		_, ok := e.(*hpmouse.BatteryEvent)
		return ok
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(event.String())
}

var batteryCmd = &cobra.Command{
	Use:   "battery",
	Short: "Show battery level and reporting thresholds",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		PrintBatteryStatus()
	},
}

func init() {
	rootCmd.AddCommand(batteryCmd)
}
