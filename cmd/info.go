package cmd

import (
	"fmt"

	"github.com/hpperiph/hpmctl/hpmouse"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func PrintFirmwareInfo() {
	usb := openMouse()
	defer usb.Close()

	if err := usb.QueryFirmware(); err != nil {
		log.Fatal(err)
	}

	events := hpmouse.ReadEvents(usb)
	event, err := waitForEvent(events, func(e hpmouse.Event) bool {
		_, ok := e.(*hpmouse.FirmwareEvent)
		return ok
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(event.String())
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show firmware version, device name and serial number",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		PrintFirmwareInfo()
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
