package cmd

import (
	"fmt"
	"strconv"

	"github.com/hpperiph/hpmctl/hpmouse"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var dpiHostId uint8

func PrintMouseSettings() {
	usb := openMouse()
	defer usb.Close()

	if err := usb.QueryMouse(dpiHostId); err != nil {
		log.Fatal(err)
	}

	events := hpmouse.ReadEvents(usb)
	event, err := waitForEvent(events, func(e hpmouse.Event) bool {
		_, ok := e.(*hpmouse.MouseEvent)
		return ok
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(event.String())
}

func SetDPI(dpi uint16) {
	usb := openMouse()
	defer usb.Close()

	if err := usb.SetDPI(dpi); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("DPI set to %d\n", dpi)
}

var dpiCmd = &cobra.Command{
	Use:   "dpi [value]",
	Short: "Show mouse settings, or set the sensor DPI",
	Long:  "",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			PrintMouseSettings()
			return
		}
		dpi, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			log.Fatal("invalid DPI value: ", args[0])
		}
		SetDPI(uint16(dpi))
	},
}

func init() {
	dpiCmd.Flags().Uint8Var(&dpiHostId, "host", 0, "host slot to query")
	rootCmd.AddCommand(dpiCmd)
}
