package cmd

import (
	"fmt"

	"github.com/hpperiph/hpmctl/hpmouse"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var buttonsHostId uint8

func PrintButtonConfig() {
	usb := openMouse()
	defer usb.Close()

	if err := usb.QueryButtons(buttonsHostId); err != nil {
		log.Fatal(err)
	}

	events := hpmouse.ReadEvents(usb)
	event, err := waitForEvent(events, func(e hpmouse.Event) bool {
		_, ok := e.(*hpmouse.ButtonsEvent)
		return ok
	})
	if err != nil {
		log.Fatal(err)
	}

	buttons := event.(*hpmouse.ButtonsEvent)
	fmt.Println(buttons.String())

	// Name the presets where the programmed actions match catalog entries.
	for _, b := range buttons.Buttons {
		ops, err := hpmouse.DecodeAction(b.Action)
		if err != nil {
			continue
		}
		if entry := hpmouse.EntryForBinding(ops); entry != nil {
			fmt.Printf("button %d is preset %q (%s)\n", b.Id, entry.Id, entry.Label)
		}
	}
}

var buttonsCmd = &cobra.Command{
	Use:   "buttons",
	Short: "Show button capabilities and programmed actions",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		PrintButtonConfig()
	},
}

func init() {
	buttonsCmd.Flags().Uint8Var(&buttonsHostId, "host", 0, "host slot to query")
	rootCmd.AddCommand(buttonsCmd)
}
