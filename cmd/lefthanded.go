package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func SetLeftHanded(enabled bool) {
	usb := openMouse()
	defer usb.Close()

	if err := usb.SetLeftHanded(enabled); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Left handed mode: %v\n", enabled)
}

var leftHandedCmd = &cobra.Command{
	Use:   "left-handed on|off",
	Short: "Switch the mouse between right and left handed mode",
	Long:  "",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "on":
			SetLeftHanded(true)
		case "off":
			SetLeftHanded(false)
		default:
			log.Fatal("argument must be 'on' or 'off'")
		}
	},
}

func init() {
	rootCmd.AddCommand(leftHandedCmd)
}
