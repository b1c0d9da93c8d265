package cmd

import (
	"fmt"

	"github.com/hpperiph/hpmctl/hpmouse"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var profileHostId uint8

// SaveProfileToFile reads the current configuration off the device and
// stores it as a profile file.
func SaveProfileToFile(path string) {
	usb := openMouse()
	defer usb.Close()

	if err := usb.QueryButtons(profileHostId); err != nil {
		log.Fatal(err)
	}
	if err := usb.QueryMouse(profileHostId); err != nil {
		log.Fatal(err)
	}

	events := hpmouse.ReadEvents(usb)
	profile := &hpmouse.Profile{}

	haveButtons, haveMouse := false, false
	for !haveButtons || !haveMouse {
		event, err := waitForEvent(events, func(e hpmouse.Event) bool {
			switch e.(type) {
			case *hpmouse.ButtonsEvent, *hpmouse.MouseEvent:
				return true
			}
			return false
		})
		if err != nil {
			log.Fatal(err)
		}
		switch e := event.(type) {
		case *hpmouse.ButtonsEvent:
			profile.Buttons = e.Buttons
			haveButtons = true
		case *hpmouse.MouseEvent:
			profile.DPI = e.DPI
			profile.LeftHanded = e.LeftHanded
			haveMouse = true
		}
	}

	if err := hpmouse.SaveProfile(profile, path); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("profile stored to file '%s'\n", path)
}

// LoadProfileFromFile validates a profile file and replays it onto the
// device.
func LoadProfileFromFile(path string) {
	profile, err := hpmouse.LoadProfile(path)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(profile.String())

	usb := openMouse()
	defer usb.Close()

	if err := profile.Apply(usb); err != nil {
		log.Fatal(err)
	}
	fmt.Println("profile applied")
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Save or restore the mouse configuration",
	Long:  "",
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Save the current configuration to a profile file",
	Long:  "",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		SaveProfileToFile(args[0])
	},
}

var profileLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Apply a previously saved profile file",
	Long:  "",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		LoadProfileFromFile(args[0])
	},
}

func init() {
	profileCmd.PersistentFlags().Uint8Var(&profileHostId, "host", 0, "host slot to save from")
	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileLoadCmd)
	rootCmd.AddCommand(profileCmd)
}
